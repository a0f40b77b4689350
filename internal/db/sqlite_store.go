package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/greenprint-labs/greenprint/internal/services"
)

// SQLiteStore persists users and survey snapshots in sqlite via
// database/sql. Timestamps are stored as unix nanoseconds so ordering
// and round-tripping stay exact.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) InsertSurvey(sv *services.Survey) error {
	_, err := s.db.Exec(
		`INSERT INTO surveys (id, owner_id, footprint_score, created_at) VALUES (?, ?, ?, ?)`,
		sv.ID, sv.OwnerID, sv.FootprintScore, sv.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListSurveysByOwner(ownerID string) ([]*services.Survey, error) {
	rows, err := s.db.Query(
		`SELECT id, owner_id, footprint_score, created_at FROM surveys
		 WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	out := []*services.Survey{}
	for rows.Next() {
		sv, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) GetSurvey(ownerID, id string) (*services.Survey, error) {
	row := s.db.QueryRow(
		`SELECT id, owner_id, footprint_score, created_at FROM surveys
		 WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	sv, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *SQLiteStore) UpdateSurveyScore(ownerID, id string, footprintScore int) (*services.Survey, error) {
	res, err := s.db.Exec(
		`UPDATE surveys SET footprint_score = ? WHERE id = ? AND owner_id = ?`,
		footprintScore, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update survey: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update survey: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetSurvey(ownerID, id)
}

func (s *SQLiteStore) DeleteSurvey(ownerID, id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM surveys WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete survey: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete survey: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(
		`SELECT id, email, pass_hash, created_at FROM users WHERE email = ?`,
		email,
	)
	var u services.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = time.Unix(0, createdAt).UTC()
	return &u, nil
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*services.Survey, error) {
	var sv services.Survey
	var createdAt int64
	if err := row.Scan(&sv.ID, &sv.OwnerID, &sv.FootprintScore, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan survey: %w", err)
	}
	sv.CreatedAt = time.Unix(0, createdAt).UTC()
	return &sv, nil
}

var (
	_ services.SurveyStore = (*SQLiteStore)(nil)
	_ services.AuthStore   = (*SQLiteStore)(nil)
)
