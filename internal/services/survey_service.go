package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Survey is one persisted footprint score snapshot. OwnerID scopes
// every read and write and is never serialized back to the caller.
type Survey struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"-"`
	FootprintScore int       `json:"footprintScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SurveyStore abstracts the persistence operations SurveyService needs.
// Every lookup is owner-filtered: a record that exists but belongs to a
// different owner behaves exactly like a record that does not exist.
type SurveyStore interface {
	InsertSurvey(sv *Survey) error
	ListSurveysByOwner(ownerID string) ([]*Survey, error)
	GetSurvey(ownerID, id string) (*Survey, error)
	UpdateSurveyScore(ownerID, id string, footprintScore int) (*Survey, error)
	DeleteSurvey(ownerID, id string) (bool, error)
}

// SurveyService enforces identity, ownership, and score validation in
// front of the store.
type SurveyService struct {
	store SurveyStore
	now   func() time.Time
	idGen func() string
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// Create persists a new snapshot with a fresh id and server-assigned
// creation time. The score must be non-negative.
func (s *SurveyService) Create(ownerID string, footprintScore int) (*Survey, error) {
	if ownerID == "" {
		return nil, NewUnauthorizedError("Unauthorized")
	}
	if footprintScore < 0 {
		return nil, NewInvalidError("Valid footprint score is required")
	}
	sv := &Survey{
		ID:             s.idGen(),
		OwnerID:        ownerID,
		FootprintScore: footprintScore,
		CreatedAt:      s.now(),
	}
	if err := s.store.InsertSurvey(sv); err != nil {
		return nil, s.internal("insert survey", err)
	}
	return sv, nil
}

// List returns the owner's snapshots newest first. No snapshots is an
// empty list, not an error.
func (s *SurveyService) List(ownerID string) ([]*Survey, error) {
	if ownerID == "" {
		return nil, NewUnauthorizedError("Unauthorized")
	}
	out, err := s.store.ListSurveysByOwner(ownerID)
	if err != nil {
		return nil, s.internal("list surveys", err)
	}
	if out == nil {
		out = []*Survey{}
	}
	return out, nil
}

func (s *SurveyService) Get(ownerID, id string) (*Survey, error) {
	if ownerID == "" {
		return nil, NewUnauthorizedError("Unauthorized")
	}
	sv, err := s.store.GetSurvey(ownerID, id)
	if err != nil {
		return nil, s.internal("get survey", err)
	}
	if sv == nil {
		return nil, NewNotFoundError("Survey not found")
	}
	return sv, nil
}

// Update replaces the score of an owned snapshot. The ownership check
// runs before score validation, so a foreign id reports not-found even
// when the payload is also invalid. CreatedAt never changes.
func (s *SurveyService) Update(ownerID, id string, footprintScore int) (*Survey, error) {
	if ownerID == "" {
		return nil, NewUnauthorizedError("Unauthorized")
	}
	existing, err := s.store.GetSurvey(ownerID, id)
	if err != nil {
		return nil, s.internal("get survey", err)
	}
	if existing == nil {
		return nil, NewNotFoundError("Survey not found")
	}
	if footprintScore < 0 {
		return nil, NewInvalidError("Valid footprint score is required")
	}
	updated, err := s.store.UpdateSurveyScore(ownerID, id, footprintScore)
	if err != nil {
		return nil, s.internal("update survey", err)
	}
	if updated == nil {
		return nil, NewNotFoundError("Survey not found")
	}
	return updated, nil
}

// Delete permanently removes an owned snapshot. A second delete of the
// same id reports not-found.
func (s *SurveyService) Delete(ownerID, id string) error {
	if ownerID == "" {
		return NewUnauthorizedError("Unauthorized")
	}
	ok, err := s.store.DeleteSurvey(ownerID, id)
	if err != nil {
		return s.internal("delete survey", err)
	}
	if !ok {
		return NewNotFoundError("Survey not found")
	}
	return nil
}

// SaveScore adapts Create to the pending-score relay's sink shape.
func (s *SurveyService) SaveScore(_ context.Context, ownerID string, score int) error {
	_, err := s.Create(ownerID, score)
	return err
}

func (s *SurveyService) internal(op string, err error) error {
	log.Printf("survey service: %s: %v", op, err)
	return NewInternalError("internal server error")
}
