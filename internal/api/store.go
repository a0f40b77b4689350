package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/greenprint-labs/greenprint/internal/services"
)

// Store combines the persistence interfaces the router's services need.
type Store interface {
	services.SurveyStore
	services.AuthStore
}

// memoryStore is the in-process fallback store, used by tests and when
// no sqlite path is configured. Same ownership scoping as the sqlite
// store: lookups for a foreign owner behave like lookups for a missing
// record.
type memoryStore struct {
	mu           sync.RWMutex
	surveys      map[string]*services.Survey
	usersByEmail map[string]*services.User
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		surveys:      map[string]*services.Survey{},
		usersByEmail: map[string]*services.User{},
	}
}

func (s *memoryStore) InsertSurvey(sv *services.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sv
	s.surveys[sv.ID] = &cp
	return nil
}

func (s *memoryStore) ListSurveysByOwner(ownerID string) ([]*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Survey{}
	for _, sv := range s.surveys {
		if sv.OwnerID == ownerID {
			cp := *sv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memoryStore) GetSurvey(ownerID, id string) (*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv := s.surveys[id]
	if sv == nil || sv.OwnerID != ownerID {
		return nil, nil
	}
	cp := *sv
	return &cp, nil
}

func (s *memoryStore) UpdateSurveyScore(ownerID, id string, footprintScore int) (*services.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv := s.surveys[id]
	if sv == nil || sv.OwnerID != ownerID {
		return nil, nil
	}
	sv.FootprintScore = footprintScore
	cp := *sv
	return &cp, nil
}

func (s *memoryStore) DeleteSurvey(ownerID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv := s.surveys[id]
	if sv == nil || sv.OwnerID != ownerID {
		return false, nil
	}
	delete(s.surveys, id)
	return true, nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.usersByEmail[strings.ToLower(email)]
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.usersByEmail[strings.ToLower(u.Email)] = &cp
	return nil
}

var _ Store = (*memoryStore)(nil)
