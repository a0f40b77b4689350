package survey

import (
	"encoding/json"
	"errors"
	"log"
)

var (
	// ErrUnknownCategory is returned for a category outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrIndexOutOfRange is returned when the question index does not exist.
	ErrIndexOutOfRange = errors.New("question index out of range")
	// ErrValueOutOfRange is returned for answers outside [1,5]. Out-of-range
	// values are rejected, never clamped, so the stored vector only ever
	// contains what the user actually chose.
	ErrValueOutOfRange = errors.New("answer value out of range")
)

const neutralAnswer = 3

// AnswerStore keeps the per-category answer vectors for the in-progress
// questionnaire. Each vector is written wholesale under its category key
// every time an answer changes. Vectors from a prior attempt persist
// until overwritten; Reset clears them explicitly.
type AnswerStore struct {
	storage Storage
}

func NewAnswerStore(storage Storage) *AnswerStore {
	return &AnswerStore{storage: storage}
}

// Visit returns the current vector for a category, seeding a neutral
// vector (all 3s, one per question) on first visit.
func (a *AnswerStore) Visit(c Category) ([]int, error) {
	qs := Questions(c)
	if qs == nil {
		return nil, ErrUnknownCategory
	}
	if v, ok := a.Answers(c); ok {
		return v, nil
	}
	v := make([]int, len(qs))
	for i := range v {
		v[i] = neutralAnswer
	}
	a.write(c, v)
	return v, nil
}

// SetAnswer records one answer and persists the whole category vector.
func (a *AnswerStore) SetAnswer(c Category, index, value int) error {
	if value < 1 || value > 5 {
		return ErrValueOutOfRange
	}
	v, err := a.Visit(c)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(v) {
		return ErrIndexOutOfRange
	}
	v[index] = value
	a.write(c, v)
	return nil
}

// Answers returns the stored vector for a category, or ok=false if the
// category was never visited.
func (a *AnswerStore) Answers(c Category) ([]int, bool) {
	raw, ok := a.storage.Get(storageKey(c))
	if !ok {
		return nil, false
	}
	var v []int
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("answer store: decode %s: %v", storageKey(c), err)
		return nil, false
	}
	return v, true
}

// Reset clears every category vector so a new attempt starts clean.
func (a *AnswerStore) Reset() {
	for _, c := range Categories() {
		a.storage.Delete(storageKey(c))
	}
}

func (a *AnswerStore) write(c Category, v []int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("answer store: encode %s: %v", storageKey(c), err)
		return
	}
	a.storage.Set(storageKey(c), string(data))
}
