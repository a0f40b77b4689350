package survey

import (
	"context"
	"log"
	"strconv"
)

const pendingScoreKey = "pendingScore"

// ScoreSink persists a delivered score for the given user.
type ScoreSink func(ctx context.Context, userID string, score int) error

// PendingScoreRelay stages a score computed before authentication so it
// is not lost across the sign-in boundary. The slot holds at most one
// value; staging again overwrites.
type PendingScoreRelay struct {
	storage Storage
	logf    func(format string, args ...any)
}

func NewPendingScoreRelay(storage Storage) *PendingScoreRelay {
	return &PendingScoreRelay{storage: storage, logf: log.Printf}
}

// Stage stores the score, replacing any previously staged value.
func (r *PendingScoreRelay) Stage(score int) {
	r.storage.Set(pendingScoreKey, strconv.Itoa(score))
}

// Staged returns the staged score, if any.
func (r *PendingScoreRelay) Staged() (int, bool) {
	raw, ok := r.storage.Get(pendingScoreKey)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.logf("relay: bad staged value %q: %v", raw, err)
		// Clear the slot so a corrupt value is reported once, not on
		// every later delivery attempt.
		r.storage.Delete(pendingScoreKey)
		return 0, false
	}
	return n, true
}

// BestEffortDeliver flushes the staged score to the sink for the newly
// authenticated user, then clears the slot whether or not the sink
// succeeded. Delivery is attempted at most once; a sink failure is
// logged and the score is dropped so sign-in never blocks on it. With
// nothing staged this is a no-op.
//
// Callers must await this before the session's first record-list fetch
// so the new record is visible there.
func (r *PendingScoreRelay) BestEffortDeliver(ctx context.Context, userID string, sink ScoreSink) {
	score, ok := r.Staged()
	if !ok {
		return
	}
	if err := sink(ctx, userID, score); err != nil {
		r.logf("relay: deliver pending score for user %s: %v", userID, err)
	}
	r.storage.Delete(pendingScoreKey)
}
