package survey

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type sinkCall struct {
	userID string
	score  int
}

func TestStageOverwrites(t *testing.T) {
	relay := NewPendingScoreRelay(NewMemoryStorage())
	relay.Stage(52)
	relay.Stage(80)
	got, ok := relay.Staged()
	if !ok || got != 80 {
		t.Fatalf("staged=(%d,%v), want (80,true)", got, ok)
	}
}

func TestBestEffortDeliverCreatesExactlyOneRecord(t *testing.T) {
	relay := NewPendingScoreRelay(NewMemoryStorage())
	relay.Stage(52)

	var calls []sinkCall
	sink := func(ctx context.Context, userID string, score int) error {
		calls = append(calls, sinkCall{userID, score})
		return nil
	}
	relay.BestEffortDeliver(context.Background(), "u1", sink)

	if len(calls) != 1 {
		t.Fatalf("sink called %d times, want 1", len(calls))
	}
	if calls[0].userID != "u1" || calls[0].score != 52 {
		t.Fatalf("sink call=%+v, want {u1 52}", calls[0])
	}
	if _, ok := relay.Staged(); ok {
		t.Fatalf("slot not cleared after delivery")
	}

	// Consuming again is a no-op.
	relay.BestEffortDeliver(context.Background(), "u1", sink)
	if len(calls) != 1 {
		t.Fatalf("second consume reached the sink")
	}
}

func TestBestEffortDeliverNothingStaged(t *testing.T) {
	relay := NewPendingScoreRelay(NewMemoryStorage())
	relay.BestEffortDeliver(context.Background(), "u1", func(context.Context, string, int) error {
		t.Fatalf("sink called with nothing staged")
		return nil
	})
}

func TestStagedClearsCorruptValue(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Set("pendingScore", "not-a-number")

	relay := NewPendingScoreRelay(storage)
	var logged []string
	relay.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	if _, ok := relay.Staged(); ok {
		t.Fatalf("corrupt value reported as staged")
	}
	if _, ok := storage.Get("pendingScore"); ok {
		t.Fatalf("corrupt value left in the slot")
	}

	// Once cleared, later reads are silent no-ops.
	if _, ok := relay.Staged(); ok {
		t.Fatalf("slot staged again after clear")
	}
	if len(logged) != 1 {
		t.Fatalf("decode failure logged %d times, want 1", len(logged))
	}
}

func TestBestEffortDeliverDropsOnFailure(t *testing.T) {
	relay := NewPendingScoreRelay(NewMemoryStorage())
	var logged []string
	relay.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}
	relay.Stage(97)

	relay.BestEffortDeliver(context.Background(), "u1", func(context.Context, string, int) error {
		return errors.New("store down")
	})

	if _, ok := relay.Staged(); ok {
		t.Fatalf("slot kept after failed delivery; delivery is at most once")
	}
	if len(logged) != 1 {
		t.Fatalf("failure logged %d times, want 1", len(logged))
	}
}
