package survey

import "testing"

func TestComputeScore(t *testing.T) {
	cases := []struct {
		name    string
		vectors map[Category][]int
		want    int
	}{
		{"no answers", map[Category][]int{}, 120},
		{"all strongly agree", map[Category][]int{CategoryFood: {5, 5, 5}}, 20},
		{"all strongly disagree", map[Category][]int{CategoryFood: {1, 1, 1}}, 100},
		{"all neutral", map[Category][]int{CategoryFood: {3, 3, 3}}, 60},
		{"two categories", map[Category][]int{CategoryFood: {3, 3, 3}, CategoryTransport: {4, 4}}, 52},
		{"single answer", map[Category][]int{CategoryHome: {2}}, 80},
	}
	for _, c := range cases {
		if got := ComputeScore(c.vectors); got != c.want {
			t.Fatalf("%s: ComputeScore=%d, want %d", c.name, got, c.want)
		}
	}
}

func TestComputeScoreRange(t *testing.T) {
	for v := 1; v <= 5; v++ {
		vectors := map[Category][]int{}
		for _, c := range Categories() {
			vectors[c] = []int{v, v, v}
		}
		got := ComputeScore(vectors)
		if got < 20 || got > 100 {
			t.Fatalf("score %d for uniform answer %d outside [20,100]", got, v)
		}
	}
}

func TestComputeScoreIdempotent(t *testing.T) {
	vectors := map[Category][]int{
		CategoryFood:      {1, 4, 2},
		CategoryTransport: {5, 3},
	}
	first := ComputeScore(vectors)
	second := ComputeScore(vectors)
	if first != second {
		t.Fatalf("recompute changed result: %d then %d", first, second)
	}
}

func TestScoreFromStore(t *testing.T) {
	store := NewAnswerStore(NewMemoryStorage())
	if got := ScoreFromStore(store); got != 120 {
		t.Fatalf("empty store score=%d, want 120", got)
	}

	if _, err := store.Visit(CategoryFood); err != nil {
		t.Fatalf("visit food: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.SetAnswer(CategoryFood, i, 5); err != nil {
			t.Fatalf("set answer %d: %v", i, err)
		}
	}
	if got := ScoreFromStore(store); got != 20 {
		t.Fatalf("score=%d, want 20", got)
	}

	// Unvisited categories contribute nothing.
	if _, ok := store.Answers(CategoryTransport); ok {
		t.Fatalf("transport should be unvisited")
	}
}
