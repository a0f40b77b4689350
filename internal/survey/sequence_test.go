package survey

import "testing"

func TestStepFor(t *testing.T) {
	cases := []struct {
		segment string
		want    Step
	}{
		{"food", StepFood},
		{"transport", StepTransport},
		{"home", StepHome},
		{"consumption", StepConsumption},
		{"result", StepResult},
		{"", StepNone},
		{"garbage", StepNone},
	}
	for _, c := range cases {
		if got := StepFor(c.segment); got != c.want {
			t.Fatalf("StepFor(%q)=%v, want %v", c.segment, got, c.want)
		}
	}
}

func TestNextWalksCategoriesIntoResult(t *testing.T) {
	step := StepFood
	want := []Step{StepTransport, StepHome, StepConsumption, StepResult}
	for _, w := range want {
		step = step.Next()
		if step != w {
			t.Fatalf("Next=%v, want %v", step, w)
		}
	}
	// Never past the terminal state.
	if got := StepResult.Next(); got != StepResult {
		t.Fatalf("Next from result=%v, want StepResult", got)
	}
}

func TestBackWalksToStart(t *testing.T) {
	step := StepConsumption
	want := []Step{StepHome, StepTransport, StepFood, StepStart}
	for _, w := range want {
		step = step.Back()
		if step != w {
			t.Fatalf("Back=%v, want %v", step, w)
		}
	}
	if got := StepStart.Back(); got != StepStart {
		t.Fatalf("Back from start=%v, want StepStart", got)
	}
}

func TestUnknownStepIsInert(t *testing.T) {
	if got := StepNone.Next(); got != StepNone {
		t.Fatalf("Next from none=%v", got)
	}
	if got := StepNone.Back(); got != StepNone {
		t.Fatalf("Back from none=%v", got)
	}
	if StepNone.ShowNav() {
		t.Fatalf("nav shown for unknown context")
	}
	if StepResult.ShowNav() {
		t.Fatalf("nav shown for result")
	}
	if !StepFood.ShowNav() {
		t.Fatalf("nav hidden for category step")
	}
}

func TestIsLast(t *testing.T) {
	if StepFood.IsLast() {
		t.Fatalf("food is not last")
	}
	if !StepConsumption.IsLast() {
		t.Fatalf("consumption is last")
	}
	if StepResult.IsLast() {
		t.Fatalf("result is not a category")
	}
}
