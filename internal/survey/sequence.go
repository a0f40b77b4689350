package survey

// Step is one state in the questionnaire flow: the landing state, one
// state per category in order, and the terminal result state. StepNone
// covers navigation contexts that map to no known category; it is a
// safe no-op state with navigation hidden, not an error.
type Step int

const (
	StepNone Step = iota
	StepStart
	StepFood
	StepTransport
	StepHome
	StepConsumption
	StepResult
)

var stepByCategory = map[Category]Step{
	CategoryFood:        StepFood,
	CategoryTransport:   StepTransport,
	CategoryHome:        StepHome,
	CategoryConsumption: StepConsumption,
}

// StepFor resolves a navigation segment (e.g. the category part of a
// survey URL) to a step. Derive the step once at the boundary and
// transition from there.
func StepFor(segment string) Step {
	if segment == "result" {
		return StepResult
	}
	if s, ok := stepByCategory[Category(segment)]; ok {
		return s
	}
	return StepNone
}

// Category returns the category a step presents, if any.
func (s Step) Category() (Category, bool) {
	for c, st := range stepByCategory {
		if st == s {
			return c, true
		}
	}
	return "", false
}

// Next advances to the following category, or to the result state from
// the last category. Non-category steps do not advance.
func (s Step) Next() Step {
	c, ok := s.Category()
	if !ok {
		return s
	}
	order := Categories()
	i := categoryIndex(c)
	if i == len(order)-1 {
		return StepResult
	}
	return stepByCategory[order[i+1]]
}

// Back moves to the previous category, or to the landing state from the
// first category. Non-category steps do not move.
func (s Step) Back() Step {
	c, ok := s.Category()
	if !ok {
		return s
	}
	i := categoryIndex(c)
	if i == 0 {
		return StepStart
	}
	return stepByCategory[Categories()[i-1]]
}

// ShowNav reports whether back/next controls apply to this step.
func (s Step) ShowNav() bool {
	_, ok := s.Category()
	return ok
}

// IsLast reports whether Next would leave the categories for the result.
func (s Step) IsLast() bool {
	c, ok := s.Category()
	if !ok {
		return false
	}
	return categoryIndex(c) == len(Categories())-1
}
