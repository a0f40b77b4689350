package survey

import "math"

// ComputeScore derives the footprint score from the visited category
// vectors. The mean answer across every visited category is normalized
// into [1,5] and inverted so that lower scores mean a smaller footprint:
//
//	score = round((6 − mean) × 20)
//
// With any answers present the result lands in [20,100]. With no answers
// at all the mean is 0 and the score is 120; that value is defined
// behavior for an empty questionnaire, not an error.
func ComputeScore(vectors map[Category][]int) int {
	total := 0
	count := 0
	for _, c := range Categories() {
		for _, v := range vectors[c] {
			total += v
			count++
		}
	}
	normalized := 0.0
	if count > 0 {
		normalized = float64(total) / float64(count)
	}
	return int(math.Round((6 - normalized) * 20))
}

// ScoreFromStore computes the score over every category currently held
// by the answer store. Unvisited categories contribute nothing.
func ScoreFromStore(a *AnswerStore) int {
	vectors := map[Category][]int{}
	for _, c := range Categories() {
		if v, ok := a.Answers(c); ok {
			vectors[c] = v
		}
	}
	return ComputeScore(vectors)
}
