package survey

// Category is one thematic group of questionnaire items.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryTransport   Category = "transport"
	CategoryHome        Category = "home"
	CategoryConsumption Category = "consumption"
)

// Categories returns the fixed category order. The order drives both
// step navigation and score aggregation.
func Categories() []Category {
	return []Category{CategoryFood, CategoryTransport, CategoryHome, CategoryConsumption}
}

// Questions returns the statement stems for a category. Answers are
// Likert values in [1,5]; index position is the question identity.
func Questions(c Category) []string {
	switch c {
	case CategoryFood:
		return []string{
			"I eat mostly plant-based foods.",
			"I minimize food waste in my home.",
			"I choose locally produced ingredients when possible.",
		}
	case CategoryTransport:
		return []string{
			"I walk, cycle, or use public transport for most trips.",
			"I avoid short-haul flights when alternatives exist.",
			"I combine errands to reduce the distance I drive.",
		}
	case CategoryHome:
		return []string{
			"I keep heating and cooling at moderate settings.",
			"I switch off lights and appliances when not in use.",
			"My home uses energy-efficient lighting and appliances.",
		}
	case CategoryConsumption:
		return []string{
			"I repair or repurpose items before replacing them.",
			"I buy second-hand goods when practical.",
			"I avoid single-use products in everyday purchases.",
		}
	}
	return nil
}

// storageKey returns the device-local key a category vector is stored
// under, e.g. "foodCategory".
func storageKey(c Category) string {
	return string(c) + "Category"
}

func categoryIndex(c Category) int {
	for i, cat := range Categories() {
		if cat == c {
			return i
		}
	}
	return -1
}
