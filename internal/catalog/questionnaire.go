package catalog

import "tripplanner/internal/models/trip_models"

// ScaleRule routes a scale answer to High when value >= Threshold, else Low.
type ScaleRule struct {
	Threshold float64
	High      trip_models.Category
	Low       trip_models.Category
}

// Question describes how one questionnaire item turns into category scores.
// Scale questions carry a Rule, select questions carry Options indexed by the
// chosen option number.
type Question struct {
	ID      int
	Type    trip_models.QuestionType
	Prompt  string
	Rule    ScaleRule
	Options []trip_models.Category
}

var questions = map[int]Question{
	1: {
		ID:     1,
		Type:   trip_models.QuestionScale,
		Prompt: "Museums and galleries over parks and nature",
		Rule:   ScaleRule{Threshold: 0.5, High: trip_models.CategoryCultural, Low: trip_models.CategoryOutdoor},
	},
	2: {
		ID:     2,
		Type:   trip_models.QuestionScale,
		Prompt: "Old town and history over modern attractions",
		Rule:   ScaleRule{Threshold: 0.5, High: trip_models.CategoryHistoric, Low: trip_models.CategoryEntertainment},
	},
	3: {
		ID:     3,
		Type:   trip_models.QuestionScale,
		Prompt: "Active days over relaxing ones",
		Rule:   ScaleRule{Threshold: 0.5, High: trip_models.CategorySports, Low: trip_models.CategoryWellness},
	},
	4: {
		ID:     4,
		Type:   trip_models.QuestionSelect,
		Prompt: "What do you want to see",
		Options: []trip_models.Category{
			trip_models.CategoryLandmarks,
			trip_models.CategoryCultural,
			trip_models.CategoryHistoric,
			trip_models.CategoryOutdoor,
			trip_models.CategoryEntertainment,
			trip_models.CategoryWellness,
			trip_models.CategorySports,
		},
	},
	5: {
		ID:     5,
		Type:   trip_models.QuestionSelect,
		Prompt: "What else matters on this trip",
		Options: []trip_models.Category{
			trip_models.CategoryFood,
			trip_models.CategoryShopping,
			trip_models.CategoryNightlife,
		},
	},
}

// LookupQuestion returns the questionnaire item with id.
func LookupQuestion(id int) (Question, bool) {
	q, ok := questions[id]
	return q, ok
}
