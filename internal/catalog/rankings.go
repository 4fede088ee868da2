package catalog

import "tripplanner/internal/models/trip_models"

// Ranking names, also the canonical order composite scores are summed in.
const (
	RankByAccessibility = "accessibility"
	RankByLandmark      = "landmark"
	RankByPopularity    = "popularity"
	RankByPrice         = "price"
	RankByRating        = "rating"
)

// AccessibilityAttributeSpace is the assumed number of distinct accessibility options.
const AccessibilityAttributeSpace = 10

// RankingWeight is one (ranking, weight) pair of a profile.
type RankingWeight struct {
	Ranking string
	Weight  float64
}

var (
	sightseeingProfile = []RankingWeight{
		{RankByLandmark, 0.35},
		{RankByPopularity, 0.3},
		{RankByRating, 0.2},
		{RankByPrice, 0.1},
		{RankByAccessibility, 0.05},
	}
	foodProfile = []RankingWeight{
		{RankByRating, 0.45},
		{RankByPrice, 0.35},
		{RankByPopularity, 0.15},
		{RankByAccessibility, 0.05},
	}
	outdoorProfile = []RankingWeight{
		{RankByRating, 0.4},
		{RankByPopularity, 0.3},
		{RankByPrice, 0.2},
		{RankByAccessibility, 0.1},
	}
	activityProfile = []RankingWeight{
		{RankByRating, 0.35},
		{RankByPrice, 0.3},
		{RankByPopularity, 0.2},
		{RankByAccessibility, 0.15},
	}
	defaultProfile = []RankingWeight{
		{RankByRating, 0.3},
		{RankByPopularity, 0.25},
		{RankByPrice, 0.2},
		{RankByAccessibility, 0.15},
		{RankByLandmark, 0.1},
	}
)

var rankingProfiles = map[trip_models.Category][]RankingWeight{
	trip_models.CategoryCultural:      sightseeingProfile,
	trip_models.CategoryHistoric:      sightseeingProfile,
	trip_models.CategoryLandmarks:     sightseeingProfile,
	trip_models.CategoryFood:          foodProfile,
	trip_models.CategoryOutdoor:       outdoorProfile,
	trip_models.CategoryWellness:      activityProfile,
	trip_models.CategorySports:        activityProfile,
	trip_models.CategoryEntertainment: activityProfile,
}

// RankingProfile returns the weights used to order venues of c.
func RankingProfile(c trip_models.Category) []RankingWeight {
	p, ok := rankingProfiles[c]
	if !ok {
		p = defaultProfile
	}
	return append([]RankingWeight(nil), p...)
}

var landmarkTags = map[string]bool{
	"tourist_attraction":  true,
	"historical_landmark": true,
	"historical_place":    true,
	"monument":            true,
	"museum":              true,
	"castle":              true,
	"observation_deck":    true,
	"church":              true,
	"art_gallery":         true,
	"landmark":            true,
	"plaza":               true,
	"bridge":              true,
}

// IsLandmarkTag reports whether tag belongs to the landmark tag set.
func IsLandmarkTag(tag string) bool { return landmarkTags[tag] }
