package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/models/trip_models"
)

func TestCategoryOfTag(t *testing.T) {
	assert.Equal(t, trip_models.CategoryCultural, CategoryOfTag("museum"))
	assert.Equal(t, trip_models.CategoryFood, CategoryOfTag("bakery"))
	assert.Equal(t, trip_models.CategoryUnclassified, CategoryOfTag("laundromat"))
}

func TestEveryCategoryHasTags(t *testing.T) {
	for _, c := range trip_models.AllCategories {
		tags := TagsFor(c)
		require.NotEmpty(t, tags, c)
		for _, tag := range tags {
			assert.Equal(t, c, CategoryOfTag(tag), tag)
		}
	}
}

func TestCategoriesOfTags(t *testing.T) {
	got := CategoriesOfTags([]string{"cafe", "museum", "restaurant", "unknown"})
	assert.Equal(t, []trip_models.Category{trip_models.CategoryCultural, trip_models.CategoryFood}, got)
	assert.Equal(t, trip_models.CategoryFood, PrimaryCategory([]string{"unknown", "cafe", "museum"}))
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 180, DurationMinutes([]string{"zoo"}))
	assert.Equal(t, 30, DurationMinutes([]string{"point_of_interest", "bakery"}))
	assert.Equal(t, DefaultDurationMinutes, DurationMinutes(nil))
}

func TestContinentOf(t *testing.T) {
	tests := []struct {
		name string
		at   trip_models.LatLng
		want Continent
	}{
		{"lisbon", trip_models.LatLng{Latitude: 38.72, Longitude: -9.14}, ContinentEurope},
		{"new york", trip_models.LatLng{Latitude: 40.71, Longitude: -74.0}, ContinentNorthAmerica},
		{"sao paulo", trip_models.LatLng{Latitude: -23.55, Longitude: -46.63}, ContinentSouthAmerica},
		{"sydney", trip_models.LatLng{Latitude: -33.87, Longitude: 151.21}, ContinentOceania},
		{"mid atlantic", trip_models.LatLng{Latitude: 0, Longitude: -30}, ContinentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContinentOf(tt.at))
		})
	}
}

func TestPriceLevelBand(t *testing.T) {
	pr, ok := PriceLevelBand(trip_models.PriceLevelModerate, "USD")
	require.True(t, ok)
	assert.Equal(t, trip_models.PriceRange{StartPrice: 15, EndPrice: 40, Currency: "USD"}, pr)

	pr, ok = PriceLevelBand(trip_models.PriceLevelInexpensive, "XYZ")
	require.True(t, ok)
	assert.Equal(t, "USD", pr.Currency)

	_, ok = PriceLevelBand("PRICE_LEVEL_UNSPECIFIED", "USD")
	assert.False(t, ok)
}

func TestRankingProfilesSumToOne(t *testing.T) {
	for _, c := range append(trip_models.AllCategories, trip_models.CategoryUnclassified) {
		total := 0.0
		for _, w := range RankingProfile(c) {
			total += w.Weight
		}
		assert.InDelta(t, 1.0, total, 1e-9, c)
	}
}

func TestQuestionsAreWellFormed(t *testing.T) {
	for id, q := range questions {
		assert.Equal(t, id, q.ID)
		switch q.Type {
		case trip_models.QuestionScale:
			assert.True(t, q.Rule.High.Valid())
			assert.True(t, q.Rule.Low.Valid())
			assert.False(t, math.IsNaN(q.Rule.Threshold))
		case trip_models.QuestionSelect:
			assert.NotEmpty(t, q.Options)
		default:
			t.Fatalf("question %d has unknown type %q", id, q.Type)
		}
	}
}
