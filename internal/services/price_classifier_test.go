package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tripplanner/internal/models/trip_models"
)

func TestPriceClassifierEstimate(t *testing.T) {
	pricer := NewPriceClassifier(zap.NewNop())

	explicit := venue("e", "Explicit", 40.7, -74, "museum")
	explicit.PriceRange = &trip_models.PriceRange{StartPrice: 5, EndPrice: 7, Currency: "USD"}

	leveled := venue("l", "Leveled", 40.7, -74, "restaurant")
	leveled.PriceLevel = trip_models.PriceLevelModerate

	tests := []struct {
		name  string
		venue trip_models.Venue
		want  trip_models.PriceRange
	}{
		{"explicit range wins", explicit, trip_models.PriceRange{StartPrice: 5, EndPrice: 7, Currency: "USD"}},
		{"price level band", leveled, trip_models.PriceRange{StartPrice: 15, EndPrice: 40, Currency: "USD"}},
		{"landmarks are free", venue("t", "Square", 48.85, 2.35, "tourist_attraction"), trip_models.PriceRange{Currency: "EUR"}},
		{"unknown tags are free", venue("u", "Odd", 48.85, 2.35, "unknown_tag"), trip_models.PriceRange{Currency: "EUR"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricer.Estimate(tt.venue))
		})
	}

	t.Run("regional average with spread", func(t *testing.T) {
		got := pricer.Estimate(venue("m", "Louvre", 48.85, 2.35, "museum"))
		assert.Equal(t, "EUR", got.Currency)
		assert.InDelta(t, 19.8, got.StartPrice, 1e-9)
		assert.InDelta(t, 24.2, got.EndPrice, 1e-9)
	})
}

func TestPriceClassifierClassifySortsStably(t *testing.T) {
	pricer := NewPriceClassifier(zap.NewNop())

	cheap := venue("cheap", "Cheap", 40.7, -74, "cafe")
	cheap.PriceLevel = trip_models.PriceLevelInexpensive
	pricey := venue("pricey", "Pricey", 40.7, -74, "restaurant")
	pricey.PriceLevel = trip_models.PriceLevelExpensive
	free1 := venue("free1", "Plaza", 40.7, -74, "plaza")
	free2 := venue("free2", "Bridge", 40.7, -74, "bridge")

	got := pricer.Classify([]trip_models.Venue{pricey, free1, cheap, free2})
	ids := make([]string, len(got))
	for i, pv := range got {
		ids[i] = pv.Venue.ID
	}
	assert.Equal(t, []string{"free1", "free2", "cheap", "pricey"}, ids)
}

func TestFitPlacesOnBudget(t *testing.T) {
	priced := func(id string, end float64) trip_models.PricedVenue {
		return trip_models.PricedVenue{
			Venue: trip_models.Venue{ID: id},
			Price: trip_models.PriceRange{StartPrice: end / 2, EndPrice: end, Currency: "USD"},
		}
	}

	kept, total := FitPlacesOnBudget([]trip_models.PricedVenue{
		priced("a", 20), priced("b", 25), priced("c", 30),
	}, 40)
	assert.Len(t, kept, 2)
	assert.InDelta(t, 45, total.EndPrice, 1e-9)
	assert.InDelta(t, 22.5, total.StartPrice, 1e-9)
	assert.Equal(t, "USD", total.Currency)

	// A rejected item does not stop later cheaper ones.
	kept, total = FitPlacesOnBudget([]trip_models.PricedVenue{
		priced("a", 30), priced("big", 100), priced("b", 10),
	}, 40)
	assert.Len(t, kept, 2)
	assert.InDelta(t, 40, total.EndPrice, 1e-9)

	kept, _ = FitPlacesOnBudget(nil, 100)
	assert.Empty(t, kept)
}
