package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

func assemblerPools() trip_models.PreRankedPools {
	pools := trip_models.PreRankedPools{}
	for i := 0; i < 5; i++ {
		pools[trip_models.CategoryCultural] = append(pools[trip_models.CategoryCultural],
			venue(fmt.Sprintf("museum-%d", i), fmt.Sprintf("Museum %d", i), 48.85+float64(i)*0.002, 2.35, "museum"))
	}
	for i := 0; i < 8; i++ {
		pools[trip_models.CategoryOutdoor] = append(pools[trip_models.CategoryOutdoor],
			venue(fmt.Sprintf("park-%d", i), fmt.Sprintf("Park %d", i), 48.86, 2.33+float64(i)*0.003, "park"))
	}
	return pools
}

func TestAssembleFillsDaysWithoutRepeats(t *testing.T) {
	assembler := NewItineraryAssembler(NewRouteOptimizer(), zap.NewNop())
	start := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	must := venue("must", "Must See", 48.855, 2.34, "museum")

	it, remaining, err := assembler.Assemble(AssembleRequest{
		TripID:    "trip-1",
		Name:      "Paris",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		Template:  trip_models.TemplateLight,
		Scores: trip_models.CategoryScore{
			trip_models.CategoryCultural: 1,
			trip_models.CategoryOutdoor:  0.5,
		},
		Pools:     assemblerPools(),
		MustVisit: []trip_models.Venue{must},
	})
	require.NoError(t, err)
	require.Len(t, it.Days, 2)
	assert.Equal(t, "trip-1", it.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), it.StartDate)

	seen := make(map[string]bool)
	for d, day := range it.Days {
		assert.Len(t, day.MorningActivities, 2, "day %d", d)
		assert.Len(t, day.AfternoonActivities, 2, "day %d", d)
		assert.Equal(t, 9, day.MorningActivities[0].StartTime.Hour())
		assert.GreaterOrEqual(t, day.AfternoonActivities[0].StartTime.Hour(), AfternoonStartHour)

		acts := day.Activities()
		for i, a := range acts {
			assert.False(t, seen[a.Venue.ID], "venue %s scheduled twice", a.Venue.ID)
			seen[a.Venue.ID] = true
			assert.NotEmpty(t, a.ID)
			assert.True(t, a.EndTime.After(a.StartTime))
			assert.Equal(t, a.Duration, int(a.EndTime.Sub(a.StartTime)/time.Minute))
			if i > 0 {
				assert.False(t, a.StartTime.Before(acts[i-1].EndTime), "activities overlap")
			}
		}
	}
	assert.True(t, seen["must"], "must-visit venue missing")

	for c, vs := range remaining {
		for _, v := range vs {
			assert.False(t, seen[v.ID], "used venue %s left in %s pool", v.ID, c)
		}
	}
	left := 0
	for _, vs := range remaining {
		left += len(vs)
	}
	assert.Equal(t, 13-7, left)
}

func TestAssembleTopsUpFromOtherPools(t *testing.T) {
	assembler := NewItineraryAssembler(NewRouteOptimizer(), zap.NewNop())
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pools := trip_models.PreRankedPools{
		trip_models.CategoryOutdoor: {venue("p1", "Park", 1, 1, "park")},
		trip_models.CategoryEntertainment: {
			venue("z1", "Zoo", 1, 1.01, "zoo"),
			venue("z2", "Aquarium", 1, 1.02, "aquarium"),
		},
		trip_models.CategoryAccommodation: {venue("h1", "Hotel", 1, 1, "hotel")},
	}

	it, _, err := assembler.Assemble(AssembleRequest{
		StartDate: day,
		EndDate:   day,
		Template:  trip_models.TemplateLight,
		Scores:    trip_models.CategoryScore{trip_models.CategoryOutdoor: 1},
		Pools:     pools,
	})
	require.NoError(t, err)

	var ids []string
	for _, a := range it.Days[0].Activities() {
		ids = append(ids, a.Venue.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "z1", "z2"}, ids)
}

func TestAssembleRejectsReversedDates(t *testing.T) {
	assembler := NewItineraryAssembler(NewRouteOptimizer(), zap.NewNop())
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, _, err := assembler.Assemble(AssembleRequest{
		StartDate: day,
		EndDate:   day.AddDate(0, 0, -1),
		Template:  trip_models.TemplateModerate,
		Scores:    trip_models.CategoryScore{trip_models.CategoryOutdoor: 1},
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
