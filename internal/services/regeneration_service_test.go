package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/models/trip_models"
	"tripplanner/internal/repositories"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

type regenFixture struct {
	svc     RegenerationServiceInterface
	cache   repositories.TripCacheRepository
	leases  *mem.TripLeases
	routing *fakeRouting
}

func newRegenFixture(t *testing.T, pools trip_models.PreRankedPools) regenFixture {
	t.Helper()
	ctx := context.Background()
	store := mem.NewLocalStore(time.Minute)
	cache := repositories.NewTripCacheRepository(store, time.Hour)
	leases := mem.NewTripLeases(store, time.Minute)
	routing := &fakeRouting{}

	at := func(h int) time.Time { return time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC) }
	trip := &trip_models.Trip{
		ID:       "trip-1",
		TripType: trip_models.TripTypeZone,
		Template: trip_models.TemplateLight,
		Itinerary: &trip_models.TripItinerary{
			ID:         "trip-1",
			PriceRange: &trip_models.PriceRange{StartPrice: 999, EndPrice: 999, Currency: "USD"},
			Days: []trip_models.DayItinerary{{
				Date: at(0),
				MorningActivities: []trip_models.Activity{
					{ID: "act-1", Venue: venue("m1", "Museum 1", 1, 1, "museum"), StartTime: at(9), EndTime: at(10), Category: trip_models.CategoryCultural, Duration: 60},
					{ID: "act-2", Venue: venue("p1", "Park 1", 1, 1.01, "park"), StartTime: at(11), EndTime: at(12), Category: trip_models.CategoryOutdoor, Duration: 60},
				},
				AfternoonActivities: []trip_models.Activity{
					{ID: "act-3", Venue: venue("m2", "Museum 2", 1, 1.02, "museum"), StartTime: at(14), EndTime: at(15), Category: trip_models.CategoryCultural, Duration: 60},
				},
			}},
		},
	}
	require.NoError(t, cache.SaveTrip(ctx, trip))
	require.NoError(t, cache.SavePools(ctx, trip.ID, pools))

	return regenFixture{
		svc:     NewRegenerationService(cache, repositories.NewNoopTripRepository(), leases, routing, NewPriceClassifier(zap.NewNop()), zap.NewNop()),
		cache:   cache,
		leases:  leases,
		routing: routing,
	}
}

func TestRegenerateActivitySameCategory(t *testing.T) {
	ctx := context.Background()
	f := newRegenFixture(t, trip_models.PreRankedPools{
		trip_models.CategoryCultural: {
			venue("m2", "Museum 2", 1, 1.02, "museum"),
			venue("m3", "Museum 3", 1, 1.03, "museum"),
		},
		trip_models.CategoryOutdoor: {venue("p2", "Park 2", 1, 1.04, "park")},
	})

	trip, err := f.svc.RegenerateActivity(ctx, "trip-1", "act-1")
	require.NoError(t, err)

	act := trip.Itinerary.Days[0].MorningActivities[0]
	assert.Equal(t, "act-1", act.ID)
	assert.Equal(t, "m3", act.Venue.ID, "m2 is already scheduled")
	assert.Equal(t, 9, act.StartTime.Hour())
	assert.Len(t, trip.Itinerary.Days[0].Routes, 2)
	assert.Equal(t, 1, f.routing.calls)

	pools, err := f.cache.GetPools(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1"}, rankedIDs(pools[trip_models.CategoryCultural]))

	cached, err := f.cache.GetTrip(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "m3", cached.Itinerary.Days[0].MorningActivities[0].Venue.ID)

	want := ItineraryPrice(NewPriceClassifier(zap.NewNop()), trip.Itinerary.Days)
	require.NotNil(t, cached.Itinerary.PriceRange)
	assert.Equal(t, *want, *cached.Itinerary.PriceRange)
}

func TestRegenerateActivityFallsBackToOtherCategory(t *testing.T) {
	ctx := context.Background()
	f := newRegenFixture(t, trip_models.PreRankedPools{
		trip_models.CategoryCultural:      {venue("m2", "Museum 2", 1, 1.02, "museum")},
		trip_models.CategoryAccommodation: {venue("h1", "Hotel", 1, 1, "hotel")},
		trip_models.CategoryOutdoor:       {venue("p2", "Park 2", 1, 1.04, "park")},
	})

	trip, err := f.svc.RegenerateActivity(ctx, "trip-1", "act-1")
	require.NoError(t, err)
	act := trip.Itinerary.Days[0].MorningActivities[0]
	assert.Equal(t, "p2", act.Venue.ID)
	assert.Equal(t, trip_models.CategoryOutdoor, act.Category)
}

func TestRegenerateActivityErrors(t *testing.T) {
	ctx := context.Background()
	f := newRegenFixture(t, trip_models.PreRankedPools{
		trip_models.CategoryCultural: {venue("m2", "Museum 2", 1, 1.02, "museum")},
	})

	_, err := f.svc.RegenerateActivity(ctx, "trip-1", "act-1")
	assert.ErrorIs(t, err, utils.ErrNoAlternativeVenue)

	_, err = f.svc.RegenerateActivity(ctx, "trip-1", "missing")
	assert.ErrorIs(t, err, utils.ErrActivityNotFound)

	_, err = f.svc.RegenerateActivity(ctx, "unknown-trip", "act-1")
	assert.ErrorIs(t, err, utils.ErrTripNotFound)

	_, release, err := f.leases.Acquire(ctx, "trip-1")
	require.NoError(t, err)
	_, err = f.svc.RegenerateActivity(ctx, "trip-1", "act-1")
	assert.ErrorIs(t, err, utils.ErrTripBusy)
	_, err = f.svc.DeleteActivity(ctx, "trip-1", "act-1")
	assert.ErrorIs(t, err, utils.ErrTripBusy)
	release()
}

func TestDeleteActivity(t *testing.T) {
	ctx := context.Background()
	f := newRegenFixture(t, trip_models.PreRankedPools{
		trip_models.CategoryOutdoor: {venue("p2", "Park 2", 1, 1.04, "park")},
	})

	trip, err := f.svc.DeleteActivity(ctx, "trip-1", "act-2")
	require.NoError(t, err)

	day := trip.Itinerary.Days[0]
	require.Len(t, day.MorningActivities, 1)
	assert.Equal(t, "act-1", day.MorningActivities[0].ID)
	assert.Len(t, day.AfternoonActivities, 1)
	assert.Len(t, day.Routes, 1)

	pools, err := f.cache.GetPools(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, rankedIDs(pools[trip_models.CategoryOutdoor]))

	_, err = f.svc.DeleteActivity(ctx, "trip-1", "act-2")
	assert.ErrorIs(t, err, utils.ErrActivityNotFound)
}

func TestDeleteActivityRecomputesPrice(t *testing.T) {
	ctx := context.Background()
	f := newRegenFixture(t, trip_models.PreRankedPools{})
	pricer := NewPriceClassifier(zap.NewNop())

	before, err := f.cache.GetTrip(ctx, "trip-1")
	require.NoError(t, err)
	full := ItineraryPrice(pricer, before.Itinerary.Days)
	park := pricer.Estimate(venue("p1", "Park 1", 1, 1.01, "park"))

	trip, err := f.svc.DeleteActivity(ctx, "trip-1", "act-2")
	require.NoError(t, err)
	require.NotNil(t, trip.Itinerary.PriceRange)
	assert.Equal(t, *ItineraryPrice(pricer, trip.Itinerary.Days), *trip.Itinerary.PriceRange)
	assert.InDelta(t, full.StartPrice-park.StartPrice, trip.Itinerary.PriceRange.StartPrice, 1e-9)
	assert.InDelta(t, full.EndPrice-park.EndPrice, trip.Itinerary.PriceRange.EndPrice, 1e-9)
}
