package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/internal/repositories"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

type RegenerationServiceInterface interface {
	RegenerateActivity(ctx context.Context, tripID, activityID string) (*trip_models.Trip, error)
	DeleteActivity(ctx context.Context, tripID, activityID string) (*trip_models.Trip, error)
}

type RegenerationService struct {
	cache   repositories.TripCacheRepository
	archive repositories.TripRepository
	leases  mem.TripLeaseStore
	routing RoutingServiceInterface
	pricer  PriceClassifierInterface
	logger  *zap.Logger
}

func NewRegenerationService(
	cache repositories.TripCacheRepository,
	archive repositories.TripRepository,
	leases mem.TripLeaseStore,
	routing RoutingServiceInterface,
	pricer PriceClassifierInterface,
	logger *zap.Logger,
) RegenerationServiceInterface {
	return &RegenerationService{
		cache:   cache,
		archive: archive,
		leases:  leases,
		routing: routing,
		pricer:  pricer,
		logger:  logger,
	}
}

// RegenerateActivity swaps the venue of one activity for the best unused
// venue of the same category, or of any category when that pool is dry. The
// activity keeps its id and time window.
func (s *RegenerationService) RegenerateActivity(ctx context.Context, tripID, activityID string) (*trip_models.Trip, error) {
	ctx, release, err := s.leases.Acquire(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer release()

	trip, err := s.cache.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	pools, err := s.cache.GetPools(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Itinerary == nil {
		return nil, utils.ErrActivityNotFound
	}

	itinerary := trip.Itinerary.Clone()
	dayIdx, slot, pos, ok := itinerary.FindActivity(activityID)
	if !ok {
		return nil, utils.ErrActivityNotFound
	}
	day := itinerary.Days[dayIdx]
	current := slotActivities(&day, slot)[pos]

	category := catalog.PrimaryCategory(current.Venue.Types)
	if category == trip_models.CategoryUnclassified && current.Category != "" {
		category = current.Category
	}

	replacement, from, ok := nextUnused(pools, category, itinerary.UsedVenueIDs())
	if !ok {
		return nil, utils.ErrNoAlternativeVenue
	}

	pools = pools.Clone()
	pools[from] = removeVenue(pools[from], replacement.ID)
	pools[category] = append(removeVenue(pools[category], current.Venue.ID), current.Venue)

	swapped := current
	swapped.Venue = replacement
	swapped.Category = from
	slotActivities(&day, slot)[pos] = swapped

	if day.Routes, err = s.routing.Legs(ctx, day.Venues(), WalkingLegs); err != nil {
		return nil, err
	}
	itinerary.Days[dayIdx] = day

	itinerary.PriceRange = ItineraryPrice(s.pricer, itinerary.Days)

	updated := *trip
	updated.Itinerary = &itinerary
	if err := s.persist(ctx, &updated, pools); err != nil {
		return nil, err
	}
	s.logger.Info("activity regenerated",
		zap.String("trip_id", tripID),
		zap.String("activity_id", activityID),
		zap.String("old_venue", current.Venue.ID),
		zap.String("new_venue", replacement.ID))
	return &updated, nil
}

// DeleteActivity drops one activity and reroutes its day. The venue goes
// back to the end of its pool.
func (s *RegenerationService) DeleteActivity(ctx context.Context, tripID, activityID string) (*trip_models.Trip, error) {
	ctx, release, err := s.leases.Acquire(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer release()

	trip, err := s.cache.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Itinerary == nil {
		return nil, utils.ErrActivityNotFound
	}

	itinerary := trip.Itinerary.Clone()
	dayIdx, slot, pos, ok := itinerary.FindActivity(activityID)
	if !ok {
		return nil, utils.ErrActivityNotFound
	}
	day := itinerary.Days[dayIdx]
	acts := slotActivities(&day, slot)
	removed := acts[pos]
	kept := append(append([]trip_models.Activity(nil), acts[:pos]...), acts[pos+1:]...)
	if slot == trip_models.TimeSlotMorning {
		day.MorningActivities = kept
	} else {
		day.AfternoonActivities = kept
	}

	if day.Routes, err = s.routing.Legs(ctx, day.Venues(), WalkingLegs); err != nil {
		return nil, err
	}
	itinerary.Days[dayIdx] = day

	pools, err := s.cache.GetPools(ctx, tripID)
	if err != nil {
		s.logger.Debug("no pools to return deleted venue to", zap.String("trip_id", tripID), zap.Error(err))
		pools = nil
	} else {
		pools = pools.Clone()
		pools[removed.Category] = append(removeVenue(pools[removed.Category], removed.Venue.ID), removed.Venue)
	}

	itinerary.PriceRange = ItineraryPrice(s.pricer, itinerary.Days)

	updated := *trip
	updated.Itinerary = &itinerary
	if err := s.persist(ctx, &updated, pools); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RegenerationService) persist(ctx context.Context, trip *trip_models.Trip, pools trip_models.PreRankedPools) error {
	if err := s.cache.SaveTrip(ctx, trip); err != nil {
		return fmt.Errorf("cache trip %s: %w", trip.ID, err)
	}
	if pools != nil {
		if err := s.cache.SavePools(ctx, trip.ID, pools); err != nil {
			return fmt.Errorf("cache pools %s: %w", trip.ID, err)
		}
	}
	if err := s.archive.Save(ctx, trip); err != nil {
		s.logger.Warn("trip archive failed", zap.String("trip_id", trip.ID), zap.Error(err))
	}
	return nil
}

func slotActivities(day *trip_models.DayItinerary, slot trip_models.TimeSlot) []trip_models.Activity {
	if slot == trip_models.TimeSlotMorning {
		return day.MorningActivities
	}
	return day.AfternoonActivities
}

// nextUnused returns the first unused venue of category's pool, falling back
// to the other pools in canonical category order.
func nextUnused(pools trip_models.PreRankedPools, category trip_models.Category, used map[string]struct{}) (trip_models.Venue, trip_models.Category, bool) {
	order := []trip_models.Category{category}
	for _, c := range trip_models.AllCategories {
		switch c {
		case category, trip_models.CategoryTransportation, trip_models.CategoryAccommodation:
			continue
		}
		order = append(order, c)
	}
	var extra []trip_models.Category
	for c := range pools {
		if c != category && !c.Valid() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	order = append(order, extra...)

	for _, c := range order {
		for _, v := range pools[c] {
			if _, taken := used[v.ID]; !taken {
				return v, c, true
			}
		}
	}
	return trip_models.Venue{}, "", false
}

func removeVenue(vs []trip_models.Venue, id string) []trip_models.Venue {
	out := make([]trip_models.Venue, 0, len(vs))
	for _, v := range vs {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}
