package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/utils"
)

const radiusEstimateTimeout = 30 * time.Second

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, plan trip_models.TripPlan) (*trip_models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (*trip_models.Trip, error)
}

// TripServiceDeps groups the collaborators of TripService.
type TripServiceDeps struct {
	Scorer    CategoryScorerInterface
	Ranker    PlaceRankerInterface
	Pricer    PriceClassifierInterface
	Assembler ItineraryAssemblerInterface
	Segmenter CorridorSegmenterInterface
	Optimizer RouteOptimizerInterface
	Searcher  VenueSearcher
	Narrative NarrativeScheduler
	Refiner   NarrativeRefinerInterface
	Routing   RoutingServiceInterface
	Cache     repositories.TripCacheRepository
	Archive   repositories.TripRepository
	Logger    *zap.Logger
}

type TripService struct {
	TripServiceDeps
	radiusGroup singleflight.Group
}

func NewTripService(deps TripServiceDeps) TripServiceInterface {
	return &TripService{TripServiceDeps: deps}
}

// CreateTrip builds, caches and archives a trip for plan.
func (s *TripService) CreateTrip(ctx context.Context, plan trip_models.TripPlan) (*trip_models.Trip, error) {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if !plan.Template.Valid() {
		return nil, fmt.Errorf("template %q: %w", plan.Template, utils.ErrInvalidInput)
	}
	if plan.EndDate.Before(plan.StartDate) {
		return nil, fmt.Errorf("end date before start date: %w", utils.ErrInvalidInput)
	}
	if days := trip_models.TripDays(plan.StartDate, plan.EndDate); days > trip_models.MaxTripDays {
		return nil, fmt.Errorf("trip spans %d days, at most %d allowed: %w", days, trip_models.MaxTripDays, utils.ErrInvalidInput)
	}

	scores, err := s.Scorer.Score(plan.Questionnaire)
	if err != nil {
		return nil, err
	}

	var trip *trip_models.Trip
	switch shape := plan.Shape.(type) {
	case trip_models.PlaceShape:
		radius, rerr := s.placeRadius(ctx, shape.PlaceName)
		if rerr != nil {
			return nil, rerr
		}
		trip, err = s.createAreaTrip(ctx, plan, scores, shape.Center, radius)
	case trip_models.ZoneShape:
		trip, err = s.createAreaTrip(ctx, plan, scores, shape.Center, shape.RadiusMeters)
	case trip_models.RoadShape:
		trip, err = s.createRoadTrip(ctx, plan, scores, shape)
	default:
		return nil, fmt.Errorf("trip shape %T: %w", plan.Shape, utils.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Cache.SaveTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("cache trip %s: %w", trip.ID, err)
	}
	if err := s.Archive.Save(ctx, trip); err != nil {
		s.Logger.Warn("trip archive failed", zap.String("trip_id", trip.ID), zap.Error(err))
	}
	return trip, nil
}

// GetTrip reads the cached trip, falling back to the archive.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*trip_models.Trip, error) {
	trip, err := s.Cache.GetTrip(ctx, tripID)
	if err == nil {
		return trip, nil
	}
	if !errors.Is(err, utils.ErrTripNotFound) {
		return nil, err
	}

	trip, err = s.Archive.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SaveTrip(ctx, trip); err != nil {
		s.Logger.Warn("re-caching archived trip failed", zap.String("trip_id", tripID), zap.Error(err))
	}
	return trip, nil
}

func (s *TripService) createAreaTrip(
	ctx context.Context,
	plan trip_models.TripPlan,
	scores trip_models.CategoryScore,
	center trip_models.LatLng,
	radius float64,
) (*trip_models.Trip, error) {
	logger := s.Logger.With(zap.String("trip_id", plan.ID))

	venues, err := s.searchArea(ctx, scores, center, radius)
	if err != nil {
		return nil, err
	}
	venues = appendUnique(venues, s.searchKeywords(ctx, plan.Keywords, center, radius, logger))

	mustVisit := s.resolveMustVisit(ctx, plan.MustVisit, center, radius, logger)
	mustIDs := make(map[string]bool, len(mustVisit))
	for _, v := range mustVisit {
		mustIDs[v.ID] = true
	}
	candidates := venues[:0:0]
	for _, v := range venues {
		if !mustIDs[v.ID] {
			candidates = append(candidates, v)
		}
	}

	if plan.Budget > 0 {
		fitted, consumed := FitPlacesOnBudget(s.Pricer.Classify(candidates), plan.Budget)
		logger.Debug("budget fitted",
			zap.Int("candidates", len(candidates)),
			zap.Int("kept", len(fitted)),
			zap.Float64("end_price", consumed.EndPrice))
		candidates = candidates[:0:0]
		for _, pv := range fitted {
			candidates = append(candidates, pv.Venue)
		}
	}

	pools, err := s.Ranker.RankPools(candidates)
	if err != nil {
		return nil, err
	}

	itinerary, leftover, err := s.Assembler.Assemble(AssembleRequest{
		TripID:    plan.ID,
		Name:      plan.Name,
		StartDate: plan.StartDate,
		EndDate:   plan.EndDate,
		IsGroup:   plan.IsGroup,
		Template:  plan.Template,
		Scores:    scores,
		Pools:     pools,
		MustVisit: mustVisit,
	})
	if err != nil {
		return nil, err
	}

	for i, day := range itinerary.Days {
		if s.Refiner != nil {
			day = s.Refiner.RefineDay(ctx, day)
		}
		if day.Routes, err = s.Routing.Legs(ctx, day.Venues(), WalkingLegs); err != nil {
			return nil, err
		}
		itinerary.Days[i] = day
	}
	itinerary.PriceRange = ItineraryPrice(s.Pricer, itinerary.Days)

	if err := s.Cache.SavePools(ctx, plan.ID, leftover); err != nil {
		return nil, fmt.Errorf("cache pools %s: %w", plan.ID, err)
	}

	logger.Info("trip created",
		zap.Int("days", len(itinerary.Days)),
		zap.Int("candidates", len(candidates)),
		zap.Int("must_visit", len(mustVisit)))
	return &trip_models.Trip{
		ID:             plan.ID,
		TripType:       plan.Shape.TripType(),
		Template:       plan.Template,
		CategoryScores: scores,
		IsGroup:        plan.IsGroup,
		Itinerary:      &itinerary,
	}, nil
}

func (s *TripService) createRoadTrip(
	ctx context.Context,
	plan trip_models.TripPlan,
	scores trip_models.CategoryScore,
	shape trip_models.RoadShape,
) (*trip_models.Trip, error) {
	logger := s.Logger.With(zap.String("trip_id", plan.ID))

	corridor, err := s.Segmenter.Segment(shape.Origin.Location, shape.Destination.Location, shape.Polyline)
	if err != nil {
		return nil, err
	}
	centers := corridor.Centers(shape.Origin.Location, shape.Destination.Location)

	types := flattenBatches(BatchIncludedTypes(scores))
	if len(types) > MaxTypesPerSearch {
		types = types[:MaxTypesPerSearch]
	}

	zoneCandidates := make([][]trip_models.Venue, len(corridor.Zones))
	for i, z := range corridor.Zones {
		found, err := s.Searcher.SearchNearby(ctx, NearbySearch{
			Center:        z.Center,
			RadiusMeters:  z.RadiusMeters,
			IncludedTypes: types,
			ExcludedTypes: catalog.ExcludedSearchTags(),
		})
		if err != nil {
			logger.Warn("zone search failed, skipping zone", zap.Int("zone", i+1), zap.Error(err))
			continue
		}
		zoneCandidates[i] = found
	}

	stops := []trip_models.Stop{{Index: 0, Venue: shape.Origin}}
	stops = append(stops, SelectCorridorStops(centers, zoneCandidates)...)
	stops = append(stops, trip_models.Stop{Index: len(centers) - 1, Venue: shape.Destination})

	if len(stops) > 2 && len(stops) <= MaxExactRouteNodes {
		points := make([]trip_models.LatLng, len(stops))
		for i, st := range stops {
			points[i] = st.Venue.Location
		}
		route, err := s.Optimizer.AnchoredPath(distanceMatrix(points), 0, len(stops)-1)
		if err != nil {
			return nil, err
		}
		ordered := make([]trip_models.Stop, 0, len(stops))
		for _, i := range route.Order {
			ordered = append(ordered, stops[i])
		}
		stops = ordered
	}

	venues := make([]trip_models.Venue, len(stops))
	for i := range stops {
		stops[i].ID = uuid.NewString()
		venues[i] = stops[i].Venue
	}
	routes, err := s.Routing.Legs(ctx, venues, DrivingLegs)
	if err != nil {
		return nil, err
	}

	logger.Info("road trip created",
		zap.Float64("distance_km", corridor.DistanceKm),
		zap.Int("zones", len(corridor.Zones)),
		zap.Int("stops", len(stops)))
	return &trip_models.Trip{
		ID:             plan.ID,
		TripType:       trip_models.TripTypeRoad,
		Template:       plan.Template,
		CategoryScores: scores,
		IsGroup:        plan.IsGroup,
		Road: &trip_models.RoadItinerary{
			Name:    plan.Name,
			Stops:   stops,
			Routes:  routes,
			IsGroup: plan.IsGroup,
		},
	}, nil
}

// placeRadius returns the search radius in meters for a named place,
// computing it at most once per place across concurrent requests.
func (s *TripService) placeRadius(ctx context.Context, placeName string) (float64, error) {
	if meters, ok, err := s.Cache.GetRadius(ctx, placeName); err != nil {
		s.Logger.Warn("radius cache read failed", zap.String("place", placeName), zap.Error(err))
	} else if ok {
		return meters, nil
	}

	v, err, _ := s.radiusGroup.Do(placeName, func() (interface{}, error) {
		// runs for every waiter, independent of the first caller
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), radiusEstimateTimeout)
		defer cancel()
		km, err := s.Narrative.EstimateRadiusKm(ctx, placeName)
		if err != nil {
			return 0.0, err
		}
		meters := km * 1000
		if err := s.Cache.SaveRadius(ctx, placeName, meters); err != nil {
			s.Logger.Warn("radius cache write failed", zap.String("place", placeName), zap.Error(err))
		}
		return meters, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (s *TripService) searchArea(ctx context.Context, scores trip_models.CategoryScore, center trip_models.LatLng, radius float64) ([]trip_models.Venue, error) {
	var out []trip_models.Venue
	for _, batch := range BatchIncludedTypes(scores) {
		found, err := s.Searcher.SearchNearby(ctx, NearbySearch{
			Center:        center,
			RadiusMeters:  radius,
			IncludedTypes: batch,
			ExcludedTypes: catalog.ExcludedSearchTags(),
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search: %w", err)
		}
		out = appendUnique(out, found)
	}
	return out, nil
}

func (s *TripService) searchKeywords(ctx context.Context, keywords []string, center trip_models.LatLng, radius float64, logger *zap.Logger) []trip_models.Venue {
	var out []trip_models.Venue
	for _, kw := range keywords {
		found, err := s.Searcher.SearchByKeyword(ctx, KeywordSearch{Keyword: kw, Center: center, RadiusMeters: radius})
		if err != nil {
			logger.Warn("keyword search failed", zap.String("keyword", kw), zap.Error(err))
			continue
		}
		out = appendUnique(out, found)
	}
	return out
}

// resolveMustVisit keeps the must-visit places inside the trip circle and
// loads their venue records. Lookup failures are skipped.
func (s *TripService) resolveMustVisit(ctx context.Context, refs []trip_models.MustVisit, center trip_models.LatLng, radius float64, logger *zap.Logger) []trip_models.Venue {
	var out []trip_models.Venue
	for _, mv := range refs {
		if haversineMeters(mv.Location, center) > radius {
			logger.Info("must-visit place outside trip area", zap.String("place_id", mv.PlaceID))
			continue
		}
		v, err := s.Searcher.GetVenue(ctx, mv.PlaceID)
		if err != nil {
			logger.Warn("must-visit lookup failed", zap.String("place_id", mv.PlaceID), zap.Error(err))
			continue
		}
		out = appendUnique(out, []trip_models.Venue{v})
	}
	return out
}

// BatchIncludedTypes turns scored categories into search batches of at most
// MaxTypesPerSearch tags. The best category gets a batch of its own so its
// results are not crowded out; the rest share the following batches. There
// are at least two batches whenever there are at least two tags.
func BatchIncludedTypes(scores trip_models.CategoryScore) [][]string {
	excluded := make(map[string]bool)
	for _, t := range catalog.ExcludedSearchTags() {
		excluded[t] = true
	}

	var perCategory [][]string
	for _, c := range scores.Sorted() {
		if scores[c] <= 0 {
			continue
		}
		var tags []string
		for _, t := range catalog.TagsFor(c) {
			if !excluded[t] {
				tags = append(tags, t)
			}
		}
		if len(tags) > 0 {
			perCategory = append(perCategory, tags)
		}
	}
	if len(perCategory) == 0 {
		return nil
	}

	var batches [][]string
	pushChunks := func(tags []string) {
		for len(tags) > 0 {
			n := len(tags)
			if n > MaxTypesPerSearch {
				n = MaxTypesPerSearch
			}
			batches = append(batches, tags[:n])
			tags = tags[n:]
		}
	}
	pushChunks(perCategory[0])

	var rest []string
	for _, tags := range perCategory[1:] {
		if len(rest)+len(tags) > MaxTypesPerSearch {
			pushChunks(rest)
			rest = nil
		}
		rest = append(rest, tags...)
	}
	pushChunks(rest)

	if len(batches) == 1 && len(batches[0]) > 1 {
		half := len(batches[0]) / 2
		batches = [][]string{batches[0][:half], batches[0][half:]}
	}
	return batches
}

func flattenBatches(batches [][]string) []string {
	var out []string
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

// appendUnique appends the venues of more whose id is not in dst yet.
func appendUnique(dst, more []trip_models.Venue) []trip_models.Venue {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v.ID] = true
	}
	for _, v := range more {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		dst = append(dst, v)
	}
	return dst
}
