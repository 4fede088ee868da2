package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

func venue(id, name string, lat, lng float64, types ...string) trip_models.Venue {
	return trip_models.Venue{
		ID:       id,
		Name:     name,
		Location: trip_models.LatLng{Latitude: lat, Longitude: lng},
		Types:    types,
	}
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

type fakeSearcher struct {
	mu       sync.Mutex
	nearby   func(req NearbySearch) ([]trip_models.Venue, error)
	keyword  map[string][]trip_models.Venue
	venues   map[string]trip_models.Venue
	requests []NearbySearch
}

func (f *fakeSearcher) SearchNearby(_ context.Context, req NearbySearch) ([]trip_models.Venue, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.nearby == nil {
		return nil, nil
	}
	return f.nearby(req)
}

func (f *fakeSearcher) SearchByKeyword(_ context.Context, req KeywordSearch) ([]trip_models.Venue, error) {
	vs, ok := f.keyword[req.Keyword]
	if !ok {
		return nil, fmt.Errorf("keyword %q: %w", req.Keyword, utils.ErrVenueSearchFailed)
	}
	return vs, nil
}

func (f *fakeSearcher) GetVenue(_ context.Context, id string) (trip_models.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return trip_models.Venue{}, fmt.Errorf("venue %s: %w", id, utils.ErrVenueSearchFailed)
	}
	return v, nil
}

type fakeNarrative struct {
	mu          sync.Mutex
	radiusKm    float64
	radiusCalls int
	schedule    []ProposedSlot
	scheduleErr error

	// when set, radius estimates signal radiusStarted and then block until
	// radiusGate closes or their context ends
	radiusStarted chan struct{}
	radiusGate    chan struct{}
}

func (f *fakeNarrative) ProposeSchedule(context.Context, time.Time, []string) ([]ProposedSlot, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.schedule, nil
}

func (f *fakeNarrative) EstimateRadiusKm(ctx context.Context, _ string) (float64, error) {
	f.mu.Lock()
	f.radiusCalls++
	km, started, gate := f.radiusKm, f.radiusStarted, f.radiusGate
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return km, nil
}

// fakeRouting returns one straight leg per pair, labelled with the policy's mode.
type fakeRouting struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeRouting) Legs(_ context.Context, stops []trip_models.Venue, policy LegPolicy) ([]trip_models.Route, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []trip_models.Route
	for i := 1; i < len(stops); i++ {
		m := haversineMeters(stops[i-1].Location, stops[i].Location)
		out = append(out, trip_models.Route{
			DistanceMeters:  int(m),
			DurationSeconds: int(m),
			TravelMode:      policy(m),
		})
	}
	return out, nil
}

type fakeRouteProvider struct {
	mu    sync.Mutex
	calls []RouteLegRequest
}

func (f *fakeRouteProvider) ComputeRoutes(_ context.Context, req RouteLegRequest) ([]trip_models.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return []trip_models.Route{{EncodedPolyline: "abc", DistanceMeters: 100, DurationSeconds: 60}}, nil
}
