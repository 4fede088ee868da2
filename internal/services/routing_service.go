package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// TransitThresholdMeters is the leg length above which walking legs switch to transit.
const TransitThresholdMeters = 1600

// MapsRouteClient calls the maps wrapper service for one leg at a time.
type MapsRouteClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewMapsRouteClient(baseURL string) *MapsRouteClient {
	return &MapsRouteClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type waypoint struct {
	PlaceID  string              `json:"place_id,omitempty"`
	Location *trip_models.LatLng `json:"location,omitempty"`
}

func waypointOf(v trip_models.Venue) waypoint {
	if v.ID != "" {
		return waypoint{PlaceID: v.ID}
	}
	loc := v.Location
	return waypoint{Location: &loc}
}

func (c *MapsRouteClient) ComputeRoutes(ctx context.Context, leg RouteLegRequest) ([]trip_models.Route, error) {
	body, err := json.Marshal(map[string]any{
		"origin":      waypointOf(leg.Origin),
		"destination": waypointOf(leg.Destination),
		"travelMode":  leg.TravelMode,
	})
	if err != nil {
		return nil, fmt.Errorf("encode route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/maps", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("maps http error: %v: %w", err, utils.ErrRoutingFailed)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("maps bad status %s: %w", resp.Status, utils.ErrRoutingFailed)
	}

	var payload struct {
		Routes []trip_models.Route `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("maps decode: %v: %w", err, utils.ErrRoutingFailed)
	}
	return payload.Routes, nil
}

// LegPolicy picks the travel mode of a leg from its straight-line length.
type LegPolicy func(meters float64) string

// WalkingLegs walks short legs and takes transit above TransitThresholdMeters.
func WalkingLegs(meters float64) string {
	if meters > TransitThresholdMeters {
		return TravelModeTransit
	}
	return TravelModeWalk
}

// DrivingLegs drives every leg.
func DrivingLegs(float64) string { return TravelModeDrive }

type RoutingServiceInterface interface {
	Legs(ctx context.Context, stops []trip_models.Venue, policy LegPolicy) ([]trip_models.Route, error)
}

type legKey struct {
	Mode string
	A    string
	B    string
}

func (k legKey) String() string { return k.Mode + "|" + k.A + "|" + k.B }

// RoutingService requests one leg per consecutive pair of stops and memoizes
// legs by (mode, from, to).
type RoutingService struct {
	provider RouteProvider
	cache    *gocache.Cache
	ttl      time.Duration
}

func NewRoutingService(provider RouteProvider, ttl time.Duration) RoutingServiceInterface {
	return &RoutingService{
		provider: provider,
		cache:    gocache.New(ttl, 10*time.Minute),
		ttl:      ttl,
	}
}

func (s *RoutingService) Legs(ctx context.Context, stops []trip_models.Venue, policy LegPolicy) ([]trip_models.Route, error) {
	if len(stops) < 2 {
		return nil, nil
	}

	legs := make([]trip_models.Route, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		mode := policy(haversineMeters(from.Location, to.Location))
		key := legKey{Mode: mode, A: pointID(from), B: pointID(to)}.String()

		if cached, ok := s.cache.Get(key); ok {
			legs = append(legs, cached.(trip_models.Route))
			continue
		}

		routes, err := s.provider.ComputeRoutes(ctx, RouteLegRequest{Origin: from, Destination: to, TravelMode: mode})
		if err != nil {
			return nil, fmt.Errorf("leg %d %s -> %s: %w", i, from.Name, to.Name, err)
		}
		if len(routes) == 0 {
			return nil, fmt.Errorf("leg %d %s -> %s: no route: %w", i, from.Name, to.Name, utils.ErrRoutingFailed)
		}
		leg := routes[0]
		if leg.TravelMode == "" {
			leg.TravelMode = mode
		}
		s.cache.Set(key, leg, s.ttl)
		legs = append(legs, leg)
	}
	return legs, nil
}

func pointID(v trip_models.Venue) string {
	if v.ID != "" {
		return v.ID
	}
	return fmt.Sprintf("%.6f,%.6f", v.Location.Latitude, v.Location.Longitude)
}
