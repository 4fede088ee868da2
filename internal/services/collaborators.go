package services

import (
	"context"
	"time"

	"tripplanner/internal/models/trip_models"
)

// MaxTypesPerSearch is the most included tags one nearby search accepts.
const MaxTypesPerSearch = 50

type NearbySearch struct {
	Center        trip_models.LatLng
	RadiusMeters  float64
	IncludedTypes []string
	ExcludedTypes []string
}

type KeywordSearch struct {
	Keyword      string
	Center       trip_models.LatLng
	RadiusMeters float64
}

// VenueSearcher finds candidate venues.
type VenueSearcher interface {
	SearchNearby(ctx context.Context, req NearbySearch) ([]trip_models.Venue, error)
	SearchByKeyword(ctx context.Context, req KeywordSearch) ([]trip_models.Venue, error)
	GetVenue(ctx context.Context, id string) (trip_models.Venue, error)
}

const (
	TravelModeWalk    = "WALK"
	TravelModeTransit = "TRANSIT"
	TravelModeDrive   = "DRIVE"
)

type RouteLegRequest struct {
	Origin      trip_models.Venue
	Destination trip_models.Venue
	TravelMode  string
}

// RouteProvider computes candidate routes for one leg.
type RouteProvider interface {
	ComputeRoutes(ctx context.Context, req RouteLegRequest) ([]trip_models.Route, error)
}

// ProposedSlot is one venue visit suggested by the narrative scheduler.
// Start and End are "HH:MM" on the requested date.
type ProposedSlot struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// NarrativeScheduler is the language model collaborator.
type NarrativeScheduler interface {
	ProposeSchedule(ctx context.Context, date time.Time, venueNames []string) ([]ProposedSlot, error)
	EstimateRadiusKm(ctx context.Context, placeName string) (float64, error)
}
