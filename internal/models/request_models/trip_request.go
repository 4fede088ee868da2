package request_models

import (
	"fmt"
	"time"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

func (l LocationRequest) LatLng() trip_models.LatLng {
	return trip_models.LatLng{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

type AnswerRequest struct {
	QuestionID int     `json:"question_id" binding:"required"`
	Type       string  `json:"type" binding:"required,oneof=scale select"`
	Value      float64 `json:"value" binding:"min=0,max=1"`
	Selected   []int   `json:"selected"`
}

type MustVisitRequest struct {
	PlaceID  string          `json:"place_id" binding:"required"`
	Location LocationRequest `json:"location"`
}

// PlaceRefRequest is a road trip endpoint.
type PlaceRefRequest struct {
	PlaceID  string          `json:"place_id" binding:"required"`
	Name     string          `json:"name"`
	Location LocationRequest `json:"location"`
	Types    []string        `json:"types"`
}

// CreateTripRequest is the body of POST /trips. The shape fields that apply
// depend on trip_type:
//   - place: place_name, location
//   - zone: location, radius (meters)
//   - road: origin, destination, polyline
type CreateTripRequest struct {
	TripID          string             `json:"trip_id"`
	Name            string             `json:"name" binding:"required"`
	TripType        string             `json:"trip_type" binding:"required,oneof=place zone road"`
	StartDate       string             `json:"start_date" binding:"required"`
	EndDate         string             `json:"end_date" binding:"required"`
	Budget          float64            `json:"budget" binding:"min=0"`
	IsGroup         bool               `json:"is_group"`
	TemplateType    string             `json:"template_type" binding:"omitempty,oneof=light moderate packed"`
	Questionnaire   []AnswerRequest    `json:"questionnaire" binding:"dive"`
	Keywords        []string           `json:"keywords"`
	MustVisitPlaces []MustVisitRequest `json:"must_visit_places" binding:"dive"`

	PlaceName    string           `json:"place_name"`
	Location     *LocationRequest `json:"location"`
	RadiusMeters float64          `json:"radius" binding:"min=0"`
	Origin       *PlaceRefRequest `json:"origin"`
	Destination  *PlaceRefRequest `json:"destination"`
	Polyline     string           `json:"polyline"`
}

type RegenerateActivityRequest struct {
	ActivityID string `json:"activity_id" binding:"required"`
}

// ToTripPlan validates the shape fields and converts the request.
func (r CreateTripRequest) ToTripPlan() (trip_models.TripPlan, error) {
	start, err := parseTripDate(r.StartDate)
	if err != nil {
		return trip_models.TripPlan{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseTripDate(r.EndDate)
	if err != nil {
		return trip_models.TripPlan{}, fmt.Errorf("end_date: %w", err)
	}
	if end.Before(start) {
		return trip_models.TripPlan{}, fmt.Errorf("end_date before start_date: %w", utils.ErrInvalidInput)
	}
	if days := trip_models.TripDays(start, end); days > trip_models.MaxTripDays {
		return trip_models.TripPlan{}, fmt.Errorf("trip spans %d days, at most %d allowed: %w", days, trip_models.MaxTripDays, utils.ErrInvalidInput)
	}

	template := trip_models.TemplateType(r.TemplateType)
	if template == "" {
		template = trip_models.TemplateModerate
	}

	plan := trip_models.TripPlan{
		ID:        r.TripID,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
		Budget:    r.Budget,
		IsGroup:   r.IsGroup,
		Template:  template,
		Keywords:  r.Keywords,
	}
	for _, a := range r.Questionnaire {
		plan.Questionnaire = append(plan.Questionnaire, trip_models.Answer{
			QuestionID: a.QuestionID,
			Type:       trip_models.QuestionType(a.Type),
			Scale:      a.Value,
			Selected:   a.Selected,
		})
	}
	for _, mv := range r.MustVisitPlaces {
		plan.MustVisit = append(plan.MustVisit, trip_models.MustVisit{
			PlaceID:  mv.PlaceID,
			Location: mv.Location.LatLng(),
		})
	}

	switch trip_models.TripType(r.TripType) {
	case trip_models.TripTypePlace:
		if r.PlaceName == "" || r.Location == nil {
			return trip_models.TripPlan{}, fmt.Errorf("place trip needs place_name and location: %w", utils.ErrInvalidInput)
		}
		plan.Shape = trip_models.PlaceShape{PlaceName: r.PlaceName, Center: r.Location.LatLng()}
	case trip_models.TripTypeZone:
		if r.Location == nil || r.RadiusMeters <= 0 {
			return trip_models.TripPlan{}, fmt.Errorf("zone trip needs location and a positive radius: %w", utils.ErrInvalidInput)
		}
		plan.Shape = trip_models.ZoneShape{Center: r.Location.LatLng(), RadiusMeters: r.RadiusMeters}
	case trip_models.TripTypeRoad:
		if r.Origin == nil || r.Destination == nil || r.Polyline == "" {
			return trip_models.TripPlan{}, fmt.Errorf("road trip needs origin, destination and polyline: %w", utils.ErrInvalidInput)
		}
		plan.Shape = trip_models.RoadShape{
			Origin:      r.Origin.venue(),
			Destination: r.Destination.venue(),
			Polyline:    r.Polyline,
		}
	default:
		return trip_models.TripPlan{}, fmt.Errorf("trip_type %q: %w", r.TripType, utils.ErrInvalidInput)
	}
	return plan, nil
}

func (p PlaceRefRequest) venue() trip_models.Venue {
	return trip_models.Venue{
		ID:       p.PlaceID,
		Name:     p.Name,
		Location: p.Location.LatLng(),
		Types:    p.Types,
	}
}

// parseTripDate accepts "2006-01-02" or RFC3339.
func parseTripDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, utils.ErrInvalidInput)
	}
	return t, nil
}
