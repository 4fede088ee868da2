package trip_models

import "time"

type TripType string

const (
	TripTypePlace TripType = "place"
	TripTypeZone  TripType = "zone"
	TripTypeRoad  TripType = "road"
)

// TripShape is the trip-type specific part of a trip request.
// Implementations: PlaceShape, ZoneShape, RoadShape.
type TripShape interface {
	TripType() TripType
}

// PlaceShape is a trip around a named place; the search radius is estimated.
type PlaceShape struct {
	PlaceName string
	Center    LatLng
}

// ZoneShape is a trip inside an explicit circle.
type ZoneShape struct {
	Center       LatLng
	RadiusMeters float64
}

// RoadShape is a corridor trip between two venues along an encoded route curve.
type RoadShape struct {
	Origin      Venue
	Destination Venue
	Polyline    string
}

func (PlaceShape) TripType() TripType { return TripTypePlace }
func (ZoneShape) TripType() TripType  { return TripTypeZone }
func (RoadShape) TripType() TripType  { return TripTypeRoad }

// QuestionType tags a questionnaire answer.
type QuestionType string

const (
	QuestionScale  QuestionType = "scale"
	QuestionSelect QuestionType = "select"
)

// Answer is one questionnaire answer. Scale answers carry Scale, select answers Selected.
type Answer struct {
	QuestionID int
	Type       QuestionType
	Scale      float64
	Selected   []int
}

// MustVisit references a venue the traveller insists on.
type MustVisit struct {
	PlaceID  string
	Location LatLng
}

// MaxTripDays is the longest itinerary a single request may ask for.
const MaxTripDays = 30

// TripDays counts the calendar days from start to end inclusive.
func TripDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// TripPlan is a validated trip request.
type TripPlan struct {
	ID            string
	Name          string
	StartDate     time.Time
	EndDate       time.Time
	Budget        float64
	IsGroup       bool
	Template      TemplateType
	Questionnaire []Answer
	Keywords      []string
	MustVisit     []MustVisit
	Shape         TripShape
}

// Trip is the cached, returned result of a trip request. Exactly one of
// Itinerary and Road is set.
type Trip struct {
	ID             string         `json:"id"`
	TripType       TripType       `json:"trip_type"`
	Template       TemplateType   `json:"template_type"`
	CategoryScores CategoryScore  `json:"generic_type_scores"`
	IsGroup        bool           `json:"is_group"`
	Itinerary      *TripItinerary `json:"itinerary,omitempty"`
	Road           *RoadItinerary `json:"road,omitempty"`
}

// PreRankedPools holds per-category venue lists in ranking order.
type PreRankedPools map[Category][]Venue

// Clone copies every pool slice.
func (p PreRankedPools) Clone() PreRankedPools {
	out := make(PreRankedPools, len(p))
	for c, vs := range p {
		out[c] = append([]Venue(nil), vs...)
	}
	return out
}
