package response_models

import "tripplanner/internal/models/trip_models"

type TripResponse struct {
	TripID            string                     `json:"trip_id"`
	TripType          trip_models.TripType       `json:"trip_type"`
	TemplateType      trip_models.TemplateType   `json:"template_type"`
	GenericTypeScores trip_models.CategoryScore  `json:"generic_type_scores"`
	IsGroup           bool                       `json:"is_group"`
	Itinerary         *trip_models.TripItinerary `json:"itinerary,omitempty"`
	Road              *trip_models.RoadItinerary `json:"road_itinerary,omitempty"`
}

func NewTripResponse(trip *trip_models.Trip) TripResponse {
	return TripResponse{
		TripID:            trip.ID,
		TripType:          trip.TripType,
		TemplateType:      trip.Template,
		GenericTypeScores: trip.CategoryScores,
		IsGroup:           trip.IsGroup,
		Itinerary:         trip.Itinerary,
		Road:              trip.Road,
	}
}
