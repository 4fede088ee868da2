package trip_models

// Stop is a road-trip waypoint. Index is the zone ordinal it was picked from.
type Stop struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Venue Venue  `json:"place"`
}

// Zone is a circular search area along a corridor.
type Zone struct {
	Center       LatLng
	RadiusMeters float64
}

type RoadItinerary struct {
	Name    string  `json:"name"`
	Stops   []Stop  `json:"stops"`
	Routes  []Route `json:"routes"`
	IsGroup bool    `json:"is_group"`
}
