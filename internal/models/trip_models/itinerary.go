package trip_models

import "time"

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
)

// TemplateType is the trip intensity tier.
type TemplateType string

const (
	TemplateLight    TemplateType = "light"
	TemplateModerate TemplateType = "moderate"
	TemplatePacked   TemplateType = "packed"
)

// SlotCounts is the number of activities a template schedules per time slot.
type SlotCounts struct {
	Morning   int
	Afternoon int
}

func (s SlotCounts) Total() int { return s.Morning + s.Afternoon }

// Slots returns the per-slot counts of t. Unknown templates fall back to moderate.
func (t TemplateType) Slots() SlotCounts {
	switch t {
	case TemplateLight:
		return SlotCounts{Morning: 2, Afternoon: 2}
	case TemplatePacked:
		return SlotCounts{Morning: 5, Afternoon: 4}
	default:
		return SlotCounts{Morning: 3, Afternoon: 3}
	}
}

func (t TemplateType) Valid() bool {
	return t == TemplateLight || t == TemplateModerate || t == TemplatePacked
}

type Activity struct {
	ID        string    `json:"id"`
	Venue     Venue     `json:"place"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Category  Category  `json:"activity_type"`
	Duration  int       `json:"duration"`
}

// Route is one routing leg between consecutive stops.
type Route struct {
	EncodedPolyline string `json:"polyline"`
	DurationSeconds int    `json:"duration"`
	DistanceMeters  int    `json:"distance"`
	TravelMode      string `json:"travel_mode"`
}

type DayItinerary struct {
	Date                time.Time  `json:"date"`
	MorningActivities   []Activity `json:"morning_activities"`
	AfternoonActivities []Activity `json:"afternoon_activities"`
	Routes              []Route    `json:"routes,omitempty"`
}

// Activities returns morning then afternoon activities as a new slice.
func (d DayItinerary) Activities() []Activity {
	out := make([]Activity, 0, len(d.MorningActivities)+len(d.AfternoonActivities))
	out = append(out, d.MorningActivities...)
	return append(out, d.AfternoonActivities...)
}

// Venues returns the venues of Activities in order.
func (d DayItinerary) Venues() []Venue {
	acts := d.Activities()
	out := make([]Venue, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Venue)
	}
	return out
}

// Clone copies the slices so the result can be modified without touching d.
func (d DayItinerary) Clone() DayItinerary {
	return DayItinerary{
		Date:                d.Date,
		MorningActivities:   append([]Activity(nil), d.MorningActivities...),
		AfternoonActivities: append([]Activity(nil), d.AfternoonActivities...),
		Routes:              append([]Route(nil), d.Routes...),
	}
}

type TripItinerary struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	Days       []DayItinerary `json:"days"`
	IsGroup    bool           `json:"is_group"`
	PriceRange *PriceRange    `json:"price_range,omitempty"`
}

// Clone deep-copies the day list.
func (t TripItinerary) Clone() TripItinerary {
	out := t
	out.Days = make([]DayItinerary, len(t.Days))
	for i, d := range t.Days {
		out.Days[i] = d.Clone()
	}
	if t.PriceRange != nil {
		pr := *t.PriceRange
		out.PriceRange = &pr
	}
	return out
}

// UsedVenueIDs collects every venue id scheduled anywhere in the trip.
func (t TripItinerary) UsedVenueIDs() map[string]struct{} {
	used := make(map[string]struct{})
	for _, d := range t.Days {
		for _, a := range d.Activities() {
			used[a.Venue.ID] = struct{}{}
		}
	}
	return used
}

// FindActivity locates an activity by id and returns its day index and slot.
func (t TripItinerary) FindActivity(activityID string) (dayIdx int, slot TimeSlot, pos int, ok bool) {
	for i, d := range t.Days {
		for j, a := range d.MorningActivities {
			if a.ID == activityID {
				return i, TimeSlotMorning, j, true
			}
		}
		for j, a := range d.AfternoonActivities {
			if a.ID == activityID {
				return i, TimeSlotAfternoon, j, true
			}
		}
	}
	return 0, "", 0, false
}
