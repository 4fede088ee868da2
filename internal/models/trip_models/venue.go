package trip_models

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PriceLevel is the coarse price bucket reported by the venue search service.
type PriceLevel string

const (
	PriceLevelFree          PriceLevel = "FREE"
	PriceLevelInexpensive   PriceLevel = "INEXPENSIVE"
	PriceLevelModerate      PriceLevel = "MODERATE"
	PriceLevelExpensive     PriceLevel = "EXPENSIVE"
	PriceLevelVeryExpensive PriceLevel = "VERY_EXPENSIVE"
)

// PriceLevels in ascending cost order.
var PriceLevels = []PriceLevel{
	PriceLevelFree,
	PriceLevelInexpensive,
	PriceLevelModerate,
	PriceLevelExpensive,
	PriceLevelVeryExpensive,
}

// Ordinal returns the position of l in PriceLevels, or -1 when unknown.
func (l PriceLevel) Ordinal() int {
	for i, known := range PriceLevels {
		if l == known {
			return i
		}
	}
	return -1
}

type PriceRange struct {
	StartPrice float64 `json:"start_price"`
	EndPrice   float64 `json:"end_price"`
	Currency   string  `json:"currency"`
}

// Add returns the additive aggregate of p and o. The first non-empty currency wins.
func (p PriceRange) Add(o PriceRange) PriceRange {
	out := PriceRange{
		StartPrice: p.StartPrice + o.StartPrice,
		EndPrice:   p.EndPrice + o.EndPrice,
		Currency:   p.Currency,
	}
	if out.Currency == "" {
		out.Currency = o.Currency
	}
	return out
}

// Venue is a candidate point of interest as returned by the venue search service.
type Venue struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Location             LatLng      `json:"location"`
	Types                []string    `json:"types"`
	Rating               *float64    `json:"rating,omitempty"`
	UserRatingsTotal     *int        `json:"user_ratings_total,omitempty"`
	PriceRange           *PriceRange `json:"price_range,omitempty"`
	PriceLevel           PriceLevel  `json:"price_level,omitempty"`
	AccessibilityOptions []string    `json:"accessibility_options,omitempty"`
	OpeningHours         []string    `json:"opening_hours,omitempty"`
}

// PricedVenue pairs a venue with its estimated cost.
type PricedVenue struct {
	Venue Venue
	Price PriceRange
}
