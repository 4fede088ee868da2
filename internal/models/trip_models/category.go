package trip_models

import "sort"

// Category is the coarse preference grouping that specific venue tags map onto.
type Category string

const (
	CategoryCultural       Category = "cultural"
	CategoryHistoric       Category = "historic"
	CategoryOutdoor        Category = "outdoor"
	CategoryFood           Category = "food"
	CategoryLandmarks      Category = "landmarks"
	CategoryShopping       Category = "shopping"
	CategoryTransportation Category = "transportation"
	CategoryAccommodation  Category = "accommodation"
	CategoryNightlife      Category = "nightlife"
	CategoryWellness       Category = "wellness"
	CategorySports         Category = "sports"
	CategoryEntertainment  Category = "entertainment"

	// CategoryUnclassified is assigned to tags missing from the catalog.
	CategoryUnclassified Category = "unclassified"
)

// AllCategories lists every classified category in canonical order.
var AllCategories = []Category{
	CategoryCultural,
	CategoryHistoric,
	CategoryOutdoor,
	CategoryFood,
	CategoryLandmarks,
	CategoryShopping,
	CategoryTransportation,
	CategoryAccommodation,
	CategoryNightlife,
	CategoryWellness,
	CategorySports,
	CategoryEntertainment,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsLandmark reports whether slots for c count against the landmark quota.
func (c Category) IsLandmark() bool {
	switch c {
	case CategoryCultural, CategoryHistoric, CategoryLandmarks:
		return true
	}
	return false
}

// IsVisitable reports whether c is scheduled as a standalone stop.
func (c Category) IsVisitable() bool {
	switch c {
	case CategoryTransportation, CategoryAccommodation, CategoryShopping,
		CategoryFood, CategoryNightlife, CategoryUnclassified:
		return false
	}
	return true
}

// CategoryScore maps a category to a non-negative preference weight.
type CategoryScore map[Category]float64

// HasSignal reports whether at least one category carries a positive weight.
func (s CategoryScore) HasSignal() bool {
	for _, v := range s {
		if v > 0 {
			return true
		}
	}
	return false
}

// Total sums every weight.
func (s CategoryScore) Total() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Sorted returns the categories ordered by descending weight, ties broken by name.
func (s CategoryScore) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if s[out[i]] != s[out[j]] {
			return s[out[i]] > s[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Clone returns an independent copy.
func (s CategoryScore) Clone() CategoryScore {
	out := make(CategoryScore, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
