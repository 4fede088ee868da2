package catalog

import (
	"sort"

	"tripplanner/internal/models/trip_models"
)

var categoryTags = map[trip_models.Category][]string{
	trip_models.CategoryCultural: {
		"art_gallery", "museum", "performing_arts_theater", "cultural_center",
		"library", "auditorium", "opera_house", "philharmonic_hall",
	},
	trip_models.CategoryHistoric: {
		"historical_landmark", "historical_place", "monument", "castle",
		"church", "hindu_temple", "mosque", "synagogue", "place_of_worship",
	},
	trip_models.CategoryOutdoor: {
		"park", "national_park", "state_park", "hiking_area", "beach",
		"botanical_garden", "garden", "campground", "picnic_ground",
		"dog_park", "marina", "lake", "wildlife_park",
	},
	trip_models.CategoryFood: {
		"restaurant", "cafe", "bakery", "coffee_shop", "ice_cream_shop",
		"meal_takeaway", "fast_food_restaurant", "pizza_restaurant",
		"seafood_restaurant", "steak_house", "sushi_restaurant",
		"vegetarian_restaurant", "brunch_restaurant", "food_court", "tea_house",
	},
	trip_models.CategoryLandmarks: {
		"tourist_attraction", "observation_deck", "plaza", "visitor_center",
		"city_hall", "bridge", "landmark",
	},
	trip_models.CategoryShopping: {
		"shopping_mall", "market", "department_store", "clothing_store",
		"gift_shop", "book_store", "jewelry_store", "shoe_store", "store",
		"supermarket", "convenience_store",
	},
	trip_models.CategoryTransportation: {
		"airport", "bus_station", "train_station", "subway_station",
		"transit_station", "taxi_stand", "ferry_terminal", "light_rail_station",
		"parking", "car_rental",
	},
	trip_models.CategoryAccommodation: {
		"lodging", "hotel", "hostel", "motel", "bed_and_breakfast",
		"guest_house", "resort_hotel", "campground_lodging", "inn",
	},
	trip_models.CategoryNightlife: {
		"bar", "night_club", "pub", "wine_bar", "casino", "karaoke",
	},
	trip_models.CategoryWellness: {
		"spa", "sauna", "wellness_center", "yoga_studio", "massage",
		"public_bath", "skin_care_clinic",
	},
	trip_models.CategorySports: {
		"stadium", "gym", "fitness_center", "golf_course", "ski_resort",
		"sports_club", "sports_complex", "swimming_pool", "ice_skating_rink",
		"athletic_field", "bowling_alley",
	},
	trip_models.CategoryEntertainment: {
		"amusement_park", "aquarium", "zoo", "movie_theater", "water_park",
		"amusement_center", "event_venue", "concert_hall", "comedy_club",
		"video_arcade", "escape_room",
	},
}

var tagCategory = func() map[string]trip_models.Category {
	out := make(map[string]trip_models.Category)
	for _, c := range trip_models.AllCategories {
		for _, tag := range categoryTags[c] {
			if prev, dup := out[tag]; dup {
				panic("catalog: tag " + tag + " mapped to both " + string(prev) + " and " + string(c))
			}
			out[tag] = c
		}
	}
	return out
}()

// TagsFor returns a copy of the canonical tag set of c.
func TagsFor(c trip_models.Category) []string {
	return append([]string(nil), categoryTags[c]...)
}

// CategoryOfTag maps a specific venue tag to its category, or unclassified.
func CategoryOfTag(tag string) trip_models.Category {
	if c, ok := tagCategory[tag]; ok {
		return c
	}
	return trip_models.CategoryUnclassified
}

// CategoriesOfTags returns the distinct categories of tags in canonical order.
// Unknown tags are dropped.
func CategoriesOfTags(tags []string) []trip_models.Category {
	seen := make(map[trip_models.Category]bool)
	for _, t := range tags {
		if c := CategoryOfTag(t); c != trip_models.CategoryUnclassified {
			seen[c] = true
		}
	}
	out := make([]trip_models.Category, 0, len(seen))
	for _, c := range trip_models.AllCategories {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// PrimaryCategory returns the category of the first classified tag, or
// unclassified when none of the tags is known.
func PrimaryCategory(tags []string) trip_models.Category {
	for _, t := range tags {
		if c := CategoryOfTag(t); c != trip_models.CategoryUnclassified {
			return c
		}
	}
	return trip_models.CategoryUnclassified
}

// ExcludedSearchTags are the tags never requested from the venue search.
func ExcludedSearchTags() []string {
	var out []string
	for _, c := range []trip_models.Category{
		trip_models.CategoryShopping,
		trip_models.CategoryAccommodation,
		trip_models.CategoryNightlife,
	} {
		out = append(out, categoryTags[c]...)
	}
	sort.Strings(out)
	return out
}
