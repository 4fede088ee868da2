package services

import (
	"sort"

	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
)

// averagePriceDeviation is the spread applied around a table average.
const averagePriceDeviation = 0.10

type PriceClassifierInterface interface {
	Estimate(v trip_models.Venue) trip_models.PriceRange
	Classify(venues []trip_models.Venue) []trip_models.PricedVenue
}

type PriceClassifier struct {
	logger *zap.Logger
}

func NewPriceClassifier(logger *zap.Logger) PriceClassifierInterface {
	return &PriceClassifier{logger: logger}
}

// Classify prices every venue and returns them cheapest first. Venues with
// the same start price keep their input order.
func (p *PriceClassifier) Classify(venues []trip_models.Venue) []trip_models.PricedVenue {
	out := make([]trip_models.PricedVenue, 0, len(venues))
	for _, v := range venues {
		out = append(out, trip_models.PricedVenue{Venue: v, Price: p.Estimate(v)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price.StartPrice < out[j].Price.StartPrice })
	return out
}

// Estimate prices one venue: explicit range, then price level band, then
// the regional average of its best matching category.
func (p *PriceClassifier) Estimate(v trip_models.Venue) trip_models.PriceRange {
	if v.PriceRange != nil {
		return *v.PriceRange
	}

	continent := catalog.ContinentOf(v.Location)
	currency := catalog.CurrencyOf(continent)
	free := trip_models.PriceRange{Currency: currency}

	if v.PriceLevel != "" {
		if band, ok := catalog.PriceLevelBand(v.PriceLevel, currency); ok {
			return band
		}
	}

	category := bestMatchingCategory(v.Types)
	if category == trip_models.CategoryLandmarks {
		return free
	}
	avg, ok := catalog.AveragePrice(category, continent)
	if !ok {
		p.logger.Debug("no average price, using zero estimate",
			zap.String("venue_id", v.ID),
			zap.String("category", string(category)),
			zap.String("continent", string(continent)))
		return free
	}
	return trip_models.PriceRange{
		StartPrice: avg * (1 - averagePriceDeviation),
		EndPrice:   avg * (1 + averagePriceDeviation),
		Currency:   currency,
	}
}

// bestMatchingCategory picks the category whose canonical tag set has the
// highest Jaccard similarity with tags. Earlier categories win ties.
func bestMatchingCategory(tags []string) trip_models.Category {
	venueTags := make(map[string]bool, len(tags))
	for _, t := range tags {
		venueTags[t] = true
	}

	best, bestScore := trip_models.CategoryUnclassified, 0.0
	for _, c := range trip_models.AllCategories {
		canonical := catalog.TagsFor(c)
		inter := 0
		for _, t := range canonical {
			if venueTags[t] {
				inter++
			}
		}
		union := len(venueTags) + len(canonical) - inter
		if union == 0 || inter == 0 {
			continue
		}
		if score := float64(inter) / float64(union); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// ItineraryPrice sums the estimates of every scheduled activity. It is nil
// when no day has an activity.
func ItineraryPrice(pricer PriceClassifierInterface, days []trip_models.DayItinerary) *trip_models.PriceRange {
	var total *trip_models.PriceRange
	for _, day := range days {
		for _, a := range day.Activities() {
			if total == nil {
				total = &trip_models.PriceRange{}
			}
			*total = total.Add(pricer.Estimate(a.Venue))
		}
	}
	return total
}
