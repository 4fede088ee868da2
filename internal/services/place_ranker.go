package services

import (
	"fmt"
	"math"
	"sort"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// rankingFunc returns a permutation of indexes into venues, best first.
type rankingFunc func(venues []trip_models.Venue) []int

var baseRankings = map[string]rankingFunc{
	catalog.RankByRating:        rankByRating,
	catalog.RankByPrice:         rankByPrice,
	catalog.RankByAccessibility: rankByAccessibility,
	catalog.RankByLandmark:      rankByLandmark,
	catalog.RankByPopularity:    rankByPopularity,
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// rankDescending orders by key descending; venues for which key reports
// false keep their relative order after all keyed venues.
func rankDescending(venues []trip_models.Venue, key func(trip_models.Venue) (float64, bool)) []int {
	idx := identity(len(venues))
	sort.SliceStable(idx, func(a, b int) bool {
		ka, oka := key(venues[idx[a]])
		kb, okb := key(venues[idx[b]])
		if oka != okb {
			return oka
		}
		return oka && ka > kb
	})
	return idx
}

func rankByRating(venues []trip_models.Venue) []int {
	return rankDescending(venues, func(v trip_models.Venue) (float64, bool) {
		if v.Rating == nil {
			return 0, false
		}
		return *v.Rating, true
	})
}

func rankByPrice(venues []trip_models.Venue) []int {
	return rankDescending(venues, func(v trip_models.Venue) (float64, bool) {
		ord := v.PriceLevel.Ordinal()
		if ord < 0 {
			return 0, false
		}
		return -float64(ord), true
	})
}

func rankByAccessibility(venues []trip_models.Venue) []int {
	return rankDescending(venues, func(v trip_models.Venue) (float64, bool) {
		return float64(len(v.AccessibilityOptions)) / catalog.AccessibilityAttributeSpace, true
	})
}

func rankByLandmark(venues []trip_models.Venue) []int {
	return rankDescending(venues, func(v trip_models.Venue) (float64, bool) {
		if len(v.Types) == 0 {
			return 0, true
		}
		hits := 0
		for _, t := range v.Types {
			if catalog.IsLandmarkTag(t) {
				hits++
			}
		}
		return float64(hits) / float64(len(v.Types)), true
	})
}

func rankByPopularity(venues []trip_models.Venue) []int {
	return rankDescending(venues, func(v trip_models.Venue) (float64, bool) {
		if v.UserRatingsTotal == nil {
			return 0, true
		}
		return float64(*v.UserRatingsTotal), true
	})
}

// RankingFunc orders a venue list, best first.
type RankingFunc func(venues []trip_models.Venue) []trip_models.Venue

// ComposeRankings builds a ranking that scores each venue by the weighted sum
// of 1 - position/len under every named base ranking. Weights must add up to 1.
func ComposeRankings(weights []catalog.RankingWeight) (RankingFunc, error) {
	total := 0.0
	for _, w := range weights {
		if _, ok := baseRankings[w.Ranking]; !ok {
			return nil, fmt.Errorf("unknown ranking %q: %w", w.Ranking, utils.ErrInvalidInput)
		}
		total += w.Weight
	}
	if math.Abs(total-1.0) > 1e-4 {
		return nil, utils.ErrInvalidRankingWeights
	}

	ordered := append([]catalog.RankingWeight(nil), weights...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Ranking < ordered[j].Ranking })

	return func(venues []trip_models.Venue) []trip_models.Venue {
		n := len(venues)
		if n == 0 {
			return nil
		}
		scores := make([]float64, n)
		for _, w := range ordered {
			for pos, i := range baseRankings[w.Ranking](venues) {
				scores[i] += w.Weight * (1 - float64(pos)/float64(n))
			}
		}

		idx := identity(n)
		sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
		out := make([]trip_models.Venue, n)
		for pos, i := range idx {
			out[pos] = venues[i]
		}
		return out
	}, nil
}

type PlaceRankerInterface interface {
	Rank(category trip_models.Category, venues []trip_models.Venue) ([]trip_models.Venue, error)
	RankPools(venues []trip_models.Venue) (trip_models.PreRankedPools, error)
}

type PlaceRanker struct{}

func NewPlaceRanker() PlaceRankerInterface {
	return &PlaceRanker{}
}

// Rank orders venues with the weight profile of category.
func (r *PlaceRanker) Rank(category trip_models.Category, venues []trip_models.Venue) ([]trip_models.Venue, error) {
	rank, err := ComposeRankings(catalog.RankingProfile(category))
	if err != nil {
		return nil, err
	}
	return rank(venues), nil
}

// RankPools groups venues by their primary category and ranks every group.
func (r *PlaceRanker) RankPools(venues []trip_models.Venue) (trip_models.PreRankedPools, error) {
	groups := make(map[trip_models.Category][]trip_models.Venue)
	for _, v := range venues {
		c := catalog.PrimaryCategory(v.Types)
		groups[c] = append(groups[c], v)
	}

	pools := make(trip_models.PreRankedPools, len(groups))
	for c, vs := range groups {
		ranked, err := r.Rank(c, vs)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", c, err)
		}
		pools[c] = ranked
	}
	return pools, nil
}
