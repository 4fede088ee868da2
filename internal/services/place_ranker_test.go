package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

func rankedIDs(vs []trip_models.Venue) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}

func rankingFixture() []trip_models.Venue {
	a := venue("a", "A", 0, 0, "museum")
	a.Rating, a.UserRatingsTotal = ptrFloat(4.9), ptrInt(10)
	b := venue("b", "B", 0, 0, "museum")
	b.Rating, b.UserRatingsTotal = ptrFloat(3.5), ptrInt(50000)
	c := venue("c", "C", 0, 0, "museum", "tourist_attraction")
	c.Rating, c.UserRatingsTotal = ptrFloat(4.2), ptrInt(900)
	d := venue("d", "D", 0, 0, "museum")
	return []trip_models.Venue{a, b, c, d}
}

func TestComposeRankingsIsPermutation(t *testing.T) {
	rank, err := ComposeRankings(catalog.RankingProfile(trip_models.CategoryCultural))
	require.NoError(t, err)

	in := rankingFixture()
	out := rank(in)
	assert.ElementsMatch(t, rankedIDs(in), rankedIDs(out))
	assert.Empty(t, rank(nil))
}

func TestComposeRankingsFollowsWeights(t *testing.T) {
	byRating, err := ComposeRankings([]catalog.RankingWeight{{Ranking: catalog.RankByRating, Weight: 1}})
	require.NoError(t, err)
	byPopularity, err := ComposeRankings([]catalog.RankingWeight{{Ranking: catalog.RankByPopularity, Weight: 1}})
	require.NoError(t, err)

	venues := rankingFixture()
	assert.Equal(t, []string{"a", "c", "b", "d"}, rankedIDs(byRating(venues)))
	assert.Equal(t, []string{"b", "c", "a", "d"}, rankedIDs(byPopularity(venues)))
}

func TestComposeRankingsIgnoresWeightOrder(t *testing.T) {
	profile := catalog.RankingProfile(trip_models.CategoryCultural)
	reversed := make([]catalog.RankingWeight, len(profile))
	for i, w := range profile {
		reversed[len(profile)-1-i] = w
	}

	forward, err := ComposeRankings(profile)
	require.NoError(t, err)
	backward, err := ComposeRankings(reversed)
	require.NoError(t, err)

	venues := rankingFixture()
	assert.Equal(t, rankedIDs(forward(venues)), rankedIDs(backward(venues)))
}

func TestComposeRankingsShiftsWithWeights(t *testing.T) {
	mix := func(rating float64) []string {
		rank, err := ComposeRankings([]catalog.RankingWeight{
			{Ranking: catalog.RankByRating, Weight: rating},
			{Ranking: catalog.RankByPopularity, Weight: 1 - rating},
		})
		require.NoError(t, err)
		return rankedIDs(rank(rankingFixture()))
	}

	assert.Equal(t, []string{"a", "c", "b", "d"}, mix(0.9))
	assert.Equal(t, []string{"b", "c", "a", "d"}, mix(0.1))
}

func TestComposeRankingsRejectsBadWeights(t *testing.T) {
	_, err := ComposeRankings([]catalog.RankingWeight{{Ranking: catalog.RankByRating, Weight: 0.5}})
	assert.ErrorIs(t, err, utils.ErrInvalidRankingWeights)

	_, err = ComposeRankings([]catalog.RankingWeight{{Ranking: "vibes", Weight: 1}})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestRankPoolsGroupsByPrimaryCategory(t *testing.T) {
	venues := append(rankingFixture(),
		venue("p", "Park", 0, 0, "park"),
		venue("r", "Bistro", 0, 0, "restaurant"),
		venue("x", "Mystery", 0, 0, "unknown_tag"),
	)

	pools, err := NewPlaceRanker().RankPools(venues)
	require.NoError(t, err)
	assert.Len(t, pools[trip_models.CategoryCultural], 4)
	assert.Equal(t, []string{"p"}, rankedIDs(pools[trip_models.CategoryOutdoor]))
	assert.Equal(t, []string{"r"}, rankedIDs(pools[trip_models.CategoryFood]))
	assert.Equal(t, []string{"x"}, rankedIDs(pools[trip_models.CategoryUnclassified]))
}
