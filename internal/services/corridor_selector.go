package services

import (
	"math"
	"sort"

	"tripplanner/internal/models/trip_models"
)

// StopsPerZone is how many venues each intermediate zone contributes when the
// corridor has centerCount centers including origin and destination.
func StopsPerZone(centerCount int) int {
	zones := centerCount - 2
	if zones <= 0 {
		return 0
	}
	n := int(math.Ceil(math.Sqrt(float64(zones)))) - 1
	if n < 1 {
		n = 1
	}
	return n
}

// SelectCorridorStops picks the venues of every intermediate zone that point
// furthest along the direction of travel. centers runs origin, zone centers,
// destination; zoneCandidates[k] holds the candidates found around
// centers[k+1]. A venue picked in one zone is not picked again.
func SelectCorridorStops(centers []trip_models.LatLng, zoneCandidates [][]trip_models.Venue) []trip_models.Stop {
	perZone := StopsPerZone(len(centers))
	if perZone == 0 {
		return nil
	}

	chosen := make(map[string]bool)
	var stops []trip_models.Stop
	for k, candidates := range zoneCandidates {
		if k+2 >= len(centers) {
			break
		}
		center := centers[k+1]
		dir := vecBetween(center, centers[k+2])

		type scored struct {
			venue trip_models.Venue
			score float64
		}
		ranked := make([]scored, 0, len(candidates))
		for _, v := range candidates {
			if chosen[v.ID] {
				continue
			}
			ranked = append(ranked, scored{venue: v, score: vecBetween(center, v.Location).dot(dir)})
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

		picked := 0
		for _, r := range ranked {
			if picked == perZone {
				break
			}
			if chosen[r.venue.ID] {
				continue
			}
			chosen[r.venue.ID] = true
			stops = append(stops, trip_models.Stop{Index: k + 1, Venue: r.venue})
			picked++
		}
	}
	return stops
}
