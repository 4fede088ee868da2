package services

import (
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// Corridor is the segmentation of a road trip route.
type Corridor struct {
	DistanceKm  float64
	ZoneCount   int
	RadiusKm    float64
	Inflections []trip_models.LatLng
	// Zones are the accepted intermediate zone centers in path order.
	Zones []trip_models.Zone
}

// Centers returns origin, zone centers and destination in travel order.
func (c Corridor) Centers(origin, destination trip_models.LatLng) []trip_models.LatLng {
	out := make([]trip_models.LatLng, 0, len(c.Zones)+2)
	out = append(out, origin)
	for _, z := range c.Zones {
		out = append(out, z.Center)
	}
	return append(out, destination)
}

type CorridorSegmenterInterface interface {
	Segment(origin, destination trip_models.LatLng, encodedPolyline string) (Corridor, error)
}

type CorridorSegmenter struct{}

func NewCorridorSegmenter() CorridorSegmenterInterface {
	return &CorridorSegmenter{}
}

// Segment splits the route into circular search zones placed on the points
// where the route's sideways drift from the straight origin-destination line
// has a local minimum of its second derivative.
func (s *CorridorSegmenter) Segment(origin, destination trip_models.LatLng, encodedPolyline string) (Corridor, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encodedPolyline))
	if err != nil {
		return Corridor{}, fmt.Errorf("decode route polyline: %v: %w", err, utils.ErrInvalidInput)
	}
	path := make([]trip_models.LatLng, 0, len(coords))
	for _, c := range coords {
		path = append(path, trip_models.LatLng{Latitude: c[0], Longitude: c[1]})
	}

	distanceKm := haversineMeters(origin, destination) / 1000
	zoneCount := int(math.Floor(math.Sqrt(distanceKm))) + 1
	corridor := Corridor{
		DistanceKm: distanceKm,
		ZoneCount:  zoneCount,
		RadiusKm:   distanceKm / float64(zoneCount),
	}

	idx := inflectionIndexes(orthogonalDeviation(path, vecBetween(origin, destination).unit()))
	for _, i := range idx {
		corridor.Inflections = append(corridor.Inflections, path[i])
	}
	if corridor.RadiusKm <= 0 || len(idx) == 0 {
		return corridor, nil
	}

	cumulative := alongPathKm(origin, path)
	next := 1.0
	for _, i := range idx {
		if len(corridor.Zones) >= zoneCount {
			break
		}
		if cumulative[i] <= next*corridor.RadiusKm {
			continue
		}
		corridor.Zones = append(corridor.Zones, trip_models.Zone{
			Center:       path[i],
			RadiusMeters: corridor.RadiusKm * 1000,
		})
		next = math.Floor(cumulative[i]/corridor.RadiusKm) + 1
	}
	return corridor, nil
}

// orthogonalDeviation returns, for every consecutive pair of path points,
// the length of the step's component perpendicular to dir.
func orthogonalDeviation(path []trip_models.LatLng, dir vec2) []float64 {
	if len(path) < 2 {
		return nil
	}
	out := make([]float64, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		step := vecBetween(path[i], path[i+1])
		out[i] = step.sub(dir.scale(step.dot(dir))).norm()
	}
	return out
}

// inflectionIndexes are the strict interior local minima of the second
// gradient of deviation.
func inflectionIndexes(deviation []float64) []int {
	g2 := gradient(gradient(deviation))
	var out []int
	for i := 1; i+1 < len(g2); i++ {
		if g2[i] < g2[i-1] && g2[i] < g2[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// alongPathKm is the travelled distance from origin to every path point.
func alongPathKm(origin trip_models.LatLng, path []trip_models.LatLng) []float64 {
	out := make([]float64, len(path))
	prev, total := origin, 0.0
	for i, p := range path {
		total += haversineMeters(prev, p) / 1000
		out[i] = total
		prev = p
	}
	return out
}
