package services

import (
	"math"

	"tripplanner/internal/models/trip_models"
)

const earthRadiusMeters = 6371000.0

// haversineMeters is the great-circle distance between a and b.
func haversineMeters(a, b trip_models.LatLng) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// vec2 is a planar vector with X = longitude and Y = latitude.
type vec2 struct{ X, Y float64 }

func vecBetween(from, to trip_models.LatLng) vec2 {
	return vec2{X: to.Longitude - from.Longitude, Y: to.Latitude - from.Latitude}
}

func (v vec2) dot(o vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v vec2) norm() float64        { return math.Hypot(v.X, v.Y) }
func (v vec2) scale(k float64) vec2 { return vec2{X: v.X * k, Y: v.Y * k} }
func (v vec2) sub(o vec2) vec2      { return vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v vec2) unit() vec2 {
	n := v.norm()
	if n == 0 {
		return vec2{}
	}
	return v.scale(1 / n)
}

// gradient is the discrete derivative of xs with unit spacing: central
// differences inside, one-sided differences at both ends.
func gradient(xs []float64) []float64 {
	n := len(xs)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = xs[1] - xs[0]
	out[n-1] = xs[n-1] - xs[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (xs[i+1] - xs[i-1]) / 2
	}
	return out
}

// distanceMatrix is the pairwise great-circle distance between points.
func distanceMatrix(points []trip_models.LatLng) [][]float64 {
	n := len(points)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = haversineMeters(points[i], points[j])
			}
		}
	}
	return m
}
