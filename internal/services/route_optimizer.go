package services

import (
	"fmt"
	"math"

	"tripplanner/pkg/utils"
)

// MaxExactRouteNodes bounds the Held-Karp table at 2^12 x 12 entries.
const MaxExactRouteNodes = 12

// NoAnchor leaves the start or end of a path free.
const NoAnchor = -1

// RoutePlan is an optimal visiting order and its total cost.
type RoutePlan struct {
	Order []int
	Cost  float64
}

type RouteOptimizerInterface interface {
	ShortestPath(dist [][]float64) (RoutePlan, error)
	AnchoredPath(dist [][]float64, start, end int) (RoutePlan, error)
}

// RouteOptimizer orders a handful of stops exactly with the Held-Karp
// subset dynamic program. dp[mask][j] is the cheapest path that visits
// exactly mask and ends at j.
type RouteOptimizer struct{}

func NewRouteOptimizer() RouteOptimizerInterface {
	return &RouteOptimizer{}
}

// ShortestPath visits every node once with free start and end.
func (o *RouteOptimizer) ShortestPath(dist [][]float64) (RoutePlan, error) {
	return o.AnchoredPath(dist, NoAnchor, NoAnchor)
}

// AnchoredPath visits every node once, starting at start and ending at end
// when those are not NoAnchor.
func (o *RouteOptimizer) AnchoredPath(dist [][]float64, start, end int) (RoutePlan, error) {
	n, err := validateMatrix(dist)
	if err != nil {
		return RoutePlan{}, err
	}
	if start >= n || end >= n || (start != NoAnchor && start == end && n > 1) {
		return RoutePlan{}, fmt.Errorf("anchors %d,%d out of range for %d nodes: %w", start, end, n, utils.ErrInvalidInput)
	}
	if n == 1 {
		return RoutePlan{Order: []int{0}, Cost: 0}, nil
	}

	dp, parent := heldKarp(dist, start)
	full := (1 << n) - 1

	best, last := math.Inf(1), -1
	for j := 0; j < n; j++ {
		if end != NoAnchor && j != end {
			continue
		}
		if dp[full][j] < best {
			best, last = dp[full][j], j
		}
	}
	if last < 0 {
		return RoutePlan{}, fmt.Errorf("no path through all stops: %w", utils.ErrInvalidInput)
	}
	return RoutePlan{Order: walkBack(parent, full, last), Cost: best}, nil
}

// ClosedTour starts and ends at node 0. Order lists every node once, the
// return leg to 0 is included in Cost.
func (o *RouteOptimizer) ClosedTour(dist [][]float64) (RoutePlan, error) {
	n, err := validateMatrix(dist)
	if err != nil {
		return RoutePlan{}, err
	}
	if n == 1 {
		return RoutePlan{Order: []int{0}, Cost: 0}, nil
	}

	dp, parent := heldKarp(dist, 0)
	full := (1 << n) - 1

	best, last := math.Inf(1), -1
	for j := 1; j < n; j++ {
		if c := dp[full][j] + dist[j][0]; c < best {
			best, last = c, j
		}
	}
	if last < 0 {
		return RoutePlan{}, fmt.Errorf("no tour through all stops: %w", utils.ErrInvalidInput)
	}
	return RoutePlan{Order: walkBack(parent, full, last), Cost: best}, nil
}

func validateMatrix(dist [][]float64) (int, error) {
	n := len(dist)
	if n == 0 {
		return 0, fmt.Errorf("empty distance matrix: %w", utils.ErrInvalidInput)
	}
	if n > MaxExactRouteNodes {
		return 0, fmt.Errorf("%d stops: %w", n, utils.ErrRouteTooLarge)
	}
	for i, row := range dist {
		if len(row) != n {
			return 0, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), n, utils.ErrInvalidInput)
		}
	}
	return n, nil
}

// heldKarp fills the subset table. With start == NoAnchor every single-node
// subset is a zero-cost base case, otherwise only {start}.
func heldKarp(dist [][]float64, start int) ([][]float64, [][]int) {
	n := len(dist)
	size := 1 << n
	dp := make([][]float64, size)
	parent := make([][]int, size)
	for mask := range dp {
		dp[mask] = make([]float64, n)
		parent[mask] = make([]int, n)
		for j := range dp[mask] {
			dp[mask][j] = math.Inf(1)
			parent[mask][j] = -1
		}
	}
	for j := 0; j < n; j++ {
		if start == NoAnchor || start == j {
			dp[1<<j][j] = 0
		}
	}

	for mask := 1; mask < size; mask++ {
		for j := 0; j < n; j++ {
			if mask&(1<<j) == 0 || math.IsInf(dp[mask][j], 1) {
				continue
			}
			for k := 0; k < n; k++ {
				if mask&(1<<k) != 0 {
					continue
				}
				next := mask | 1<<k
				if c := dp[mask][j] + dist[j][k]; c < dp[next][k] {
					dp[next][k] = c
					parent[next][k] = j
				}
			}
		}
	}
	return dp, parent
}

func walkBack(parent [][]int, mask, last int) []int {
	var rev []int
	for j := last; j >= 0; {
		rev = append(rev, j)
		p := parent[mask][j]
		mask ^= 1 << j
		j = p
	}
	order := make([]int, len(rev))
	for i, j := range rev {
		order[len(rev)-1-i] = j
	}
	return order
}
