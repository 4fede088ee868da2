package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

const (
	MorningStartHour   = 9
	AfternoonStartHour = 14
	ActivityGap        = 30 * time.Minute
)

type AssembleRequest struct {
	TripID     string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	IsGroup    bool
	Template   trip_models.TemplateType
	Scores     trip_models.CategoryScore
	Pools      trip_models.PreRankedPools
	MustVisit  []trip_models.Venue
	PriceRange *trip_models.PriceRange
}

type ItineraryAssemblerInterface interface {
	Assemble(req AssembleRequest) (trip_models.TripItinerary, trip_models.PreRankedPools, error)
}

type ItineraryAssembler struct {
	optimizer RouteOptimizerInterface
	logger    *zap.Logger
}

func NewItineraryAssembler(optimizer RouteOptimizerInterface, logger *zap.Logger) ItineraryAssemblerInterface {
	return &ItineraryAssembler{optimizer: optimizer, logger: logger}
}

// Assemble fills every day of the trip from the pre-ranked pools. No venue is
// scheduled twice. It returns the itinerary and the pools without the
// venues it used.
func (a *ItineraryAssembler) Assemble(req AssembleRequest) (trip_models.TripItinerary, trip_models.PreRankedPools, error) {
	start := truncateDay(req.StartDate)
	end := truncateDay(req.EndDate)
	if end.Before(start) {
		return trip_models.TripItinerary{}, nil, fmt.Errorf("end date before start date: %w", utils.ErrInvalidInput)
	}

	slots := req.Template.Slots()
	pools := req.Pools.Clone()
	used := make(map[string]bool)
	mustVisit := append([]trip_models.Venue(nil), req.MustVisit...)

	it := trip_models.TripItinerary{
		ID:         req.TripID,
		Name:       req.Name,
		StartDate:  start,
		EndDate:    end,
		IsGroup:    req.IsGroup,
		PriceRange: req.PriceRange,
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		counts, err := DistributeDailySlots(req.Scores, slots.Total())
		if err != nil {
			return trip_models.TripItinerary{}, nil, err
		}

		var picks []pick
		for len(mustVisit) > 0 && len(picks) < slots.Total() {
			v := mustVisit[0]
			mustVisit = mustVisit[1:]
			if used[v.ID] {
				continue
			}
			used[v.ID] = true
			picks = append(picks, pick{venue: v, category: catalog.PrimaryCategory(v.Types)})
		}
		picks = append(picks, a.pickFromPools(req.Scores, counts, pools, used, slots.Total()-len(picks))...)

		morning, afternoon := picks, []pick(nil)
		if len(picks) > slots.Morning {
			morning, afternoon = picks[:slots.Morning], picks[slots.Morning:]
		}
		day := trip_models.DayItinerary{Date: date}
		day.MorningActivities = schedule(a.orderByDistance(morning), atHour(date, MorningStartHour))
		afternoonStart := atHour(date, AfternoonStartHour)
		if n := len(day.MorningActivities); n > 0 {
			if after := day.MorningActivities[n-1].EndTime.Add(ActivityGap); after.After(afternoonStart) {
				afternoonStart = after
			}
		}
		day.AfternoonActivities = schedule(a.orderByDistance(afternoon), afternoonStart)
		it.Days = append(it.Days, day)
	}

	for c, vs := range pools {
		pools[c] = withoutUsed(vs, used)
	}
	return it, pools, nil
}

type pick struct {
	venue    trip_models.Venue
	category trip_models.Category
}

// pickFromPools takes counts[c] unused venues from each category pool, then
// tops up from the remaining pools when a category runs dry.
func (a *ItineraryAssembler) pickFromPools(
	scores trip_models.CategoryScore,
	counts map[trip_models.Category]int,
	pools trip_models.PreRankedPools,
	used map[string]bool,
	want int,
) []pick {
	if want <= 0 {
		return nil
	}

	order := scores.Sorted()
	var picks []pick
	take := func(c trip_models.Category, n int) {
		for _, v := range pools[c] {
			if n == 0 || len(picks) == want {
				return
			}
			if used[v.ID] {
				continue
			}
			used[v.ID] = true
			picks = append(picks, pick{venue: v, category: c})
			n--
		}
	}

	for _, c := range order {
		take(c, counts[c])
	}
	for _, c := range append(order, trip_models.AllCategories...) {
		if len(picks) == want {
			break
		}
		if c == trip_models.CategoryTransportation || c == trip_models.CategoryAccommodation {
			continue
		}
		if scores[c] > 0 || c.IsVisitable() {
			take(c, want-len(picks))
		}
	}
	if len(picks) < want {
		a.logger.Debug("not enough venues to fill day", zap.Int("want", want), zap.Int("got", len(picks)))
	}
	return picks
}

// orderByDistance reorders picks into the shortest walking path.
func (a *ItineraryAssembler) orderByDistance(picks []pick) []pick {
	if len(picks) < 3 || len(picks) > MaxExactRouteNodes {
		return picks
	}
	points := make([]trip_models.LatLng, len(picks))
	for i, p := range picks {
		points[i] = p.venue.Location
	}
	plan, err := a.optimizer.ShortestPath(distanceMatrix(points))
	if err != nil {
		a.logger.Warn("keeping ranked order", zap.Error(err))
		return picks
	}
	out := make([]pick, 0, len(picks))
	for _, i := range plan.Order {
		out = append(out, picks[i])
	}
	return out
}

// schedule lays picks out back to back from start with ActivityGap between.
func schedule(picks []pick, start time.Time) []trip_models.Activity {
	out := make([]trip_models.Activity, 0, len(picks))
	at := start
	for _, p := range picks {
		d := catalog.DurationMinutes(p.venue.Types)
		end := at.Add(time.Duration(d) * time.Minute)
		out = append(out, trip_models.Activity{
			ID:        uuid.NewString(),
			Venue:     p.venue,
			StartTime: at,
			EndTime:   end,
			Category:  p.category,
			Duration:  d,
		})
		at = end.Add(ActivityGap)
	}
	return out
}

func withoutUsed(vs []trip_models.Venue, used map[string]bool) []trip_models.Venue {
	out := make([]trip_models.Venue, 0, len(vs))
	for _, v := range vs {
		if !used[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func atHour(day time.Time, hour int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, day.Location())
}
