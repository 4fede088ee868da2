package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

const noonHour = 12

var scheduleSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "start": {"type": "string"},
          "end": {"type": "string"}
        },
        "required": ["name", "start", "end"],
        "additionalProperties": false
      }
    }
  },
  "required": ["activities"],
  "additionalProperties": false
}`)

var radiusSchema = json.RawMessage(`{
  "type": "object",
  "properties": {"radius_km": {"type": "number"}},
  "required": ["radius_km"],
  "additionalProperties": false
}`)

// LLMNarrativeScheduler asks a language model for day schedules and place sizes.
type LLMNarrativeScheduler struct {
	llm utils.JSONCompletionClient
}

func NewLLMNarrativeScheduler(llm utils.JSONCompletionClient) NarrativeScheduler {
	return &LLMNarrativeScheduler{llm: llm}
}

func (s *LLMNarrativeScheduler) ProposeSchedule(ctx context.Context, date time.Time, venueNames []string) ([]ProposedSlot, error) {
	prompt := fmt.Sprintf(`Plan a realistic visiting schedule for %s.
Visit every place below exactly once, between 09:00 and 21:00, with no overlapping times.
Use "HH:MM" 24h times and copy each place name exactly.

Places:
- %s`, date.Format("Monday 2006-01-02"), strings.Join(venueNames, "\n- "))

	content, err := s.llm.CompleteJSON(ctx, prompt, "day_schedule", scheduleSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNarrativeFailed, err)
	}
	var out struct {
		Activities []ProposedSlot `json:"activities"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("%w: decode schedule: %v", utils.ErrNarrativeFailed, err)
	}
	return out.Activities, nil
}

func (s *LLMNarrativeScheduler) EstimateRadiusKm(ctx context.Context, placeName string) (float64, error) {
	prompt := fmt.Sprintf(`How far from its center, in kilometers, does a visitor typically travel to see the main sights of %q?
Answer with a single radius.`, placeName)

	content, err := s.llm.CompleteJSON(ctx, prompt, "place_radius", radiusSchema)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrNarrativeFailed, err)
	}
	var out struct {
		RadiusKm float64 `json:"radius_km"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return 0, fmt.Errorf("%w: decode radius: %v", utils.ErrNarrativeFailed, err)
	}
	if out.RadiusKm <= 0 {
		return 0, fmt.Errorf("%w: non-positive radius %v", utils.ErrNarrativeFailed, out.RadiusKm)
	}
	return out.RadiusKm, nil
}

type NarrativeRefinerInterface interface {
	RefineDay(ctx context.Context, day trip_models.DayItinerary) trip_models.DayItinerary
}

// NarrativeRefiner retimes a day with the schedule proposed by the
// narrative scheduler. Any failure leaves the day as it was.
type NarrativeRefiner struct {
	scheduler NarrativeScheduler
	logger    *zap.Logger
}

func NewNarrativeRefiner(scheduler NarrativeScheduler, logger *zap.Logger) NarrativeRefinerInterface {
	return &NarrativeRefiner{scheduler: scheduler, logger: logger}
}

func (r *NarrativeRefiner) RefineDay(ctx context.Context, day trip_models.DayItinerary) trip_models.DayItinerary {
	activities := day.Activities()
	if len(activities) == 0 {
		return day
	}
	names := make([]string, len(activities))
	for i, a := range activities {
		names[i] = a.Venue.Name
	}

	proposals, err := r.scheduler.ProposeSchedule(ctx, day.Date, names)
	if err != nil {
		r.logger.Warn("narrative schedule failed, keeping day", zap.Time("date", day.Date), zap.Error(err))
		return day
	}

	refined, ok := applyProposals(day, activities, proposals)
	if !ok {
		r.logger.Info("narrative schedule unusable, keeping day", zap.Time("date", day.Date))
		return day
	}
	return refined
}

// applyProposals rebuilds day with the proposed times. It reports false when
// a proposal is malformed, nothing matches, or the result overlaps.
func applyProposals(day trip_models.DayItinerary, activities []trip_models.Activity, proposals []ProposedSlot) (trip_models.DayItinerary, bool) {
	retimed := append([]trip_models.Activity(nil), activities...)
	taken := make([]bool, len(retimed))
	matched := 0

	for _, p := range proposals {
		start, errStart := clockOn(day.Date, p.Start)
		end, errEnd := clockOn(day.Date, p.End)
		if errStart != nil || errEnd != nil || !end.After(start) {
			return day, false
		}
		i := matchActivity(retimed, taken, p.Name)
		if i < 0 {
			continue
		}
		taken[i] = true
		matched++
		a := retimed[i]
		a.StartTime, a.EndTime = start, end
		a.Duration = int(end.Sub(start) / time.Minute)
		retimed[i] = a
	}
	if matched == 0 {
		return day, false
	}

	sort.SliceStable(retimed, func(i, j int) bool { return retimed[i].StartTime.Before(retimed[j].StartTime) })
	for i := 1; i < len(retimed); i++ {
		if retimed[i].StartTime.Before(retimed[i-1].EndTime) {
			return day, false
		}
	}

	out := trip_models.DayItinerary{Date: day.Date, Routes: day.Routes}
	for _, a := range retimed {
		if a.StartTime.Hour() < noonHour {
			out.MorningActivities = append(out.MorningActivities, a)
		} else {
			out.AfternoonActivities = append(out.AfternoonActivities, a)
		}
	}
	return out, true
}

// matchActivity finds the first free activity whose venue name contains
// name or is contained in it, ignoring case.
func matchActivity(activities []trip_models.Activity, taken []bool, name string) int {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return -1
	}
	for i, a := range activities {
		if taken[i] {
			continue
		}
		hay := strings.ToLower(a.Venue.Name)
		if hay == "" {
			continue
		}
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return i
		}
	}
	return -1
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
