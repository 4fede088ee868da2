package services

import (
	"math"
	"sort"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// MaxLandmarkShare caps the landmark reservation as a fraction of the day.
const MaxLandmarkShare = 0.3

// DistributeDailySlots splits totalSlots activity slots of one day across
// categories. The result always sums to totalSlots.
func DistributeDailySlots(scores trip_models.CategoryScore, totalSlots int) (map[trip_models.Category]int, error) {
	if totalSlots <= 0 {
		return nil, utils.ErrNonPositiveSlotBudget
	}
	if !scores.HasSignal() {
		return nil, utils.ErrEmptyCategoryScores
	}

	var landmarks, others []trip_models.Category
	for _, c := range scores.Sorted() {
		if scores[c] <= 0 || !c.IsVisitable() {
			continue
		}
		if c.IsLandmark() {
			landmarks = append(landmarks, c)
		} else {
			others = append(others, c)
		}
	}
	if len(others) == 0 {
		others = fallbackCategories(scores)
	}
	if len(landmarks) == 0 && len(others) == 0 {
		return nil, utils.ErrEmptyCategoryScores
	}

	landmarkSum := sumScores(scores, landmarks)
	otherSum := sumScores(scores, others)

	quota := 0
	if landmarkSum > 0 {
		ratio := landmarkSum / (landmarkSum + otherSum)
		quota = int(math.Round(math.Min(MaxLandmarkShare, ratio) * float64(totalSlots)))
		if quota < 1 {
			quota = 1
		}
		if quota > totalSlots {
			quota = totalSlots
		}
	}

	counts := make(map[trip_models.Category]int, len(landmarks)+len(others))
	remaining := totalSlots - quota
	for _, c := range others {
		n := 0
		if otherSum > 0 {
			n = int(math.Round(scores[c] / otherSum * float64(remaining)))
		}
		if n > remaining {
			n = remaining
		}
		counts[c] = n
	}
	for c, n := range splitLargestRemainder(scores, landmarks, quota) {
		counts[c] = n
	}

	reconcile(counts, landmarks, others, totalSlots)
	return counts, nil
}

// fallbackCategories are the scored categories that can fill a day when no
// standalone sight category is left, lodging and transport excluded.
func fallbackCategories(scores trip_models.CategoryScore) []trip_models.Category {
	var out []trip_models.Category
	for _, c := range scores.Sorted() {
		switch c {
		case trip_models.CategoryFood, trip_models.CategoryShopping, trip_models.CategoryNightlife:
			if scores[c] > 0 {
				out = append(out, c)
			}
		}
	}
	return out
}

func sumScores(scores trip_models.CategoryScore, cats []trip_models.Category) float64 {
	total := 0.0
	for _, c := range cats {
		total += scores[c]
	}
	return total
}

// splitLargestRemainder divides n proportionally over cats. cats must be in
// descending score order so ties go to the stronger category.
func splitLargestRemainder(scores trip_models.CategoryScore, cats []trip_models.Category, n int) map[trip_models.Category]int {
	out := make(map[trip_models.Category]int, len(cats))
	total := sumScores(scores, cats)
	if len(cats) == 0 || total <= 0 {
		return out
	}

	type frac struct {
		c   trip_models.Category
		rem float64
	}
	fracs := make([]frac, 0, len(cats))
	assigned := 0
	for _, c := range cats {
		exact := scores[c] / total * float64(n)
		whole := int(math.Floor(exact))
		out[c] = whole
		assigned += whole
		fracs = append(fracs, frac{c: c, rem: exact - float64(whole)})
	}
	sort.SliceStable(fracs, func(i, j int) bool { return fracs[i].rem > fracs[j].rem })
	for i := 0; assigned < n; i = (i + 1) % len(fracs) {
		out[fracs[i].c]++
		assigned++
	}
	return out
}

// reconcile fixes rounding drift one slot at a time. Slots are added landmark
// first and removed non-landmark first, lowest score first.
func reconcile(counts map[trip_models.Category]int, landmarks, others []trip_models.Category, total int) {
	sum := 0
	for _, n := range counts {
		sum += n
	}

	addOrder := append(append([]trip_models.Category(nil), landmarks...), others...)
	for i := 0; sum < total; i = (i + 1) % len(addOrder) {
		counts[addOrder[i]]++
		sum++
	}

	removeOrder := make([]trip_models.Category, 0, len(addOrder))
	for i := len(others) - 1; i >= 0; i-- {
		removeOrder = append(removeOrder, others[i])
	}
	for i := len(landmarks) - 1; i >= 0; i-- {
		removeOrder = append(removeOrder, landmarks[i])
	}
	for i := 0; sum > total; i = (i + 1) % len(removeOrder) {
		if counts[removeOrder[i]] > 0 {
			counts[removeOrder[i]]--
			sum--
		}
	}
}
