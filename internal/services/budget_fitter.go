package services

import "tripplanner/internal/models/trip_models"

// BudgetTolerance is how far above the budget the fitted end price may go.
const BudgetTolerance = 0.15

// FitPlacesOnBudget walks items once in order and keeps each one whose end
// price still fits under budget*(1+BudgetTolerance). A rejected item never
// stops the walk. Callers sort items by ascending price beforehand.
func FitPlacesOnBudget(items []trip_models.PricedVenue, budget float64) ([]trip_models.PricedVenue, trip_models.PriceRange) {
	limit := budget * (1 + BudgetTolerance)

	var (
		kept  []trip_models.PricedVenue
		total trip_models.PriceRange
	)
	for _, it := range items {
		if total.EndPrice+it.Price.EndPrice > limit {
			continue
		}
		kept = append(kept, it)
		total = total.Add(it.Price)
	}
	return kept, total
}
