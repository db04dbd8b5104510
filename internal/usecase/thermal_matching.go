package usecase

import (
	"math"
	"sort"

	"github.com/bettervitals/backend/internal/domain"
)

const (
	maxCoolingRecommendations = 3
	activeCoolingScore        = 70 // At or above this, active systems rank first
)

// coolingTags are the Sleep tags that count as cooling-relevant gear
var coolingTags = map[string]bool{
	"HOT SLEEPERS":   true,
	"BUDGET COOLING": true,
	"LATEST TECH":    true,
	"MAINSTREAM":     true,
}

// activeCoolingTags mark powered temperature-control systems
var activeCoolingTags = map[string]bool{
	"HOT SLEEPERS": true,
	"LATEST TECH":  true,
}

// budgetCeilings maps a budget band to the highest price it allows
var budgetCeilings = map[domain.ThermalBudget]float64{
	domain.BudgetUnder100:  100,
	domain.Budget100To500:  500,
	domain.Budget500To1500: 1500,
	domain.Budget1500Plus:  5000,
	domain.BudgetNoLimit:   math.Inf(1),
}

// BudgetCeiling returns the price ceiling for a band. Unknown bands are unbounded.
func BudgetCeiling(budget domain.ThermalBudget) float64 {
	if ceiling, ok := budgetCeilings[budget]; ok {
		return ceiling
	}
	return math.Inf(1)
}

// RecommendCoolingProducts picks up to three cooling products within budget.
// Products without a price are treated as free.
func RecommendCoolingProducts(products []domain.Product, score int, budget domain.ThermalBudget) []domain.Product {
	ceiling := BudgetCeiling(budget)

	var filtered []domain.Product
	for _, p := range products {
		if p.Category != domain.CategorySleep || !coolingTags[p.Tag] {
			continue
		}
		if p.Price() > ceiling {
			continue
		}
		filtered = append(filtered, p)
	}

	if score >= activeCoolingScore {
		sort.SliceStable(filtered, func(i, j int) bool {
			iActive := activeCoolingTags[filtered[i].Tag]
			jActive := activeCoolingTags[filtered[j].Tag]
			if iActive != jActive {
				return iActive
			}
			return filtered[i].Score > filtered[j].Score
		})
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Score > filtered[j].Score
		})
	}

	if len(filtered) > maxCoolingRecommendations {
		filtered = filtered[:maxCoolingRecommendations]
	}
	return filtered
}
