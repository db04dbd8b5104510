package usecase

import (
	"sort"

	"github.com/bettervitals/backend/internal/domain"
)

// monitorBonus adds points when its predicate holds for the profile
type monitorBonus struct {
	points  int
	applies func(a domain.MetabolicAnswers) bool
}

// monitorCandidate is one member of the fixed CGM candidate set
type monitorCandidate struct {
	productID string
	base      int
	bestFor   string
	bonuses   []monitorBonus
}

func goalIs(goals ...domain.PrimaryGoal) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, g := range goals {
			if a.PrimaryGoal == g {
				return true
			}
		}
		return false
	}
}

func dataStyleIs(styles ...domain.DataStyle) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, s := range styles {
			if a.DataStyle == s {
				return true
			}
		}
		return false
	}
}

func budgetIs(budgets ...domain.MonitorBudget) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, b := range budgets {
			if a.Budget == b {
				return true
			}
		}
		return false
	}
}

func dietIs(diets ...domain.DietApproach) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, d := range diets {
			if a.DietApproach == d {
				return true
			}
		}
		return false
	}
}

func comfortIs(levels ...domain.WearableComfort) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, l := range levels {
			if a.WearableComfort == l {
				return true
			}
		}
		return false
	}
}

func timelineIs(timelines ...domain.Timeline) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		for _, t := range timelines {
			if a.Timeline == t {
				return true
			}
		}
		return false
	}
}

func riskIncludes(factors ...domain.RiskFactor) func(domain.MetabolicAnswers) bool {
	return func(a domain.MetabolicAnswers) bool {
		return a.RiskFactors.HasAny(factors...)
	}
}

// monitorCandidates is ordered as listed on the metabolic catalog page.
// Ties keep this order.
var monitorCandidates = []monitorCandidate{
	{
		productID: "levels-health",
		base:      50,
		bestFor:   "Self-directed biohackers & athletes",
		bonuses: []monitorBonus{
			{25, goalIs(domain.GoalAthleticPerformance)},
			{20, goalIs(domain.GoalMetabolicHealth)},
			{15, dataStyleIs(domain.DataDeepDiver)},
			{10, dataStyleIs(domain.DataSelfDirected)},
			{10, budgetIs(domain.MonitorBudgetPremium, domain.MonitorBudgetMid)},
		},
	},
	{
		productID: "nutrisense",
		base:      50,
		bestFor:   "Those wanting dietitian coaching",
		bonuses: []monitorBonus{
			{25, dataStyleIs(domain.DataGuided)},
			{15, dataStyleIs(domain.DataSimpleInsights)},
			{15, goalIs(domain.GoalWeightLoss)},
			{10, goalIs(domain.GoalMetabolicHealth)},
			{10, budgetIs(domain.MonitorBudgetPremium, domain.MonitorBudgetMid)},
		},
	},
	{
		productID: "dexcom-stelo",
		base:      50,
		bestFor:   "Clinical accuracy seekers",
		bonuses: []monitorBonus{
			{20, dataStyleIs(domain.DataDeepDiver)},
			{20, riskIncludes(domain.RiskPreDiabetic, domain.RiskFamilyHistory)},
			{15, budgetIs(domain.MonitorBudgetMid, domain.MonitorBudgetLow)},
			{10, goalIs(domain.GoalMetabolicHealth)},
		},
	},
	{
		productID: "signos",
		base:      50,
		bestFor:   "Weight loss focused users",
		bonuses: []monitorBonus{
			{30, goalIs(domain.GoalWeightLoss)},
			{15, dataStyleIs(domain.DataGuided)},
			{10, dietIs(domain.DietCalorieRestriction, domain.DietLowCarb)},
			{10, budgetIs(domain.MonitorBudgetMid)},
		},
	},
	{
		productID: "abbott-lingo",
		base:      50,
		bestFor:   "Budget-conscious beginners",
		bonuses: []monitorBonus{
			{25, budgetIs(domain.MonitorBudgetLow)},
			{20, dataStyleIs(domain.DataSimpleInsights)},
			{15, timelineIs(domain.TimelineTrialOnly, domain.Timeline1To3Months)},
			{10, comfortIs(domain.ComfortHesitant, domain.ComfortNeutral)},
		},
	},
	{
		productID: "lumen",
		base:      40,
		bestFor:   "Non-invasive preference",
		bonuses: []monitorBonus{
			{30, comfortIs(domain.ComfortUncomfortable, domain.ComfortHesitant)},
			{15, goalIs(domain.GoalWeightLoss)},
			{10, goalIs(domain.GoalAthleticPerformance)},
			{10, dataStyleIs(domain.DataSimpleInsights)},
			{10, budgetIs(domain.MonitorBudgetPremium)},
		},
	},
}

// MonitorCandidateIDs returns the product ids considered by MatchMonitors
func MonitorCandidateIDs() []string {
	ids := make([]string, len(monitorCandidates))
	for i, c := range monitorCandidates {
		ids[i] = c.productID
	}
	return ids
}

// MatchMonitors scores every CGM candidate against the profile and returns
// all of them, best match first.
func MatchMonitors(answers domain.MetabolicAnswers) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(monitorCandidates))
	for _, candidate := range monitorCandidates {
		score := candidate.base
		for _, bonus := range candidate.bonuses {
			if bonus.applies(answers) {
				score += bonus.points
			}
		}
		if score > 100 {
			score = 100
		}
		results = append(results, domain.MatchResult{
			ProductID:  candidate.productID,
			MatchScore: score,
			BestFor:    candidate.bestFor,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}
