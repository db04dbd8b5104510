package usecase

import "github.com/bettervitals/backend/internal/domain"

const worthinessBase = 40

var (
	goalPoints = map[domain.PrimaryGoal]int{
		domain.GoalMetabolicHealth:     20,
		domain.GoalWeightLoss:          15,
		domain.GoalAthleticPerformance: 12,
		domain.GoalGeneralWellness:     8,
		domain.GoalCuriosity:           5,
	}

	// Accumulated per selected factor. RiskNone is deliberately absent.
	riskFactorPoints = map[domain.RiskFactor]int{
		domain.RiskPreDiabetic:   25,
		domain.RiskFamilyHistory: 20,
		domain.RiskPCOS:          18,
		domain.RiskObesity:       15,
		domain.RiskEnergyCrashes: 12,
	}

	comfortPoints = map[domain.WearableComfort]int{
		domain.ComfortVeryComfortable: 10,
		domain.ComfortComfortable:     5,
		domain.ComfortNeutral:         0,
		domain.ComfortHesitant:        -5,
		domain.ComfortUncomfortable:   -10,
	}

	timelinePoints = map[domain.Timeline]int{
		domain.TimelineLongTerm:   15,
		domain.Timeline3To6Months: 10,
		domain.Timeline1To3Months: 5,
		domain.TimelineTrialOnly:  0,
		domain.TimelineUndecided:  -5,
	}
)

// Worthiness label thresholds, evaluated highest first
const (
	readyThreshold         = 75
	goodCandidateThreshold = 55
	optionalThreshold      = 35
)

// ScoreWorthiness converts a metabolic profile into a 0-100 CGM worthiness score
func ScoreWorthiness(answers domain.MetabolicAnswers) int {
	score := worthinessBase
	score += goalPoints[answers.PrimaryGoal]
	for _, factor := range answers.RiskFactors.List() {
		score += riskFactorPoints[factor]
	}
	score += comfortPoints[answers.WearableComfort]
	score += timelinePoints[answers.Timeline]
	return clamp(score, 0, 100)
}

// WorthinessLabelFor buckets a worthiness score
func WorthinessLabelFor(score int) domain.WorthinessLabel {
	switch {
	case score >= readyThreshold:
		return domain.LabelReady
	case score >= goodCandidateThreshold:
		return domain.LabelGoodCandidate
	case score >= optionalThreshold:
		return domain.LabelOptional
	default:
		return domain.LabelAlternativePath
	}
}

// EvaluateWorthiness scores a profile and derives its label
func EvaluateWorthiness(answers domain.MetabolicAnswers) domain.WorthinessScore {
	score := ScoreWorthiness(answers)
	return domain.WorthinessScore{Score: score, Label: WorthinessLabelFor(score)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
