package usecase

import "github.com/bettervitals/backend/internal/domain"

// Point tables for the Hot Sleeper score. Maxima: 40 + 25 + 15 + 10 + 10 = 100.
var (
	heatFrequencyPoints = map[domain.HeatFrequency]int{
		domain.HeatEveryNight: 40,
		domain.HeatOften:      30,
		domain.HeatRarely:     15,
	}

	roomTemperaturePoints = map[domain.RoomTemperature]int{
		domain.RoomAbove72: 25,
		domain.Room68To72:  15,
		domain.Room65To68:  5,
	}

	partnerMismatchPoints = map[domain.PartnerPreferences]int{
		domain.PartnerVeryDifferent: 15,
		domain.PartnerDifferent:     10,
	}

	beddingWeightPoints = map[domain.BeddingType]int{
		domain.BeddingHeavy:    10,
		domain.BeddingStandard: 5,
	}

	// No current solution means a bigger gap to close
	solutionGapPoints = map[domain.CurrentSolutions]int{
		domain.SolutionNone:  10,
		domain.SolutionFanAC: 7,
	}
)

// Severity thresholds, evaluated highest first
const (
	extremeThreshold  = 80
	severeThreshold   = 60
	moderateThreshold = 40
)

// ScoreThermal converts a thermal profile into a 0-100 discomfort score.
// Unset or unrecognised answers contribute nothing.
func ScoreThermal(answers domain.ThermalAnswers) int {
	return heatFrequencyPoints[answers.HeatFrequency] +
		roomTemperaturePoints[answers.RoomTemperature] +
		partnerMismatchPoints[answers.PartnerPreferences] +
		beddingWeightPoints[answers.BeddingType] +
		solutionGapPoints[answers.CurrentSolutions]
}

// SeverityFor buckets a thermal score
func SeverityFor(score int) domain.Severity {
	switch {
	case score >= extremeThreshold:
		return domain.SeverityExtreme
	case score >= severeThreshold:
		return domain.SeveritySevere
	case score >= moderateThreshold:
		return domain.SeverityModerate
	default:
		return domain.SeverityMild
	}
}

// EvaluateThermal scores a profile and derives its bucket and display label
func EvaluateThermal(answers domain.ThermalAnswers) domain.ThermalScore {
	score := ScoreThermal(answers)
	severity := SeverityFor(score)
	return domain.ThermalScore{
		Score:    score,
		Severity: severity,
		Label:    severity.Label(),
	}
}
