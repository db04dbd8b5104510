package domain

// Thermal (Hot Sleeper) answer options
type (
	HeatFrequency      string
	RoomTemperature    string
	PartnerPreferences string
	BeddingType        string
	CurrentSolutions   string
	ThermalBudget      string
)

const (
	HeatNever      HeatFrequency = "Never"
	HeatRarely     HeatFrequency = "Rarely"
	HeatOften      HeatFrequency = "Often"
	HeatEveryNight HeatFrequency = "Every night"

	RoomBelow65 RoomTemperature = "Below 65F"
	Room65To68  RoomTemperature = "65-68F"
	Room68To72  RoomTemperature = "68-72F"
	RoomAbove72 RoomTemperature = "Above 72F"

	PartnerNone          PartnerPreferences = "No partner"
	PartnerSame          PartnerPreferences = "Same preferences"
	PartnerDifferent     PartnerPreferences = "Different"
	PartnerVeryDifferent PartnerPreferences = "Very different"

	BeddingHeavy       BeddingType = "Heavy comforter"
	BeddingStandard    BeddingType = "Standard"
	BeddingLightweight BeddingType = "Lightweight"
	BeddingCooling     BeddingType = "Cooling sheets"

	SolutionNone          CurrentSolutions = "None"
	SolutionFanAC         CurrentSolutions = "Fan/AC only"
	SolutionPillowsPads   CurrentSolutions = "Cooling pillows/pads"
	SolutionActiveCooling CurrentSolutions = "Active cooling system"

	BudgetUnder100  ThermalBudget = "Under $100"
	Budget100To500  ThermalBudget = "$100-500"
	Budget500To1500 ThermalBudget = "$500-1500"
	Budget1500Plus  ThermalBudget = "$1500+"
	BudgetNoLimit   ThermalBudget = "No limit"
)

// ThermalAnswers is the Hot Sleeper quiz profile. Empty fields are unset.
type ThermalAnswers struct {
	HeatFrequency      HeatFrequency      `json:"heatFrequency"`
	RoomTemperature    RoomTemperature    `json:"roomTemperature"`
	PartnerPreferences PartnerPreferences `json:"partnerPreferences"`
	BeddingType        BeddingType        `json:"beddingType"`
	CurrentSolutions   CurrentSolutions   `json:"currentSolutions"`
	Budget             ThermalBudget      `json:"budget"`
}

// ThermalSteps lists the answer fields each quiz page requires before continuing
var ThermalSteps = [][]string{
	{"heatFrequency", "roomTemperature"},
	{"partnerPreferences", "beddingType"},
	{"currentSolutions", "budget"},
}

func (a ThermalAnswers) fieldSet(name string) bool {
	switch name {
	case "heatFrequency":
		return a.HeatFrequency != ""
	case "roomTemperature":
		return a.RoomTemperature != ""
	case "partnerPreferences":
		return a.PartnerPreferences != ""
	case "beddingType":
		return a.BeddingType != ""
	case "currentSolutions":
		return a.CurrentSolutions != ""
	case "budget":
		return a.Budget != ""
	}
	return false
}

// StepComplete reports whether every field on the given 1-based page is set
func (a ThermalAnswers) StepComplete(step int) bool {
	return stepComplete(ThermalSteps, step, a.fieldSet)
}

// Missing returns the names of unset fields in page order
func (a ThermalAnswers) Missing() []string {
	return missingFields(ThermalSteps, a.fieldSet)
}

// Metabolic (CGM worthiness) answer options
type (
	PrimaryGoal     string
	RiskFactor      string
	DietApproach    string
	DataStyle       string
	WearableComfort string
	MonitorBudget   string
	Timeline        string
)

const (
	GoalMetabolicHealth     PrimaryGoal = "metabolic-health"
	GoalWeightLoss          PrimaryGoal = "weight-loss"
	GoalAthleticPerformance PrimaryGoal = "athletic-performance"
	GoalGeneralWellness     PrimaryGoal = "general-wellness"
	GoalCuriosity           PrimaryGoal = "curiosity"

	RiskPreDiabetic   RiskFactor = "pre-diabetic"
	RiskFamilyHistory RiskFactor = "family-history"
	RiskPCOS          RiskFactor = "pcos-insulin-resistance"
	RiskObesity       RiskFactor = "obesity"
	RiskEnergyCrashes RiskFactor = "energy-crashes"
	RiskNone          RiskFactor = "none"

	DietLowCarb            DietApproach = "low-carb"
	DietCalorieRestriction DietApproach = "calorie-restriction"
	DietIntuitive          DietApproach = "intuitive"
	DietTimeRestricted     DietApproach = "time-restricted"
	DietNoSpecific         DietApproach = "no-specific"

	DataDeepDiver      DataStyle = "deep-diver"
	DataSelfDirected   DataStyle = "self-directed"
	DataGuided         DataStyle = "guided"
	DataSimpleInsights DataStyle = "simple-insights"

	ComfortVeryComfortable WearableComfort = "very-comfortable"
	ComfortComfortable     WearableComfort = "comfortable"
	ComfortNeutral         WearableComfort = "neutral"
	ComfortHesitant        WearableComfort = "hesitant"
	ComfortUncomfortable   WearableComfort = "uncomfortable"

	MonitorBudgetLow     MonitorBudget = "budget"
	MonitorBudgetMid     MonitorBudget = "mid-range"
	MonitorBudgetPremium MonitorBudget = "premium"
	MonitorBudgetNoLimit MonitorBudget = "no-limit"

	TimelineLongTerm   Timeline = "long-term"
	Timeline3To6Months Timeline = "3-6-months"
	Timeline1To3Months Timeline = "1-3-months"
	TimelineTrialOnly  Timeline = "trial-only"
	TimelineUndecided  Timeline = "undecided"
)

// MetabolicAnswers is the CGM worthiness quiz profile. Empty fields are unset.
type MetabolicAnswers struct {
	PrimaryGoal     PrimaryGoal     `json:"primaryGoal"`
	RiskFactors     RiskFactorSet   `json:"riskFactors"`
	DietApproach    DietApproach    `json:"dietApproach"`
	DataStyle       DataStyle       `json:"dataStyle"`
	WearableComfort WearableComfort `json:"wearableComfort"`
	Budget          MonitorBudget   `json:"budget"`
	Timeline        Timeline        `json:"timeline"`
}

// MetabolicSteps lists the answer fields each quiz page requires before continuing
var MetabolicSteps = [][]string{
	{"primaryGoal"},
	{"riskFactors"},
	{"dietApproach"},
	{"dataStyle"},
	{"wearableComfort"},
	{"budget"},
	{"timeline"},
}

func (a MetabolicAnswers) fieldSet(name string) bool {
	switch name {
	case "primaryGoal":
		return a.PrimaryGoal != ""
	case "riskFactors":
		return a.RiskFactors.Len() > 0
	case "dietApproach":
		return a.DietApproach != ""
	case "dataStyle":
		return a.DataStyle != ""
	case "wearableComfort":
		return a.WearableComfort != ""
	case "budget":
		return a.Budget != ""
	case "timeline":
		return a.Timeline != ""
	}
	return false
}

// StepComplete reports whether every field on the given 1-based page is set
func (a MetabolicAnswers) StepComplete(step int) bool {
	return stepComplete(MetabolicSteps, step, a.fieldSet)
}

// Missing returns the names of unset fields in page order
func (a MetabolicAnswers) Missing() []string {
	return missingFields(MetabolicSteps, a.fieldSet)
}

func stepComplete(steps [][]string, step int, isSet func(string) bool) bool {
	if step < 1 || step > len(steps) {
		return false
	}
	for _, field := range steps[step-1] {
		if !isSet(field) {
			return false
		}
	}
	return true
}

func missingFields(steps [][]string, isSet func(string) bool) []string {
	var missing []string
	for _, page := range steps {
		for _, field := range page {
			if !isSet(field) {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// Severity is the Hot Sleeper severity bucket
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// Label returns the display label for the bucket
func (s Severity) Label() string {
	switch s {
	case SeverityExtreme:
		return "Extreme Hot Sleeper"
	case SeveritySevere:
		return "Severe Hot Sleeper"
	case SeverityModerate:
		return "Moderate Hot Sleeper"
	default:
		return "Mild Hot Sleeper"
	}
}

// WorthinessLabel is the CGM worthiness bucket
type WorthinessLabel string

const (
	LabelReady           WorthinessLabel = "CGM READY"
	LabelGoodCandidate   WorthinessLabel = "GOOD CANDIDATE"
	LabelOptional        WorthinessLabel = "OPTIONAL"
	LabelAlternativePath WorthinessLabel = "ALTERNATIVE PATH"
)

// ThermalScore is a scored Hot Sleeper profile
type ThermalScore struct {
	Score    int      `json:"score"`
	Severity Severity `json:"severity"`
	Label    string   `json:"label"`
}

// WorthinessScore is a scored CGM worthiness profile
type WorthinessScore struct {
	Score int             `json:"score"`
	Label WorthinessLabel `json:"label"`
}

// MatchResult is one ranked catalog candidate
type MatchResult struct {
	ProductID  string `json:"productId"`
	MatchScore int    `json:"matchScore"`
	BestFor    string `json:"bestFor"`
}
