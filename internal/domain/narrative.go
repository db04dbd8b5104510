package domain

// ActionStep is one item of a generated action plan
type ActionStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// HealthPlanRequest is the free-form sleep vitality questionnaire
type HealthPlanRequest struct {
	Answers map[string]interface{} `json:"answers"`
}

// HealthPlan is the generated sleep vitality report
type HealthPlan struct {
	Score      float64      `json:"score"`
	Label      string       `json:"label"`
	Efficiency string       `json:"efficiency"`
	Summary    string       `json:"summary"`
	ActionPlan []ActionStep `json:"actionPlan"`
}

// HotSleeperPlanRequest carries a scored thermal profile to the narrative generator
type HotSleeperPlanRequest struct {
	Answers  ThermalAnswers `json:"answers"`
	Score    int            `json:"score"`
	Severity Severity       `json:"severity"`
}

// HotSleeperNarrative is the generated copy for a thermal profile
type HotSleeperNarrative struct {
	Summary    string       `json:"summary"`
	ActionPlan []ActionStep `json:"actionPlan"`
}

// CGMAssessmentRequest carries a scored metabolic profile and its top match
type CGMAssessmentRequest struct {
	Answers        MetabolicAnswers `json:"answers"`
	Score          int              `json:"score"`
	Label          WorthinessLabel  `json:"label"`
	PrimaryProduct string           `json:"primaryProduct"`
	ProductName    string           `json:"productName,omitempty"`
}

// DisplayProduct returns the product name, falling back to its id
func (r CGMAssessmentRequest) DisplayProduct() string {
	if r.ProductName != "" {
		return r.ProductName
	}
	return r.PrimaryProduct
}

// CGMNarrative is the generated copy for a metabolic profile
type CGMNarrative struct {
	Verdict    string       `json:"verdict"`
	ActionPlan []ActionStep `json:"actionPlan"`
	WhyItFits  []string     `json:"whyItFits"`
}

// HotSleeperReport merges the thermal score, narrative and recommended gear
type HotSleeperReport struct {
	ThermalScore
	Summary                string       `json:"summary"`
	ActionPlan             []ActionStep `json:"actionPlan"`
	ProductRecommendations []Product    `json:"productRecommendations"`
}

// RankedProduct is a catalog product with its match score
type RankedProduct struct {
	Product    Product  `json:"product"`
	MatchScore int      `json:"matchScore"`
	BestFor    string   `json:"bestFor,omitempty"`
	WhyItFits  []string `json:"whyItFits,omitempty"`
}

// CGMReport merges the worthiness score, narrative and ranked monitors
type CGMReport struct {
	WorthinessScore       int             `json:"worthinessScore"`
	WorthinessLabel       WorthinessLabel `json:"worthinessLabel"`
	Verdict               string          `json:"verdict"`
	PrimaryRecommendation *RankedProduct  `json:"primaryRecommendation,omitempty"`
	Alternatives          []RankedProduct `json:"alternatives"`
	ActionPlan            []ActionStep    `json:"actionPlan"`
}
