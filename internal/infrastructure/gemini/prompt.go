package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bettervitals/backend/internal/domain"
)

// Icon names the front end can render for action plan steps
var actionPlanIcons = []string{
	"glucose", "restaurant", "schedule", "fitness_center", "analytics", "science", "tips_and_updates",
}

const coolingProductContext = `Context about cooling products we recommend:
- Eight Sleep Pod 4 ($2,695): Best for severe hot sleepers - active water cooling, dual-zone, tracks sleep
- Eight Sleep Pod 5 ($3,295): Latest tech, enhanced AI algorithms
- ChiliPad Cube ($699): Budget-friendly water-based cooling, works with any mattress
- Sleep Number Climate Cool ($2,299): Mainstream option with ceramic gel cooling`

const monitorProductContext = `Context about CGM products we recommend:
- Levels Health ($199/mo): Best for self-directed biohackers and athletes who want detailed glucose insights
- Nutrisense ($225/mo): Best for those wanting 1:1 dietitian coaching and support
- Dexcom Stelo ($99/mo): Best for clinical accuracy seekers, FDA-cleared, no prescription needed
- Signos ($199/mo): Best for weight loss focused users with RD support
- Abbott Lingo ($49/mo): Best budget entry option with simplified "Lingo count" metric
- Lumen ($349 one-time): Non-invasive breath analysis alternative for those uncomfortable with sensors`

const writingRules = `WRITING STYLE RULES (follow strictly):
- No "testament to", "underscores", "highlights", "showcases"
- No "Not only X, but Y" constructions
- No em dashes for dramatic effect
- Use "is" and "are" instead of "serves as" or "stands as"
- Be specific, not vague ("eat fewer carbs at dinner" not "optimize your nutrition")
- Skip the cheerleading ("this could help" not "this exciting opportunity")
- No generic positive conclusions
- Write like you're texting a friend who asked for advice`

// Below this worthiness score the verdict is framed as optional
const lowWorthinessScore = 55

func healthPlanPrompt(req domain.HealthPlanRequest) (string, error) {
	answers := req.Answers
	if answers == nil {
		answers = map[string]interface{}{}
	}
	// encoding/json sorts map keys, so identical answers give identical prompts
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}

	var b strings.Builder
	b.WriteString("As a clinical longevity expert, analyze the following user assessment data and provide a \"Sleep Vitality Score\" and a detailed action plan.\n")
	fmt.Fprintf(&b, "User Data: %s\n\n", data)
	b.WriteString("Return a detailed health report in JSON format.\n")
	b.WriteString("Include:\n")
	b.WriteString("1. A score between 0-100.\n")
	b.WriteString("2. A category label (e.g., \"High Heat Retainer\", \"REM Deprived\").\n")
	b.WriteString("3. An efficiency percentage.\n")
	b.WriteString("4. A scientific summary of their profile.\n")
	b.WriteString("5. A 3-step action plan with behavioral fixes.\n")
	b.WriteString("6. Ensure the tone is analytical, scientific, and trustworthy.\n")
	return b.String(), nil
}

func hotSleeperPrompt(req domain.HotSleeperPlanRequest) string {
	a := req.Answers

	var b strings.Builder
	b.WriteString("As a sleep optimization expert specializing in thermal regulation, analyze this Hot Sleeper assessment data and provide personalized recommendations.\n\n")
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Hot Sleeper Score: %d/100 (%s)\n", req.Score, req.Severity)
	fmt.Fprintf(&b, "- Heat Frequency: %s\n", a.HeatFrequency)
	fmt.Fprintf(&b, "- Bedroom Temperature: %s\n", a.RoomTemperature)
	fmt.Fprintf(&b, "- Partner Preferences: %s\n", a.PartnerPreferences)
	fmt.Fprintf(&b, "- Current Bedding: %s\n", a.BeddingType)
	fmt.Fprintf(&b, "- Current Solutions: %s\n", a.CurrentSolutions)
	fmt.Fprintf(&b, "- Budget: %s\n\n", a.Budget)
	b.WriteString(coolingProductContext)
	b.WriteString("\n\nGenerate:\n")
	b.WriteString("1. A 2-3 sentence scientific summary explaining their thermal sleep profile and why they're experiencing heat issues\n")
	b.WriteString("2. A 3-step action plan with specific, actionable recommendations tailored to their score and budget\n\n")
	b.WriteString("The tone should be analytical, scientific, and trustworthy. Focus on sleep science and temperature regulation.\n")
	return b.String()
}

func cgmPrompt(req domain.CGMAssessmentRequest) string {
	a := req.Answers
	product := req.DisplayProduct()

	risks := make([]string, 0, a.RiskFactors.Len())
	for _, f := range a.RiskFactors.List() {
		risks = append(risks, string(f))
	}
	riskLine := strings.Join(risks, ", ")
	if riskLine == "" {
		riskLine = "None"
	}

	var b strings.Builder
	b.WriteString("As a metabolic health expert, analyze this CGM Worthiness Quiz assessment and provide personalized recommendations.\n\n")
	b.WriteString(writingRules)
	b.WriteString("\n\nUser Profile:\n")
	fmt.Fprintf(&b, "- Worthiness Score: %d/100 (%s)\n", req.Score, req.Label)
	fmt.Fprintf(&b, "- Primary Goal: %s\n", a.PrimaryGoal)
	fmt.Fprintf(&b, "- Risk Factors: %s\n", riskLine)
	fmt.Fprintf(&b, "- Diet Approach: %s\n", a.DietApproach)
	fmt.Fprintf(&b, "- Data Style Preference: %s\n", a.DataStyle)
	fmt.Fprintf(&b, "- Wearable Comfort Level: %s\n", a.WearableComfort)
	fmt.Fprintf(&b, "- Budget: %s\n", a.Budget)
	fmt.Fprintf(&b, "- Timeline/Commitment: %s\n\n", a.Timeline)
	fmt.Fprintf(&b, "Top Recommended Product: %s\n\n", product)
	b.WriteString(monitorProductContext)
	b.WriteString("\n\n")

	benefit := "would benefit them"
	if req.Score < lowWorthinessScore {
		b.WriteString("Note: This user scored lower on CGM worthiness. While still recommending products, emphasize that they may get less value from CGM tracking and suggest starting with entry-level options or alternatives.\n\n")
		benefit = "may be optional for them"
	}

	b.WriteString("Generate:\n")
	fmt.Fprintf(&b, "1. A 2-3 sentence verdict explaining why CGM tracking %s based on their specific profile\n", benefit)
	b.WriteString("2. A 3-step action plan with specific, actionable recommendations tailored to their goals and timeline\n")
	fmt.Fprintf(&b, "3. Three specific reasons why %s fits their needs (whyItFits array)\n\n", product)
	b.WriteString("The tone should be analytical, scientific, and trustworthy. Focus on metabolic health and personalized recommendations.\n")
	fmt.Fprintf(&b, "Use these Material Symbols icon names for actionPlan icons: %s\n", strings.Join(actionPlanIcons, ", "))
	return b.String()
}
