package gemini

import "google.golang.org/genai"

func actionPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"icon":        {Type: genai.TypeString},
			},
			Required: []string{"title", "description", "icon"},
		},
	}
}

func healthPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":      {Type: genai.TypeNumber},
			"label":      {Type: genai.TypeString},
			"efficiency": {Type: genai.TypeString},
			"summary":    {Type: genai.TypeString},
			"actionPlan": actionPlanSchema(),
		},
		Required: []string{"score", "label", "efficiency", "summary", "actionPlan"},
	}
}

func hotSleeperSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":    {Type: genai.TypeString},
			"actionPlan": actionPlanSchema(),
		},
		Required: []string{"summary", "actionPlan"},
	}
}

func cgmSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"verdict":    {Type: genai.TypeString},
			"actionPlan": actionPlanSchema(),
			"whyItFits": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"verdict", "actionPlan", "whyItFits"},
	}
}
