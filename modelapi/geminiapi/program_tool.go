package geminiapi

import (
	"google.golang.org/genai"
)

// dailyProgramTool declares the forced function the model fills in with
// one day of program content. Date and language are stamped server-side
// and are not part of the declaration.
func dailyProgramTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        programFunctionName,
			Description: "Generate one personalized daily program covering time management, nutrition, learning, finance, entertainment, and spiritual content",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"greeting": {
						Type:        genai.TypeString,
						Description: "A warm one-sentence greeting for the user, in the requested language",
					},
					"motivationalQuote": {
						Type:        genai.TypeString,
						Description: "A short motivational quote for the day, in the requested language",
					},
					"sections": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"timeAndFocus": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString, Description: "Section title in the requested language"},
									"timeBlocks": {
										Type:        genai.TypeArray,
										Description: "2-4 time blocks covering the user's day",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"startTime":   {Type: genai.TypeString, Description: "24h clock, e.g. '06:00'"},
												"endTime":     {Type: genai.TypeString, Description: "24h clock, e.g. '07:00'"},
												"description": {Type: genai.TypeString},
												"focusGoal":   {Type: genai.TypeString},
												"priority": {
													Type: genai.TypeString,
													Enum: []string{"high", "medium", "low"},
												},
											},
											Required: []string{"startTime", "endTime", "description", "focusGoal", "priority"},
										},
									},
								},
								Required: []string{"title", "timeBlocks"},
							},
							"nutritionAndEnergy": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"tips": {
										Type:        genai.TypeArray,
										Description: "1-3 practical nutrition tips",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"title":       {Type: genai.TypeString},
												"description": {Type: genai.TypeString},
											},
											Required: []string{"title", "description"},
										},
									},
								},
								Required: []string{"title", "tips"},
							},
							"learningAndSelfDevelopment": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"tasks": {
										Type:        genai.TypeArray,
										Description: "1-2 learning tasks matched to the user's priorities",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"topic": {Type: genai.TypeString},
												"difficulty": {
													Type: genai.TypeString,
													Enum: []string{"easy", "medium", "challenging"},
												},
												"duration": {Type: genai.TypeString, Description: "e.g. '20 min'"},
												"resourceType": {
													Type: genai.TypeString,
													Enum: []string{"article", "book", "video", "podcast", "exercise"},
												},
												"description": {Type: genai.TypeString},
											},
											Required: []string{"topic", "difficulty", "duration", "resourceType", "description"},
										},
									},
								},
								Required: []string{"title", "tasks"},
							},
							"financeAndWisdom": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"steps": {
										Type:        genai.TypeArray,
										Description: "1-2 small financial steps sized to the user's stress and income answers",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"title":       {Type: genai.TypeString},
												"description": {Type: genai.TypeString},
											},
											Required: []string{"title", "description"},
										},
									},
								},
								Required: []string{"title", "steps"},
							},
							"entertainmentAndRecharge": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"activities": {
										Type:        genai.TypeArray,
										Description: "1-2 recharge activities matching how the user recharges energy",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"title":       {Type: genai.TypeString},
												"description": {Type: genai.TypeString},
												"type": {
													Type: genai.TypeString,
													Enum: []string{"solo", "social", "creative", "relaxation"},
												},
												"duration": {Type: genai.TypeString},
											},
											Required: []string{"title", "description", "type", "duration"},
										},
									},
								},
								Required: []string{"title", "activities"},
							},
							"spiritualContent": {
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"supplications": {
										Type:        genai.TypeArray,
										Description: "1-2 supplications with meaning and context",
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"arabicText":      {Type: genai.TypeString, Description: "The supplication in Arabic script"},
												"transliteration": {Type: genai.TypeString},
												"meaning":         {Type: genai.TypeString, Description: "Meaning in the requested language"},
												"context":         {Type: genai.TypeString, Description: "When this supplication is said"},
											},
											Required: []string{"arabicText", "meaning", "context"},
										},
									},
								},
								Required: []string{"title", "supplications"},
							},
							"kidsContent": {
								Type:        genai.TypeObject,
								Description: "Only include when the user has children",
								Properties: map[string]*genai.Schema{
									"title": {Type: genai.TypeString},
									"activities": {
										Type: genai.TypeArray,
										Items: &genai.Schema{
											Type: genai.TypeObject,
											Properties: map[string]*genai.Schema{
												"title":       {Type: genai.TypeString},
												"description": {Type: genai.TypeString},
												"ageRange":    {Type: genai.TypeString},
												"type": {
													Type: genai.TypeString,
													Enum: []string{"educational", "creative", "physical", "entertainment"},
												},
												"duration": {Type: genai.TypeString},
											},
											Required: []string{"title", "description", "ageRange", "type", "duration"},
										},
									},
								},
								Required: []string{"title", "activities"},
							},
						},
						Required: []string{
							"timeAndFocus", "nutritionAndEnergy", "learningAndSelfDevelopment",
							"financeAndWisdom", "entertainmentAndRecharge", "spiritualContent",
						},
					},
				},
				Required: []string{"greeting", "motivationalQuote", "sections"},
			},
		}},
	}
}
