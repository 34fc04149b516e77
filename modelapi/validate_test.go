package modelapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProgramPayload() map[string]any {
	return map[string]any{
		"greeting":          "Good morning!",
		"motivationalQuote": "Small steps add up.",
		"sections": map[string]any{
			"timeAndFocus": map[string]any{
				"title": "Time & Focus",
				"timeBlocks": []any{map[string]any{
					"startTime": "06:00", "endTime": "07:00",
					"description": "Quiet morning", "focusGoal": "Planning", "priority": "high",
				}},
			},
			"nutritionAndEnergy": map[string]any{
				"title": "Nutrition",
				"tips":  []any{map[string]any{"title": "Water first", "description": "Drink a glass of water"}},
			},
			"learningAndSelfDevelopment": map[string]any{
				"title": "Learning",
				"tasks": []any{map[string]any{
					"topic": "Read an article", "difficulty": "easy", "duration": "20 min",
					"resourceType": "article", "description": "Pick a topic you enjoy",
				}},
			},
			"financeAndWisdom": map[string]any{
				"title": "Finance",
				"steps": []any{map[string]any{"title": "Review budget", "description": "Ten minutes"}},
			},
			"entertainmentAndRecharge": map[string]any{
				"title": "Recharge",
				"activities": []any{map[string]any{
					"title": "Short walk", "description": "Outdoors", "type": "solo", "duration": "15 min",
				}},
			},
			"spiritualContent": map[string]any{
				"title": "Spiritual",
				"supplications": []any{map[string]any{
					"arabicText": "دعاء", "meaning": "A supplication", "context": "Morning",
				}},
			},
		},
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestValidateProgramJSONAccepts(t *testing.T) {
	assert.NoError(t, ValidateProgramJSON(mustJSON(t, validProgramPayload())))
}

func TestValidateProgramJSONRejectsMissingSection(t *testing.T) {
	payload := validProgramPayload()
	sections := payload["sections"].(map[string]any)
	delete(sections, "spiritualContent")

	assert.Error(t, ValidateProgramJSON(mustJSON(t, payload)))
}

func TestValidateProgramJSONRejectsBadPriority(t *testing.T) {
	payload := validProgramPayload()
	block := payload["sections"].(map[string]any)["timeAndFocus"].(map[string]any)["timeBlocks"].([]any)[0].(map[string]any)
	block["priority"] = "urgent"

	assert.Error(t, ValidateProgramJSON(mustJSON(t, payload)))
}

func TestValidateProgramJSONRejectsInvalidJSON(t *testing.T) {
	assert.Error(t, ValidateProgramJSON(json.RawMessage(`{not json`)))
}

func TestValidateProgramJSONAllowsKidsContent(t *testing.T) {
	payload := validProgramPayload()
	sections := payload["sections"].(map[string]any)
	sections["kidsContent"] = map[string]any{
		"title": "Kids",
		"activities": []any{map[string]any{
			"title": "Bedtime story", "description": "Read together",
			"ageRange": "3-8", "type": "entertainment", "duration": "15 min",
		}},
	}

	assert.NoError(t, ValidateProgramJSON(mustJSON(t, payload)))
}
