package modelapi

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	programSchemaOnce sync.Once
	programSchema     *jsonschema.Schema
	programSchemaErr  error
)

func titledList(itemFields map[string]any, itemRequired []string, listKey string) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"title", listKey},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			listKey: map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":       "object",
					"required":   toAnySlice(itemRequired),
					"properties": itemFields,
				},
			},
		},
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func str() map[string]any { return map[string]any{"type": "string"} }

// programSchemaDefinition describes the payload the model must produce
// for a daily program. Date and language are stamped by the server and
// are not part of the generated object.
func programSchemaDefinition() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"greeting", "motivationalQuote", "sections"},
		"properties": map[string]any{
			"greeting":          str(),
			"motivationalQuote": str(),
			"sections": map[string]any{
				"type": "object",
				"required": []any{
					"timeAndFocus", "nutritionAndEnergy", "learningAndSelfDevelopment",
					"financeAndWisdom", "entertainmentAndRecharge", "spiritualContent",
				},
				"properties": map[string]any{
					"timeAndFocus": titledList(map[string]any{
						"startTime": str(), "endTime": str(), "description": str(),
						"focusGoal": str(), "priority": map[string]any{"enum": []any{"high", "medium", "low"}},
					}, []string{"startTime", "endTime", "description", "focusGoal", "priority"}, "timeBlocks"),
					"nutritionAndEnergy": titledList(map[string]any{
						"title": str(), "description": str(), "icon": str(),
					}, []string{"title", "description"}, "tips"),
					"learningAndSelfDevelopment": titledList(map[string]any{
						"topic": str(), "difficulty": str(), "duration": str(),
						"resourceType": str(), "description": str(),
					}, []string{"topic", "difficulty", "duration", "resourceType", "description"}, "tasks"),
					"financeAndWisdom": titledList(map[string]any{
						"title": str(), "description": str(), "completed": map[string]any{"type": "boolean"},
					}, []string{"title", "description"}, "steps"),
					"entertainmentAndRecharge": titledList(map[string]any{
						"title": str(), "description": str(), "type": str(), "duration": str(),
					}, []string{"title", "description", "type", "duration"}, "activities"),
					"spiritualContent": titledList(map[string]any{
						"arabicText": str(), "transliteration": str(), "meaning": str(), "context": str(),
					}, []string{"arabicText", "meaning", "context"}, "supplications"),
					"kidsContent": titledList(map[string]any{
						"title": str(), "description": str(), "ageRange": str(), "type": str(), "duration": str(),
					}, []string{"title", "description", "ageRange", "type", "duration"}, "activities"),
				},
			},
		},
	}
}

func compiledProgramSchema() (*jsonschema.Schema, error) {
	programSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the
		// definition through encoding/json first.
		defBytes, err := json.Marshal(programSchemaDefinition())
		if err != nil {
			programSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			programSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://daily-program.json", defParsed); err != nil {
			programSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		programSchema, programSchemaErr = c.Compile("schema://daily-program.json")
	})
	return programSchema, programSchemaErr
}

// ValidateProgramJSON checks that raw is a well-formed generated
// program payload. The raw bytes are returned untouched on success.
func ValidateProgramJSON(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledProgramSchema()
	if err != nil {
		return fmt.Errorf("compile program schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("program payload failed validation: %w", err)
	}
	return nil
}
