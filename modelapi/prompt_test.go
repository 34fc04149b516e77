package modelapi

import (
	"strings"
	"testing"

	"mot3adev/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatChildProfileNil(t *testing.T) {
	assert.Equal(t, PROFILE_NOT_PROVIDED, FormatChildProfile(nil))
}

func TestFormatChildProfileEmpty(t *testing.T) {
	assert.Equal(t, PROFILE_EMPTY, FormatChildProfile(&models.ChildProfile{}))
}

func TestFormatChildProfileSingleField(t *testing.T) {
	got := FormatChildProfile(&models.ChildProfile{Age: 6})
	assert.Equal(t, "Age: 6", got)
}

func TestFormatChildProfileFull(t *testing.T) {
	profile := &models.ChildProfile{
		Name:               "Lina",
		Age:                6,
		AgeRange:           "5-7",
		PreferredThemes:    []string{"animals", "space"},
		FavoriteCharacters: []string{"a brave rabbit"},
		Sensitivities:      []string{"loud noises"},
	}

	got := FormatChildProfile(profile)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Name: Lina", lines[0])
	assert.Equal(t, "Age: 6", lines[1])
	assert.Equal(t, "Age range: 5-7", lines[2])
	assert.Equal(t, "Preferred themes: animals, space", lines[3])
	assert.Equal(t, "Favorite characters: a brave rabbit", lines[4])
	assert.Equal(t, "Sensitivities: loud noises", lines[5])
}

func TestBuildStoryPromptContainsStarterVerbatim(t *testing.T) {
	starter := `Once upon a time, a small fox said "hello"`
	prompt := BuildStoryPrompt(starter, nil, models.LanguageEnglish)

	assert.Contains(t, prompt, STORY_ROLE_PROMPT)
	assert.Contains(t, prompt, starter)
	assert.Contains(t, prompt, PROFILE_NOT_PROVIDED)
	assert.Contains(t, prompt, "Respond only in the language code provided: en.")
}

func TestBuildStoryPromptUsesResolvedLanguage(t *testing.T) {
	prompt := BuildStoryPrompt("start", nil, models.ResolveLanguage("nope"))
	assert.Contains(t, prompt, "language code provided: en.")

	prompt = BuildStoryPrompt("start", nil, models.ResolveLanguage("ar"))
	assert.Contains(t, prompt, "language code provided: ar.")
}

func TestBuildProgramPrompt(t *testing.T) {
	profile := &models.UserProfile{
		Name: "Sami",
		Answers: models.QuestionnaireAnswers{
			Mood:                "stressed",
			ResistanceToChange:  "open",
			ThinkingStyle:       "balanced",
			EnergyRecharge:      "alone",
			FinancialStress:     "moderate",
			IncomeLevel:         "medium",
			Priorities:          []string{"health", "family"},
			SleepQuality:        "fair",
			ExerciseFrequency:   "weekly",
			SpiritualImportance: "important",
		},
		HasChildren: true,
	}

	prompt := BuildProgramPrompt(profile, models.LanguageFrench)

	assert.Contains(t, prompt, "Name: Sami")
	assert.Contains(t, prompt, "Mood today: stressed")
	assert.Contains(t, prompt, "Priorities: health, family")
	assert.Contains(t, prompt, "Has children: yes")
	assert.Contains(t, prompt, "language code provided: fr.")
}
