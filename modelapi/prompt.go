package modelapi

import (
	"fmt"
	"strings"

	"mot3adev/models"
)

// FormatChildProfile renders a child profile as one "Label: value" line
// per populated field, in a fixed order. A nil profile and a profile
// with nothing filled in each get their own fallback line.
func FormatChildProfile(profile *models.ChildProfile) string {
	if profile == nil {
		return PROFILE_NOT_PROVIDED
	}

	var parts []string

	if profile.Name != "" {
		parts = append(parts, "Name: "+profile.Name)
	}
	if profile.Age != 0 {
		parts = append(parts, fmt.Sprintf("Age: %d", profile.Age))
	}
	if profile.AgeRange != "" {
		parts = append(parts, "Age range: "+profile.AgeRange)
	}
	if len(profile.PreferredThemes) > 0 {
		parts = append(parts, "Preferred themes: "+strings.Join(profile.PreferredThemes, ", "))
	}
	if len(profile.FavoriteCharacters) > 0 {
		parts = append(parts, "Favorite characters: "+strings.Join(profile.FavoriteCharacters, ", "))
	}
	if len(profile.Sensitivities) > 0 {
		parts = append(parts, "Sensitivities: "+strings.Join(profile.Sensitivities, ", "))
	}

	if len(parts) == 0 {
		return PROFILE_EMPTY
	}
	return strings.Join(parts, "\n")
}

// BuildStoryPrompt assembles the full instruction sent to the model for
// a story continuation. The starter is interpolated verbatim.
func BuildStoryPrompt(storyStarter string, profile *models.ChildProfile, language models.Language) string {
	profileContext := FormatChildProfile(profile)

	return STORY_ROLE_PROMPT + "\n\n" +
		"- Continue the story starting from: \"" + storyStarter + "\".\n" +
		"- Use these child preferences when shaping the narrative:\n" + profileContext + "\n" +
		"- Keep the tone calm, soothing, and imaginative.\n" +
		"- Avoid anything frightening or overly energetic.\n" +
		"- Keep paragraphs short and easy to read aloud.\n" +
		"- Write 3-5 short paragraphs maximum.\n" +
		fmt.Sprintf("- Respond only in the language code provided: %s.", language)
}

// BuildProgramPrompt renders the questionnaire answers as labelled lines
// and asks for one day of structured content in the given language.
func BuildProgramPrompt(profile *models.UserProfile, language models.Language) string {
	a := profile.Answers

	lines := []string{
		"Mood today: " + a.Mood,
		"Openness to change: " + a.ResistanceToChange,
		"Thinking style: " + a.ThinkingStyle,
		"Recharges energy: " + a.EnergyRecharge,
		"Financial stress: " + a.FinancialStress,
		"Income level: " + a.IncomeLevel,
		"Priorities: " + strings.Join(a.Priorities, ", "),
		"Sleep quality: " + a.SleepQuality,
		"Exercise frequency: " + a.ExerciseFrequency,
		"Importance of spirituality: " + a.SpiritualImportance,
	}
	if profile.Name != "" {
		lines = append([]string{"Name: " + profile.Name}, lines...)
	}
	if profile.HasChildren {
		lines = append(lines, "Has children: yes")
	}

	return "Build today's personalized program for this user:\n" +
		strings.Join(lines, "\n") + "\n\n" +
		fmt.Sprintf("Write all user-facing text only in the language code provided: %s.", language)
}
