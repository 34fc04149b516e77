package models

// Language is a two-letter code for the languages the app ships in.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

// Direction is the text direction a language renders in.
type Direction string

const (
	DirectionRTL Direction = "rtl"
	DirectionLTR Direction = "ltr"
)

// ResolveLanguage maps a raw language code to a supported Language.
// Anything outside the exact set {ar, fr, en}, including the empty
// string, resolves to English.
func ResolveLanguage(code string) Language {
	switch Language(code) {
	case LanguageArabic, LanguageFrench, LanguageEnglish:
		return Language(code)
	default:
		return LanguageEnglish
	}
}

// TextDirection returns the rendering direction for a language.
// Arabic is right-to-left, everything else left-to-right.
func TextDirection(lang Language) Direction {
	if lang == LanguageArabic {
		return DirectionRTL
	}
	return DirectionLTR
}

// ChildProfile holds a child's story preferences. Every field is
// optional; zero values mean the field was not provided.
type ChildProfile struct {
	Name               string   `json:"name,omitempty"`
	Age                int      `json:"age,omitempty"`
	AgeRange           string   `json:"ageRange,omitempty"`
	PreferredThemes    []string `json:"preferredThemes,omitempty"`
	Sensitivities      []string `json:"sensitivities,omitempty"`
	FavoriteCharacters []string `json:"favoriteCharacters,omitempty"`
}

// QuestionnaireAnswers is the fixed set of onboarding answers.
type QuestionnaireAnswers struct {
	Mood                string   `json:"mood"`
	ResistanceToChange  string   `json:"resistanceToChange"`
	ThinkingStyle       string   `json:"thinkingStyle"`
	EnergyRecharge      string   `json:"energyRecharge"`
	FinancialStress     string   `json:"financialStress"`
	IncomeLevel         string   `json:"incomeLevel"`
	Priorities          []string `json:"priorities"`
	SleepQuality        string   `json:"sleepQuality"`
	ExerciseFrequency   string   `json:"exerciseFrequency"`
	SpiritualImportance string   `json:"spiritualImportance"`
}

// UserProfile is created once at onboarding completion and persisted
// until the user retakes the questionnaire or resets the app.
type UserProfile struct {
	Name         string               `json:"name,omitempty"`
	AgeGroup     string               `json:"ageGroup,omitempty"`
	HasChildren  bool                 `json:"hasChildren,omitempty"`
	Language     Language             `json:"language"`
	Answers      QuestionnaireAnswers `json:"answers"`
	ChildProfile *ChildProfile        `json:"childProfile,omitempty"`
}

type TimeBlock struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	FocusGoal   string `json:"focusGoal"`
	Priority    string `json:"priority"`
}

type NutritionTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type LearningTask struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	Duration     string `json:"duration"`
	ResourceType string `json:"resourceType"`
	Description  string `json:"description"`
}

type FinancialStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed,omitempty"`
}

type EntertainmentActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
}

type Supplication struct {
	ArabicText      string `json:"arabicText"`
	Transliteration string `json:"transliteration,omitempty"`
	Meaning         string `json:"meaning"`
	Context         string `json:"context"`
}

type KidsActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AgeRange    string `json:"ageRange"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
}

type TimeFocusSection struct {
	Title      string      `json:"title"`
	TimeBlocks []TimeBlock `json:"timeBlocks"`
}

type NutritionSection struct {
	Title string         `json:"title"`
	Tips  []NutritionTip `json:"tips"`
}

type LearningSection struct {
	Title string         `json:"title"`
	Tasks []LearningTask `json:"tasks"`
}

type FinanceSection struct {
	Title string          `json:"title"`
	Steps []FinancialStep `json:"steps"`
}

type EntertainmentSection struct {
	Title      string                  `json:"title"`
	Activities []EntertainmentActivity `json:"activities"`
}

type SpiritualSection struct {
	Title         string         `json:"title"`
	Supplications []Supplication `json:"supplications"`
}

type KidsSection struct {
	Title      string         `json:"title"`
	Activities []KidsActivity `json:"activities"`
}

// ProgramSections groups the six fixed sections of a daily program
// plus the optional kids section.
type ProgramSections struct {
	TimeAndFocus               TimeFocusSection     `json:"timeAndFocus"`
	NutritionAndEnergy         NutritionSection     `json:"nutritionAndEnergy"`
	LearningAndSelfDevelopment LearningSection      `json:"learningAndSelfDevelopment"`
	FinanceAndWisdom           FinanceSection       `json:"financeAndWisdom"`
	EntertainmentAndRecharge   EntertainmentSection `json:"entertainmentAndRecharge"`
	SpiritualContent           SpiritualSection     `json:"spiritualContent"`
	KidsContent                *KidsSection         `json:"kidsContent,omitempty"`
}

// DailyProgram is one generated day of content. Date is an ISO calendar
// day (no time component); a program is only valid on the local day it
// was generated.
type DailyProgram struct {
	Date              string          `json:"date"`
	Language          Language        `json:"language"`
	Greeting          string          `json:"greeting"`
	MotivationalQuote string          `json:"motivationalQuote"`
	Sections          ProgramSections `json:"sections"`
}
