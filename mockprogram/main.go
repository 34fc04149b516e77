// Package mockprogram builds the deterministic fallback program used
// when the generation backend is unavailable. Content is fixed per
// language; the questionnaire answers select the kids section.
package mockprogram

import (
	"time"

	"mot3adev/models"
)

// pick returns the variant for the language, falling back to English.
func pick(lang models.Language, ar, fr, en string) string {
	switch lang {
	case models.LanguageArabic:
		return ar
	case models.LanguageFrench:
		return fr
	default:
		return en
	}
}

// Build assembles today's fallback program.
func Build(lang models.Language, answers models.QuestionnaireAnswers) models.DailyProgram {
	return BuildAt(lang, answers, time.Now())
}

// BuildAt is Build with an explicit clock.
func BuildAt(lang models.Language, answers models.QuestionnaireAnswers, now time.Time) models.DailyProgram {
	program := models.DailyProgram{
		Date:     now.Format("2006-01-02"),
		Language: lang,
		Greeting: pick(lang,
			"صباح الخير! إليك برنامجك المخصص لهذا اليوم",
			"Bonjour! Voici votre programme personnalisé pour aujourd'hui",
			"Good morning! Here's your personalized program for today"),
		MotivationalQuote: pick(lang,
			"كل يوم هو فرصة جديدة للنمو والتحسن",
			"Chaque jour est une nouvelle opportunité de croître",
			"Every day is a new opportunity to grow and improve"),
		Sections: models.ProgramSections{
			TimeAndFocus: models.TimeFocusSection{
				Title: pick(lang, "إدارة الوقت والتركيز", "Gestion du temps", "Time & Focus"),
				TimeBlocks: []models.TimeBlock{
					{
						StartTime:   "06:00",
						EndTime:     "07:00",
						Description: pick(lang, "وقت الصباح الهادئ", "Temps calme du matin", "Quiet morning time"),
						FocusGoal:   pick(lang, "تأمل وتخطيط", "Méditation et planification", "Meditation and planning"),
						Priority:    "high",
					},
					{
						StartTime:   "09:00",
						EndTime:     "12:00",
						Description: pick(lang, "وقت العمل المركز", "Temps de travail concentré", "Focused work time"),
						FocusGoal:   pick(lang, "تركيز عميق", "Concentration profonde", "Deep focus"),
						Priority:    "high",
					},
				},
			},
			NutritionAndEnergy: models.NutritionSection{
				Title: pick(lang, "التغذية والطاقة", "Nutrition et énergie", "Nutrition & Energy"),
				Tips: []models.NutritionTip{
					{
						Title:       pick(lang, "ابدأ بالماء", "Commencez par l'eau", "Start with water"),
						Description: pick(lang, "اشرب كوباً من الماء عند الاستيقاظ", "Buvez un verre d'eau au réveil", "Drink a glass of water when you wake up"),
					},
				},
			},
			LearningAndSelfDevelopment: models.LearningSection{
				Title: pick(lang, "التعلم والتطوير", "Apprentissage", "Learning"),
				Tasks: []models.LearningTask{
					{
						Topic:        pick(lang, "قراءة مقال", "Lire un article", "Read an article"),
						Difficulty:   "easy",
						Duration:     "20 min",
						ResourceType: "article",
						Description:  pick(lang, "اقرأ مقالاً في مجال اهتمامك", "Lisez un article dans votre domaine", "Read an article in your field"),
					},
				},
			},
			FinanceAndWisdom: models.FinanceSection{
				Title: pick(lang, "الحكمة المالية", "Sagesse financière", "Financial Wisdom"),
				Steps: []models.FinancialStep{
					{
						Title:       pick(lang, "راجع ميزانيتك", "Révisez votre budget", "Review your budget"),
						Description: pick(lang, "خصص 10 دقائق لمراجعة مصاريفك", "Consacrez 10 minutes à vos dépenses", "Spend 10 minutes reviewing your expenses"),
					},
				},
			},
			EntertainmentAndRecharge: models.EntertainmentSection{
				Title: pick(lang, "الترفيه والراحة", "Divertissement", "Entertainment"),
				Activities: []models.EntertainmentActivity{
					{
						Title:       pick(lang, "مشي قصير", "Courte promenade", "Short walk"),
						Description: pick(lang, "امشِ لمدة 15 دقيقة في الهواء الطلق", "Marchez 15 minutes en plein air", "Walk for 15 minutes outdoors"),
						Type:        "solo",
						Duration:    "15 min",
					},
				},
			},
			SpiritualContent: models.SpiritualSection{
				Title: pick(lang, "المحتوى الروحي", "Contenu spirituel", "Spiritual Content"),
				Supplications: []models.Supplication{
					{
						ArabicText:      "اللَّهُمَّ إِنِّي أَسْأَلُكَ عِلْمًا نَافِعًا وَرِزْقًا طَيِّبًا وَعَمَلًا مُتَقَبَّلًا",
						Transliteration: "Allahumma inni as'aluka ilman nafi'an wa rizqan tayyiban wa amalan mutaqabbalan",
						Meaning: pick(lang,
							"دعاء طلب العلم النافع والرزق الطيب",
							"Ô Allah, je Te demande une science bénéfique, une subsistance pure et des œuvres agréées",
							"O Allah, I ask You for beneficial knowledge, pure sustenance, and accepted deeds"),
						Context: pick(lang, "دعاء الصباح", "Invocation du matin", "Morning supplication"),
					},
				},
			},
		},
	}

	if hasKidsPriority(answers) {
		program.Sections.KidsContent = &models.KidsSection{
			Title: pick(lang, "أنشطة الأطفال", "Activités pour enfants", "Kids Activities"),
			Activities: []models.KidsActivity{
				{
					Title:       pick(lang, "قصة قبل النوم", "Histoire du soir", "Bedtime story"),
					Description: pick(lang, "اقرأ قصة هادئة مع طفلك", "Lisez une histoire calme avec votre enfant", "Read a calm story with your child"),
					AgeRange:    "3-8",
					Type:        "entertainment",
					Duration:    "15 min",
				},
			},
		}
	}

	return program
}

func hasKidsPriority(answers models.QuestionnaireAnswers) bool {
	for _, p := range answers.Priorities {
		if p == "family" || p == "kids" {
			return true
		}
	}
	return false
}
