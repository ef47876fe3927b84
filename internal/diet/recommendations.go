package diet

import (
	"go.uber.org/zap"

	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	maxRecommendations = 8
	// age assumed when the profile has none
	defaultAge = 25
)

var goalAdvice = map[types.Goal][]string{
	types.GoalWeightLoss: {
		"Focus on high-protein meals to preserve muscle mass during weight loss",
		"Include fiber-rich foods to increase satiety and reduce overall calorie intake",
		"Stay hydrated with at least 8-10 glasses of water daily",
		"Consider eating smaller, frequent meals to boost metabolism",
	},
	types.GoalWeightGain: {
		"Increase calorie-dense, nutritious foods like nuts, seeds, and healthy fats",
		"Add protein-rich snacks between meals to support muscle growth",
		"Include complex carbohydrates for sustained energy",
		"Consider strength training along with proper nutrition",
	},
}

var maintainAdvice = []string{
	"Maintain a balanced diet with variety from all food groups",
	"Focus on whole foods and minimize processed items",
	"Keep portion sizes appropriate for your activity level",
}

var conditionAdvice = map[types.HealthCondition][]string{
	types.ConditionDiabetes: {
		"Choose complex carbohydrates over simple sugars",
		"Include chromium-rich foods like broccoli and whole grains",
		"Monitor portion sizes and eat at regular intervals",
	},
	types.ConditionHypertension: {
		"Reduce sodium intake and increase potassium-rich foods",
		"Include magnesium-rich foods like leafy greens and nuts",
		"Limit processed foods and add herbs instead of salt",
	},
	types.ConditionKidneyStones: {
		"Increase water intake to at least 10-12 glasses daily",
		"Limit high-oxalate foods like spinach and chocolate",
		"Include citrus fruits for natural citrate",
	},
}

var seasonAdvice = map[types.Season]string{
	types.SeasonWinter:  "Include warming foods like ginger, garlic, and hot soups to boost immunity",
	types.SeasonSpring:  "Focus on detoxifying foods like bitter gourds and fresh greens",
	types.SeasonMonsoon: "Boost immunity with turmeric, ginger, and vitamin C rich foods",
	types.SeasonAutumn:  "Include warming spices and cooked foods to prepare for winter",
}

var styleAdvice = map[types.FoodStyle]string{
	types.StyleTraditional: "Traditional Indian foods provide excellent nutrition - include variety of dals, vegetables, and whole grains",
	types.StyleModern:      "Balance modern foods with traditional nutritional wisdom - include fermented foods and whole grains",
}

// Recommendations returns up to eight pieces of advice ordered goal first,
// then health conditions, season, age and food style. Later groups are the
// ones cut when the list is full.
func (e *Engine) Recommendations(profile types.UserProfile, targets nutrition.Targets, conditions []types.HealthCondition) []string {
	recs := []string{}

	if advice, ok := goalAdvice[profile.Goal]; ok {
		recs = append(recs, advice...)
	} else {
		recs = append(recs, maintainAdvice...)
	}

	for _, c := range conditions {
		recs = append(recs, conditionAdvice[c]...)
	}

	season := profile.CurrentSeason
	if season == "" {
		season = types.SeasonSpring
	}
	if advice, ok := seasonAdvice[season]; ok {
		recs = append(recs, advice)
	}

	age := defaultAge
	if profile.Age != nil {
		age = *profile.Age
	}
	switch {
	case age > 50:
		recs = append(recs,
			"Increase calcium and vitamin D intake for bone health",
			"Include B12-rich foods or consider supplementation",
			"Focus on easily digestible foods and smaller portions",
		)
	case age < 25:
		recs = append(recs, "Ensure adequate protein and calcium for growth and development")
	}

	style := profile.FoodStyle
	if style == "" {
		style = types.StyleTraditional
	}
	if advice, ok := styleAdvice[style]; ok {
		recs = append(recs, advice)
	}

	e.log.Debug("built recommendations",
		zap.Int("daily_calories", targets.DailyCalories),
		zap.Int("count", len(recs)),
	)
	return truncate(recs, maxRecommendations)
}
