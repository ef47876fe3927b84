package diet

import (
	"math"
	"slices"
	"strings"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	calorieWeight = 0.4
	costWeight    = 0.3
	densityWeight = 0.3

	// meals available in fewer seasons than this are filtered out of season
	allSeasons = 4
)

// restrictedKeywords are matched against the lowercased meal name
var restrictedKeywords = map[types.HealthCondition][]string{
	types.ConditionDiabetes:           {"sweet", "sugar", "jaggery", "honey", "fruit_juice"},
	types.ConditionHypertension:       {"salt", "pickle", "papad", "processed"},
	types.ConditionKidneyStones:       {"spinach", "tomato", "chocolate", "nuts"},
	types.ConditionLactoseIntolerance: {"milk", "curd", "cheese", "paneer"},
	types.ConditionGlutenIntolerance:  {"wheat", "bread", "pasta", "roti"},
}

// cost tiers are checked from most to least expensive
var costKeywords = []struct {
	tier     types.CostPreference
	keywords []string
}{
	{types.CostHigh, []string{"paneer", "cashew", "almond", "quinoa", "avocado", "salmon", "chicken"}},
	{types.CostMedium, []string{"dal", "vegetables", "rice", "eggs", "yogurt"}},
}

// isSuitable applies the dietary, seasonal and health filters in that order.
// Non-vegetarian and flexible profiles accept every meal.
func isSuitable(meal catalog.MealRecord, pref types.FoodPreference, season types.Season, conditions []types.HealthCondition) bool {
	switch pref {
	case types.PreferenceVegetarian:
		if meal.DietaryType == types.DietNonVegetarian {
			return false
		}
	case types.PreferenceNonVegetarian, types.PreferenceBoth:
		return true
	}

	if len(meal.Seasons) > 0 && len(meal.Seasons) < allSeasons && !slices.Contains(meal.Seasons, season) {
		return false
	}

	name := strings.ToLower(meal.Name)
	for _, c := range conditions {
		if containsAny(name, restrictedKeywords[c]) {
			return false
		}
	}
	return true
}

// selectOptimal returns the highest scoring meal; the first one wins a tie.
func selectOptimal(meals []catalog.MealRecord, cost types.CostPreference, target float64) catalog.MealRecord {
	best := meals[0]
	bestScore := scoreMeal(best, cost, target)
	for _, meal := range meals[1:] {
		if s := scoreMeal(meal, cost, target); s > bestScore {
			best, bestScore = meal, s
		}
	}
	return best
}

func scoreMeal(meal catalog.MealRecord, cost types.CostPreference, target float64) float64 {
	return calorieWeight*calorieFitScore(meal.Calories, target) +
		costWeight*costFitScore(estimateCost(meal.Name), cost) +
		densityWeight*densityScore(meal)
}

func calorieFitScore(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Max(0, 100-math.Abs(actual-target)/target*100)
}

// estimateCost guesses a meal's cost tier from ingredient words in its name
func estimateCost(name string) types.CostPreference {
	lower := strings.ToLower(name)
	for _, rule := range costKeywords {
		if containsAny(lower, rule.keywords) {
			return rule.tier
		}
	}
	return types.CostLow
}

func costFitScore(meal, preferred types.CostPreference) float64 {
	switch {
	case meal == preferred:
		return 100
	case preferred == types.CostLow && meal == types.CostMedium:
		return 70
	case preferred == types.CostMedium && (meal == types.CostLow || meal == types.CostHigh):
		return 80
	case preferred == types.CostHigh && meal == types.CostMedium:
		return 90
	default:
		return 50
	}
}

// densityScore rewards protein per calorie and micronutrient variety, capped at 100
func densityScore(meal catalog.MealRecord) float64 {
	if meal.Calories == 0 {
		return 0
	}
	proteinDensity := meal.Macros.Protein / meal.Calories * 100
	micronutrients := float64(len(meal.Vitamins)+len(meal.Minerals)) * 5
	return math.Min(100, proteinDensity*10+micronutrients)
}

type fallbackTemplate struct {
	name                string
	protein, carbs, fat float64
}

var fallbackTemplates = map[types.Slot]fallbackTemplate{
	types.SlotBreakfast: {"Simple Breakfast", 0.15, 0.55, 0.30},
	types.SlotLunch:     {"Balanced Lunch", 0.20, 0.50, 0.30},
	types.SlotDinner:    {"Light Dinner", 0.25, 0.45, 0.30},
	types.SlotSnacks:    {"Healthy Snack", 0.20, 0.50, 0.30},
}

// fallbackMeal synthesizes a generic meal that exactly meets the slot target
func fallbackMeal(slot types.Slot, target float64) catalog.MealRecord {
	tpl, ok := fallbackTemplates[slot]
	if !ok {
		tpl = fallbackTemplates[types.SlotBreakfast]
	}
	return catalog.MealRecord{
		Name:     tpl.name,
		Calories: target,
		Macros: catalog.Macros{
			Protein: round1(target * tpl.protein / 4),
			Carbs:   round1(target * tpl.carbs / 4),
			Fats:    round1(target * tpl.fat / 9),
		},
		Vitamins:    map[string]float64{},
		Minerals:    map[string]float64{},
		DietaryType: types.DietVegetarian,
		FoodStyle:   types.StyleTraditional,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
