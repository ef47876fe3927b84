package diet

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	maxBenefits   = 3
	maxHighlights = 3

	defaultPreparation = "Cook ingredients properly with minimal oil and appropriate spices."
	defaultStorage     = "Store in refrigerator and consume within 2-3 days. Reheat properly before serving."
	defaultServing     = "1 portion"
	defaultPrepTime    = "20-25 mins"
	defaultDifficulty  = "medium"

	fallbackPreparation = "Simple preparation method"
	fallbackStorage     = "Store properly and consume fresh"
)

// PlannedMeal is a catalog meal plus everything derived for one slot of one day
type PlannedMeal struct {
	ID                    string               `json:"id,omitempty"`
	Name                  string               `json:"name"`
	Calories              float64              `json:"calories"`
	Macros                catalog.Macros       `json:"macros"`
	Vitamins              map[string]float64   `json:"vitamins"`
	Minerals              map[string]float64   `json:"minerals"`
	FoodStyle             types.FoodStyle      `json:"food_style"`
	DietaryType           types.DietaryType    `json:"dietary_type"`
	Fallback              bool                 `json:"fallback,omitempty"`
	SeasonalSuitability   string               `json:"seasonal_suitability"`
	PreparationMethod     string               `json:"preparation_method"`
	StorageGuidelines     string               `json:"storage_guidelines"`
	ServingSize           string               `json:"serving_size"`
	PrepTime              string               `json:"prep_time"`
	DifficultyLevel       string               `json:"difficulty_level"`
	CostCategory          types.CostPreference `json:"cost_category"`
	HealthBenefits        []string             `json:"health_benefits"`
	Ingredients           []string             `json:"ingredients"`
	NutritionalHighlights []string             `json:"nutritional_highlights"`
}

// keywordRule maps any of its keywords to label; rules are tried in order
type keywordRule struct {
	label    string
	keywords []string
}

var seasonalKeywords = map[types.Season][]string{
	types.SeasonWinter:  {"warm", "hot", "soup", "tea", "ginger", "jaggery"},
	types.SeasonSpring:  {"fresh", "light", "detox", "green", "bitter"},
	types.SeasonMonsoon: {"immunity", "ginger", "turmeric", "warm", "steamed"},
	types.SeasonAutumn:  {"balanced", "cooked", "moderate", "warming"},
}

var storageRules = []keywordRule{
	{"Store in refrigerator for up to 3 days. Reheat thoroughly before serving.", []string{"rice", "biryani", "pulao"}},
	{"Refrigerate for up to 3 days. Add water if too thick when reheating.", []string{"dal", "lentil", "sambar", "rasam"}},
	{"Consume immediately. Do not store.", []string{"smoothie", "juice"}},
	{"Prepare fresh. Dress just before serving.", []string{"salad", "raw"}},
	{"Cool completely before refrigerating. Store for up to 4 days.", []string{"soup", "broth"}},
	{"Store at room temperature for 1 day, refrigerate for up to 3 days.", []string{"roti", "bread", "chapati"}},
}

var servingRules = []keywordRule{
	{"150g cooked", []string{"rice"}},
	{"2 medium pieces", []string{"roti"}},
	{"100g", []string{"dal"}},
	{"150g", []string{"vegetables"}},
	{"200g", []string{"salad"}},
	{"250ml", []string{"smoothie"}},
	{"200ml", []string{"soup"}},
}

var prepTimeRules = []keywordRule{
	{"instant", []string{"tea", "coffee", "milk", "juice", "fruit"}},
	{"5-10 mins", []string{"smoothie", "salad", "sandwich", "toast"}},
	{"15-20 mins", []string{"eggs", "pasta", "noodles", "upma", "poha"}},
	{"20-30 mins", []string{"rice", "dal", "vegetables", "soup"}},
	{"30-45 mins", []string{"biryani", "curry", "sambar", "rasam"}},
	{"45+ mins", []string{"idli", "dosa", "fermented items"}},
}

var difficultyRules = []keywordRule{
	{"easy", []string{"tea", "coffee", "smoothie", "salad", "sandwich", "toast", "boiled"}},
	{"medium", []string{"rice", "dal", "vegetables", "pasta", "eggs", "soup"}},
	{"hard", []string{"biryani", "idli", "dosa", "complex curry", "fermented"}},
}

var benefitRules = []struct {
	keyword  string
	benefits []string
}{
	{"dal", []string{"High protein", "Rich in folate", "Good for heart health"}},
	{"vegetables", []string{"High fiber", "Antioxidants", "Vitamins and minerals"}},
	{"fruits", []string{"Vitamin C", "Natural sugars", "Digestive health"}},
	{"whole_grains", []string{"Complex carbs", "B vitamins", "Sustained energy"}},
	{"yogurt", []string{"Probiotics", "Calcium", "Digestive health"}},
}

// minerals worth calling out, in reporting order
var highlightMinerals = []string{"iron", "calcium", "magnesium"}

func (e *Engine) enrich(meal catalog.MealRecord, req PlanRequest) PlannedMeal {
	planned := e.derive(meal, req)
	planned.PreparationMethod = e.preparationMethod(meal.ID, req.Profile.Region)
	planned.StorageGuidelines = firstMatch(meal.Name, storageRules, defaultStorage)
	planned.ServingSize = servingSize(meal.Name, req.Profile.Goal)
	return planned
}

func (e *Engine) enrichFallback(meal catalog.MealRecord, req PlanRequest) PlannedMeal {
	planned := e.derive(meal, req)
	planned.Fallback = true
	planned.PreparationMethod = fallbackPreparation
	planned.StorageGuidelines = fallbackStorage
	planned.ServingSize = defaultServing
	return planned
}

// derive fills the fields shared by catalog and fallback meals
func (e *Engine) derive(meal catalog.MealRecord, req PlanRequest) PlannedMeal {
	var ingredients []string
	if meal.ID != "" {
		ingredients = e.catalog.Ingredients(meal.ID)
	} else {
		ingredients = slices.Clone(catalog.DefaultIngredients)
	}

	return PlannedMeal{
		ID:                    meal.ID,
		Name:                  meal.Name,
		Calories:              meal.Calories,
		Macros:                meal.Macros,
		Vitamins:              meal.Vitamins,
		Minerals:              meal.Minerals,
		FoodStyle:             meal.FoodStyle,
		DietaryType:           meal.DietaryType,
		SeasonalSuitability:   seasonalSuitability(meal.Name, req.Season),
		PrepTime:              firstMatch(meal.Name, prepTimeRules, defaultPrepTime),
		DifficultyLevel:       firstMatch(meal.Name, difficultyRules, defaultDifficulty),
		CostCategory:          estimateCost(meal.Name),
		HealthBenefits:        healthBenefits(meal.Name, req.HealthConditions),
		Ingredients:           ingredients,
		NutritionalHighlights: highlights(meal),
	}
}

func seasonalSuitability(name string, season types.Season) string {
	lower := strings.ToLower(name)
	matches := 0
	for _, kw := range seasonalKeywords[season] {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	switch {
	case matches >= 2:
		return "high"
	case matches >= 1:
		return "medium"
	default:
		return "suitable"
	}
}

func (e *Engine) preparationMethod(id string, region types.Region) string {
	method, ok := e.catalog.Preparation(id)
	if !ok {
		method = defaultPreparation
	}
	r := string(region)
	switch {
	case strings.Contains(r, "south") && !strings.Contains(method, "coconut"):
		method += " Add coconut for authentic South Indian flavor."
	case strings.Contains(r, "north") && !strings.Contains(method, "ghee"):
		method += " Finish with a touch of ghee for North Indian taste."
	}
	return method
}

func servingSize(name string, goal types.Goal) string {
	size := firstMatch(name, servingRules, defaultServing)
	switch goal {
	case types.GoalWeightGain:
		return fmt.Sprintf("Large portion (%s)", size)
	case types.GoalWeightLoss:
		return fmt.Sprintf("Moderate portion (%s)", size)
	}
	return size
}

func healthBenefits(name string, conditions []types.HealthCondition) []string {
	lower := strings.ToLower(name)
	benefits := []string{}
	for _, rule := range benefitRules {
		if strings.Contains(lower, rule.keyword) {
			benefits = append(benefits, rule.benefits...)
		}
	}
	if slices.Contains(conditions, types.ConditionDiabetes) && containsAny(lower, []string{"fiber", "whole", "complex"}) {
		benefits = append(benefits, "Helps regulate blood sugar")
	}
	if slices.Contains(conditions, types.ConditionHypertension) && containsAny(lower, []string{"potassium", "vegetable", "fruit"}) {
		benefits = append(benefits, "May help lower blood pressure")
	}
	return truncate(benefits, maxBenefits)
}

// highlights lists notable nutrition facts; vitamins are reported in name order.
func highlights(meal catalog.MealRecord) []string {
	out := []string{}
	if meal.Macros.Protein > 15 {
		out = append(out, fmt.Sprintf("High protein (%gg)", meal.Macros.Protein))
	}
	if meal.Macros.Fats < 5 {
		out = append(out, "Low fat")
	}
	for _, v := range slices.Sorted(maps.Keys(meal.Vitamins)) {
		if meal.Vitamins[v] > 0 {
			out = append(out, "Contains Vitamin "+v)
		}
	}
	for _, m := range highlightMinerals {
		if meal.Minerals[m] > 0 {
			out = append(out, "Good source of "+m)
		}
	}
	return truncate(out, maxHighlights)
}

func firstMatch(name string, rules []keywordRule, fallback string) string {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return fallback
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
