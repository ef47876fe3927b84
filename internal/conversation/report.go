package conversation

import (
	"fmt"
	"strings"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	reportRecommendations = 5
	reportGroceryItems    = 3
	reportSeasonFoods     = 4
	reportDay             = "Monday"
)

var reportGroceryCategories = []diet.GroceryCategory{
	diet.GroceryVegetables, diet.GroceryGrains, diet.GroceryProteins, diet.GrocerySpices,
}

// FormatReport renders the completion message: a profile summary, the
// nutrition targets, Monday's menu, the top recommendations, a grocery
// preview and the season notes.
func FormatReport(p types.UserProfile, plan *diet.Plan, season catalog.SeasonInfo) string {
	var b strings.Builder
	b.WriteString("Your 7-day diet plan is ready!\n\n")

	b.WriteString("Your Profile\n")
	fmt.Fprintf(&b, "- Age: %s years | Weight: %s kg | Height: %s cm\n",
		optional(p.Age), optional(p.Weight), optional(p.Height))
	fmt.Fprintf(&b, "- Gender: %s | Diet: %s\n", label(p.Gender), label(p.FoodPreference))
	fmt.Fprintf(&b, "- Style: %s | Season: %s\n", label(p.FoodStyle), label(p.CurrentSeason))
	fmt.Fprintf(&b, "- Region: %s | Goal: %s\n", label(p.Region), label(p.Goal))
	fmt.Fprintf(&b, "- Health: %s | Budget: %s\n\n", conditionList(p.HealthConditions), label(p.CostPreference))

	t := plan.Targets
	b.WriteString("Nutrition Analysis\n")
	fmt.Fprintf(&b, "- BMI: %g (%s)\n", t.BMI, t.BMICategory.Label())
	fmt.Fprintf(&b, "- Daily Calories: %d kcal | BMR: %d\n", t.DailyCalories, t.BMR)
	fmt.Fprintf(&b, "- Protein: %dg | Carbs: %dg | Fat: %dg\n", t.Macros.Protein, t.Macros.Carbs, t.Macros.Fat)
	fmt.Fprintf(&b, "- Key Vitamins: Vitamin C (%gmg), Vitamin D (%gmcg)\n",
		valueOr(t.Vitamins, "C", 90), valueOr(t.Vitamins, "D", 15))
	fmt.Fprintf(&b, "- Essential Minerals: Iron (%gmg), Calcium (%gmg)\n\n",
		valueOr(t.Minerals, "iron", 18), valueOr(t.Minerals, "calcium", 1000))

	fmt.Fprintf(&b, "Sample Day Menu (%s)\n", reportDay)
	if day, ok := plan.WeeklyPlan[reportDay]; ok {
		for _, slot := range types.Slots {
			meal, ok := day.Meals[slot]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", label(slot), meal.Name)
			fmt.Fprintf(&b, "  - Calories: %.0f kcal\n", meal.Calories)
			fmt.Fprintf(&b, "  - Prep Time: %s\n", meal.PrepTime)
			fmt.Fprintf(&b, "  - Storage: %s\n", meal.StorageGuidelines)
		}
		fmt.Fprintf(&b, "Daily Total: %.0f kcal\n", day.Totals.Calories)
	}
	b.WriteString("\n")

	b.WriteString("Personalized Recommendations\n")
	for i, rec := range plan.Recommendations {
		if i == reportRecommendations {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")

	b.WriteString("Weekly Grocery List (Preview)\n")
	for _, c := range reportGroceryCategories {
		items := plan.GroceryList[c]
		if len(items) == 0 {
			continue
		}
		if len(items) > reportGroceryItems {
			items = items[:reportGroceryItems]
		}
		fmt.Fprintf(&b, "- %s: %s\n", label(c), strings.Join(items, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Seasonal Benefits (%s)\n", label(p.CurrentSeason))
	description := season.Description
	if description == "" {
		description = "Balanced nutrition"
	}
	fmt.Fprintf(&b, "- Focus: %s\n", description)
	foods := season.BeneficialFoods
	if len(foods) > reportSeasonFoods {
		foods = foods[:reportSeasonFoods]
	}
	fmt.Fprintf(&b, "- Includes: %s\n\n", strings.Join(foods, ", "))

	b.WriteString("Ask for the grocery list or a meal's details any time, or reset this chat for a new plan.")
	return b.String()
}

// ChatTitle names a conversation after its goal and dietary preference
func ChatTitle(state types.ConversationState) string {
	goal := state.Profile.Goal
	switch {
	case goal == "":
		return "New Chat"
	case state.Step == types.StepCompleted:
		pref := "Diet"
		if state.Profile.FoodPreference != "" {
			pref = label(state.Profile.FoodPreference)
		}
		return fmt.Sprintf("%s Plan - %s", label(goal), pref)
	case state.Step != types.StepGreeting:
		return fmt.Sprintf("%s Planning...", label(goal))
	}
	return "New Chat"
}

func label[T ~string](code T) string {
	if code == "" {
		return "-"
	}
	return types.Humanize(string(code))
}

func optional[T int | float64](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func valueOr(m map[string]float64, key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
