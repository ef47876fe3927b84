package diet

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pageza/nutrichat/backend/internal/types"
)

// DailyTotals sums a day's meals; micronutrients are merged by key
type DailyTotals struct {
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fats     float64            `json:"fats"`
	Vitamins map[string]float64 `json:"vitamins"`
	Minerals map[string]float64 `json:"minerals"`
}

// DailyPlan holds one meal per slot. It encodes as a flat object with one key
// per slot plus "totals".
type DailyPlan struct {
	Meals  map[types.Slot]PlannedMeal
	Totals DailyTotals
}

func (d DailyPlan) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Meals)+1)
	for slot, meal := range d.Meals {
		out[string(slot)] = meal
	}
	out["totals"] = d.Totals
	return json.Marshal(out)
}

func (d *DailyPlan) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Meals = make(map[types.Slot]PlannedMeal, len(types.Slots))
	for key, value := range raw {
		if key == "totals" {
			if err := json.Unmarshal(value, &d.Totals); err != nil {
				return fmt.Errorf("failed to decode totals: %w", err)
			}
			continue
		}
		slot := types.Slot(key)
		if !slot.Valid() {
			return fmt.Errorf("unknown meal slot %q", key)
		}
		var meal PlannedMeal
		if err := json.Unmarshal(value, &meal); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		d.Meals[slot] = meal
	}
	return nil
}

// WeeklyPlan maps each of Days to its plan
type WeeklyPlan map[string]DailyPlan

// Meal looks up a single planned meal. The day name is case-insensitive.
func (w WeeklyPlan) Meal(day string, slot types.Slot) (PlannedMeal, bool) {
	for name, plan := range w {
		if strings.EqualFold(name, day) {
			meal, ok := plan.Meals[slot]
			return meal, ok
		}
	}
	return PlannedMeal{}, false
}

// SumDay totals the given meals in slot order
func SumDay(meals map[types.Slot]PlannedMeal) DailyTotals {
	totals := DailyTotals{
		Vitamins: map[string]float64{},
		Minerals: map[string]float64{},
	}
	for _, slot := range types.Slots {
		meal, ok := meals[slot]
		if !ok {
			continue
		}
		totals.Calories += meal.Calories
		totals.Protein += meal.Macros.Protein
		totals.Carbs += meal.Macros.Carbs
		totals.Fats += meal.Macros.Fats
		for k, v := range meal.Vitamins {
			totals.Vitamins[k] += v
		}
		for k, v := range meal.Minerals {
			totals.Minerals[k] += v
		}
	}
	return totals
}

// Totals recomputes a day's totals from its meals
func (e *Engine) Totals(day DailyPlan) DailyTotals {
	return SumDay(day.Meals)
}

// GroceryCategory is one aisle of the grocery list
type GroceryCategory string

const (
	GroceryGrains     GroceryCategory = "grains_cereals"
	GroceryVegetables GroceryCategory = "vegetables"
	GroceryFruits     GroceryCategory = "fruits"
	GroceryDairy      GroceryCategory = "dairy"
	GroceryProteins   GroceryCategory = "proteins"
	GrocerySpices     GroceryCategory = "spices_condiments"
	GroceryOthers     GroceryCategory = "others"
)

// GroceryCategories is the closed set of categories, in matching order.
var GroceryCategories = []GroceryCategory{
	GroceryGrains, GroceryVegetables, GroceryFruits, GroceryDairy,
	GroceryProteins, GrocerySpices, GroceryOthers,
}

// GroceryList holds every category, each sorted and free of duplicates
type GroceryList map[GroceryCategory][]string

var groceryKeywords = []struct {
	category GroceryCategory
	keywords []string
}{
	{GroceryGrains, []string{"rice", "wheat", "flour", "quinoa", "oats", "millet", "bread"}},
	{GroceryVegetables, []string{"onion", "tomato", "potato", "carrot", "beans", "spinach", "cabbage", "broccoli", "pepper", "vegetable"}},
	{GroceryFruits, []string{"apple", "banana", "orange", "mango", "berries", "lemon", "lime", "fruit"}},
	{GroceryDairy, []string{"milk", "yogurt", "cheese", "paneer", "butter", "ghee"}},
	{GroceryProteins, []string{"dal", "lentil", "chicken", "fish", "eggs", "nuts", "seeds", "tofu"}},
	{GrocerySpices, []string{"salt", "pepper", "turmeric", "cumin", "coriander", "ginger", "garlic", "chili", "spice", "oil", "powder"}},
}

// CategorizeIngredient returns the first category whose keywords appear in
// the ingredient, or GroceryOthers.
func CategorizeIngredient(ingredient string) GroceryCategory {
	lower := strings.ToLower(ingredient)
	for _, rule := range groceryKeywords {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return GroceryOthers
}

// GroceryList collects the ingredients of every meal in the plan
func (e *Engine) GroceryList(plan WeeklyPlan) GroceryList {
	sets := make(map[GroceryCategory]map[string]struct{}, len(GroceryCategories))
	for _, c := range GroceryCategories {
		sets[c] = map[string]struct{}{}
	}
	for _, day := range plan {
		for _, meal := range day.Meals {
			for _, ingredient := range meal.Ingredients {
				sets[CategorizeIngredient(ingredient)][ingredient] = struct{}{}
			}
		}
	}

	list := make(GroceryList, len(sets))
	for c, set := range sets {
		items := make([]string, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		slices.Sort(items)
		list[c] = items
	}
	return list
}
