package nutrition

import (
	"maps"
	"math"
	"slices"

	"github.com/pageza/nutrichat/backend/internal/catalog"
)

// MealAnalysis is the summed composition of a set of foods
type MealAnalysis struct {
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fats     float64            `json:"fats"`
	Vitamins map[string]float64 `json:"vitamins"`
	Minerals map[string]float64 `json:"minerals"`
	Unknown  []string           `json:"unknown_items,omitempty"`
}

// Adequacy scores each nutrient 0-100 against its target
type Adequacy struct {
	Scores  map[string]float64 `json:"scores"`
	Overall float64            `json:"overall_adequacy"`
}

// AnalyzeMeal totals the nutrition of foods given in grams. Composition is
// per 100g; calories are derived from macros. Foods missing from the table
// are reported in Unknown and otherwise ignored.
func (c *Calculator) AnalyzeMeal(items map[string]float64) MealAnalysis {
	out := MealAnalysis{
		Vitamins: map[string]float64{},
		Minerals: map[string]float64{},
	}

	for _, name := range slices.Sorted(maps.Keys(items)) {
		item, ok := c.lookupFood(name)
		if !ok {
			out.Unknown = append(out.Unknown, name)
			continue
		}
		scale := items[name] / 100

		out.Protein += item.Macros.Protein * scale
		out.Carbs += item.Macros.Carbs * scale
		out.Fats += item.Macros.Fats * scale
		out.Calories += (item.Macros.Protein*4 + item.Macros.Carbs*4 + item.Macros.Fats*9) * scale

		for k, v := range item.Vitamins {
			out.Vitamins[k] += v * scale
		}
		for k, v := range item.Minerals {
			out.Minerals[k] += v * scale
		}
	}

	out.Calories = roundTo(out.Calories, 1)
	out.Protein = roundTo(out.Protein, 1)
	out.Carbs = roundTo(out.Carbs, 1)
	out.Fats = roundTo(out.Fats, 1)
	roundAll(out.Vitamins)
	roundAll(out.Minerals)
	return out
}

// AdequacyScore compares an analysis with daily targets. Every target is
// scored min(100, actual/target*100) and the overall score is their mean.
func (c *Calculator) AdequacyScore(actual MealAnalysis, targets Targets) Adequacy {
	scores := map[string]float64{}

	macros := []struct {
		name           string
		actual, target float64
	}{
		{"protein", actual.Protein, float64(targets.Macros.Protein)},
		{"carbs", actual.Carbs, float64(targets.Macros.Carbs)},
		{"fat", actual.Fats, float64(targets.Macros.Fat)},
	}
	for _, m := range macros {
		scores[m.name+"_adequacy"] = ratio(m.actual, m.target)
	}
	for name, target := range targets.Vitamins {
		scores["vitamin_"+name+"_adequacy"] = ratio(actual.Vitamins[name], target)
	}
	for name, target := range targets.Minerals {
		scores["mineral_"+name+"_adequacy"] = ratio(actual.Minerals[name], target)
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	overall := 0.0
	if len(scores) > 0 {
		overall = roundTo(sum/float64(len(scores)), 1)
	}
	return Adequacy{Scores: scores, Overall: overall}
}

func (c *Calculator) lookupFood(name string) (catalog.FoodItem, bool) {
	if c.foods == nil {
		return catalog.FoodItem{}, false
	}
	return c.foods.Food(name)
}

func ratio(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return roundTo(math.Min(100, actual/target*100), 1)
}
