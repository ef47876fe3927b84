package diet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

type fixedRand struct{ n int }

func (f fixedRand) Intn(int) int { return f.n }

func newDefaultEngine(t *testing.T, rnd RandomSource) *Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewEngine(c, rnd, nil)
}

func newFixtureEngine(t *testing.T, data catalog.Data) *Engine {
	t.Helper()
	c, err := catalog.New(data)
	require.NoError(t, err)
	return NewEngine(c, fixedRand{}, nil)
}

func vegetarianRequest(style types.FoodStyle) PlanRequest {
	profile := types.UserProfile{
		Age:            types.IntPtr(30),
		Weight:         types.FloatPtr(70),
		Height:         types.FloatPtr(175),
		Gender:         types.GenderMale,
		FoodPreference: types.PreferenceVegetarian,
		FoodStyle:      style,
		CurrentSeason:  types.SeasonWinter,
		Region:         types.RegionSouthIndian,
		Goal:           types.GoalMaintain,
		CostPreference: types.CostMedium,
		Timeline:       types.TimelineShort,
	}
	return RequestFromProfile(profile, nutrition.Targets{DailyCalories: 2200})
}

func TestGenerateWeeklyPlanShape(t *testing.T) {
	engine := newDefaultEngine(t, nil)

	for _, style := range []types.FoodStyle{types.StyleTraditional, types.StyleModern, types.StyleBoth} {
		plan := engine.GenerateWeeklyPlan(vegetarianRequest(style))

		require.Len(t, plan, 7)
		for _, day := range Days {
			daily, ok := plan[day]
			require.True(t, ok, "missing %s", day)
			require.Len(t, daily.Meals, 4)

			var calories, protein float64
			for _, slot := range types.Slots {
				meal, ok := daily.Meals[slot]
				require.True(t, ok, "%s has no %s", day, slot)
				assert.NotEqual(t, types.DietNonVegetarian, meal.DietaryType, "%s %s: %s", day, slot, meal.Name)
				calories += meal.Calories
				protein += meal.Macros.Protein
			}
			assert.InDelta(t, calories, daily.Totals.Calories, 0.001)
			assert.InDelta(t, protein, daily.Totals.Protein, 0.001)
		}
	}
}

func TestGenerateWeeklyPlanFallsBackWhenEverythingIsFiltered(t *testing.T) {
	engine := newFixtureEngine(t, catalog.Data{
		Meals: map[string]catalog.MealRecord{
			"sweet_pongal": {Name: "Sweet Pongal", Calories: 300},
		},
		Partitions: map[string]map[types.Slot][]string{
			"south_indian_traditional": {types.SlotBreakfast: {"sweet_pongal"}},
		},
	})

	req := vegetarianRequest(types.StyleTraditional)
	req.HealthConditions = []types.HealthCondition{types.ConditionDiabetes}
	req.Targets.DailyCalories = 2000

	plan := engine.GenerateWeeklyPlan(req)

	breakfast := plan["Monday"].Meals[types.SlotBreakfast]
	assert.True(t, breakfast.Fallback)
	assert.Equal(t, "Simple Breakfast", breakfast.Name)
	assert.Equal(t, 500.0, breakfast.Calories)
	assert.Equal(t, 18.8, breakfast.Macros.Protein)
	assert.Equal(t, 68.8, breakfast.Macros.Carbs)
	assert.Equal(t, 16.7, breakfast.Macros.Fats)
	assert.Equal(t, fallbackPreparation, breakfast.PreparationMethod)
	assert.Equal(t, catalog.DefaultIngredients, breakfast.Ingredients)

	// slots with no candidates at all also fall back
	assert.Equal(t, "Balanced Lunch", plan["Sunday"].Meals[types.SlotLunch].Name)
	assert.Equal(t, 700.0, plan["Sunday"].Meals[types.SlotLunch].Calories)
}

func TestPartitionKeyUsesRandomSourceForBoth(t *testing.T) {
	assert.Equal(t, "south_indian_traditional",
		newDefaultEngine(t, fixedRand{0}).partitionKey(types.RegionSouthIndian, types.StyleBoth))
	assert.Equal(t, catalog.ModernFusion,
		newDefaultEngine(t, fixedRand{1}).partitionKey(types.RegionSouthIndian, types.StyleBoth))

	engine := newDefaultEngine(t, fixedRand{1})
	assert.Equal(t, "north_indian_traditional", engine.partitionKey(types.RegionNorthIndian, types.StyleTraditional))
	assert.Equal(t, catalog.ModernFusion, engine.partitionKey(types.RegionNorthIndian, types.StyleModern))
}

func TestGenerateWeeklyPlanIsDeterministicWithFixedSource(t *testing.T) {
	req := vegetarianRequest(types.StyleBoth)
	first := newDefaultEngine(t, fixedRand{1}).GenerateWeeklyPlan(req)
	second := newDefaultEngine(t, fixedRand{1}).GenerateWeeklyPlan(req)

	for _, day := range Days {
		for _, slot := range types.Slots {
			assert.Equal(t, first[day].Meals[slot].ID, second[day].Meals[slot].ID)
			assert.Equal(t, types.StyleModern, first[day].Meals[slot].FoodStyle)
		}
	}
}

func TestSlotTargets(t *testing.T) {
	targets := SlotTargets(2000)
	assert.Equal(t, 500.0, targets[types.SlotBreakfast])
	assert.Equal(t, 700.0, targets[types.SlotLunch])
	assert.Equal(t, 300.0, targets[types.SlotSnacks])
	assert.Equal(t, 500.0, targets[types.SlotDinner])
}

func TestSumDayMergesMicronutrients(t *testing.T) {
	totals := SumDay(map[types.Slot]PlannedMeal{
		types.SlotBreakfast: {Calories: 250, Macros: catalog.Macros{Protein: 8, Carbs: 45, Fats: 3},
			Vitamins: map[string]float64{"C": 5}, Minerals: map[string]float64{"iron": 2}},
		types.SlotLunch: {Calories: 400, Macros: catalog.Macros{Protein: 12, Carbs: 60, Fats: 10},
			Vitamins: map[string]float64{"C": 10, "A": 100}},
	})

	assert.Equal(t, 650.0, totals.Calories)
	assert.Equal(t, 20.0, totals.Protein)
	assert.Equal(t, 105.0, totals.Carbs)
	assert.Equal(t, 13.0, totals.Fats)
	assert.Equal(t, map[string]float64{"C": 15, "A": 100}, totals.Vitamins)
	assert.Equal(t, map[string]float64{"iron": 2}, totals.Minerals)
}

func TestDailyPlanJSONIsFlat(t *testing.T) {
	engine := newDefaultEngine(t, fixedRand{0})
	plan := engine.GenerateWeeklyPlan(vegetarianRequest(types.StyleTraditional))

	raw, err := json.Marshal(plan["Monday"])
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Len(t, flat, 5)
	for _, key := range []string{"breakfast", "lunch", "snacks", "dinner", "totals"} {
		assert.Contains(t, flat, key)
	}

	var decoded DailyPlan
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, plan["Monday"].Meals[types.SlotLunch].Name, decoded.Meals[types.SlotLunch].Name)
	assert.Equal(t, plan["Monday"].Totals.Calories, decoded.Totals.Calories)

	assert.Error(t, json.Unmarshal([]byte(`{"brunch": {}}`), &decoded))
}

func TestWeeklyPlanMealLookup(t *testing.T) {
	plan := newDefaultEngine(t, fixedRand{0}).GenerateWeeklyPlan(vegetarianRequest(types.StyleTraditional))

	meal, ok := plan.Meal("monday", types.SlotLunch)
	require.True(t, ok)
	assert.Equal(t, plan["Monday"].Meals[types.SlotLunch].Name, meal.Name)

	_, ok = plan.Meal("someday", types.SlotLunch)
	assert.False(t, ok)
}
