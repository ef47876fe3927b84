package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/types"
)

func newPlanService(t *testing.T) *service.PlanService {
	t.Helper()
	f := newFixture(t)
	return service.NewPlanService(f.calc, f.planner, f.catalog, f.engine)
}

func biometrics() types.NutritionRequest {
	return types.NutritionRequest{
		Weight: 70,
		Height: 175,
		Age:    30,
		Gender: types.GenderMale,
		Goal:   types.GoalMaintain,
	}
}

func TestPlanServiceNutrition(t *testing.T) {
	svc := newPlanService(t)

	targets, err := svc.Nutrition(biometrics())
	require.NoError(t, err)
	assert.Greater(t, targets.BMR, 0)
	assert.Greater(t, targets.DailyCalories, targets.BMR)
	assert.InDelta(t, 22.9, targets.BMI, 0.1)

	req := biometrics()
	req.Weight = 0
	_, err = svc.Nutrition(req)
	assert.ErrorIs(t, err, nutrition.ErrInvalidInput)

	req = biometrics()
	req.Timeline = "someday"
	_, err = svc.Nutrition(req)
	assert.ErrorIs(t, err, nutrition.ErrInvalidInput)
}

func TestPlanServiceMealPlan(t *testing.T) {
	svc := newPlanService(t)
	valid := types.MealPlanRequest{
		NutritionRequest: biometrics(),
		FoodPreference:   types.PreferenceVegetarian,
		Region:           types.RegionSouthIndian,
	}

	plan, err := svc.MealPlan(valid)
	require.NoError(t, err)
	assert.Len(t, plan.WeeklyPlan, 7)
	assert.Equal(t, types.StyleBoth, plan.Profile.FoodStyle)
	assert.Equal(t, types.SeasonSpring, plan.Profile.CurrentSeason)
	assert.Equal(t, types.CostMedium, plan.Profile.CostPreference)
	assert.Greater(t, plan.Targets.DailyCalories, 0)

	tests := []struct {
		name   string
		mutate func(*types.MealPlanRequest)
	}{
		{"food preference", func(r *types.MealPlanRequest) { r.FoodPreference = "vegan" }},
		{"region", func(r *types.MealPlanRequest) { r.Region = "east_indian" }},
		{"food style", func(r *types.MealPlanRequest) { r.FoodStyle = "fusion" }},
		{"season", func(r *types.MealPlanRequest) { r.CurrentSeason = types.SeasonSummer }},
		{"cost", func(r *types.MealPlanRequest) { r.CostPreference = "free" }},
		{"biometrics", func(r *types.MealPlanRequest) { r.Age = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.MealPlan(req)
			assert.ErrorIs(t, err, nutrition.ErrInvalidInput)
		})
	}
}

func TestPlanServiceAnalyzeMeal(t *testing.T) {
	svc := newPlanService(t)
	items := map[string]float64{"rice": 150, "dal": 100, "mystery": 50}

	result, err := svc.AnalyzeMeal(types.MealAnalysisRequest{Items: items})
	require.NoError(t, err)
	assert.Greater(t, result.Analysis.Calories, 0.0)
	assert.Equal(t, []string{"mystery"}, result.Analysis.Unknown)
	assert.Nil(t, result.Targets)
	assert.Nil(t, result.Adequacy)

	profile := biometrics()
	result, err = svc.AnalyzeMeal(types.MealAnalysisRequest{Items: items, Profile: &profile})
	require.NoError(t, err)
	require.NotNil(t, result.Targets)
	require.NotNil(t, result.Adequacy)
	assert.GreaterOrEqual(t, result.Adequacy.Overall, 0.0)
	assert.LessOrEqual(t, result.Adequacy.Overall, 100.0)

	profile.Gender = "unknown"
	_, err = svc.AnalyzeMeal(types.MealAnalysisRequest{Items: items, Profile: &profile})
	assert.ErrorIs(t, err, nutrition.ErrInvalidInput)
}

func TestPlanServiceReferenceData(t *testing.T) {
	svc := newPlanService(t)

	conditions := svc.HealthConditions()
	require.Len(t, conditions, len(types.HealthConditions))
	assert.Equal(t, service.ConditionOption{Number: 1, Code: types.ConditionDiabetes, Label: "Diabetes"}, conditions[0])
	assert.Equal(t, "Hypertension (High BP)", conditions[1].Label)
	assert.Equal(t, len(conditions), conditions[len(conditions)-1].Number)

	season := svc.CurrentSeason()
	assert.Equal(t, types.SeasonWinter, season.Season)
	assert.Equal(t, "Winter", season.Label)
	assert.Equal(t, "Cool and dry season", season.Info.Description)

	categories := svc.FoodCategories()
	assert.Equal(t, types.Slots, categories.Slots)
	require.Contains(t, categories.Partitions, "south_indian_traditional")
	breakfasts := categories.Partitions["south_indian_traditional"][types.SlotBreakfast]
	assert.Contains(t, breakfasts, "Idli with Sambar")
}
