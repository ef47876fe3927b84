package conversation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

type mockPlanner struct {
	mock.Mock
}

func (m *mockPlanner) Build(profile types.UserProfile) (*diet.Plan, error) {
	args := m.Called(profile)
	plan, _ := args.Get(0).(*diet.Plan)
	return plan, args.Error(1)
}

func january() time.Time { return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC) }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	planner := diet.NewPlanner(nutrition.NewCalculator(c), diet.NewEngine(c, nil, nil))
	return NewEngine(planner, c, nil, WithClock(january))
}

func at(step types.Step) types.ConversationState {
	return types.ConversationState{Step: step}
}

func TestAgeStep(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Advance(at(types.StepAge), "25")
	require.NoError(t, err)
	assert.Equal(t, types.StepWeight, res.State.Step)
	assert.Equal(t, types.StatusSuccess, res.Status)
	require.NotNil(t, res.State.Profile.Age)
	assert.Equal(t, 25, *res.State.Profile.Age)

	res, err = engine.Advance(at(types.StepAge), "5")
	require.NoError(t, err)
	assert.Equal(t, types.StepAge, res.State.Step)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Nil(t, res.State.Profile.Age)

	res, _ = engine.Advance(at(types.StepAge), "twenty")
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.Message, "as a number")
}

func TestRejectedAnswerKeepsProfile(t *testing.T) {
	engine := newTestEngine(t)
	state := types.ConversationState{
		Step:    types.StepWeight,
		Profile: types.UserProfile{Age: types.IntPtr(40)},
	}

	for _, input := range []string{"abc", "29.9", "200.5", "NaN", "inf"} {
		res, err := engine.Advance(state, input)
		require.NoError(t, err)
		assert.Equal(t, types.StatusError, res.Status, input)
		assert.Equal(t, state, res.State, input)
	}

	res, _ := engine.Advance(state, " 72.5 ")
	assert.Equal(t, types.StepHeight, res.State.Step)
	assert.Equal(t, 72.5, *res.State.Profile.Weight)
	// the caller's profile is not mutated
	assert.Nil(t, state.Profile.Weight)
}

func TestChoiceSteps(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		step  types.Step
		input string
		check func(p types.UserProfile) bool
	}{
		{types.StepGender, "M", func(p types.UserProfile) bool { return p.Gender == types.GenderMale }},
		{types.StepGender, "Woman", func(p types.UserProfile) bool { return p.Gender == types.GenderFemale }},
		{types.StepFoodPreference, "non-veg", func(p types.UserProfile) bool { return p.FoodPreference == types.PreferenceNonVegetarian }},
		{types.StepFoodPreference, "Non Vegetarian", func(p types.UserProfile) bool { return p.FoodPreference == types.PreferenceNonVegetarian }},
		{types.StepFoodPreference, "I eat chicken", func(p types.UserProfile) bool { return p.FoodPreference == types.PreferenceNonVegetarian }},
		{types.StepFoodPreference, "Vegetarian", func(p types.UserProfile) bool { return p.FoodPreference == types.PreferenceVegetarian }},
		{types.StepFoodPreference, "flexible", func(p types.UserProfile) bool { return p.FoodPreference == types.PreferenceBoth }},
		{types.StepFoodStyle, "classic please", func(p types.UserProfile) bool { return p.FoodStyle == types.StyleTraditional }},
		{types.StepFoodStyle, "mix", func(p types.UserProfile) bool { return p.FoodStyle == types.StyleBoth }},
		{types.StepCurrentSeason, "rainy", func(p types.UserProfile) bool { return p.CurrentSeason == types.SeasonMonsoon }},
		{types.StepCurrentSeason, "fall", func(p types.UserProfile) bool { return p.CurrentSeason == types.SeasonAutumn }},
		{types.StepRegion, "South", func(p types.UserProfile) bool { return p.Region == types.RegionSouthIndian }},
		{types.StepGoal, "I want to lose weight", func(p types.UserProfile) bool { return p.Goal == types.GoalWeightLoss }},
		{types.StepGoal, "build muscle", func(p types.UserProfile) bool { return p.Goal == types.GoalWeightGain }},
		{types.StepGoal, "stay the same", func(p types.UserProfile) bool { return p.Goal == types.GoalMaintain }},
		{types.StepCostPreference, "cheap", func(p types.UserProfile) bool { return p.CostPreference == types.CostLow }},
		{types.StepCostPreference, "premium", func(p types.UserProfile) bool { return p.CostPreference == types.CostHigh }},
	}
	for _, tt := range tests {
		t.Run(string(tt.step)+"/"+tt.input, func(t *testing.T) {
			res, err := engine.Advance(at(tt.step), tt.input)
			require.NoError(t, err)
			assert.Equal(t, types.StatusSuccess, res.Status, res.Message)
			assert.Equal(t, steps[tt.step].next, res.State.Step)
			assert.True(t, tt.check(res.State.Profile))
		})
	}

	for _, bad := range []struct {
		step  types.Step
		input string
	}{
		{types.StepGender, "males"},
		{types.StepFoodPreference, "pizza"},
		{types.StepFoodStyle, "whatever"},
		{types.StepRegion, "east"},
		{types.StepGoal, "unsure"},
		{types.StepCostPreference, "free"},
		{types.StepCurrentSeason, "summer"},
	} {
		res, err := engine.Advance(at(bad.step), bad.input)
		require.NoError(t, err)
		assert.Equal(t, types.StatusError, res.Status, bad.input)
		assert.Equal(t, bad.step, res.State.Step, bad.input)
	}
}

func TestSeasonDetectedOnEnteringSeasonStep(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Advance(at(types.StepFoodStyle), "traditional")
	require.NoError(t, err)
	assert.Equal(t, types.StepCurrentSeason, res.State.Step)
	assert.Equal(t, types.SeasonWinter, res.State.Profile.CurrentSeason)
	assert.Contains(t, res.Message, "Winter")

	res, err = engine.Advance(res.State, "keep it")
	require.NoError(t, err)
	assert.Equal(t, types.StepRegion, res.State.Step)
	assert.Equal(t, types.SeasonWinter, res.State.Profile.CurrentSeason)

	// an explicit season overrides the detected one
	res, _ = engine.Advance(types.ConversationState{
		Step:    types.StepCurrentSeason,
		Profile: types.UserProfile{CurrentSeason: types.SeasonWinter},
	}, "spring")
	assert.Equal(t, types.SeasonSpring, res.State.Profile.CurrentSeason)
}

func TestGreetingAndUnknownStep(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Advance(types.NewConversationState(), "hi")
	require.NoError(t, err)
	assert.Equal(t, types.StepAge, res.State.Step)
	assert.Equal(t, types.StatusSuccess, res.Status)

	res, err = engine.Advance(at("dessert"), "anything")
	require.NoError(t, err)
	assert.Equal(t, types.StepGreeting, res.State.Step)
	assert.Equal(t, types.StatusSuccess, res.Status)
}

func TestCompletedStepDoesNotRegenerate(t *testing.T) {
	planner := &mockPlanner{}
	engine := NewEngine(planner, nil, nil, WithClock(january))

	state := types.ConversationState{Step: types.StepCompleted, Profile: types.UserProfile{Goal: types.GoalMaintain}}
	res, err := engine.Advance(state, "another plan please")
	require.NoError(t, err)
	assert.Equal(t, state, res.State)
	assert.Equal(t, types.StatusSuccess, res.Status)
	assert.Nil(t, res.Plan)
	planner.AssertNotCalled(t, "Build", mock.Anything)
}

func TestPlanFailureResetsToGreeting(t *testing.T) {
	planner := &mockPlanner{}
	boom := errors.New("boom")
	planner.On("Build", mock.Anything).Return(nil, boom)
	engine := NewEngine(planner, nil, nil)

	res, err := engine.Advance(at(types.StepTimeline), "long term")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, types.StepGreeting, res.State.Step)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Equal(t, types.TimelineLong, res.State.Profile.Timeline)
	planner.AssertExpectations(t)
}

func TestInvalidTimelineIsRejected(t *testing.T) {
	planner := &mockPlanner{}
	engine := NewEngine(planner, nil, nil)

	res, err := engine.Advance(at(types.StepTimeline), "soon")
	require.NoError(t, err)
	assert.Equal(t, types.StepTimeline, res.State.Step)
	assert.Equal(t, types.StatusError, res.Status)
	planner.AssertNotCalled(t, "Build", mock.Anything)
}

func TestFullConversation(t *testing.T) {
	engine := newTestEngine(t)

	state := types.NewConversationState()
	answers := []string{"hello", "30", "70", "175", "male", "vegetarian", "traditional", "current",
		"south indian", "maintain", "1,3", "medium"}
	for _, answer := range answers {
		res, err := engine.Advance(state, answer)
		require.NoError(t, err)
		require.Equal(t, types.StatusSuccess, res.Status, "answer %q: %s", answer, res.Message)
		state = res.State
	}
	require.Equal(t, types.StepTimeline, state.Step)

	res, err := engine.Advance(state, "short")
	require.NoError(t, err)
	assert.Equal(t, types.StepCompleted, res.State.Step)
	require.NotNil(t, res.Plan)
	assert.Len(t, res.Plan.WeeklyPlan, 7)
	assert.Equal(t, []types.HealthCondition{types.ConditionDiabetes, types.ConditionKidneyStones},
		res.State.Profile.HealthConditions)

	assert.Contains(t, res.Message, "Sample Day Menu (Monday)")
	assert.Contains(t, res.Message, "Health: Diabetes, Kidney Stones")
	assert.Contains(t, res.Message, "Seasonal Benefits (Winter)")
	assert.Contains(t, res.Message, "Cool and dry season")
	assert.Contains(t, res.Message, "1. ")
	assert.False(t, strings.Contains(res.Message, "6. "), "at most five recommendations are shown")

	assert.Equal(t, "Maintain Plan - Vegetarian", ChatTitle(res.State))
}
