package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrichat/backend/internal/types"
)

func TestParseHealthConditions(t *testing.T) {
	got, err := ParseHealthConditions("1,3,7")
	require.NoError(t, err)
	assert.Equal(t, []types.HealthCondition{types.ConditionDiabetes, types.ConditionKidneyStones, types.ConditionNutAllergy}, got)

	for _, none := range []string{"none", "No", " nothing ", "11"} {
		got, err := ParseHealthConditions(none)
		require.NoError(t, err, none)
		assert.Empty(t, got, none)
		assert.NotNil(t, got, none)
	}

	got, err = ParseHealthConditions("10, 2 ,2")
	require.NoError(t, err)
	assert.Equal(t, []types.HealthCondition{types.ConditionHypertension, types.ConditionShellfishAllergy}, got)

	for _, bad := range []string{"1,99", "0", "", "1,,3", "diabetes", "1,11", "-1"} {
		_, err := ParseHealthConditions(bad)
		assert.ErrorIs(t, err, ErrInvalidConditions, bad)
	}
}

func TestSeasonForMonth(t *testing.T) {
	want := map[time.Month]types.Season{
		time.January: types.SeasonWinter, time.February: types.SeasonWinter, time.December: types.SeasonWinter,
		time.March: types.SeasonSpring, time.May: types.SeasonSpring,
		time.June: types.SeasonMonsoon, time.September: types.SeasonMonsoon,
		time.October: types.SeasonAutumn, time.November: types.SeasonAutumn,
	}
	for month, season := range want {
		assert.Equal(t, season, SeasonForMonth(month), month.String())
	}
}

func TestConditionLabel(t *testing.T) {
	assert.Equal(t, "Hypertension (High BP)", ConditionLabel(types.ConditionHypertension))
	assert.Equal(t, "Lactose Intolerance", ConditionLabel(types.ConditionLactoseIntolerance))
	assert.Contains(t, conditionMenu(), "11. None\n")
}

func TestChatTitle(t *testing.T) {
	tests := []struct {
		state types.ConversationState
		want  string
	}{
		{types.NewConversationState(), "New Chat"},
		{types.ConversationState{Step: types.StepAge}, "New Chat"},
		{types.ConversationState{Step: types.StepHealthConditions, Profile: types.UserProfile{Goal: types.GoalWeightLoss}}, "Weight Loss Planning..."},
		{types.ConversationState{Step: types.StepGreeting, Profile: types.UserProfile{Goal: types.GoalWeightLoss}}, "New Chat"},
		{types.ConversationState{Step: types.StepCompleted, Profile: types.UserProfile{
			Goal: types.GoalWeightGain, FoodPreference: types.PreferenceNonVegetarian}}, "Weight Gain Plan - Non Vegetarian"},
		{types.ConversationState{Step: types.StepCompleted, Profile: types.UserProfile{Goal: types.GoalMaintain}}, "Maintain Plan - Diet"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChatTitle(tt.state))
	}
}
