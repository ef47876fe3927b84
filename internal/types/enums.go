package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Step is a position in the intake conversation
type Step string

const (
	StepGreeting         Step = "greeting"
	StepAge              Step = "age"
	StepWeight           Step = "weight"
	StepHeight           Step = "height"
	StepGender           Step = "gender"
	StepFoodPreference   Step = "food_preference"
	StepFoodStyle        Step = "food_style"
	StepCurrentSeason    Step = "current_season"
	StepRegion           Step = "region"
	StepGoal             Step = "goal"
	StepHealthConditions Step = "health_conditions"
	StepCostPreference   Step = "cost_preference"
	StepTimeline         Step = "timeline"
	StepCompleted        Step = "completed"
)

// Steps lists every conversation step in the order it is asked.
var Steps = []Step{
	StepGreeting,
	StepAge,
	StepWeight,
	StepHeight,
	StepGender,
	StepFoodPreference,
	StepFoodStyle,
	StepCurrentSeason,
	StepRegion,
	StepGoal,
	StepHealthConditions,
	StepCostPreference,
	StepTimeline,
	StepCompleted,
}

// Valid reports whether s is a known step
func (s Step) Valid() bool {
	for _, step := range Steps {
		if step == s {
			return true
		}
	}
	return false
}

// Status is the outcome of a single conversation turn
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// FoodPreference is the dietary preference a user states
type FoodPreference string

const (
	PreferenceVegetarian    FoodPreference = "vegetarian"
	PreferenceNonVegetarian FoodPreference = "non_vegetarian"
	PreferenceBoth          FoodPreference = "both"
)

func (p FoodPreference) Valid() bool {
	switch p {
	case PreferenceVegetarian, PreferenceNonVegetarian, PreferenceBoth:
		return true
	}
	return false
}

// DietaryType classifies a single meal
type DietaryType string

const (
	DietVegetarian    DietaryType = "vegetarian"
	DietNonVegetarian DietaryType = "non_vegetarian"
)

type FoodStyle string

const (
	StyleTraditional FoodStyle = "traditional"
	StyleModern      FoodStyle = "modern"
	StyleBoth        FoodStyle = "both"
)

func (s FoodStyle) Valid() bool {
	switch s {
	case StyleTraditional, StyleModern, StyleBoth:
		return true
	}
	return false
}

type Season string

const (
	SeasonWinter  Season = "winter"
	SeasonSpring  Season = "spring"
	SeasonMonsoon Season = "monsoon"
	SeasonAutumn  Season = "autumn"
	// SeasonSummer only appears in catalog availability lists; users cannot select it.
	SeasonSummer Season = "summer"
)

// Seasons are the seasons a user can plan for.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonMonsoon, SeasonAutumn}

func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonMonsoon, SeasonAutumn:
		return true
	}
	return false
}

type Region string

const (
	RegionSouthIndian Region = "south_indian"
	RegionNorthIndian Region = "north_indian"
)

func (r Region) Valid() bool {
	return r == RegionSouthIndian || r == RegionNorthIndian
}

type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalWeightGain Goal = "weight_gain"
	GoalMaintain   Goal = "maintain"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalWeightGain, GoalMaintain:
		return true
	}
	return false
}

type CostPreference string

const (
	CostLow    CostPreference = "low"
	CostMedium CostPreference = "medium"
	CostHigh   CostPreference = "high"
)

func (c CostPreference) Valid() bool {
	switch c {
	case CostLow, CostMedium, CostHigh:
		return true
	}
	return false
}

type Timeline string

const (
	TimelineShort Timeline = "short_term"
	TimelineMid   Timeline = "mid_term"
	TimelineLong  Timeline = "long_term"
)

func (t Timeline) Valid() bool {
	switch t {
	case TimelineShort, TimelineMid, TimelineLong:
		return true
	}
	return false
}

// ActivityLevel scales calorie and water requirements
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type HealthCondition string

const (
	ConditionDiabetes           HealthCondition = "diabetes"
	ConditionHypertension       HealthCondition = "hypertension"
	ConditionKidneyStones       HealthCondition = "kidney_stones"
	ConditionHeartDisease       HealthCondition = "heart_disease"
	ConditionLactoseIntolerance HealthCondition = "lactose_intolerance"
	ConditionGlutenIntolerance  HealthCondition = "gluten_intolerance"
	ConditionNutAllergy         HealthCondition = "nut_allergy"
	ConditionEggAllergy         HealthCondition = "egg_allergy"
	ConditionFishAllergy        HealthCondition = "fish_allergy"
	ConditionShellfishAllergy   HealthCondition = "shellfish_allergy"
)

// HealthConditions is the numbered menu offered to users; entry i is option i+1.
var HealthConditions = []HealthCondition{
	ConditionDiabetes,
	ConditionHypertension,
	ConditionKidneyStones,
	ConditionHeartDisease,
	ConditionLactoseIntolerance,
	ConditionGlutenIntolerance,
	ConditionNutAllergy,
	ConditionEggAllergy,
	ConditionFishAllergy,
	ConditionShellfishAllergy,
}

// Slot is one of the four daily meal occasions
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotSnacks    Slot = "snacks"
	SlotDinner    Slot = "dinner"
)

// Slots is the order in which a day's meals are generated and reported.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotSnacks, SlotDinner}

func (s Slot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotSnacks, SlotDinner:
		return true
	}
	return false
}

// Humanize turns a snake_case code into a title-cased label, e.g. "weight_loss" -> "Weight Loss".
func Humanize(code string) string {
	// a Caser keeps state between calls, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(code, "_", " "))
}
