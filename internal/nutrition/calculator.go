// Package nutrition computes energy, macro and micronutrient targets from biometrics.
package nutrition

import (
	"errors"
	"fmt"
	"math"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// ErrInvalidInput is wrapped by every error EnhancedSummary returns
var ErrInvalidInput = errors.New("invalid nutrition input")

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// Label is the human readable category name
func (c BMICategory) Label() string {
	switch c {
	case BMIUnderweight:
		return "Underweight"
	case BMINormal:
		return "Normal weight"
	case BMIOverweight:
		return "Overweight"
	case BMIObese:
		return "Obese"
	}
	return string(c)
}

var activityMultipliers = map[types.ActivityLevel]float64{
	types.ActivitySedentary:  1.2,
	types.ActivityLight:      1.375,
	types.ActivityModerate:   1.55,
	types.ActivityActive:     1.725,
	types.ActivityVeryActive: 1.9,
}

var waterMultipliers = map[types.ActivityLevel]float64{
	types.ActivitySedentary:  1.0,
	types.ActivityLight:      1.1,
	types.ActivityModerate:   1.2,
	types.ActivityActive:     1.3,
	types.ActivityVeryActive: 1.4,
}

// calorie offset applied for loss (subtracted) or gain (added)
var timelineOffsets = map[types.Timeline]float64{
	types.TimelineShort: 500,
	types.TimelineMid:   350,
	types.TimelineLong:  250,
}

type macroSplit struct {
	protein, fat, carbs float64
}

var macroSplits = map[types.Goal]macroSplit{
	types.GoalWeightLoss: {protein: 0.30, fat: 0.25, carbs: 0.45},
	types.GoalWeightGain: {protein: 0.25, fat: 0.30, carbs: 0.45},
	types.GoalMaintain:   {protein: 0.25, fat: 0.25, carbs: 0.50},
}

// Macros are daily macronutrient targets in grams
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// HealthMetrics are rough body composition estimates
type HealthMetrics struct {
	IdealWeightMin     float64 `json:"ideal_weight_min"`
	IdealWeightMax     float64 `json:"ideal_weight_max"`
	IdealWeightRange   string  `json:"ideal_weight_range"`
	WeightStatus       string  `json:"weight_status"`
	BodyFatEstimate    float64 `json:"body_fat_estimate"`
	MuscleMassGuidance string  `json:"muscle_mass_importance"`
}

// MetabolicInfo normalizes energy and protein targets per kg of bodyweight
type MetabolicInfo struct {
	BMRPerKg      float64 `json:"bmr_per_kg"`
	CaloriesPerKg float64 `json:"calories_per_kg"`
	ProteinPerKg  float64 `json:"protein_per_kg"`
}

// Targets is the complete nutrition profile for one person. It is computed
// once per completed profile and never modified afterwards.
type Targets struct {
	BMR            int                `json:"bmr"`
	BMI            float64            `json:"bmi"`
	BMICategory    BMICategory        `json:"bmi_category"`
	BMILabel       string             `json:"bmi_label"`
	DailyCalories  int                `json:"daily_calories"`
	Macros         Macros             `json:"macronutrients"`
	Vitamins       map[string]float64 `json:"vitamins"`
	Minerals       map[string]float64 `json:"minerals"`
	Fiber          int                `json:"fiber_requirement"`
	Water          float64            `json:"water_requirement"`
	DensityTargets map[string]float64 `json:"nutrition_density_targets"`
	HealthMetrics  HealthMetrics      `json:"health_metrics"`
	MetabolicInfo  MetabolicInfo      `json:"metabolic_info"`
}

// Input holds the biometrics EnhancedSummary needs. ActivityLevel defaults to moderate.
type Input struct {
	Weight        float64
	Height        float64
	Age           int
	Gender        types.Gender
	Goal          types.Goal
	Timeline      types.Timeline
	ActivityLevel types.ActivityLevel
}

// InputFromProfile extracts calculator input from a conversation profile
func InputFromProfile(p types.UserProfile) (Input, error) {
	if p.Weight == nil {
		return Input{}, fmt.Errorf("%w: weight is missing", ErrInvalidInput)
	}
	if p.Height == nil {
		return Input{}, fmt.Errorf("%w: height is missing", ErrInvalidInput)
	}
	if p.Age == nil {
		return Input{}, fmt.Errorf("%w: age is missing", ErrInvalidInput)
	}
	return Input{
		Weight:   *p.Weight,
		Height:   *p.Height,
		Age:      *p.Age,
		Gender:   p.Gender,
		Goal:     p.Goal,
		Timeline: p.Timeline,
	}, nil
}

// FoodSource supplies per 100g food composition for meal analysis
type FoodSource interface {
	Food(name string) (catalog.FoodItem, bool)
}

// Calculator is stateless apart from its read-only food table.
type Calculator struct {
	foods FoodSource
}

func NewCalculator(foods FoodSource) *Calculator {
	return &Calculator{foods: foods}
}

// BMR uses the Mifflin-St Jeor equation
func (c *Calculator) BMR(weight, height float64, age int, gender types.Gender) int {
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if gender == types.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// BMI takes weight in kg and height in cm
func (c *Calculator) BMI(weight, height float64) float64 {
	m := height / 100
	return roundTo(weight/(m*m), 1)
}

func (c *Calculator) BMICategory(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// DailyCalories scales bmr by activity and applies the goal offset for the timeline
func (c *Calculator) DailyCalories(bmr int, goal types.Goal, timeline types.Timeline, activity types.ActivityLevel) int {
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[types.ActivityModerate]
	}
	calories := float64(bmr) * multiplier

	offset, ok := timelineOffsets[timeline]
	if !ok {
		offset = timelineOffsets[types.TimelineLong]
	}
	switch goal {
	case types.GoalWeightLoss:
		calories -= offset
	case types.GoalWeightGain:
		calories += offset
	}
	return int(math.Round(calories))
}

// Macronutrients converts the goal's percentage split into grams
func (c *Calculator) Macronutrients(dailyCalories int, goal types.Goal) Macros {
	split, ok := macroSplits[goal]
	if !ok {
		split = macroSplits[types.GoalMaintain]
	}
	kcal := float64(dailyCalories)
	return Macros{
		Protein: int(math.Round(kcal * split.protein / 4)),
		Carbs:   int(math.Round(kcal * split.carbs / 4)),
		Fat:     int(math.Round(kcal * split.fat / 9)),
	}
}

// DailyVitamins returns RDA targets (mg or mcg as conventional per vitamin)
func (c *Calculator) DailyVitamins(age int, gender types.Gender, goal types.Goal) map[string]float64 {
	male := gender == types.GenderMale
	v := map[string]float64{
		"A":                pick(male, 900, 700),
		"B1":               pick(male, 1.2, 1.1),
		"B2":               pick(male, 1.3, 1.1),
		"B3":               pick(male, 16, 14),
		"B6":               1.3,
		"B12":              2.4,
		"C":                pick(male, 90, 75),
		"D":                15,
		"E":                15,
		"K":                pick(male, 120, 90),
		"folate":           400,
		"biotin":           30,
		"pantothenic_acid": 5,
	}
	if age >= 50 {
		v["B6"] = pick(male, 1.7, 1.5)
	}
	if age >= 70 {
		v["D"] = 20
	}

	switch goal {
	case types.GoalWeightGain:
		for _, name := range []string{"B1", "B2", "B3", "B6"} {
			v[name] *= 1.15
		}
		v["C"] *= 1.2
	case types.GoalWeightLoss:
		v["C"] *= 1.1
		v["E"] *= 1.1
	}
	return roundAll(v)
}

// DailyMinerals returns mineral targets for the profile
func (c *Calculator) DailyMinerals(age int, gender types.Gender, goal types.Goal) map[string]float64 {
	male := gender == types.GenderMale
	m := map[string]float64{
		"calcium":    1000,
		"iron":       8,
		"magnesium":  pick(male, 400, 310),
		"zinc":       pick(male, 11, 8),
		"potassium":  3500,
		"phosphorus": 700,
		"sodium":     1500,
		"selenium":   55,
		"copper":     0.9,
		"manganese":  pick(male, 2.3, 1.8),
		"chromium":   pick(male, 35, 25),
		"molybdenum": 45,
		"iodine":     150,
	}
	if age >= 50 {
		m["calcium"] = 1200
	} else if !male {
		m["iron"] = 18
	}

	switch goal {
	case types.GoalWeightGain:
		m["magnesium"] *= 1.1
		m["zinc"] *= 1.15
		m["phosphorus"] *= 1.1
	case types.GoalWeightLoss:
		m["calcium"] *= 1.05
		m["magnesium"] *= 1.05
	}
	return roundAll(m)
}

// FiberRequirement is grams per day
func (c *Calculator) FiberRequirement(age int, gender types.Gender) int {
	if gender == types.GenderMale {
		if age < 50 {
			return 38
		}
		return 30
	}
	if age < 50 {
		return 25
	}
	return 21
}

// WaterRequirement is liters per day, 35ml per kg scaled by activity
func (c *Calculator) WaterRequirement(weight float64, activity types.ActivityLevel) float64 {
	multiplier, ok := waterMultipliers[activity]
	if !ok {
		multiplier = waterMultipliers[types.ActivityModerate]
	}
	return roundTo(weight*35*multiplier/1000, 1)
}

// DensityTargets are nutrient amounts to aim for per 1000 kcal eaten
func (c *Calculator) DensityTargets() map[string]float64 {
	return map[string]float64{
		"protein_per_1000_cal":   50,
		"fiber_per_1000_cal":     14,
		"vitamin_c_per_1000_cal": 45,
		"calcium_per_1000_cal":   500,
		"iron_per_1000_cal":      9,
		"folate_per_1000_cal":    200,
		"magnesium_per_1000_cal": 200,
		"potassium_per_1000_cal": 1750,
	}
}

// HealthMetrics derives the ideal weight range from BMI 18.5-24.9 and a body fat estimate
func (c *Calculator) HealthMetrics(weight, height float64, age int, gender types.Gender) HealthMetrics {
	m := height / 100
	idealMin := roundTo(18.5*m*m, 1)
	idealMax := roundTo(24.9*m*m, 1)

	bodyFat := 1.2*c.BMI(weight, height) + 0.23*float64(age)
	if gender == types.GenderMale {
		bodyFat -= 16.2
	} else {
		bodyFat -= 5.4
	}
	bodyFat = math.Max(5, math.Min(50, roundTo(bodyFat, 1)))

	status := "Within ideal range"
	switch {
	case weight < idealMin:
		status = fmt.Sprintf("Below ideal range by %g kg", roundTo(idealMin-weight, 1))
	case weight > idealMax:
		status = fmt.Sprintf("Above ideal range by %g kg", roundTo(weight-idealMax, 1))
	}

	var guidance string
	switch {
	case age < 30:
		guidance = "Focus on building and maintaining muscle mass through resistance training"
	case age < 50:
		guidance = "Maintain muscle mass to prevent age-related decline"
	default:
		guidance = "Prioritize muscle preservation through protein intake and strength training"
	}

	return HealthMetrics{
		IdealWeightMin:     idealMin,
		IdealWeightMax:     idealMax,
		IdealWeightRange:   fmt.Sprintf("%g-%g kg", idealMin, idealMax),
		WeightStatus:       status,
		BodyFatEstimate:    bodyFat,
		MuscleMassGuidance: guidance,
	}
}

// EnhancedSummary composes every target for a validated input
func (c *Calculator) EnhancedSummary(in Input) (Targets, error) {
	if err := in.validate(); err != nil {
		return Targets{}, err
	}
	activity := in.ActivityLevel
	if activity == "" {
		activity = types.ActivityModerate
	}

	bmr := c.BMR(in.Weight, in.Height, in.Age, in.Gender)
	bmi := c.BMI(in.Weight, in.Height)
	category := c.BMICategory(bmi)
	calories := c.DailyCalories(bmr, in.Goal, in.Timeline, activity)
	macros := c.Macronutrients(calories, in.Goal)

	return Targets{
		BMR:            bmr,
		BMI:            bmi,
		BMICategory:    category,
		BMILabel:       category.Label(),
		DailyCalories:  calories,
		Macros:         macros,
		Vitamins:       c.DailyVitamins(in.Age, in.Gender, in.Goal),
		Minerals:       c.DailyMinerals(in.Age, in.Gender, in.Goal),
		Fiber:          c.FiberRequirement(in.Age, in.Gender),
		Water:          c.WaterRequirement(in.Weight, activity),
		DensityTargets: c.DensityTargets(),
		HealthMetrics:  c.HealthMetrics(in.Weight, in.Height, in.Age, in.Gender),
		MetabolicInfo: MetabolicInfo{
			BMRPerKg:      roundTo(float64(bmr)/in.Weight, 1),
			CaloriesPerKg: roundTo(float64(calories)/in.Weight, 1),
			ProteinPerKg:  roundTo(float64(macros.Protein)/in.Weight, 2),
		},
	}, nil
}

func (in Input) validate() error {
	switch {
	case !positive(in.Weight):
		return fmt.Errorf("%w: weight must be a positive number, got %v", ErrInvalidInput, in.Weight)
	case !positive(in.Height):
		return fmt.Errorf("%w: height must be a positive number, got %v", ErrInvalidInput, in.Height)
	case in.Age <= 0:
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidInput, in.Age)
	case !in.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, in.Gender)
	case !in.Goal.Valid():
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, in.Goal)
	case !in.Timeline.Valid():
		return fmt.Errorf("%w: unknown timeline %q", ErrInvalidInput, in.Timeline)
	}
	if in.ActivityLevel != "" {
		if _, ok := activityMultipliers[in.ActivityLevel]; !ok {
			return fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, in.ActivityLevel)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func pick(male bool, m, f float64) float64 {
	if male {
		return m
	}
	return f
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func roundAll(in map[string]float64) map[string]float64 {
	for k, v := range in {
		in[k] = roundTo(v, 2)
	}
	return in
}
