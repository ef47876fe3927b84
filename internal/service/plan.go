package service

import (
	"fmt"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/conversation"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// SeasonDetector reports the season of the current date
type SeasonDetector interface {
	DetectSeason() types.Season
}

// ConditionOption is one entry of the numbered health condition menu
type ConditionOption struct {
	Number int                   `json:"number"`
	Code   types.HealthCondition `json:"code"`
	Label  string                `json:"label"`
}

// SeasonReport describes the detected season
type SeasonReport struct {
	Season types.Season       `json:"season"`
	Label  string             `json:"label"`
	Info   catalog.SeasonInfo `json:"info"`
}

// FoodCategories lists the meal names of every partition by slot
type FoodCategories struct {
	Slots      []types.Slot                       `json:"slots"`
	Partitions map[string]map[types.Slot][]string `json:"partitions"`
}

// MealAnalysisResult holds the totals of a meal and, when biometrics were
// supplied, how well it covers the daily targets
type MealAnalysisResult struct {
	Analysis nutrition.MealAnalysis `json:"analysis"`
	Targets  *nutrition.Targets     `json:"targets,omitempty"`
	Adequacy *nutrition.Adequacy    `json:"adequacy,omitempty"`
}

// PlanService serves the stateless planning endpoints
type PlanService struct {
	calc    *nutrition.Calculator
	planner *diet.Planner
	catalog *catalog.Catalog
	seasons SeasonDetector
}

func NewPlanService(calc *nutrition.Calculator, planner *diet.Planner, c *catalog.Catalog, seasons SeasonDetector) *PlanService {
	return &PlanService{calc: calc, planner: planner, catalog: c, seasons: seasons}
}

// Nutrition computes the full target summary for ad-hoc biometrics
func (s *PlanService) Nutrition(req types.NutritionRequest) (nutrition.Targets, error) {
	return s.calc.EnhancedSummary(nutritionInput(req))
}

// MealPlan builds targets, a weekly plan, recommendations and a grocery list
// for a complete profile
func (s *PlanService) MealPlan(req types.MealPlanRequest) (*diet.Plan, error) {
	profile := req.Profile()
	switch {
	case !profile.FoodPreference.Valid():
		return nil, fmt.Errorf("%w: unknown food preference %q", nutrition.ErrInvalidInput, profile.FoodPreference)
	case !profile.Region.Valid():
		return nil, fmt.Errorf("%w: unknown region %q", nutrition.ErrInvalidInput, profile.Region)
	case !profile.FoodStyle.Valid():
		return nil, fmt.Errorf("%w: unknown food style %q", nutrition.ErrInvalidInput, profile.FoodStyle)
	case !profile.CurrentSeason.Valid():
		return nil, fmt.Errorf("%w: unknown season %q", nutrition.ErrInvalidInput, profile.CurrentSeason)
	case !profile.CostPreference.Valid():
		return nil, fmt.Errorf("%w: unknown cost preference %q", nutrition.ErrInvalidInput, profile.CostPreference)
	}

	in := nutritionInput(req.NutritionRequest)
	in.Timeline = profile.Timeline
	return s.planner.BuildWithInput(profile, in)
}

// AnalyzeMeal totals a meal and scores it when a profile is given
func (s *PlanService) AnalyzeMeal(req types.MealAnalysisRequest) (MealAnalysisResult, error) {
	result := MealAnalysisResult{Analysis: s.calc.AnalyzeMeal(req.Items)}
	if req.Profile == nil {
		return result, nil
	}

	targets, err := s.calc.EnhancedSummary(nutritionInput(*req.Profile))
	if err != nil {
		return MealAnalysisResult{}, err
	}
	adequacy := s.calc.AdequacyScore(result.Analysis, targets)
	result.Targets = &targets
	result.Adequacy = &adequacy
	return result, nil
}

// HealthConditions returns the numbered condition menu used by the conversation
func (s *PlanService) HealthConditions() []ConditionOption {
	out := make([]ConditionOption, 0, len(types.HealthConditions))
	for i, c := range types.HealthConditions {
		out = append(out, ConditionOption{Number: i + 1, Code: c, Label: conversation.ConditionLabel(c)})
	}
	return out
}

func (s *PlanService) CurrentSeason() SeasonReport {
	season := s.seasons.DetectSeason()
	info, _ := s.catalog.SeasonInfo(season)
	return SeasonReport{Season: season, Label: types.Humanize(string(season)), Info: info}
}

func (s *PlanService) FoodCategories() FoodCategories {
	out := FoodCategories{
		Slots:      types.Slots,
		Partitions: make(map[string]map[types.Slot][]string),
	}
	for _, partition := range s.catalog.Partitions() {
		bySlot := make(map[types.Slot][]string, len(types.Slots))
		for _, slot := range types.Slots {
			ids := s.catalog.Candidates(partition, slot)
			names := make([]string, 0, len(ids))
			for _, id := range ids {
				names = append(names, s.catalog.Meal(id).Name)
			}
			bySlot[slot] = names
		}
		out.Partitions[partition] = bySlot
	}
	return out
}

func nutritionInput(req types.NutritionRequest) nutrition.Input {
	timeline := req.Timeline
	if timeline == "" {
		timeline = types.TimelineShort
	}
	return nutrition.Input{
		Weight:        req.Weight,
		Height:        req.Height,
		Age:           req.Age,
		Gender:        req.Gender,
		Goal:          req.Goal,
		Timeline:      timeline,
		ActivityLevel: req.ActivityLevel,
	}
}
