package diet

import (
	"fmt"

	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// Plan is everything produced for a completed profile
type Plan struct {
	Profile         types.UserProfile `json:"profile"`
	Targets         nutrition.Targets `json:"nutrition_targets"`
	WeeklyPlan      WeeklyPlan        `json:"weekly_plan"`
	Recommendations []string          `json:"recommendations"`
	GroceryList     GroceryList       `json:"grocery_list"`
}

// TargetSource computes nutrition targets from biometrics
type TargetSource interface {
	EnhancedSummary(in nutrition.Input) (nutrition.Targets, error)
}

// Planner chains the nutrition calculator and the diet engine
type Planner struct {
	calc   TargetSource
	engine *Engine
}

func NewPlanner(calc TargetSource, engine *Engine) *Planner {
	return &Planner{calc: calc, engine: engine}
}

// Build computes targets for the profile and assembles the weekly plan,
// recommendations and grocery list. Missing or invalid biometrics return an
// error wrapping nutrition.ErrInvalidInput.
func (p *Planner) Build(profile types.UserProfile) (*Plan, error) {
	in, err := nutrition.InputFromProfile(profile)
	if err != nil {
		return nil, err
	}
	return p.BuildWithInput(profile, in)
}

// BuildWithInput is Build for callers that already hold calculator input,
// such as a request carrying an activity level.
func (p *Planner) BuildWithInput(profile types.UserProfile, in nutrition.Input) (*Plan, error) {
	targets, err := p.calc.EnhancedSummary(in)
	if err != nil {
		return nil, fmt.Errorf("failed to compute nutrition targets: %w", err)
	}

	weekly := p.engine.GenerateWeeklyPlan(RequestFromProfile(profile, targets))
	return &Plan{
		Profile:         profile.Clone(),
		Targets:         targets,
		WeeklyPlan:      weekly,
		Recommendations: p.engine.Recommendations(profile, targets, profile.HealthConditions),
		GroceryList:     p.engine.GroceryList(weekly),
	}, nil
}
