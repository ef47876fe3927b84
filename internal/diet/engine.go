// Package diet selects catalog meals into a weekly plan and derives the
// recommendations and grocery list that accompany it.
package diet

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// Days are the keys of a weekly plan, in calendar order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// slotShares split the daily calorie target across the four meals
var slotShares = map[types.Slot]float64{
	types.SlotBreakfast: 0.25,
	types.SlotLunch:     0.35,
	types.SlotSnacks:    0.15,
	types.SlotDinner:    0.25,
}

// Catalog is the read-only meal data the engine plans from
type Catalog interface {
	Meal(id string) catalog.MealRecord
	Candidates(partition string, slot types.Slot) []string
	Ingredients(id string) []string
	Preparation(id string) (string, bool)
}

// RandomSource picks the partition for the "both" food style. Intn returns a value in [0, n).
type RandomSource interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.IntN(n) }

// Engine is safe for concurrent use when its RandomSource is.
type Engine struct {
	catalog Catalog
	rand    RandomSource
	log     *zap.Logger
}

// NewEngine builds an engine over a catalog. A nil rnd uses the process-wide
// random generator and a nil log discards output.
func NewEngine(c Catalog, rnd RandomSource, log *zap.Logger) *Engine {
	if rnd == nil {
		rnd = globalRand{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{catalog: c, rand: rnd, log: log}
}

// PlanRequest carries everything a weekly plan depends on
type PlanRequest struct {
	Profile          types.UserProfile
	Targets          nutrition.Targets
	HealthConditions []types.HealthCondition
	CostPreference   types.CostPreference
	FoodStyle        types.FoodStyle
	Season           types.Season
}

func (r PlanRequest) withDefaults() PlanRequest {
	if r.CostPreference == "" {
		r.CostPreference = types.CostMedium
	}
	if r.FoodStyle == "" {
		r.FoodStyle = types.StyleBoth
	}
	if r.Season == "" {
		r.Season = types.SeasonSpring
	}
	return r
}

// RequestFromProfile builds a plan request from a completed profile
func RequestFromProfile(p types.UserProfile, targets nutrition.Targets) PlanRequest {
	return PlanRequest{
		Profile:          p,
		Targets:          targets,
		HealthConditions: p.HealthConditions,
		CostPreference:   p.CostPreference,
		FoodStyle:        p.FoodStyle,
		Season:           p.CurrentSeason,
	}
}

// SlotTargets splits a daily calorie target into per-slot targets
func SlotTargets(dailyCalories float64) map[types.Slot]float64 {
	out := make(map[types.Slot]float64, len(slotShares))
	for slot, share := range slotShares {
		out[slot] = dailyCalories * share
	}
	return out
}

// GenerateWeeklyPlan fills every slot of every day. Days are generated
// independently, so a meal may repeat across the week.
func (e *Engine) GenerateWeeklyPlan(req PlanRequest) WeeklyPlan {
	req = req.withDefaults()
	targets := SlotTargets(float64(req.Targets.DailyCalories))

	plan := make(WeeklyPlan, len(Days))
	for _, day := range Days {
		meals := make(map[types.Slot]PlannedMeal, len(types.Slots))
		for _, slot := range types.Slots {
			meals[slot] = e.generateMeal(slot, targets[slot], req)
		}
		plan[day] = DailyPlan{Meals: meals, Totals: SumDay(meals)}
	}
	return plan
}

func (e *Engine) generateMeal(slot types.Slot, target float64, req PlanRequest) PlannedMeal {
	partition := e.partitionKey(req.Profile.Region, req.FoodStyle)

	var suitable []catalog.MealRecord
	for _, id := range e.catalog.Candidates(partition, slot) {
		meal := e.catalog.Meal(id)
		if isSuitable(meal, req.Profile.FoodPreference, req.Season, req.HealthConditions) {
			suitable = append(suitable, meal)
		}
	}

	if len(suitable) == 0 {
		e.log.Debug("no suitable catalog meal, using fallback",
			zap.String("partition", partition),
			zap.String("slot", string(slot)),
		)
		return e.enrichFallback(fallbackMeal(slot, target), req)
	}

	return e.enrich(selectOptimal(suitable, req.CostPreference, target), req)
}

// partitionKey resolves the catalog partition for a region and style; "both"
// picks one of the two at random on every call.
func (e *Engine) partitionKey(region types.Region, style types.FoodStyle) string {
	switch style {
	case types.StyleTraditional:
		return catalog.TraditionalPartition(region)
	case types.StyleModern:
		return catalog.ModernFusion
	}
	options := []string{catalog.TraditionalPartition(region), catalog.ModernFusion}
	return options[e.rand.Intn(len(options))]
}
