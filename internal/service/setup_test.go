package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/conversation"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/testhelpers"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// answers walks a conversation from the greeting to the timeline question
var answers = []string{"hello", "30", "70", "175", "male", "vegetarian", "traditional", "current",
	"south indian", "maintain", "1,3", "medium"}

func january() time.Time { return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC) }

// completeProfile is the profile the answers above produce
func completeProfile() types.UserProfile {
	return types.UserProfile{
		Age:              types.IntPtr(30),
		Weight:           types.FloatPtr(70),
		Height:           types.FloatPtr(175),
		Gender:           types.GenderMale,
		FoodPreference:   types.PreferenceVegetarian,
		FoodStyle:        types.StyleTraditional,
		CurrentSeason:    types.SeasonWinter,
		Region:           types.RegionSouthIndian,
		Goal:             types.GoalMaintain,
		HealthConditions: []types.HealthCondition{types.ConditionDiabetes, types.ConditionKidneyStones},
		CostPreference:   types.CostMedium,
		Timeline:         types.TimelineShort,
	}
}

type fixture struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	engine  *conversation.Engine
	planner *diet.Planner
	calc    *nutrition.Calculator
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	calc := nutrition.NewCalculator(c)
	planner := diet.NewPlanner(calc, diet.NewEngine(c, nil, nil))
	return fixture{
		db:      testhelpers.SetupTestDatabase(t),
		catalog: c,
		engine:  conversation.NewEngine(planner, c, nil, conversation.WithClock(january)),
		planner: planner,
		calc:    calc,
	}
}

// memoryCache is a PlanCache backed by a map
type memoryCache struct {
	mu      sync.Mutex
	plans   map[string]*diet.Plan
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{plans: map[string]*diet.Plan{}}
}

func (c *memoryCache) Get(_ context.Context, chatID string) (*diet.Plan, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	plan, ok := c.plans[chatID]
	return plan, ok, nil
}

func (c *memoryCache) Set(_ context.Context, chatID string, plan *diet.Plan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[chatID] = plan
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, chatID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.plans, chatID)
	c.deletes++
	return nil
}

var _ service.PlanCache = (*memoryCache)(nil)
