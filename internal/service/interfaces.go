package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/models"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GenerateToken(userID uuid.UUID, username string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IChatService defines the interface for persisted conversations
type IChatService interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Chat, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
	Get(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, error)
	Delete(ctx context.Context, userID, chatID uuid.UUID) error
	SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*TurnResult, error)
	Reset(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, error)
	Plan(ctx context.Context, userID, chatID uuid.UUID) (*diet.Plan, error)
	GroceryList(ctx context.Context, userID, chatID uuid.UUID) (diet.GroceryList, error)
	Meal(ctx context.Context, userID, chatID uuid.UUID, day string, slot types.Slot) (diet.PlannedMeal, error)
}

// IPlanService defines the interface for the stateless planning operations
type IPlanService interface {
	Nutrition(req types.NutritionRequest) (nutrition.Targets, error)
	MealPlan(req types.MealPlanRequest) (*diet.Plan, error)
	AnalyzeMeal(req types.MealAnalysisRequest) (MealAnalysisResult, error)
	HealthConditions() []ConditionOption
	CurrentSeason() SeasonReport
	FoodCategories() FoodCategories
}

// IExportService defines the interface for plan exports
type IExportService interface {
	Export(ctx context.Context, userID, chatID uuid.UUID) (*ExportResult, error)
}

// IMealSearchService defines the interface for catalog meal search
type IMealSearchService interface {
	Seed(ctx context.Context, c *catalog.Catalog) (int, error)
	Search(ctx context.Context, query string, limit int) ([]models.CatalogMeal, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IChatService       = (*ChatService)(nil)
	_ IPlanService       = (*PlanService)(nil)
	_ IExportService     = (*ExportService)(nil)
	_ IMealSearchService = (*MealSearchService)(nil)
	_ PlanSource         = (*ChatService)(nil)
	_ PlanCache          = (*RedisPlanCache)(nil)
)
