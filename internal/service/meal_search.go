package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/models"
	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// MealSearchService indexes catalog meals in the database and searches them
type MealSearchService struct {
	db *gorm.DB
}

func NewMealSearchService(db *gorm.DB) *MealSearchService {
	return &MealSearchService{db: db}
}

// Seed upserts every catalog meal with its ingredients and name embedding
func (s *MealSearchService) Seed(ctx context.Context, c *catalog.Catalog) (int, error) {
	meals := c.Meals()
	if len(meals) == 0 {
		return 0, nil
	}

	rows := make([]models.CatalogMeal, 0, len(meals))
	for _, m := range meals {
		// the column is NOT NULL; a nil slice would be stored as NULL
		seasons := m.Seasons
		if seasons == nil {
			seasons = []types.Season{}
		}
		rows = append(rows, models.CatalogMeal{
			ID:          m.ID,
			Name:        m.Name,
			Calories:    m.Calories,
			Protein:     m.Macros.Protein,
			Carbs:       m.Macros.Carbs,
			Fats:        m.Macros.Fats,
			DietaryType: m.DietaryType,
			FoodStyle:   m.FoodStyle,
			Seasons:     seasons,
			Ingredients: c.Ingredients(m.ID),
			Embedding:   GenerateEmbedding(m.Name),
		})
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(&rows, 100).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog meals: %w", err)
	}
	return len(rows), nil
}

// Search finds meals by name or ingredient. On PostgreSQL keyword matches
// come first and the rest are ranked by embedding distance; elsewhere only
// keyword matches are returned.
func (s *MealSearchService) Search(ctx context.Context, query string, limit int) ([]models.CatalogMeal, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	query = strings.ToLower(strings.TrimSpace(query))
	like := "%" + query + "%"
	dbQuery := s.db.WithContext(ctx).Model(&models.CatalogMeal{}).Limit(limit)

	switch {
	case query == "":
		dbQuery = dbQuery.Order("name")
	case s.db.Dialector.Name() == "postgres":
		vec := GenerateEmbedding(query)
		dbQuery = dbQuery.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "(LOWER(name) LIKE ? OR LOWER(ingredients::text) LIKE ?) DESC, embedding <-> ?",
			Vars:               []any{like, like, vec},
			WithoutParentheses: true,
		}})
	default:
		dbQuery = dbQuery.
			Where("LOWER(name) LIKE ? OR LOWER(ingredients) LIKE ?", like, like).
			Order("name")
	}

	var meals []models.CatalogMeal
	if err := dbQuery.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to search meals: %w", err)
	}
	return meals, nil
}
