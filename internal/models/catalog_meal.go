package models

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/nutrichat/backend/internal/types"
)

// EmbeddingDimensions is the width of the meal name embedding
const EmbeddingDimensions = 3

// CatalogMeal is the searchable copy of a catalog meal. The in-memory
// catalog stays authoritative; these rows only back meal search.
type CatalogMeal struct {
	ID          string            `gorm:"primarykey;size:64" json:"id"`
	Name        string            `gorm:"size:255;not null;index" json:"name"`
	Calories    float64           `json:"calories"`
	Protein     float64           `json:"protein"`
	Carbs       float64           `json:"carbs"`
	Fats        float64           `json:"fats"`
	DietaryType types.DietaryType `gorm:"size:32" json:"dietary_type"`
	FoodStyle   types.FoodStyle   `gorm:"size:32" json:"food_style"`
	Seasons     []types.Season    `gorm:"serializer:json" json:"seasonal_availability"`
	Ingredients []string          `gorm:"serializer:json" json:"ingredients"`
	Embedding   pgvector.Vector   `gorm:"type:vector(3)" json:"-"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
