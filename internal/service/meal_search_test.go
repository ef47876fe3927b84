package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/models"
	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/testhelpers"
)

func seededSearch(t *testing.T, db *gorm.DB) (*service.MealSearchService, *catalog.Catalog) {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	svc := service.NewMealSearchService(db)
	n, err := svc.Seed(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, len(c.Meals()), n)
	return svc, c
}

func mealNames(meals []models.CatalogMeal) []string {
	names := make([]string, len(meals))
	for i, m := range meals {
		names[i] = m.Name
	}
	return names
}

func TestMealSearch(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc, c := seededSearch(t, db)
	ctx := context.Background()

	meals, err := svc.Search(ctx, "IDLI", 0)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Idli with Sambar", meals[0].Name)
	assert.Contains(t, meals[0].Ingredients, "Urad dal")
	assert.Len(t, meals[0].Embedding.Slice(), models.EmbeddingDimensions)

	meals, err = svc.Search(ctx, "semolina", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rava Upma"}, mealNames(meals))

	meals, err = svc.Search(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, meals, 3)
	assert.IsNonDecreasing(t, mealNames(meals))

	meals, err = svc.Search(ctx, "", 1000)
	require.NoError(t, err)
	assert.Len(t, meals, min(len(c.Meals()), 50))

	// seeding again updates rows in place
	_, err = svc.Seed(ctx, c)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.CatalogMeal{}).Count(&count).Error)
	assert.Equal(t, int64(len(c.Meals())), count)
}

func TestMealSearchPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	svc, _ := seededSearch(t, db)

	meals, err := svc.Search(context.Background(), "idli", 5)
	require.NoError(t, err)
	require.Len(t, meals, 5)
	assert.Equal(t, "Idli with Sambar", meals[0].Name)
}
