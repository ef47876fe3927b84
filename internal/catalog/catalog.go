// Package catalog holds the read-only meal and food reference tables used by the planner.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/pageza/nutrichat/backend/internal/types"
)

const (
	// ModernFusion is the partition used for the modern food style regardless of region
	ModernFusion = "modern_fusion"

	defaultMealCalories = 200
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// DefaultIngredients is returned for meals without an ingredient entry
var DefaultIngredients = []string{"Basic ingredients as per recipe"}

// TraditionalPartition names the traditional partition of a region, e.g. "south_indian_traditional"
func TraditionalPartition(region types.Region) string {
	return string(region) + "_traditional"
}

// Macros are grams of each macronutrient
type Macros struct {
	Protein float64 `json:"protein" yaml:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs"`
	Fats    float64 `json:"fats" yaml:"fats"`
}

// MealRecord is a catalog entry describing one prepared meal
type MealRecord struct {
	ID          string             `json:"id" yaml:"-"`
	Name        string             `json:"name" yaml:"name"`
	Calories    float64            `json:"calories" yaml:"calories"`
	Macros      Macros             `json:"macros" yaml:"macros"`
	Vitamins    map[string]float64 `json:"vitamins" yaml:"vitamins"`
	Minerals    map[string]float64 `json:"minerals" yaml:"minerals"`
	DietaryType types.DietaryType  `json:"dietary_type" yaml:"dietary_type"`
	FoodStyle   types.FoodStyle    `json:"food_style" yaml:"food_style"`
	Seasons     []types.Season     `json:"seasonal_availability" yaml:"seasonal_availability"`
}

// Clone returns a copy that shares no maps or slices with m
func (m MealRecord) Clone() MealRecord {
	out := m
	out.Vitamins = cloneAmounts(m.Vitamins)
	out.Minerals = cloneAmounts(m.Minerals)
	out.Seasons = slices.Clone(m.Seasons)
	return out
}

// SeasonInfo describes what to favour and avoid in a season
type SeasonInfo struct {
	Description     string   `json:"description" yaml:"description"`
	BeneficialFoods []string `json:"beneficial_foods" yaml:"beneficial_foods"`
	AvoidFoods      []string `json:"avoid_foods" yaml:"avoid_foods"`
}

// FoodItem is the composition of 100g of a single food
type FoodItem struct {
	Macros      Macros             `json:"macros" yaml:"macros"`
	Vitamins    map[string]float64 `json:"vitamins" yaml:"vitamins"`
	Minerals    map[string]float64 `json:"minerals" yaml:"minerals"`
	ServingSize string             `json:"serving_size" yaml:"serving_size"`
}

// Data is the serialized form of a catalog
type Data struct {
	Meals        map[string]MealRecord              `json:"meals" yaml:"meals"`
	Partitions   map[string]map[types.Slot][]string `json:"partitions" yaml:"partitions"`
	Ingredients  map[string][]string                `json:"ingredients" yaml:"ingredients"`
	Preparations map[string]string                  `json:"preparations" yaml:"preparations"`
	Seasons      map[types.Season]SeasonInfo        `json:"seasons" yaml:"seasons"`
	Foods        map[string]FoodItem                `json:"foods" yaml:"foods"`
}

// Catalog is safe for concurrent use; nothing mutates it after New returns.
type Catalog struct {
	meals        map[string]MealRecord
	partitions   map[string]map[types.Slot][]string
	ingredients  map[string][]string
	preparations map[string]string
	seasons      map[types.Season]SeasonInfo
	foods        map[string]FoodItem
}

// New validates data and builds a catalog from it
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		meals:        make(map[string]MealRecord, len(data.Meals)),
		partitions:   make(map[string]map[types.Slot][]string, len(data.Partitions)),
		ingredients:  make(map[string][]string, len(data.Ingredients)),
		preparations: maps.Clone(data.Preparations),
		seasons:      maps.Clone(data.Seasons),
		foods:        maps.Clone(data.Foods),
	}
	if c.preparations == nil {
		c.preparations = map[string]string{}
	}
	if c.seasons == nil {
		c.seasons = map[types.Season]SeasonInfo{}
	}
	if c.foods == nil {
		c.foods = map[string]FoodItem{}
	}

	for id, meal := range data.Meals {
		if meal.Name == "" {
			return nil, fmt.Errorf("%w: meal %q has no name", ErrInvalidCatalog, id)
		}
		if meal.Calories < 0 {
			return nil, fmt.Errorf("%w: meal %q has negative calories", ErrInvalidCatalog, id)
		}
		switch meal.DietaryType {
		case "":
			meal.DietaryType = types.DietVegetarian
		case types.DietVegetarian, types.DietNonVegetarian:
		default:
			return nil, fmt.Errorf("%w: meal %q has unknown dietary type %q", ErrInvalidCatalog, id, meal.DietaryType)
		}
		if meal.FoodStyle == "" {
			meal.FoodStyle = types.StyleTraditional
		}
		meal.ID = id
		c.meals[id] = meal.Clone()
	}

	for key, slots := range data.Partitions {
		copied := make(map[types.Slot][]string, len(slots))
		for slot, ids := range slots {
			if !slot.Valid() {
				return nil, fmt.Errorf("%w: partition %q has unknown slot %q", ErrInvalidCatalog, key, slot)
			}
			copied[slot] = slices.Clone(ids)
		}
		c.partitions[key] = copied
	}

	for id, list := range data.Ingredients {
		c.ingredients[id] = slices.Clone(list)
	}

	return c, nil
}

// Meal looks up a meal by id. Unknown ids resolve to a generic vegetarian
// record named after the id so that lookups never fail.
func (c *Catalog) Meal(id string) MealRecord {
	if meal, ok := c.meals[id]; ok {
		return meal.Clone()
	}
	return MealRecord{
		ID:          id,
		Name:        types.Humanize(id),
		Calories:    defaultMealCalories,
		Macros:      Macros{Protein: 6, Carbs: 30, Fats: 5},
		Vitamins:    map[string]float64{},
		Minerals:    map[string]float64{},
		DietaryType: types.DietVegetarian,
		FoodStyle:   types.StyleTraditional,
	}
}

// Has reports whether the catalog defines the meal explicitly
func (c *Catalog) Has(id string) bool {
	_, ok := c.meals[id]
	return ok
}

// Meals returns every explicitly defined meal ordered by id
func (c *Catalog) Meals() []MealRecord {
	out := make([]MealRecord, 0, len(c.meals))
	for _, id := range slices.Sorted(maps.Keys(c.meals)) {
		out = append(out, c.meals[id].Clone())
	}
	return out
}

// Candidates returns the meal ids registered for a slot in a partition, in catalog order
func (c *Catalog) Candidates(partition string, slot types.Slot) []string {
	return slices.Clone(c.partitions[partition][slot])
}

// Partitions returns the partition keys in lexical order
func (c *Catalog) Partitions() []string {
	return slices.Sorted(maps.Keys(c.partitions))
}

// Ingredients returns the ingredient list for a meal, or DefaultIngredients
func (c *Catalog) Ingredients(id string) []string {
	if list, ok := c.ingredients[id]; ok && len(list) > 0 {
		return slices.Clone(list)
	}
	return slices.Clone(DefaultIngredients)
}

// Preparation returns the catalog preparation text for a meal, if any
func (c *Catalog) Preparation(id string) (string, bool) {
	text, ok := c.preparations[id]
	return text, ok
}

// SeasonInfo returns the reference notes for a season
func (c *Catalog) SeasonInfo(season types.Season) (SeasonInfo, bool) {
	info, ok := c.seasons[season]
	if !ok {
		return SeasonInfo{}, false
	}
	info.BeneficialFoods = slices.Clone(info.BeneficialFoods)
	info.AvoidFoods = slices.Clone(info.AvoidFoods)
	return info, true
}

// Food returns the per 100g composition of a named food
func (c *Catalog) Food(name string) (FoodItem, bool) {
	item, ok := c.foods[name]
	if !ok {
		return FoodItem{}, false
	}
	item.Vitamins = cloneAmounts(item.Vitamins)
	item.Minerals = cloneAmounts(item.Minerals)
	return item, true
}

func cloneAmounts(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
