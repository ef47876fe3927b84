package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// PlanningHandler serves the stateless calculators and catalog lookups.
// None of its routes need a token.
type PlanningHandler struct {
	plans  service.IPlanService
	search service.IMealSearchService
}

func NewPlanningHandler(plans service.IPlanService, search service.IMealSearchService) *PlanningHandler {
	return &PlanningHandler{plans: plans, search: search}
}

func (h *PlanningHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/nutrition", h.Nutrition)
	router.POST("/meal-plan", h.MealPlan)
	router.POST("/meal-analysis", h.MealAnalysis)
	router.GET("/health-conditions", h.HealthConditions)
	router.GET("/current-season", h.CurrentSeason)
	router.GET("/food-categories", h.FoodCategories)
	router.GET("/meals/search", h.SearchMeals)
}

func (h *PlanningHandler) Nutrition(c *gin.Context) {
	var req types.NutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	targets, err := h.plans.Nutrition(req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *PlanningHandler) MealPlan(c *gin.Context) {
	var req types.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	plan, err := h.plans.MealPlan(req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanningHandler) MealAnalysis(c *gin.Context) {
	var req types.MealAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	res, err := h.plans.AnalyzeMeal(req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PlanningHandler) HealthConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": h.plans.HealthConditions()})
}

func (h *PlanningHandler) CurrentSeason(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans.CurrentSeason())
}

func (h *PlanningHandler) FoodCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans.FoodCategories())
}

func (h *PlanningHandler) SearchMeals(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = c.Error(fmt.Errorf("%w: invalid limit %q", errBadRequest, raw))
			return
		}
		limit = n
	}

	meals, err := h.search.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}
