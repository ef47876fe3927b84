// Package api exposes the services over HTTP with gin.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/middleware"
	"github.com/pageza/nutrichat/backend/internal/service"
)

// Dependencies are the services and stores behind the routes. Redis and
// Limiter may be nil.
type Dependencies struct {
	DB      *gorm.DB
	Redis   redis.Cmdable
	Auth    service.IAuthService
	Chats   service.IChatService
	Exports service.IExportService
	Plans   service.IPlanService
	Search  service.IMealSearchService
	Limiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.Check)
	router.GET("/api/health", health.Check)

	v1 := router.Group("/api/v1")
	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewChatHandler(deps.Chats, deps.Exports, deps.Auth, deps.Limiter).RegisterRoutes(v1)
	NewPlanningHandler(deps.Plans, deps.Search).RegisterRoutes(v1)
}
