package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutrichat/backend/internal/middleware"
	"github.com/pageza/nutrichat/backend/internal/service"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// ChatHandler serves the conversation endpoints. Every route needs a token;
// the message route is also rate limited when a limiter is configured.
type ChatHandler struct {
	chats     service.IChatService
	exports   service.IExportService
	validator middleware.TokenValidator
	limiter   *middleware.RateLimiter
}

func NewChatHandler(chats service.IChatService, exports service.IExportService, validator middleware.TokenValidator, limiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{chats: chats, exports: exports, validator: validator, limiter: limiter}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chats := router.Group("/chats")
	chats.Use(middleware.AuthMiddleware(h.validator))
	{
		chats.POST("", h.Create)
		chats.GET("", h.List)
		chats.GET("/:id", h.Get)
		chats.DELETE("/:id", h.Delete)
		chats.POST("/:id/reset", h.Reset)
		chats.GET("/:id/plan", h.Plan)
		chats.GET("/:id/grocery-list", h.GroceryList)
		chats.GET("/:id/meals/:day/:slot", h.Meal)
		chats.POST("/:id/export", h.Export)

		if h.limiter != nil {
			chats.POST("/:id/messages", h.limiter.RateLimitMiddleware(), h.SendMessage)
		} else {
			chats.POST("/:id/messages", h.SendMessage)
		}
	}
}

func (h *ChatHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	chat, err := h.chats.Create(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	chats, err := h.chats.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

func (h *ChatHandler) Get(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	chat, err := h.chats.Get(c.Request.Context(), userID, chatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	if err := h.chats.Delete(c.Request.Context(), userID, chatID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	var req types.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	res, err := h.chats.SendMessage(c.Request.Context(), userID, chatID, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ChatHandler) Reset(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	chat, err := h.chats.Reset(c.Request.Context(), userID, chatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) Plan(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	plan, err := h.chats.Plan(c.Request.Context(), userID, chatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *ChatHandler) GroceryList(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	list, err := h.chats.GroceryList(c.Request.Context(), userID, chatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_list": list})
}

func (h *ChatHandler) Meal(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	slot := types.Slot(strings.ToLower(c.Param("slot")))
	if !slot.Valid() {
		_ = c.Error(fmt.Errorf("%w: unknown meal slot %q", errBadRequest, c.Param("slot")))
		return
	}

	meal, err := h.chats.Meal(c.Request.Context(), userID, chatID, c.Param("day"), slot)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *ChatHandler) Export(c *gin.Context) {
	userID, chatID, ok := chatParams(c)
	if !ok {
		return
	}
	res, err := h.exports.Export(c.Request.Context(), userID, chatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "user not authenticated"})
	}
	return userID, ok
}

func chatParams(c *gin.Context) (userID, chatID uuid.UUID, ok bool) {
	if userID, ok = currentUser(c); !ok {
		return
	}
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: invalid chat id %q", errBadRequest, c.Param("id")))
		return userID, uuid.Nil, false
	}
	return userID, chatID, true
}
