package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/conversation"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/models"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// Advancer applies one user message to a conversation
type Advancer interface {
	Advance(state types.ConversationState, input string) (conversation.Result, error)
}

// TurnResult is what one chat message produces
type TurnResult struct {
	Chat   *models.Chat   `json:"chat"`
	Reply  models.Message `json:"reply"`
	Status types.Status   `json:"status"`
	Plan   *diet.Plan     `json:"plan,omitempty"`
}

// ChatService persists conversations. Turns of one chat are applied one at a
// time; different chats proceed in parallel.
type ChatService struct {
	db     *gorm.DB
	engine Advancer
	cache  PlanCache
	locks  *keyedMutex
	log    *zap.Logger
}

// NewChatService wires the conversation engine to storage. cache may be nil.
func NewChatService(db *gorm.DB, engine Advancer, cache PlanCache, log *zap.Logger) *ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatService{db: db, engine: engine, cache: cache, locks: newKeyedMutex(), log: log}
}

// Create starts a conversation at the greeting
func (s *ChatService) Create(ctx context.Context, userID uuid.UUID) (*models.Chat, error) {
	state := types.NewConversationState()
	chat := &models.Chat{UserID: userID, Title: conversation.ChatTitle(state)}
	chat.SetState(state)
	if err := s.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// List returns the user's chats, most recently active first, without messages or plans
func (s *ChatService) List(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Omit("plan").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// Get returns a chat with its messages in order
func (s *ChatService) Get(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, role DESC") }).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&chat).Error
	if err != nil {
		return nil, chatLookupError(err)
	}
	return &chat, nil
}

// Delete removes a chat and its messages
func (s *ChatService) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	unlock := s.locks.Lock(chatID.String())
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", chatID, userID).Delete(&models.Chat{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete chat: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrChatNotFound
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.evict(ctx, chatID)
	return nil
}

// SendMessage runs one conversation turn and stores both sides of it
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*TurnResult, error) {
	unlock := s.locks.Lock(chatID.String())
	defer unlock()

	chat, err := s.load(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Advance(chat.State(), content)
	if err != nil {
		// the engine has already reset the conversation; the reply explains it
		s.log.Warn("conversation turn failed", zap.String("chat_id", chatID.String()), zap.Error(err))
	}

	chat.SetState(res.State)
	chat.Title = conversation.ChatTitle(res.State)
	switch {
	case res.Plan != nil:
		chat.Plan = res.Plan
	case res.State.Step != types.StepCompleted:
		chat.Plan = nil
	}

	userMsg := models.Message{ChatID: chat.ID, Role: models.RoleUser, Content: strings.TrimSpace(content)}
	reply := models.Message{ChatID: chat.ID, Role: models.RoleAssistant, Content: res.Message, Status: res.Status}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userMsg).Error; err != nil {
			return fmt.Errorf("failed to store message: %w", err)
		}
		if err := tx.Create(&reply).Error; err != nil {
			return fmt.Errorf("failed to store reply: %w", err)
		}
		if err := tx.Model(chat).Select("title", "step", "profile", "plan", "updated_at").Updates(chat).Error; err != nil {
			return fmt.Errorf("failed to update chat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Plan != nil {
		s.store(ctx, chatID, res.Plan)
	} else if chat.Plan == nil {
		s.evict(ctx, chatID)
	}

	return &TurnResult{Chat: chat, Reply: reply, Status: res.Status, Plan: res.Plan}, nil
}

// Reset returns a chat to the greeting with an empty profile and no history
func (s *ChatService) Reset(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, error) {
	unlock := s.locks.Lock(chatID.String())
	defer unlock()

	chat, err := s.load(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	state := types.NewConversationState()
	chat.SetState(state)
	chat.Title = conversation.ChatTitle(state)
	chat.Plan = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chat.ID).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to clear messages: %w", err)
		}
		if err := tx.Model(chat).Select("title", "step", "profile", "plan", "updated_at").Updates(chat).Error; err != nil {
			return fmt.Errorf("failed to reset chat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evict(ctx, chatID)
	return chat, nil
}

// Plan returns the completed plan of a chat, from the cache when possible
func (s *ChatService) Plan(ctx context.Context, userID, chatID uuid.UUID) (*diet.Plan, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).Omit("plan").Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		return nil, chatLookupError(err)
	}
	if chat.Step != types.StepCompleted {
		return nil, ErrPlanNotReady
	}

	if s.cache != nil {
		plan, ok, err := s.cache.Get(ctx, chatID.String())
		if err != nil {
			s.log.Warn("plan cache read failed", zap.String("chat_id", chatID.String()), zap.Error(err))
		} else if ok {
			return plan, nil
		}
	}

	if err := s.db.WithContext(ctx).Select("id", "plan").First(&chat, "id = ?", chatID).Error; err != nil {
		return nil, chatLookupError(err)
	}
	if chat.Plan == nil {
		return nil, ErrPlanNotReady
	}
	s.store(ctx, chatID, chat.Plan)
	return chat.Plan, nil
}

// GroceryList returns the categorized ingredients of a completed plan
func (s *ChatService) GroceryList(ctx context.Context, userID, chatID uuid.UUID) (diet.GroceryList, error) {
	plan, err := s.Plan(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return plan.GroceryList, nil
}

// Meal returns one planned meal of a completed plan
func (s *ChatService) Meal(ctx context.Context, userID, chatID uuid.UUID, day string, slot types.Slot) (diet.PlannedMeal, error) {
	plan, err := s.Plan(ctx, userID, chatID)
	if err != nil {
		return diet.PlannedMeal{}, err
	}
	meal, ok := plan.WeeklyPlan.Meal(day, slot)
	if !ok {
		return diet.PlannedMeal{}, fmt.Errorf("%w: %s %s", ErrMealNotFound, day, slot)
	}
	return meal, nil
}

// load fetches a chat without messages, scoped to its owner
func (s *ChatService) load(ctx context.Context, userID, chatID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		return nil, chatLookupError(err)
	}
	return &chat, nil
}

func (s *ChatService) store(ctx context.Context, chatID uuid.UUID, plan *diet.Plan) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, chatID.String(), plan); err != nil {
		s.log.Warn("plan cache write failed", zap.String("chat_id", chatID.String()), zap.Error(err))
	}
}

func (s *ChatService) evict(ctx context.Context, chatID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, chatID.String()); err != nil {
		s.log.Warn("plan cache eviction failed", zap.String("chat_id", chatID.String()), zap.Error(err))
	}
}

func chatLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChatNotFound
	}
	return fmt.Errorf("failed to load chat: %w", err)
}
