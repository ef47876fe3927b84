package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// Role tells who wrote a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Chat is one persisted conversation. Step and Profile are the conversation
// state; Plan is set once the conversation completes.
type Chat struct {
	ID        uuid.UUID         `gorm:"type:uuid;primarykey" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string            `gorm:"size:255;not null" json:"title"`
	Step      types.Step        `gorm:"size:32;not null" json:"step"`
	Profile   types.UserProfile `gorm:"serializer:json" json:"profile"`
	Plan      *diet.Plan        `gorm:"serializer:json" json:"plan,omitempty"`
	Messages  []Message         `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// State returns the conversation state stored on the chat
func (c *Chat) State() types.ConversationState {
	return types.ConversationState{Step: c.Step, Profile: c.Profile}
}

// SetState stores a conversation state on the chat
func (c *Chat) SetState(state types.ConversationState) {
	c.Step = state.Step
	c.Profile = state.Profile
}

func (c *Chat) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID        uuid.UUID    `gorm:"type:uuid;primarykey" json:"id"`
	ChatID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"chat_id"`
	Role      Role         `gorm:"size:16;not null" json:"role"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Status    types.Status `gorm:"size:16" json:"status,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
