package types

import "slices"

// UserProfile accumulates the answers collected by the intake conversation.
// A field stays at its zero value (nil for numbers) until its step completes.
type UserProfile struct {
	Age              *int              `json:"age,omitempty"`
	Weight           *float64          `json:"weight,omitempty"`
	Height           *float64          `json:"height,omitempty"`
	Gender           Gender            `json:"gender,omitempty"`
	FoodPreference   FoodPreference    `json:"food_preference,omitempty"`
	FoodStyle        FoodStyle         `json:"food_style,omitempty"`
	CurrentSeason    Season            `json:"current_season,omitempty"`
	Region           Region            `json:"region,omitempty"`
	Goal             Goal              `json:"goal,omitempty"`
	HealthConditions []HealthCondition `json:"health_conditions,omitempty"`
	CostPreference   CostPreference    `json:"cost_preference,omitempty"`
	Timeline         Timeline          `json:"timeline,omitempty"`
}

// Clone returns a deep copy so callers can mutate it without touching the original
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.Age != nil {
		v := *p.Age
		out.Age = &v
	}
	if p.Weight != nil {
		v := *p.Weight
		out.Weight = &v
	}
	if p.Height != nil {
		v := *p.Height
		out.Height = &v
	}
	out.HealthConditions = slices.Clone(p.HealthConditions)
	return out
}

// HasCondition reports whether the profile lists the given health condition
func (p UserProfile) HasCondition(c HealthCondition) bool {
	return slices.Contains(p.HealthConditions, c)
}

// ConversationState is the persisted position of a single conversation.
type ConversationState struct {
	Step    Step        `json:"step"`
	Profile UserProfile `json:"profile"`
}

// NewConversationState returns a conversation positioned at the greeting with an empty profile
func NewConversationState() ConversationState {
	return ConversationState{Step: StepGreeting}
}

// IntPtr and FloatPtr help build profiles in literals.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
