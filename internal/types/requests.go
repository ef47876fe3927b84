package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChatMessageRequest carries one user turn of a conversation
type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// NutritionRequest holds the biometrics needed for a nutrition summary
type NutritionRequest struct {
	Weight        float64       `json:"weight" binding:"required"`
	Height        float64       `json:"height" binding:"required"`
	Age           int           `json:"age" binding:"required"`
	Gender        Gender        `json:"gender" binding:"required"`
	Goal          Goal          `json:"goal" binding:"required"`
	Timeline      Timeline      `json:"timeline"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// MealPlanRequest is a full profile submitted outside of a conversation
type MealPlanRequest struct {
	NutritionRequest
	FoodPreference   FoodPreference    `json:"food_preference" binding:"required"`
	Region           Region            `json:"region" binding:"required"`
	FoodStyle        FoodStyle         `json:"food_style"`
	CurrentSeason    Season            `json:"current_season"`
	CostPreference   CostPreference    `json:"cost_preference"`
	HealthConditions []HealthCondition `json:"health_conditions"`
}

// Profile converts the request into a profile, filling the defaults used by the stateless endpoints
func (r MealPlanRequest) Profile() UserProfile {
	p := UserProfile{
		Age:              IntPtr(r.Age),
		Weight:           FloatPtr(r.Weight),
		Height:           FloatPtr(r.Height),
		Gender:           r.Gender,
		FoodPreference:   r.FoodPreference,
		FoodStyle:        r.FoodStyle,
		CurrentSeason:    r.CurrentSeason,
		Region:           r.Region,
		Goal:             r.Goal,
		HealthConditions: r.HealthConditions,
		CostPreference:   r.CostPreference,
		Timeline:         r.Timeline,
	}
	if p.FoodStyle == "" {
		p.FoodStyle = StyleBoth
	}
	if p.CurrentSeason == "" {
		p.CurrentSeason = SeasonSpring
	}
	if p.CostPreference == "" {
		p.CostPreference = CostMedium
	}
	if p.Timeline == "" {
		p.Timeline = TimelineShort
	}
	return p
}

// MealAnalysisRequest lists foods by catalog name with quantities in grams
type MealAnalysisRequest struct {
	Items   map[string]float64 `json:"items" binding:"required"`
	Profile *NutritionRequest  `json:"profile,omitempty"`
}
