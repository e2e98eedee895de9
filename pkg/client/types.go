package client

import "time"

// User is an account as returned by the API
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName,omitempty"`
	Role     string  `json:"role"`
}

// AuthResponse is the result of login or registration
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// CategoryUsage is one category's consumption against its quota
type CategoryUsage struct {
	Category  string `json:"category"`
	Used      int    `json:"used"`
	Quota     int    `json:"quota"`
	Remaining int    `json:"remaining"`
	NearLimit bool   `json:"near_limit"`
}

// UsageSummary is a user's current-month AI usage
type UsageSummary struct {
	UserID     int64           `json:"user_id"`
	PlanType   string          `json:"plan_type"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Categories []CategoryUsage `json:"categories"`
}

// Setting is a runtime configuration entry
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitempty"`
	UpdatedBy   int64     `json:"updatedBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Plan describes one purchasable plan tier
type Plan struct {
	Type            string  `json:"type"`
	PriceAED        float64 `json:"priceAed"`
	BillingInterval string  `json:"billingInterval"`
	Resumes         int     `json:"resumes"`
	CoverLetters    int     `json:"coverLetters"`
	Interviews      int     `json:"interviews"`
}

// Generation is the result of an AI generation call
type Generation struct {
	Text string `json:"text"`
}
