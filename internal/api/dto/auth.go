package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName,omitempty" validate:"omitempty,max=255"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UserDTO is the public view of an account
type UserDTO struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName,omitempty"`
	Role     string  `json:"role"`
	PlanType string  `json:"planType,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}
