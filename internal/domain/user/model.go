package user

import "time"

// User represents a job seeker or admin account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
