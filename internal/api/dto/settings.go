package dto

import "time"

// UpdateSettingRequest upserts a runtime setting
type UpdateSettingRequest struct {
	Value       string `json:"value" validate:"required,max=4096"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1024"`
}

// SettingDTO is the admin view of one setting
type SettingDTO struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitempty"`
	UpdatedBy   int64     `json:"updatedBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
