package document

import (
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Document is a stored resume, cover letter or interview prep sheet.
// Content is an opaque JSON blob owned by the editor frontend.
type Document struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Kind      plan.Category `json:"kind"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
