package subscription

import (
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Subscription is a user's plan assignment with a validity window.
// EndDate == nil means open-ended.
type Subscription struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	PlanType  plan.Type  `json:"plan_type"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Subscription statuses
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// CurrentAt reports whether the subscription is in force at the given time.
func (s *Subscription) CurrentAt(now time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	return s.EndDate == nil || !s.EndDate.Before(now)
}
