package usage

import (
	"context"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Service is the AI entitlement gate. Every AI route follows the calling
// convention: CheckLimit, perform the external generation, then RecordUsage
// exactly once if and only if the generation succeeded.
type Service interface {
	// CheckLimit returns nil when the user may perform one more generation
	// in the category this month, and a LimitExceeded error otherwise.
	// Checking never mutates counters.
	CheckLimit(ctx context.Context, userID int64, category plan.Category) error

	// RecordUsage records one consumption in the category for the current
	// month.
	RecordUsage(ctx context.Context, userID int64, category plan.Category) error

	// ResolvePlan returns the user's current plan tier (free when the user
	// has no current subscription).
	ResolvePlan(ctx context.Context, userID int64) (plan.Type, error)

	// Summary returns the user's current-month usage across all categories.
	Summary(ctx context.Context, userID int64) (*Summary, error)

	// ResetCurrentMonth zeroes the user's counters for the current month.
	// Admin only; prior months keep their history.
	ResetCurrentMonth(ctx context.Context, userID int64) error

	// NearLimit lists users at or above the near-limit threshold in at
	// least one category for the current month.
	NearLimit(ctx context.Context) ([]*Summary, error)
}
