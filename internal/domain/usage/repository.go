package usage

import (
	"context"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
)

// Repository defines the interface for usage counter data access.
type Repository interface {
	// GetForMonth retrieves the counter row for (userID, month, year).
	// Returns NotFound when no row exists yet; callers treat that as zero
	// usage. Any other error is an infrastructure failure and must not be
	// interpreted as zero usage.
	GetForMonth(ctx context.Context, userID int64, month, year int) (*Record, error)

	// IncrementCategory bumps exactly the counter for category by one on
	// the (userID, month, year) row, creating the row with that counter at
	// 1 and the others at 0 when it does not exist. Implementations must
	// perform this as a single atomic upsert.
	IncrementCategory(ctx context.Context, userID int64, month, year int, category plan.Category) error

	// ResetMonth zeroes all three counters for (userID, month, year).
	// Rows for other months are untouched.
	ResetMonth(ctx context.Context, userID int64, month, year int) error

	// ListForMonth retrieves every counter row for a month bucket, used by
	// the near-limit report.
	ListForMonth(ctx context.Context, month, year int) ([]*Record, error)
}
