package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription data access.
// Subscriptions are written by the billing collaborator; the entitlement
// gate only reads them.
type Repository interface {
	// Create creates a new subscription record
	Create(ctx context.Context, sub *Subscription) error

	// GetCurrent retrieves the most recent active subscription whose end
	// date is null or not before now. Returns NotFound when the user has
	// no current subscription.
	GetCurrent(ctx context.Context, userID int64, now time.Time) (*Subscription, error)

	// ListByUser retrieves all subscription records for a user, newest first
	ListByUser(ctx context.Context, userID int64) ([]*Subscription, error)
}
