package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	sub.CreatedAt = time.Now()

	query := `
		INSERT INTO subscriptions (user_id, plan_type, status, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var endDate interface{}
	if sub.EndDate != nil {
		endDate = sub.EndDate.Unix()
	}

	result, err := r.db.ExecContext(ctx, query,
		sub.UserID, sub.PlanType, sub.Status, sub.StartDate.Unix(), endDate, sub.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create subscription", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get subscription ID", err)
	}

	sub.ID = id
	return nil
}

// GetCurrent retrieves the user's subscription in effect at the given
// instant: active status, started, and not yet ended. When the user has
// several, the most recently started one wins.
func (r *SubscriptionRepository) GetCurrent(ctx context.Context, userID int64, now time.Time) (*subscription.Subscription, error) {
	query := `
		SELECT id, user_id, plan_type, status, start_date, end_date, created_at
		FROM subscriptions
		WHERE user_id = ?
		  AND status = ?
		  AND start_date <= ?
		  AND (end_date IS NULL OR end_date >= ?)
		ORDER BY start_date DESC
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query,
		userID, subscription.StatusActive, now.Unix(), now.Unix(),
	)

	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Subscription")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subscription", err)
	}

	return sub, nil
}

// ListByUser retrieves all subscriptions for a user, newest first
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	query := `
		SELECT id, user_id, plan_type, status, start_date, end_date, created_at
		FROM subscriptions
		WHERE user_id = ?
		ORDER BY start_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription
	for rows.Next() {
		var sub subscription.Subscription
		var endDate sql.NullInt64
		var startDate, createdAt int64

		err := rows.Scan(&sub.ID, &sub.UserID, &sub.PlanType, &sub.Status, &startDate, &endDate, &createdAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan subscription", err)
		}

		sub.StartDate = time.Unix(startDate, 0)
		sub.CreatedAt = time.Unix(createdAt, 0)
		if endDate.Valid {
			t := time.Unix(endDate.Int64, 0)
			sub.EndDate = &t
		}

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate subscriptions", err)
	}

	return subs, nil
}

func scanSubscription(row *sql.Row) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	var endDate sql.NullInt64
	var startDate, createdAt int64

	err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanType, &sub.Status, &startDate, &endDate, &createdAt)
	if err != nil {
		return nil, err
	}

	sub.StartDate = time.Unix(startDate, 0)
	sub.CreatedAt = time.Unix(createdAt, 0)
	if endDate.Valid {
		t := time.Unix(endDate.Int64, 0)
		sub.EndDate = &t
	}

	return &sub, nil
}
