package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/testutil"
)

func TestSubscriptionRepository_GetCurrent_Boundaries(t *testing.T) {
	now := time.Unix(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC).Unix(), 0)

	tests := []struct {
		name      string
		status    string
		startDate time.Time
		endDate   *time.Time
		wantFound bool
	}{
		{
			name:      "open ended active subscription",
			status:    subscription.StatusActive,
			startDate: now.Add(-24 * time.Hour),
			wantFound: true,
		},
		{
			name:      "ends exactly now is still in force",
			status:    subscription.StatusActive,
			startDate: now.Add(-24 * time.Hour),
			endDate:   &now,
			wantFound: true,
		},
		{
			name:      "ended one second ago",
			status:    subscription.StatusActive,
			startDate: now.Add(-24 * time.Hour),
			endDate:   timePtr(now.Add(-time.Second)),
			wantFound: false,
		},
		{
			name:      "starts exactly now is in force",
			status:    subscription.StatusActive,
			startDate: now,
			wantFound: true,
		},
		{
			name:      "starts in the future",
			status:    subscription.StatusActive,
			startDate: now.Add(time.Second),
			wantFound: false,
		},
		{
			name:      "cancelled subscription never resolves",
			status:    subscription.StatusCancelled,
			startDate: now.Add(-24 * time.Hour),
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewTestDB(t)
			repo := NewSubscriptionRepository(db)
			ctx := context.Background()

			err := repo.Create(ctx, &subscription.Subscription{
				UserID:    1,
				PlanType:  plan.Pro,
				Status:    tt.status,
				StartDate: tt.startDate,
				EndDate:   tt.endDate,
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			sub, err := repo.GetCurrent(ctx, 1, now)
			if tt.wantFound {
				if err != nil {
					t.Fatalf("expected subscription in force, got %v", err)
				}
				if sub.PlanType != plan.Pro {
					t.Errorf("unexpected plan: %s", sub.PlanType)
				}
			} else {
				if !errors.IsNotFound(err) {
					t.Fatalf("expected NotFound, got %v", err)
				}
			}
		})
	}
}

func TestSubscriptionRepository_GetCurrent_MostRecentStartWins(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	now := time.Now()

	if err := repo.Create(ctx, &subscription.Subscription{
		UserID:    1,
		PlanType:  plan.Pro,
		Status:    subscription.StatusActive,
		StartDate: now.Add(-48 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &subscription.Subscription{
		UserID:    1,
		PlanType:  plan.Business,
		Status:    subscription.StatusActive,
		StartDate: now.Add(-time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	sub, err := repo.GetCurrent(ctx, 1, now)
	if err != nil {
		t.Fatalf("GetCurrent failed: %v", err)
	}
	if sub.PlanType != plan.Business {
		t.Errorf("expected the later subscription to win, got %s", sub.PlanType)
	}
}

func TestSubscriptionRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	now := time.Now()

	end := now.Add(-time.Hour)
	if err := repo.Create(ctx, &subscription.Subscription{
		UserID:    1,
		PlanType:  plan.Pro,
		Status:    subscription.StatusExpired,
		StartDate: now.Add(-48 * time.Hour),
		EndDate:   &end,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &subscription.Subscription{
		UserID:    1,
		PlanType:  plan.Business,
		Status:    subscription.StatusActive,
		StartDate: now,
	}); err != nil {
		t.Fatal(err)
	}

	subs, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0].PlanType != plan.Business {
		t.Errorf("expected newest first, got %s", subs[0].PlanType)
	}
	if subs[1].EndDate == nil {
		t.Error("expected end date preserved on the expired subscription")
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
