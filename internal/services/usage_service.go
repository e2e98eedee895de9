package services

import (
	"context"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/metrics"
)

// UsageService implements usage.Service, the AI entitlement gate.
//
// CheckLimit and RecordUsage are deliberately separate: two in-flight
// requests from the same user can both pass the check before either records,
// so the quota is a soft limit bounded by the user's own concurrency. The
// increment itself is a single atomic upsert, so counters never corrupt.
type UsageService struct {
	usageRepo usage.Repository
	subRepo   subscription.Repository
	logger    *logger.Logger
	now       func() time.Time
}

// NewUsageService creates a new usage service
func NewUsageService(usageRepo usage.Repository, subRepo subscription.Repository, log *logger.Logger) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		subRepo:   subRepo,
		logger:    log,
		now:       time.Now,
	}
}

// CheckLimit returns nil when the user may perform one more generation in
// the category this calendar month
func (s *UsageService) CheckLimit(ctx context.Context, userID int64, category plan.Category) error {
	now := s.now()

	planType, err := s.resolvePlanAt(ctx, userID, now)
	if err != nil {
		return err
	}

	quota := planType.Quota().For(category)
	if quota == 0 {
		// Categorically unavailable on this plan, regardless of usage
		metrics.RecordEntitlementDenial(string(category), "unavailable")
		return errors.LimitExceeded()
	}

	used := 0
	rec, err := s.usageRepo.GetForMonth(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		if !errors.IsNotFound(err) {
			// A storage failure is not zero usage
			return err
		}
	} else {
		used = rec.CountFor(category)
	}

	if used >= quota {
		metrics.RecordEntitlementDenial(string(category), "exhausted")
		return errors.LimitExceeded()
	}

	return nil
}

// RecordUsage records one consumption for the current month. Callers invoke
// it exactly once, after the external generation succeeded.
func (s *UsageService) RecordUsage(ctx context.Context, userID int64, category plan.Category) error {
	now := s.now()

	err := s.usageRepo.IncrementCategory(ctx, userID, int(now.Month()), now.Year(), category)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to record AI usage")
		return err
	}

	metrics.RecordAIUsage(string(category))

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"category": category,
		"month":    int(now.Month()),
		"year":     now.Year(),
	}).Info("AI usage recorded")

	return nil
}

// ResolvePlan returns the user's current plan tier
func (s *UsageService) ResolvePlan(ctx context.Context, userID int64) (plan.Type, error) {
	return s.resolvePlanAt(ctx, userID, s.now())
}

// Summary returns the user's current-month usage across all categories
func (s *UsageService) Summary(ctx context.Context, userID int64) (*usage.Summary, error) {
	now := s.now()

	planType, err := s.resolvePlanAt(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	rec, err := s.usageRepo.GetForMonth(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		rec = &usage.Record{UserID: userID, Month: int(now.Month()), Year: now.Year()}
	}

	return buildSummary(planType, rec), nil
}

// ResetCurrentMonth zeroes the user's counters for the current month only
func (s *UsageService) ResetCurrentMonth(ctx context.Context, userID int64) error {
	now := s.now()

	err := s.usageRepo.ResetMonth(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to reset AI usage")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"month":   int(now.Month()),
		"year":    now.Year(),
	}).Info("AI usage reset")

	return nil
}

// NearLimit lists users at or above 80% of a nonzero quota in at least one
// category for the current month
func (s *UsageService) NearLimit(ctx context.Context) ([]*usage.Summary, error) {
	now := s.now()

	records, err := s.usageRepo.ListForMonth(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}

	var result []*usage.Summary
	for _, rec := range records {
		planType, err := s.resolvePlanAt(ctx, rec.UserID, now)
		if err != nil {
			return nil, err
		}

		summary := buildSummary(planType, rec)
		for _, cu := range summary.Categories {
			if cu.NearLimit {
				result = append(result, summary)
				break
			}
		}
	}

	return result, nil
}

// resolvePlanAt looks up the user's current subscription at the given time.
// No current subscription means the free tier.
func (s *UsageService) resolvePlanAt(ctx context.Context, userID int64, now time.Time) (plan.Type, error) {
	sub, err := s.subRepo.GetCurrent(ctx, userID, now)
	if err != nil {
		if errors.IsNotFound(err) {
			return plan.Free, nil
		}
		return "", err
	}

	if !sub.PlanType.Valid() {
		s.logger.Warnf("User %d has unknown plan %q, treating as free", userID, sub.PlanType)
		return plan.Free, nil
	}

	return sub.PlanType, nil
}

func buildSummary(planType plan.Type, rec *usage.Record) *usage.Summary {
	quota := planType.Quota()

	categories := make([]usage.CategoryUsage, 0, len(plan.Categories))
	for _, c := range plan.Categories {
		categories = append(categories, usage.NewCategoryUsage(c, rec.CountFor(c), quota.For(c)))
	}

	return &usage.Summary{
		UserID:     rec.UserID,
		PlanType:   planType,
		Month:      rec.Month,
		Year:       rec.Year,
		Categories: categories,
	}
}
