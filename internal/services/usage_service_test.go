package services

import (
	"context"
	"testing"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/testutil"
)

func newTestUsageService() (*UsageService, *testutil.MockUsageRepository, *testutil.MockSubscriptionRepository) {
	usageRepo := testutil.NewMockUsageRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewUsageService(usageRepo, subRepo, log), usageRepo, subRepo
}

func TestUsageService_CheckLimit_Boundaries(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		planType  plan.Type
		category  plan.Category
		used      int
		wantAllow bool
	}{
		{"free resume below quota", plan.Free, plan.CategoryResume, 1, true},
		{"free resume at quota", plan.Free, plan.CategoryResume, 2, false},
		{"free interview unavailable even at zero", plan.Free, plan.CategoryInterview, 0, false},
		{"pay per download matches free", plan.PayPerDownload, plan.CategoryCoverLetter, 2, false},
		{"pro resume one below quota", plan.Pro, plan.CategoryResume, 39, true},
		{"pro resume at quota", plan.Pro, plan.CategoryResume, 40, false},
		{"pro interview below quota", plan.Pro, plan.CategoryInterview, 29, true},
		{"pro interview at quota", plan.Pro, plan.CategoryInterview, 30, false},
		{"business cover letter below quota", plan.Business, plan.CategoryCoverLetter, 149, true},
		{"business cover letter at quota", plan.Business, plan.CategoryCoverLetter, 150, false},
		{"business interview at quota", plan.Business, plan.CategoryInterview, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, usageRepo, subRepo := newTestUsageService()
			svc.now = func() time.Time { return now }

			subRepo.SeedPlan(1, tt.planType)

			switch tt.category {
			case plan.CategoryResume:
				usageRepo.Seed(1, 3, 2026, tt.used, 0, 0)
			case plan.CategoryCoverLetter:
				usageRepo.Seed(1, 3, 2026, 0, tt.used, 0)
			case plan.CategoryInterview:
				usageRepo.Seed(1, 3, 2026, 0, 0, tt.used)
			}

			err := svc.CheckLimit(context.Background(), 1, tt.category)
			if tt.wantAllow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tt.wantAllow {
				if err == nil {
					t.Fatal("expected limit error, got nil")
				}
				if !errors.IsLimitExceeded(err) {
					t.Errorf("expected LIMIT_EXCEEDED, got %v", err)
				}
			}
		})
	}
}

func TestUsageService_CheckLimit_NoSubscriptionIsFree(t *testing.T) {
	svc, _, _ := newTestUsageService()

	// No subscription at all: free tier, so interview prep is unavailable
	err := svc.CheckLimit(context.Background(), 42, plan.CategoryInterview)
	if !errors.IsLimitExceeded(err) {
		t.Fatalf("expected LIMIT_EXCEEDED for interview on free tier, got %v", err)
	}

	// But resume generation is allowed with no usage row
	if err := svc.CheckLimit(context.Background(), 42, plan.CategoryResume); err != nil {
		t.Fatalf("expected allow for resume on free tier, got %v", err)
	}
}

func TestUsageService_CheckLimit_UnknownPlanFallsBackToFree(t *testing.T) {
	svc, _, subRepo := newTestUsageService()
	subRepo.SeedPlan(1, plan.Type("enterprise_legacy"))

	err := svc.CheckLimit(context.Background(), 1, plan.CategoryInterview)
	if !errors.IsLimitExceeded(err) {
		t.Fatalf("unknown plan should be treated as free, got %v", err)
	}
}

func TestUsageService_CheckLimit_StorageErrorIsNotZeroUsage(t *testing.T) {
	svc, usageRepo, subRepo := newTestUsageService()
	subRepo.SeedPlan(1, plan.Pro)
	usageRepo.GetError = errors.DatabaseError("boom", nil)

	err := svc.CheckLimit(context.Background(), 1, plan.CategoryResume)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if errors.IsLimitExceeded(err) {
		t.Fatal("storage failure must not be reported as a quota condition")
	}
}

func TestUsageService_CheckLimit_MonthBucketRollsOver(t *testing.T) {
	svc, usageRepo, subRepo := newTestUsageService()
	subRepo.SeedPlan(1, plan.Free)

	// Exhaust January
	usageRepo.Seed(1, 1, 2026, 2, 0, 0)

	svc.now = func() time.Time { return time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC) }
	if err := svc.CheckLimit(context.Background(), 1, plan.CategoryResume); !errors.IsLimitExceeded(err) {
		t.Fatalf("expected January to be exhausted, got %v", err)
	}

	// February is a fresh bucket
	svc.now = func() time.Time { return time.Date(2026, time.February, 1, 0, 30, 0, 0, time.UTC) }
	if err := svc.CheckLimit(context.Background(), 1, plan.CategoryResume); err != nil {
		t.Fatalf("expected February to start fresh, got %v", err)
	}
}

func TestUsageService_RecordUsage_IncrementsOnlyOneCounter(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

	svc, usageRepo, _ := newTestUsageService()
	svc.now = func() time.Time { return now }

	if err := svc.RecordUsage(context.Background(), 7, plan.CategoryCoverLetter); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	rec, err := usageRepo.GetForMonth(context.Background(), 7, 6, 2026)
	if err != nil {
		t.Fatalf("expected counter row: %v", err)
	}
	if rec.CoverLettersGenerated != 1 || rec.ResumesGenerated != 0 || rec.InterviewGenerated != 0 {
		t.Errorf("expected only cover letter counter bumped, got %+v", rec)
	}
}

func TestUsageService_CheckThenRecord_ProBoundary(t *testing.T) {
	now := time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC)

	svc, usageRepo, subRepo := newTestUsageService()
	svc.now = func() time.Time { return now }
	subRepo.SeedPlan(3, plan.Pro)
	usageRepo.Seed(3, 5, 2026, 39, 0, 0)

	// 39 used of 40: the 40th generation is allowed
	if err := svc.CheckLimit(context.Background(), 3, plan.CategoryResume); err != nil {
		t.Fatalf("expected 40th generation allowed: %v", err)
	}
	if err := svc.RecordUsage(context.Background(), 3, plan.CategoryResume); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	// The 41st is not
	if err := svc.CheckLimit(context.Background(), 3, plan.CategoryResume); !errors.IsLimitExceeded(err) {
		t.Fatalf("expected 41st generation denied, got %v", err)
	}
}

func TestUsageService_Summary(t *testing.T) {
	now := time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC)

	svc, usageRepo, subRepo := newTestUsageService()
	svc.now = func() time.Time { return now }
	subRepo.SeedPlan(5, plan.Pro)
	usageRepo.Seed(5, 4, 2026, 32, 5, 0)

	summary, err := svc.Summary(context.Background(), 5)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.PlanType != plan.Pro {
		t.Errorf("expected pro plan, got %s", summary.PlanType)
	}
	if summary.Month != 4 || summary.Year != 2026 {
		t.Errorf("unexpected bucket: %d/%d", summary.Month, summary.Year)
	}

	for _, cu := range summary.Categories {
		switch cu.Category {
		case plan.CategoryResume:
			if cu.Used != 32 || cu.Quota != 40 || cu.Remaining != 8 {
				t.Errorf("resume usage wrong: %+v", cu)
			}
			if !cu.NearLimit { // 32/40 = 80%
				t.Error("resume should be near limit at 80%")
			}
		case plan.CategoryCoverLetter:
			if cu.Used != 5 || cu.NearLimit {
				t.Errorf("cover letter usage wrong: %+v", cu)
			}
		case plan.CategoryInterview:
			if cu.Used != 0 || cu.Quota != 30 {
				t.Errorf("interview usage wrong: %+v", cu)
			}
		}
	}
}

func TestUsageService_Summary_NoUsageRowReadsAsZero(t *testing.T) {
	svc, _, subRepo := newTestUsageService()
	subRepo.SeedPlan(9, plan.Business)

	summary, err := svc.Summary(context.Background(), 9)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	for _, cu := range summary.Categories {
		if cu.Used != 0 {
			t.Errorf("expected zero usage for %s, got %d", cu.Category, cu.Used)
		}
	}
}

func TestUsageService_ResetCurrentMonth_OnlyTouchesCurrentBucket(t *testing.T) {
	now := time.Date(2026, time.July, 14, 12, 0, 0, 0, time.UTC)

	svc, usageRepo, _ := newTestUsageService()
	svc.now = func() time.Time { return now }

	usageRepo.Seed(2, 6, 2026, 2, 2, 0) // June history
	usageRepo.Seed(2, 7, 2026, 1, 2, 0) // July, current

	if err := svc.ResetCurrentMonth(context.Background(), 2); err != nil {
		t.Fatalf("ResetCurrentMonth failed: %v", err)
	}

	july, _ := usageRepo.GetForMonth(context.Background(), 2, 7, 2026)
	if july.ResumesGenerated != 0 || july.CoverLettersGenerated != 0 {
		t.Errorf("July should be zeroed, got %+v", july)
	}

	june, _ := usageRepo.GetForMonth(context.Background(), 2, 6, 2026)
	if june.ResumesGenerated != 2 || june.CoverLettersGenerated != 2 {
		t.Errorf("June history must be untouched, got %+v", june)
	}
}

func TestUsageService_NearLimit(t *testing.T) {
	now := time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)

	svc, usageRepo, subRepo := newTestUsageService()
	svc.now = func() time.Time { return now }

	subRepo.SeedPlan(1, plan.Pro)
	subRepo.SeedPlan(2, plan.Pro)
	subRepo.SeedPlan(3, plan.Free)

	usageRepo.Seed(1, 8, 2026, 32, 0, 0) // 80% of 40: flagged
	usageRepo.Seed(2, 8, 2026, 10, 10, 10)
	usageRepo.Seed(3, 8, 2026, 0, 0, 5) // interview quota 0: never flagged

	summaries, err := svc.NearLimit(context.Background())
	if err != nil {
		t.Fatalf("NearLimit failed: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected exactly one flagged user, got %d", len(summaries))
	}
	if summaries[0].UserID != 1 {
		t.Errorf("expected user 1 flagged, got %d", summaries[0].UserID)
	}
}
