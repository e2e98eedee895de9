package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/testutil"
)

type generationFixture struct {
	svc         *GenerationService
	generator   *testutil.MockTextGenerator
	usageRepo   *testutil.MockUsageRepository
	subRepo     *testutil.MockSubscriptionRepository
	settingRepo *testutil.MockSettingRepository
}

func newGenerationFixture(now time.Time) *generationFixture {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	usageRepo := testutil.NewMockUsageRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	settingRepo := testutil.NewMockSettingRepository()
	generator := &testutil.MockTextGenerator{}

	gate := NewUsageService(usageRepo, subRepo, log)
	gate.now = func() time.Time { return now }
	settings := NewSettingsService(settingRepo, log)

	return &generationFixture{
		svc:         NewGenerationService(generator, settings, gate, log),
		generator:   generator,
		usageRepo:   usageRepo,
		subRepo:     subRepo,
		settingRepo: settingRepo,
	}
}

var testNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func TestGenerationService_SuccessRecordsUsage(t *testing.T) {
	f := newGenerationFixture(testNow)
	f.settingRepo.Seed(setting.KeyCoverLetterAIEnabled, "true")
	f.subRepo.SeedPlan(1, plan.Pro)
	f.generator.Response = "Dear Hiring Manager,"

	text, err := f.svc.GenerateCoverLetter(context.Background(), 1, CoverLetterInput{
		JobTitle:       "Backend Engineer",
		Company:        "Acme",
		JobDescription: "Go services",
		ResumeText:     "10 years of Go",
	})
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if text != "Dear Hiring Manager," {
		t.Errorf("unexpected text %q", text)
	}

	rec, err := f.usageRepo.GetForMonth(context.Background(), 1, 3, 2026)
	if err != nil {
		t.Fatalf("expected usage row: %v", err)
	}
	if rec.CoverLettersGenerated != 1 {
		t.Errorf("expected one cover letter recorded, got %d", rec.CoverLettersGenerated)
	}
}

func TestGenerationService_ProviderErrorDoesNotConsumeQuota(t *testing.T) {
	f := newGenerationFixture(testNow)
	f.settingRepo.Seed(setting.KeyInterviewAIEnabled, "true")
	f.subRepo.SeedPlan(1, plan.Pro)
	f.generator.Err = fmt.Errorf("upstream timeout")

	_, err := f.svc.GenerateInterviewQuestions(context.Background(), 1, InterviewInput{
		JobTitle:       "Backend Engineer",
		Company:        "Acme",
		JobDescription: "Go services",
	})
	if err == nil {
		t.Fatal("expected provider error")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeAIProvider {
		t.Errorf("expected AI_PROVIDER_ERROR, got %v", err)
	}

	if f.usageRepo.IncrementCalls != 0 {
		t.Error("a failed generation must not consume quota")
	}
}

func TestGenerationService_FeatureDisabled(t *testing.T) {
	f := newGenerationFixture(testNow)
	// Sub-flag explicitly off; master on. The explicit value wins.
	f.settingRepo.Seed(setting.KeyAIFeaturesEnabled, "true")
	f.settingRepo.Seed(setting.KeyResumeAITailorEnabled, "false")
	f.subRepo.SeedPlan(1, plan.Business)

	_, err := f.svc.TailorResume(context.Background(), 1, TailorInput{
		ResumeText:     "resume",
		JobDescription: "jd",
	})
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeFeatureDisabled {
		t.Fatalf("expected FEATURE_DISABLED, got %v", err)
	}

	if f.generator.Calls != 0 {
		t.Error("disabled feature must not call the provider")
	}
}

func TestGenerationService_MasterFlagEnablesUnsetSubFlag(t *testing.T) {
	f := newGenerationFixture(testNow)
	// Only the master flag exists; the experience sub-flag was never set
	f.settingRepo.Seed(setting.KeyAIFeaturesEnabled, "true")
	f.subRepo.SeedPlan(1, plan.Pro)

	_, err := f.svc.OptimizeExperience(context.Background(), 1, ExperienceInput{
		Role:    "Engineer",
		Bullets: []string{"did things"},
	})
	if err != nil {
		t.Fatalf("master flag should enable unset sub-flag: %v", err)
	}
	if f.generator.Calls != 1 {
		t.Errorf("expected one provider call, got %d", f.generator.Calls)
	}
}

func TestGenerationService_QuotaExhaustedBlocksBeforeProvider(t *testing.T) {
	f := newGenerationFixture(testNow)
	f.settingRepo.Seed(setting.KeyCoverLetterAIEnabled, "true")
	f.subRepo.SeedPlan(1, plan.Free)
	f.usageRepo.Seed(1, 3, 2026, 0, 2, 0)

	_, err := f.svc.GenerateCoverLetter(context.Background(), 1, CoverLetterInput{
		JobTitle:       "PM",
		Company:        "Acme",
		JobDescription: "jd",
		ResumeText:     "resume",
	})
	if !errors.IsLimitExceeded(err) {
		t.Fatalf("expected LIMIT_EXCEEDED, got %v", err)
	}

	if f.generator.Calls != 0 {
		t.Error("an exhausted user must not reach the provider")
	}
}

func TestGenerationService_TailorAndExperienceShareResumeQuota(t *testing.T) {
	f := newGenerationFixture(testNow)
	f.settingRepo.Seed(setting.KeyAIFeaturesEnabled, "true")
	f.subRepo.SeedPlan(1, plan.Free) // 2 resume credits

	ctx := context.Background()

	if _, err := f.svc.TailorResume(ctx, 1, TailorInput{ResumeText: "r", JobDescription: "jd"}); err != nil {
		t.Fatalf("first resume generation failed: %v", err)
	}
	if _, err := f.svc.OptimizeExperience(ctx, 1, ExperienceInput{Role: "X", Bullets: []string{"b"}}); err != nil {
		t.Fatalf("second resume generation failed: %v", err)
	}

	// Both drew from the same resume counter, so the third is denied
	_, err := f.svc.TailorResume(ctx, 1, TailorInput{ResumeText: "r", JobDescription: "jd"})
	if !errors.IsLimitExceeded(err) {
		t.Fatalf("expected shared resume quota exhausted, got %v", err)
	}
}
