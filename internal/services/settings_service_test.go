package services

import (
	"context"
	"testing"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/testutil"
)

func newTestSettingsService() (*SettingsService, *testutil.MockSettingRepository) {
	repo := testutil.NewMockSettingRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewSettingsService(repo, log), repo
}

func TestSettingsService_GetString(t *testing.T) {
	svc, repo := newTestSettingsService()
	repo.Seed("site_name", "CareerPilot")

	value, ok, err := svc.GetString(context.Background(), "site_name")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if !ok || value != "CareerPilot" {
		t.Errorf("got (%q, %v), want (CareerPilot, true)", value, ok)
	}

	// Unset key is ok=false, not an error
	_, ok, err = svc.GetString(context.Background(), "missing")
	if err != nil {
		t.Fatalf("absent key must not error: %v", err)
	}
	if ok {
		t.Error("absent key reported as present")
	}
}

func TestSettingsService_GetBool_MasterFlagCascade(t *testing.T) {
	tests := []struct {
		name   string
		seed   map[string]string
		key    string
		def    bool
		want   bool
	}{
		{
			name: "sub-flag set true wins",
			seed: map[string]string{setting.KeyCoverLetterAIEnabled: "true"},
			key:  setting.KeyCoverLetterAIEnabled,
			want: true,
		},
		{
			name: "sub-flag set false wins over master",
			seed: map[string]string{
				setting.KeyCoverLetterAIEnabled: "false",
				setting.KeyAIFeaturesEnabled:    "true",
			},
			key:  setting.KeyCoverLetterAIEnabled,
			want: false,
		},
		{
			name: "unset sub-flag falls back to master true",
			seed: map[string]string{setting.KeyAIFeaturesEnabled: "true"},
			key:  setting.KeyResumeAISkillsEnabled,
			want: true,
		},
		{
			name: "unset sub-flag falls back to master 1",
			seed: map[string]string{setting.KeyAIFeaturesEnabled: "1"},
			key:  setting.KeyInterviewAIEnabled,
			want: true,
		},
		{
			name: "unset sub-flag with master false uses default",
			seed: map[string]string{setting.KeyAIFeaturesEnabled: "false"},
			key:  setting.KeyInterviewAIEnabled,
			def:  false,
			want: false,
		},
		{
			name: "unset sub-flag with no master uses default",
			seed: map[string]string{},
			key:  setting.KeyResumeAITailorEnabled,
			def:  false,
			want: false,
		},
		{
			name: "true default skips the cascade",
			seed: map[string]string{},
			key:  setting.KeyResumeAITailorEnabled,
			def:  true,
			want: true,
		},
		{
			name: "non-AI key never cascades",
			seed: map[string]string{setting.KeyAIFeaturesEnabled: "true"},
			key:  "maintenance_mode",
			def:  false,
			want: false,
		},
		{
			name: "master flag itself does not cascade",
			seed: map[string]string{},
			key:  setting.KeyAIFeaturesEnabled,
			def:  false,
			want: false,
		},
		{
			name: "yes is not true-ish",
			seed: map[string]string{setting.KeyCoverLetterAIEnabled: "yes"},
			key:  setting.KeyCoverLetterAIEnabled,
			def:  false,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestSettingsService()
			for k, v := range tt.seed {
				repo.Seed(k, v)
			}

			got, err := svc.GetBool(context.Background(), tt.key, tt.def)
			if err != nil {
				t.Fatalf("GetBool failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
			}
		})
	}
}

func TestSettingsService_GetNumber(t *testing.T) {
	svc, repo := newTestSettingsService()
	repo.Seed(setting.KeyPriceProMonthly, "49")
	repo.Seed("broken", "forty-nine")

	price, err := svc.GetNumber(context.Background(), setting.KeyPriceProMonthly)
	if err != nil {
		t.Fatalf("GetNumber failed: %v", err)
	}
	if price != 49 {
		t.Errorf("got %v, want 49", price)
	}

	// Absent key reads as zero
	zero, err := svc.GetNumber(context.Background(), "absent_price")
	if err != nil || zero != 0 {
		t.Errorf("absent key: got (%v, %v), want (0, nil)", zero, err)
	}

	// Malformed value is a parse error, not zero
	_, err = svc.GetNumber(context.Background(), "broken")
	if err == nil {
		t.Fatal("expected parse error")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConfigParse {
		t.Errorf("expected CONFIG_PARSE_ERROR, got %v", err)
	}
}

func TestSettingsService_CacheAndInvalidation(t *testing.T) {
	svc, repo := newTestSettingsService()
	repo.Seed("theme", "dark")

	ctx := context.Background()

	if _, _, err := svc.GetString(ctx, "theme"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.GetString(ctx, "theme"); err != nil {
		t.Fatal(err)
	}
	if repo.GetCalls != 1 {
		t.Errorf("second read should hit the cache, repo hit %d times", repo.GetCalls)
	}

	// Absence is cached too
	if _, _, err := svc.GetString(ctx, "nope"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.GetString(ctx, "nope"); err != nil {
		t.Fatal(err)
	}
	if repo.GetCalls != 2 {
		t.Errorf("absent key should also be cached, repo hit %d times", repo.GetCalls)
	}

	// Writing invalidates, so the next read sees the new value
	if err := svc.Set(ctx, "theme", "light", "", 1); err != nil {
		t.Fatal(err)
	}
	value, _, err := svc.GetString(ctx, "theme")
	if err != nil {
		t.Fatal(err)
	}
	if value != "light" {
		t.Errorf("stale read after write: got %q", value)
	}
}

func TestSettingsService_CacheExpiresForCrossProcessWrites(t *testing.T) {
	svc, repo := newTestSettingsService()
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	repo.Seed(setting.KeyAIFeaturesEnabled, "false")
	value, _, err := svc.GetString(ctx, setting.KeyAIFeaturesEnabled)
	if err != nil {
		t.Fatal(err)
	}
	if value != "false" {
		t.Fatalf("unexpected initial value %q", value)
	}

	// The admin console runs as its own process, so its write lands in the
	// repository without touching this service's cache
	repo.Seed(setting.KeyAIFeaturesEnabled, "true")

	value, _, err = svc.GetString(ctx, setting.KeyAIFeaturesEnabled)
	if err != nil {
		t.Fatal(err)
	}
	if value != "false" {
		t.Errorf("expected the cached value inside the TTL, got %q", value)
	}

	// Once the entry expires the next read picks up the external write
	svc.now = func() time.Time { return base.Add(settingsCacheTTL + time.Second) }

	value, _, err = svc.GetString(ctx, setting.KeyAIFeaturesEnabled)
	if err != nil {
		t.Fatal(err)
	}
	if value != "true" {
		t.Errorf("expected convergence after TTL, got %q", value)
	}
}

func TestSettingsService_CachedAbsenceExpires(t *testing.T) {
	svc, repo := newTestSettingsService()
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	// The key has never been set; absence gets cached
	if _, ok, err := svc.GetString(ctx, "maintenance_mode"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	// Another process creates it
	repo.Seed("maintenance_mode", "1")

	if _, ok, _ := svc.GetString(ctx, "maintenance_mode"); ok {
		t.Error("expected cached absence inside the TTL")
	}

	svc.now = func() time.Time { return base.Add(settingsCacheTTL + time.Second) }

	value, ok, err := svc.GetString(ctx, "maintenance_mode")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "1" {
		t.Errorf("expected the externally created key after TTL, got (%q, %v)", value, ok)
	}
}

func TestSettingsService_InitializeDefaults_Overwrites(t *testing.T) {
	svc, repo := newTestSettingsService()
	ctx := context.Background()

	// Admin turned a flag off; a reset restores the shipped value
	if err := svc.Set(ctx, setting.KeyAIFeaturesEnabled, "false", "", 1); err != nil {
		t.Fatal(err)
	}

	if err := svc.InitializeDefaults(ctx, 1); err != nil {
		t.Fatalf("InitializeDefaults failed: %v", err)
	}

	got := repo.Settings[setting.KeyAIFeaturesEnabled]
	if got == nil || got.Value != "true" {
		t.Errorf("expected master flag reset to true, got %+v", got)
	}

	// Every shipped default key exists afterwards
	defaults, err := setting.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range defaults {
		if _, ok := repo.Settings[d.Key]; !ok {
			t.Errorf("default %q not written", d.Key)
		}
	}
}
