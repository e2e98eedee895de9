package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/handlers"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
	"github.com/Lazycharm/Careerpilot-sub001/internal/repository/postgres"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
	"github.com/Lazycharm/Careerpilot-sub001/internal/testutil"
)

// env wires the real stack over an in-memory database. Only the AI provider
// is mocked.
type env struct {
	auth      *services.AuthService
	settings  *services.SettingsService
	subs      subscription.Repository
	generator *testutil.MockTextGenerator

	generateHandler *handlers.GenerateHandler
	usageHandler    *handlers.UsageHandler
	documentHandler *handlers.DocumentHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	userRepo := postgres.NewUserRepository(db)
	settingRepo := postgres.NewSettingRepository(db)
	subRepo := postgres.NewSubscriptionRepository(db)
	usageRepo := postgres.NewUsageRepository(db)
	docRepo := postgres.NewDocumentRepository(db)

	authCfg := config.AuthConfig{
		JWTSecret:          "integration-test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         4, // keep hashing fast in tests
	}

	authService := services.NewAuthService(userRepo, authCfg, log)
	settingsService := services.NewSettingsService(settingRepo, log)
	usageService := services.NewUsageService(usageRepo, subRepo, log)
	documentService := services.NewDocumentService(docRepo, log)
	generator := &testutil.MockTextGenerator{}
	generationService := services.NewGenerationService(generator, settingsService, usageService, log)

	return &env{
		auth:            authService,
		settings:        settingsService,
		subs:            subRepo,
		generator:       generator,
		generateHandler: handlers.NewGenerateHandler(generationService, log, val),
		usageHandler:    handlers.NewUsageHandler(usageService, log),
		documentHandler: handlers.NewDocumentHandler(documentService, log, val),
	}
}

func (e *env) registerUser(t *testing.T, email string) int64 {
	t.Helper()

	u, _, err := e.auth.Register(context.Background(), email, "s3cret-pass", nil)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return u.ID
}

func postJSON(t *testing.T, userID int64, path string, body interface{}) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func getJSON(userID int64, path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return response
}

// TestGenerationQuotaFlow walks a free-tier user through exhausting the
// cover letter quota, upgrading to pro, and an admin reset.
func TestGenerationQuotaFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if err := e.settings.InitializeDefaults(ctx, 1); err != nil {
		t.Fatalf("failed to initialize settings: %v", err)
	}

	userID := e.registerUser(t, "seeker@example.com")

	coverLetterBody := map[string]interface{}{
		"jobTitle":       "Backend Engineer",
		"company":        "Acme Gulf",
		"jobDescription": "Build and operate Go services",
		"resumeText":     "Five years of backend work",
	}

	// Step 1: a free user has two cover letter credits
	t.Run("Free Quota Consumed", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			rr := httptest.NewRecorder()
			e.generateHandler.CoverLetter(rr, postJSON(t, userID, "/api/v1/ai/cover-letter", coverLetterBody))
			if rr.Code != http.StatusOK {
				t.Fatalf("generation %d failed with status %d: %s", i+1, rr.Code, rr.Body.String())
			}
		}

		rr := httptest.NewRecorder()
		e.generateHandler.CoverLetter(rr, postJSON(t, userID, "/api/v1/ai/cover-letter", coverLetterBody))
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403 on third generation, got %d: %s", rr.Code, rr.Body.String())
		}

		response := decodeBody(t, rr)
		errObj := response["error"].(map[string]interface{})
		if errObj["code"] != "LIMIT_EXCEEDED" {
			t.Errorf("expected LIMIT_EXCEEDED, got %v", errObj["code"])
		}
	})

	// Step 2: the usage summary reflects the consumed quota
	t.Run("Usage Summary", func(t *testing.T) {
		rr := httptest.NewRecorder()
		e.usageHandler.Summary(rr, getJSON(userID, "/api/v1/usage"))
		if rr.Code != http.StatusOK {
			t.Fatalf("summary failed with status %d: %s", rr.Code, rr.Body.String())
		}

		response := decodeBody(t, rr)
		data := response["data"].(map[string]interface{})
		if data["plan_type"] != "free" {
			t.Errorf("expected free plan, got %v", data["plan_type"])
		}

		for _, c := range data["categories"].([]interface{}) {
			cu := c.(map[string]interface{})
			if cu["category"] == "cover_letter" {
				if cu["used"].(float64) != 2 || cu["remaining"].(float64) != 0 {
					t.Errorf("unexpected cover letter usage: %v", cu)
				}
			}
		}
	})

	// Step 3: interview prep is categorically unavailable on the free tier
	t.Run("Interview Unavailable On Free", func(t *testing.T) {
		rr := httptest.NewRecorder()
		e.generateHandler.InterviewQuestions(rr, postJSON(t, userID, "/api/v1/ai/interview-questions", map[string]interface{}{
			"jobTitle":       "Backend Engineer",
			"company":        "Acme Gulf",
			"jobDescription": "Build and operate Go services",
		}))
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for interview on free tier, got %d", rr.Code)
		}
	})

	// Step 4: upgrading to pro opens up the remaining quota
	t.Run("Pro Upgrade Unlocks Quota", func(t *testing.T) {
		err := e.subs.Create(ctx, &subscription.Subscription{
			UserID:    userID,
			PlanType:  plan.Pro,
			Status:    subscription.StatusActive,
			StartDate: time.Now().Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to create subscription: %v", err)
		}

		rr := httptest.NewRecorder()
		e.generateHandler.CoverLetter(rr, postJSON(t, userID, "/api/v1/ai/cover-letter", coverLetterBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("pro user should generate, got %d: %s", rr.Code, rr.Body.String())
		}

		rr = httptest.NewRecorder()
		e.generateHandler.InterviewQuestions(rr, postJSON(t, userID, "/api/v1/ai/interview-questions", map[string]interface{}{
			"jobTitle":       "Backend Engineer",
			"company":        "Acme Gulf",
			"jobDescription": "Build and operate Go services",
			"count":          5,
		}))
		if rr.Code != http.StatusOK {
			t.Fatalf("pro user should get interview prep, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	// Step 5: an admin reset zeroes the current month
	t.Run("Admin Reset", func(t *testing.T) {
		req := postJSON(t, 1, "/api/v1/admin/usage/reset", nil)
		req = withURLParam(req, "id", jsonInt(userID))

		rr := httptest.NewRecorder()
		e.usageHandler.Reset(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("reset failed with status %d: %s", rr.Code, rr.Body.String())
		}

		rr = httptest.NewRecorder()
		e.usageHandler.Summary(rr, getJSON(userID, "/api/v1/usage"))
		response := decodeBody(t, rr)
		data := response["data"].(map[string]interface{})
		for _, c := range data["categories"].([]interface{}) {
			cu := c.(map[string]interface{})
			if cu["used"].(float64) != 0 {
				t.Errorf("expected zero usage after reset, got %v", cu)
			}
		}
	})
}

// TestFeatureFlagGatesGeneration verifies the settings cascade end to end:
// turning the sub-flag off blocks the route even with quota remaining.
func TestFeatureFlagGatesGeneration(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if err := e.settings.InitializeDefaults(ctx, 1); err != nil {
		t.Fatalf("failed to initialize settings: %v", err)
	}

	userID := e.registerUser(t, "flagged@example.com")

	if err := e.settings.Set(ctx, "cover_letter_ai_enabled", "false", "", 1); err != nil {
		t.Fatalf("failed to flip flag: %v", err)
	}

	rr := httptest.NewRecorder()
	e.generateHandler.CoverLetter(rr, postJSON(t, userID, "/api/v1/ai/cover-letter", map[string]interface{}{
		"jobTitle":       "PM",
		"company":        "Acme",
		"jobDescription": "jd",
		"resumeText":     "resume",
	}))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with flag off, got %d", rr.Code)
	}

	response := decodeBody(t, rr)
	errObj := response["error"].(map[string]interface{})
	if errObj["code"] != "FEATURE_DISABLED" {
		t.Errorf("expected FEATURE_DISABLED, got %v", errObj["code"])
	}
	if e.generator.Calls != 0 {
		t.Error("disabled feature must never reach the provider")
	}
}

// TestDocumentLifecycle tests the full lifecycle of a stored document:
// Create -> Get -> List -> Update -> Delete
func TestDocumentLifecycle(t *testing.T) {
	e := newEnv(t)

	userID := e.registerUser(t, "writer@example.com")

	var docID string

	t.Run("Create Document", func(t *testing.T) {
		rr := httptest.NewRecorder()
		e.documentHandler.Create(rr, postJSON(t, userID, "/api/v1/documents", map[string]interface{}{
			"kind":    "resume",
			"title":   "Backend resume",
			"content": "Experience: Go services",
		}))
		if rr.Code != http.StatusCreated {
			t.Fatalf("create failed with status %d: %s", rr.Code, rr.Body.String())
		}

		response := decodeBody(t, rr)
		data := response["data"].(map[string]interface{})
		docID = jsonInt(int64(data["id"].(float64)))
	})

	t.Run("Get Document", func(t *testing.T) {
		req := withURLParam(getJSON(userID, "/api/v1/documents/"+docID), "id", docID)
		rr := httptest.NewRecorder()
		e.documentHandler.Get(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("get failed with status %d", rr.Code)
		}

		response := decodeBody(t, rr)
		data := response["data"].(map[string]interface{})
		if data["title"] != "Backend resume" {
			t.Errorf("unexpected title: %v", data["title"])
		}
	})

	t.Run("List Documents", func(t *testing.T) {
		rr := httptest.NewRecorder()
		e.documentHandler.List(rr, getJSON(userID, "/api/v1/documents?kind=resume"))
		if rr.Code != http.StatusOK {
			t.Fatalf("list failed with status %d: %s", rr.Code, rr.Body.String())
		}

		response := decodeBody(t, rr)
		data := response["data"].(map[string]interface{})
		items := data["data"].([]interface{})
		if len(items) != 1 {
			t.Errorf("expected 1 document, got %d", len(items))
		}
	})

	t.Run("Update Document", func(t *testing.T) {
		req := postJSON(t, userID, "/api/v1/documents/"+docID, map[string]interface{}{
			"title":   "Senior backend resume",
			"content": "Experience: Go services at scale",
		})
		req = withURLParam(req, "id", docID)

		rr := httptest.NewRecorder()
		e.documentHandler.Update(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("update failed with status %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("Other User Cannot Read", func(t *testing.T) {
		otherID := e.registerUser(t, "other@example.com")

		req := withURLParam(getJSON(otherID, "/api/v1/documents/"+docID), "id", docID)
		rr := httptest.NewRecorder()
		e.documentHandler.Get(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404 for another user's document, got %d", rr.Code)
		}
	})

	t.Run("Delete Document", func(t *testing.T) {
		req := withURLParam(getJSON(userID, "/api/v1/documents/"+docID), "id", docID)
		rr := httptest.NewRecorder()
		e.documentHandler.Delete(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("delete failed with status %d", rr.Code)
		}

		req = withURLParam(getJSON(userID, "/api/v1/documents/"+docID), "id", docID)
		rr = httptest.NewRecorder()
		e.documentHandler.Get(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("document still readable after delete, got %d", rr.Code)
		}
	})
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
