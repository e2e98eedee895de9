package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/handlers"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/router"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/db"
	"github.com/Lazycharm/Careerpilot-sub001/internal/integrations"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/validator"
	"github.com/Lazycharm/Careerpilot-sub001/internal/repository/postgres"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
	"github.com/Lazycharm/Careerpilot-sub001/internal/worker"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	conn, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(conn)
	settingRepo := postgres.NewSettingRepository(conn)
	subRepo := postgres.NewSubscriptionRepository(conn)
	usageRepo := postgres.NewUsageRepository(conn)
	docRepo := postgres.NewDocumentRepository(conn)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth, log)
	settingsService := services.NewSettingsService(settingRepo, log)
	usageService := services.NewUsageService(usageRepo, subRepo, log)
	docService := services.NewDocumentService(docRepo, log)

	openai := integrations.NewOpenAIClient(cfg.AI)
	generationService := services.NewGenerationService(openai, settingsService, usageService, log)

	val := validator.New()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(conn, version),
		Auth:     handlers.NewAuthHandler(authService, cfg, log, val),
		Generate: handlers.NewGenerateHandler(generationService, log, val),
		Usage:    handlers.NewUsageHandler(usageService, log),
		Settings: handlers.NewSettingsHandler(settingsService, log, val),
		Billing:  handlers.NewBillingHandler(settingsService, subRepo, log),
		Document: handlers.NewDocumentHandler(docService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Background jobs
	w := worker.New(cfg.Worker, usageService, log)
	if err := w.Start(); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	go func() {
		log.Infof("API server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	w.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}

	log.Info("Server stopped")
}
