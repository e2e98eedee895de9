package main

import (
	"fmt"
	"os"

	"github.com/Lazycharm/Careerpilot-sub001/internal/admin"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/db"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/repository/postgres"
	"github.com/Lazycharm/Careerpilot-sub001/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
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

	settingsService := services.NewSettingsService(postgres.NewSettingRepository(conn), log)
	usageService := services.NewUsageService(
		postgres.NewUsageRepository(conn),
		postgres.NewSubscriptionRepository(conn),
		log,
	)

	console := admin.New(settingsService, usageService, cfg.Auth.JWTSecret, log)

	addr := fmt.Sprintf(":%d", cfg.Admin.Port)
	log.Infof("Admin console listening on %s", addr)
	if err := console.Router().Run(addr); err != nil {
		log.Fatalf("Admin console failed: %v", err)
	}
}
