package main

import (
	"fmt"
	"os"

	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/db"
	"github.com/Lazycharm/Careerpilot-sub001/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	conn, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected to database successfully")

	if err := db.RunMigrations(conn); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("All migrations completed successfully")
}
