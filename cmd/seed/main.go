// Command seed loads the sample business catalog. With -force it deletes
// every business and loads the catalog again.
package main

import (
	"context"
	"flag"

	"hechonl_backend/database"
	"hechonl_backend/internal/config"
	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/internal/seed"
)

func main() {
	force := flag.Bool("force", false, "reload the catalog even if it was loaded before")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	gormDB, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	bus := events.NewBus()
	defer bus.Close()
	store := repositories.NewStore(gormDB, bus)

	result, err := seed.NewSeeder(store).Seed(context.Background(), *force || cfg.Seed.Force)
	if err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}
	if result.Skipped {
		logger.Info("Sample data already loaded; use -force to reload")
		return
	}
	logger.Info("Sample data loaded", "count", result.Loaded)
}
