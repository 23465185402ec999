// main.go
package main

import (
	"context"
	"log"
	"time"

	"cowork-booking/cmd"
	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/usecase"
	"cowork-booking/internal/wire"
	"cowork-booking/pkg/cache"
	"cowork-booking/pkg/database"
	"cowork-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const wizardSweepInterval = time.Minute

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.Booking.Location().String()),
	)

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied", zap.String("dir", config.Database.MigrationsDir))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis is optional; without it spaces are read from Postgres directly
	var rdb *redis.Client
	if config.Redis.Addr != "" {
		rdb, err = cache.InitRedis(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, space cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, config.Redis.CacheTTL, logger)

	// Wizard sessions live in memory and expire when idle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := usecase.NewWizardStore(config.Booking.WizardTTL, logger)
	go store.Run(ctx, wizardSweepInterval)

	// Wire all dependencies
	app := wire.Wiring(repos, store, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
