package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"cinema-manager/cmd"
	"cinema-manager/internal/data/memory"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/wire"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.App.StorageDriver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos *repository.Repository
	switch config.App.StorageDriver {
	case utils.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on exit")
		repos = memory.NewRepository(logger)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("database", config.Database.Name),
		)

		if config.Database.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				logger.Fatal("Failed to apply schema", zap.Error(err))
			}
			logger.Info("Database schema applied")
		}

		repos = repository.NewRepository(db, logger)
	}

	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
