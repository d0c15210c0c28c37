package cmd

import (
	"fmt"
	"log"
	"time"

	"greenmart/internal/data/memstore"
	"greenmart/internal/data/repository"
	"greenmart/pkg/database"
	"greenmart/pkg/tokens"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

// runtime bundles what every command needs.
type runtime struct {
	config *utils.Config
	log    *zap.Logger
	repo   *repository.Repository
	db     database.PgxIface // nil for the memory store
}

func bootstrap() (*runtime, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	rt := &runtime{config: config, log: logger}

	switch config.App.Store {
	case utils.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on exit")
		rt.repo = memstore.New(logger)
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("name", config.Database.Name),
		)
		rt.db = db
		rt.repo = repository.NewRepository(db, logger)
	}

	return rt, nil
}

func (rt *runtime) tokenService() (*tokens.Service, error) {
	ttl := time.Duration(rt.config.JWT.ExpiryHours) * time.Hour
	return tokens.NewService(rt.config.JWT.Secret, ttl, tokens.WithIssuer(rt.config.JWT.Issuer))
}

func (rt *runtime) close() {
	if rt.db != nil {
		rt.db.Close()
	}
	_ = rt.log.Sync()
}
