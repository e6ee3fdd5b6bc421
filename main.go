package main

import (
	"go.uber.org/zap"

	"backend/internal/config"
	"backend/internal/identity_client"
	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/notifier"
	"backend/internal/registry"
	"backend/internal/repository"
	"backend/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Load model artifacts. A failed load leaves that kind unavailable
	// without stopping the service.
	reg := registry.New(logger)
	artifacts := map[models.ModelKind]string{
		models.ModelKindAcute:     cfg.Models.Acute,
		models.ModelKindLifestyle: cfg.Models.Lifestyle,
		models.ModelKindSynthetic: cfg.Models.Synthetic,
	}
	for kind, path := range artifacts {
		if err := reg.Load(kind, path); err != nil {
			logger.Warn("Continuing without model", zap.String("model_kind", string(kind)), zap.Error(err))
		}
	}

	// Token verification: external identity service or local JWT mode.
	var verifier middleware.TokenVerifier
	if cfg.Auth.Mode == "remote" {
		verifier = identity_client.NewClient(cfg.Auth.IdentityServiceURL)
		logger.Info("Using remote identity verification", zap.String("url", cfg.Auth.IdentityServiceURL))
	} else {
		verifier = middleware.NewLocalVerifier(cfg.Auth.JWTSecret)
		logger.Info("Using local JWT verification")
	}

	mailer := notifier.NewEmailNotifier(cfg, logger)

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger, reg, verifier, mailer)
	srv.Run(cfg.Server.Port)
}
