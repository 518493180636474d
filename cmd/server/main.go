package main

import (
	"context"
	"log"
	"time"

	"github.com/emberloop/backend/internal/metrics"
	"github.com/emberloop/backend/internal/router"
	"github.com/emberloop/backend/pkg/config"
	"github.com/emberloop/backend/pkg/firebase"
	"github.com/emberloop/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, firebaseApp.AuthClient, cfg, zapLogger, loc)

	// Metrics endpoint on its own port
	go func() {
		if err := metrics.Serve(":" + cfg.MetricsPort); err != nil {
			zapLogger.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
