package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/emberloop/backend/internal/feed"
	"github.com/emberloop/backend/internal/handlers"
	"github.com/emberloop/backend/internal/middleware"
	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/notify"
	"github.com/emberloop/backend/internal/repositories"
	"github.com/emberloop/backend/internal/streak"
	"github.com/emberloop/backend/internal/toggle"
	"github.com/emberloop/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RateLimitMiddleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseAuthClient *auth.Client, cfg *config.Config, logger *zap.Logger, loc *time.Location) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Reaction{},
		&models.DailyPost{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	reactionRepo := repositories.NewPostgresReactionRepository(db.Postgres)
	dailyPostRepo := repositories.NewPostgresDailyPostRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	groupPostRepo := repositories.NewMongoGroupPostRepository(mongoDB)
	groupRepo := repositories.NewMongoGroupRepository(mongoDB)

	// --- Core services ---
	notifier := notify.NewNotifier(notificationRepo, userRepo, logger)

	feedService := feed.NewService(
		feed.NewResolver(followRepo),
		[]feed.Source{
			feed.NewGroupPostSource(groupPostRepo),
			feed.NewDailyPostSource(dailyPostRepo),
		},
		userRepo,
		groupRepo,
		reactionRepo,
		loc,
		logger,
	)

	streakCalculator := streak.NewCalculator(dailyPostRepo, loc)

	reactionLimiter := toggle.NewRedisReactionLimiter(db.Redis, cfg.ReactionDailyLimit, logger)
	followToggler := toggle.NewFollowToggler(followRepo, userRepo, notifier)
	reactionToggler := toggle.NewReactionToggler(reactionRepo, groupPostRepo, dailyPostRepo, reactionLimiter, notifier)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, followRepo, streakCalculator)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(groupPostRepo, dailyPostRepo, groupRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Streak routes
	streakHandler := handlers.NewStreakHandler(streakCalculator)
	streakHandler.RegisterStreakRoutes(api)
	log.Println("Streak routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followToggler)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionToggler, reactionRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
