package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"eduweb/internal/api"
	"eduweb/internal/api/handlers"
	"eduweb/internal/repository"
	"eduweb/internal/service"
	"eduweb/pkg/auth"
	"eduweb/pkg/config"
	"eduweb/pkg/logger"
	"eduweb/pkg/postgres"

	"go.uber.org/zap"
)

// @title EduWeb API
// @version 1.0
// @description Online course marketplace with content-based course recommendations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@eduweb.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting EduWeb service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	studentRepo := repository.NewStudentRepository(db, appLogger)
	courseRepo := repository.NewCourseRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	purchaseRepo := repository.NewPurchaseRepository(db, appLogger)
	ratingRepo := repository.NewRatingRepository(db, appLogger)
	commentRepo := repository.NewCommentRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, studentRepo, jwtManager, appLogger)
	catalogService := service.NewCatalogService(courseRepo, categoryRepo, ratingRepo, purchaseRepo, commentRepo, appLogger)
	interactionService := service.NewInteractionService(purchaseRepo, studentRepo, ratingRepo, commentRepo, courseRepo, appLogger)

	// The similarity model is built before the server accepts traffic.
	// An empty or unreachable catalog aborts startup.
	recService, err := service.NewRecommendationService(ctx, courseRepo, interactionService, userRepo, studentRepo, &cfg.Recommender, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build recommendation model", zap.Error(err))
	}

	assistantService, err := service.NewAssistantService(&cfg.GigaChat, courseRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize assistant service", zap.Error(err))
	}
	defer assistantService.Close()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	courseHandler := handlers.NewCourseHandler(catalogService, appLogger)
	interactionHandler := handlers.NewInteractionHandler(interactionService, appLogger)
	recHandler := handlers.NewRecommendationHandler(recService, appLogger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, courseHandler, interactionHandler, recHandler, assistantHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
