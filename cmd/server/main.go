package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoroz/cookbook-backend/config"
	"github.com/jmoroz/cookbook-backend/internal/app/controller"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/internal/app/service"
	"github.com/jmoroz/cookbook-backend/internal/db"
	"github.com/jmoroz/cookbook-backend/internal/middleware"
	"github.com/jmoroz/cookbook-backend/internal/router"
	"github.com/jmoroz/cookbook-backend/internal/scheduler"
	"github.com/jmoroz/cookbook-backend/internal/storage"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"github.com/jmoroz/cookbook-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Cookbook Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (token revocation)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	markRepo := repository.NewMarkRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	userService := service.NewUserService(userRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	tagService := service.NewTagService(tagRepo)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, tagRepo, markRepo)
	markService := service.NewMarkService(markRepo, recipeRepo)
	cartService := service.NewCartService(markRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	ingredientController := controller.NewIngredientController(ingredientService)
	tagController := controller.NewTagController(tagService)
	recipeController := controller.NewRecipeController(recipeService, markService, cartService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the soft-delete reaper
	purgeScheduler := scheduler.NewPurgeScheduler(recipeRepo, cfg.Purge)
	if err := purgeScheduler.Start(); err != nil {
		logger.Fatal("Failed to start purge scheduler", err)
	}
	defer purgeScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		ingredientController,
		tagController,
		recipeController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
