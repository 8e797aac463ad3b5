package main

import (
	"log"
	"net/http"
	"os"

	"bandbook/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bandbook/internal/auth"
	"bandbook/internal/cache"
	"bandbook/internal/config"
	"bandbook/internal/db"
	"bandbook/internal/handler"
	"bandbook/internal/model"
	"bandbook/internal/repository"
	"bandbook/internal/router"
	"bandbook/internal/service"
	"bandbook/internal/upload"
	"bandbook/internal/video"
)

// @title Bandbook API
// @version 1.0
// @description Band catalog API with reviews, favorite tracks, YouTube channel videos and cookie-based JWT authentication.
// @host localhost:4000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Favorite{},
			&model.Review{},
			&model.Band{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Band{},
		&model.Review{},
		&model.Favorite{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	bandRepo := repository.NewBandRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	// Initialize auth and outbound clients
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	uploader := upload.New(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)
	videoClient := video.NewClient(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey, cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	bandService := service.NewBandService(bandRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, bandRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, bandRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, uploader, cfg.CookieName, cfg.CookieSecure)
	bandHandler := handler.NewBandHandler(bandService, uploader)
	reviewHandler := handler.NewReviewHandler(reviewService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	userHandler := handler.NewUserHandler(userService, uploader)
	videoHandler := handler.NewVideoHandler(bandService, videoClient)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		bandHandler,
		reviewHandler,
		favoriteHandler,
		userHandler,
		videoHandler,
	)

	if !uploader.Enabled() {
		log.Println("Cloudinary credentials not set, avatar uploads disabled")
	}
	if cfg.YouTubeAPIKey == "" {
		log.Println("YOUTUBE_API_KEY not set, channel video lookups will fail")
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
