package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"vipmotors/docs"
	"vipmotors/internal/auth"
	"vipmotors/internal/cache"
	"vipmotors/internal/config"
	"vipmotors/internal/db"
	"vipmotors/internal/handler"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
	"vipmotors/internal/router"
	"vipmotors/internal/service"
)

// @title VIP Motors API
// @version 1.0
// @description Car catalog API with user accounts, carts, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	// Deployments behind a proxy expose swagger under their public host
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	// Store connectivity failure at startup is fatal: the process must not
	// begin serving without its database.
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.CarImage{},
		&model.CartItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHrs)*time.Hour)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	catalogService := service.NewCatalogService(carRepo, cacheClient)
	cartService := service.NewCartService(cartRepo, carRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	carHandler := handler.NewCarHandler(catalogService)
	userHandler := handler.NewUserHandler(userService, cartService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		carHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
