package main

import (
	"log"
	"net/http"

	_ "motorlog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"motorlog/internal/auth"
	"motorlog/internal/cache"
	"motorlog/internal/config"
	"motorlog/internal/db"
	"motorlog/internal/handler"
	"motorlog/internal/model"
	"motorlog/internal/repository"
	"motorlog/internal/router"
	"motorlog/internal/service"
)

// @title Vehicle Tracker API
// @version 1.0
// @description Multi-user vehicle tracking API with JWT session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	accountService := service.NewAccountService(userRepo, jwtService, cacheClient)
	vehicleService := service.NewVehicleService(vehicleRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService, cfg.CookieSecure)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		vehicleHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
