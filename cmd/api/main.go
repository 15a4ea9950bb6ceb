package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/config"
	"github.com/youthunion/union-go-api/internal/database"
	"github.com/youthunion/union-go-api/internal/handler"
	"github.com/youthunion/union-go-api/internal/middleware"
	"github.com/youthunion/union-go-api/internal/repository"
	"github.com/youthunion/union-go-api/internal/router"
	"github.com/youthunion/union-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// News caching degrades to direct reads when redis is absent.
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, news cache disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	codeAllocator := service.NewCodeAllocator(activityRepo, logger)
	authService := service.NewAuthService(userRepo, service.TokenConfig{
		Secret:   cfg.JWTSecret,
		UserTTL:  cfg.UserTokenTTL,
		AdminTTL: cfg.AdminTokenTTL,
	}, validate, logger)
	activityService := service.NewActivityService(activityRepo, codeAllocator, auditService, validate, logger)
	registrationService := service.NewRegistrationService(registrationRepo, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, logger)
	adminUserService := service.NewAdminUserService(userRepo, auditService, validate, logger)
	newsService := service.NewNewsService(newsRepo, redisClient, cfg.NewsCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	activityHandler := handler.NewActivityHandler(activityService, registrationService, logger)
	newsHandler := handler.NewNewsHandler(newsService, logger)
	adminActivityHandler := handler.NewAdminActivityHandler(activityService, logger)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService, logger)
	adminRegistrationHandler := handler.NewAdminRegistrationHandler(registrationService, logger)
	adminDashboardHandler := handler.NewAdminDashboardHandler(dashboardService, logger)
	adminAuditHandler := handler.NewAdminAuditHandler(auditService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:         &logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		DB:                       db,
		AuthHandler:              authHandler,
		ActivityHandler:          activityHandler,
		NewsHandler:              newsHandler,
		AdminActivityHandler:     adminActivityHandler,
		AdminUserHandler:         adminUserHandler,
		AdminRegistrationHandler: adminRegistrationHandler,
		AdminDashboardHandler:    adminDashboardHandler,
		AdminAuditHandler:        adminAuditHandler,
		JWTMiddleware:            middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
