package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/config"
	"github.com/youthunion/union-go-api/internal/handler"
	"github.com/youthunion/union-go-api/internal/middleware"
	"github.com/youthunion/union-go-api/internal/models"
	"github.com/youthunion/union-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DB *gorm.DB

	AuthHandler              *handler.AuthHandler
	ActivityHandler          *handler.ActivityHandler
	NewsHandler              *handler.NewsHandler
	AdminActivityHandler     *handler.AdminActivityHandler
	AdminUserHandler         *handler.AdminUserHandler
	AdminRegistrationHandler *handler.AdminRegistrationHandler
	AdminDashboardHandler    *handler.AdminDashboardHandler
	AdminAuditHandler        *handler.AdminAuditHandler
	JWTMiddleware            fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.DB))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Auth (public register/login plus guarded password change)
	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	// Activities: listing is public, registration routes sit behind JWT
	if deps.ActivityHandler != nil {
		activities := api.Group("/activities")
		deps.ActivityHandler.Register(activities, jwtMiddleware)
	}

	// News
	if deps.NewsHandler != nil {
		news := api.Group("/news")
		deps.NewsHandler.Register(news)
	}

	// Admin surface
	admin := api.Group("/admin")
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterAdmin(admin)
	}

	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleSecretary)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(admin.Group("/dashboard", jwtMiddleware, staffOnly))
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(admin.Group("/activities", jwtMiddleware, staffOnly))
	}
	if deps.AdminRegistrationHandler != nil {
		deps.AdminRegistrationHandler.Register(admin.Group("/registrations", jwtMiddleware, adminOnly))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users", jwtMiddleware, adminOnly))
	}
	if deps.AdminAuditHandler != nil {
		deps.AdminAuditHandler.Register(admin.Group("/audit", jwtMiddleware, adminOnly))
	}
}
