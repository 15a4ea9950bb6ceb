package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/youthunion/union-go-api/internal/config"
	"github.com/youthunion/union-go-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Database    bool      `json:"db"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns a handler that reports application health, including a
// database round trip.
func HealthCheck(cfg config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if db != nil {
			var one int
			if err := db.WithContext(c.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
				payload.Status = "degraded"
				return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "database unreachable", err.Error())
			}
			payload.Database = one == 1
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
