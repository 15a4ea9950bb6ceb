package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// AdminDashboardHandler serves the derived statistics snapshot to admins and
// secretaries.
type AdminDashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewAdminDashboardHandler constructs the dashboard handler.
func NewAdminDashboardHandler(service service.DashboardService, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register wires the dashboard route.
func (h *AdminDashboardHandler) Register(router fiber.Router) {
	router.Get("", h.snapshot)
}

// snapshot always answers 200 with a structurally complete payload; a
// degraded aggregation is flagged inside the snapshot, never as an HTTP
// error, so the dashboard UI can always render.
func (h *AdminDashboardHandler) snapshot(c *fiber.Ctx) error {
	result := h.service.Snapshot(c.Context())
	if result.Degraded {
		requestLogger(h.logger, c).Warn().Err(result.Cause).Msg("serving degraded dashboard snapshot")
	}

	return utils.SendSuccess(c, "dashboard computed", result.Snapshot)
}
