package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// AdminAuditHandler exposes the admin-only audit trail listing.
type AdminAuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAdminAuditHandler constructs the handler.
func NewAdminAuditHandler(service service.AuditService, logger zerolog.Logger) *AdminAuditHandler {
	return &AdminAuditHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_audit_handler").Logger(),
	}
}

// Register wires the audit trail route.
func (h *AdminAuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AdminAuditHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.ListRecent(c.Context(), c.QueryInt("limit"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list audit entries")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "audit entries retrieved", entries)
}
