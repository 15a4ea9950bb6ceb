package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// AdminRegistrationHandler exposes the admin-only registrations report.
type AdminRegistrationHandler struct {
	service service.RegistrationService
	logger  zerolog.Logger
}

// NewAdminRegistrationHandler constructs the handler.
func NewAdminRegistrationHandler(service service.RegistrationService, logger zerolog.Logger) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_registration_handler").Logger(),
	}
}

// Register wires the registrations report route.
func (h *AdminRegistrationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AdminRegistrationHandler) list(c *fiber.Ctx) error {
	registrations, err := h.service.ListAll(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list registrations")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "registrations retrieved", registrations)
}
