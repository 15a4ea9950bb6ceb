package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// ActivityHandler exposes the public activity catalogue and the caller's
// registration endpoints.
type ActivityHandler struct {
	activities    service.ActivityService
	registrations service.RegistrationService
	logger        zerolog.Logger
}

// NewActivityHandler constructs the public activity handler.
func NewActivityHandler(activities service.ActivityService, registrations service.RegistrationService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities:    activities,
		registrations: registrations,
		logger:        logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the public routes; jwtMiddleware guards the caller-scoped
// ones. The /me/registrations route must precede /:id.
func (h *ActivityHandler) Register(router fiber.Router, jwtMiddleware fiber.Handler) {
	router.Get("", h.list)
	router.Get("/me/registrations", jwtMiddleware, h.myRegistrations)
	router.Get("/:id", h.get)
	router.Post("/:id/register", jwtMiddleware, h.register)
	router.Delete("/:id/register", jwtMiddleware, h.unregister)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	filter := dto.ActivityFilter{
		Type:  c.Query("type"),
		Unit:  c.Query("unit"),
		Query: c.Query("q"),
	}

	activities, err := h.activities.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activities")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "activities retrieved", activities)
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	activity, err := h.activities.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch activity")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "activity retrieved", activity)
}

func (h *ActivityHandler) register(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id := strings.TrimSpace(c.Params("id"))
	if err := h.registrations.Register(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register for activity")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "registered", fiber.Map{"ok": true})
}

func (h *ActivityHandler) unregister(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id := strings.TrimSpace(c.Params("id"))
	if err := h.registrations.Unregister(c.Context(), userID, id); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to cancel registration")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "registration cancelled", fiber.Map{"ok": true})
}

func (h *ActivityHandler) myRegistrations(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	registrations, err := h.registrations.ListForUser(c.Context(), userID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list registrations")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "registrations retrieved", registrations)
}
