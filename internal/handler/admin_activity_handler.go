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

// AdminActivityHandler exposes activity management to admins and secretaries.
type AdminActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs the admin activity handler.
func NewAdminActivityHandler(service service.ActivityService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register wires the admin activity routes.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminActivityHandler) list(c *fiber.Ctx) error {
	activities, err := h.service.List(c.Context(), dto.ActivityFilter{})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activities")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "activities retrieved", activities)
}

func (h *AdminActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.ActivityUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return h.writeError(c, err, "failed to create activity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created", activity)
}

func (h *AdminActivityHandler) update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ActivityUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.service.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return h.writeError(c, err, "failed to update activity")
	}

	return utils.SendSuccess(c, "activity updated", activity)
}

func (h *AdminActivityHandler) delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete activity")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "activity deleted", fiber.Map{"ok": true})
}

func (h *AdminActivityHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity not found")
	case errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity date")
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		return utils.SendError(c, fiber.StatusConflict, "activity code space exhausted")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "missing or invalid fields")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}
}
