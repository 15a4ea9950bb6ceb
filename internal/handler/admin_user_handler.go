package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// AdminUserHandler exposes account management to admins only.
type AdminUserHandler struct {
	service service.AdminUserService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the admin user handler.
func NewAdminUserHandler(service service.AdminUserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register wires the admin user routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Put("/:id/role", h.updateRole)
	router.Put("/:id/lock", h.setLock)
	router.Delete("/:id", h.delete)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list users")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *AdminUserHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminUserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return h.writeError(c, err, "failed to create user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *AdminUserHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AdminUserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return h.writeError(c, err, "failed to update user")
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *AdminUserHandler) updateRole(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AdminUserRoleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateRole(c.Context(), actorFromContext(c), id, payload.Role)
	if err != nil {
		return h.writeError(c, err, "failed to update role")
	}

	return utils.SendSuccess(c, "role updated", user)
}

func (h *AdminUserHandler) setLock(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AdminUserLockRequest
	if err := c.BodyParser(&payload); err != nil || payload.Lock == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.SetLock(c.Context(), actorFromContext(c), id, *payload.Lock)
	if err != nil {
		return h.writeError(c, err, "failed to update lock state")
	}

	return utils.SendSuccess(c, "lock state updated", user)
}

func (h *AdminUserHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return h.writeError(c, err, "failed to delete user")
	}

	return utils.SendSuccess(c, "user deleted", fiber.Map{"id": id})
}

func (h *AdminUserHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already exists")
	case errors.Is(err, service.ErrStudentIDTaken):
		return utils.SendError(c, fiber.StatusConflict, "student id already exists")
	case errors.Is(err, service.ErrInvalidRole):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid role")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "missing or invalid fields")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}
}
