package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/service"
	"github.com/youthunion/union-go-api/internal/utils"
)

// AuthHandler exposes registration, login and password-change endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes. The change-password route must be
// mounted behind the JWT middleware by the router.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected wires auth routes that require an authenticated caller.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/change-password", h.changePassword)
}

// RegisterAdmin wires the staff login route.
func (h *AuthHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/login", h.adminLogin)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Register(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already exists")
		case errors.Is(err, service.ErrStudentIDTaken):
			return utils.SendError(c, fiber.StatusConflict, "student id already exists")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "missing or invalid fields")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to register account")
			return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", user)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	identity, password, err := parseLoginPayload(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "missing fields")
	}

	response, err := h.service.Login(c.Context(), identity, password)
	if err != nil {
		return h.loginError(c, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	identity, password, err := parseLoginPayload(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "missing fields")
	}

	response, err := h.service.AdminLogin(c.Context(), identity, password)
	if err != nil {
		return h.loginError(c, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) loginError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrAccountLocked):
		return utils.SendError(c, fiber.StatusForbidden, "account locked")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
	}
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ChangePassword(c.Context(), userID, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrWrongPassword):
			return utils.SendError(c, fiber.StatusBadRequest, "current password is incorrect")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "new password must be at least 6 characters")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to change password")
			return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "server error", err.Error())
		}
	}

	return utils.SendSuccess(c, "password changed", nil)
}

func parseLoginPayload(c *fiber.Ctx) (string, string, error) {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return "", "", err
	}

	identity := payload.Identity()
	if identity == "" || payload.Password == "" {
		return "", "", errors.New("missing fields")
	}
	return identity, payload.Password, nil
}
