package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/handler"
	"github.com/youthunion/union-go-api/internal/service"
)

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

type mockAuthService struct {
	lastIdentity string
	loginResp    dto.LoginResponse
	loginErr     error
	registerResp dto.UserResponse
	registerErr  error
	changeErr    error
}

func (m *mockAuthService) Register(_ context.Context, payload dto.RegisterRequest) (dto.UserResponse, error) {
	if m.registerErr != nil {
		return dto.UserResponse{}, m.registerErr
	}
	return m.registerResp, nil
}

func (m *mockAuthService) Login(_ context.Context, identity, password string) (dto.LoginResponse, error) {
	m.lastIdentity = identity
	if m.loginErr != nil {
		return dto.LoginResponse{}, m.loginErr
	}
	return m.loginResp, nil
}

func (m *mockAuthService) AdminLogin(_ context.Context, identity, password string) (dto.LoginResponse, error) {
	return m.Login(nil, identity, password)
}

func (m *mockAuthService) ChangePassword(_ context.Context, userID uint, payload dto.ChangePasswordRequest) error {
	return m.changeErr
}

func newAuthTestApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/auth"))
	h.RegisterAdmin(app.Group("/api/admin"))
	return app
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &mockAuthService{loginResp: dto.LoginResponse{
		Token: "signed-token",
		User:  dto.UserResponse{ID: 7, Email: "member@example.com", Role: "user"},
	}}
	app := newAuthTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"emailOrStudentId":"member@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "signed-token", body.Data.Token)
	require.Equal(t, uint(7), body.Data.User.ID)
}

func TestAuthHandlerLoginLegacyIdentityKeys(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"studentId":"SV2026001","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "SV2026001", svc.lastIdentity)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"member@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "member@example.com", svc.lastIdentity)
}

func TestAuthHandlerLoginMissingFields(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", `{"password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"member@example.com","password":"wrong"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerLoginLockedAccount(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{loginErr: service.ErrAccountLocked})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"member@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &mockAuthService{registerResp: dto.UserResponse{ID: 1, Email: "new@example.com", Role: "user"}}
	app := newAuthTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"fullName":"Nguyễn Văn A","studentId":"SV1","email":"new@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	app := newAuthTestApp(&mockAuthService{registerErr: service.ErrEmailTaken})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"fullName":"A","studentId":"SV1","email":"taken@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "email already exists", body.Message)
}

func TestAuthHandlerAdminLogin(t *testing.T) {
	svc := &mockAuthService{loginResp: dto.LoginResponse{
		Token: "staff-token",
		User:  dto.UserResponse{ID: 2, Role: "secretary"},
	}}
	app := newAuthTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
		`{"email":"secretary@example.com","password":"secret123"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthHandlerChangePassword(t *testing.T) {
	svc := &mockAuthService{}
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterProtected(app.Group("/api/auth", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	}))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/change-password",
		`{"currentPassword":"secret123","newPassword":"updated456"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthHandlerChangePasswordWrongCurrent(t *testing.T) {
	svc := &mockAuthService{changeErr: service.ErrWrongPassword}
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterProtected(app.Group("/api/auth", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	}))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/change-password",
		`{"currentPassword":"wrong","newPassword":"updated456"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
