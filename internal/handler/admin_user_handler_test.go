package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/youthunion/union-go-api/internal/dto"
	"github.com/youthunion/union-go-api/internal/handler"
	"github.com/youthunion/union-go-api/internal/service"
)

type mockAdminUserService struct {
	listResp   []dto.UserResponse
	userResp   dto.UserResponse
	err        error
	lastRole   string
	lastLocked *bool
}

func (m *mockAdminUserService) List(_ context.Context) ([]dto.UserResponse, error) {
	return m.listResp, m.err
}

func (m *mockAdminUserService) Create(_ context.Context, _ service.Actor, _ dto.AdminUserCreateRequest) (dto.UserResponse, error) {
	if m.err != nil {
		return dto.UserResponse{}, m.err
	}
	return m.userResp, nil
}

func (m *mockAdminUserService) Update(_ context.Context, _ service.Actor, _ uint, _ dto.AdminUserUpdateRequest) (dto.UserResponse, error) {
	if m.err != nil {
		return dto.UserResponse{}, m.err
	}
	return m.userResp, nil
}

func (m *mockAdminUserService) UpdateRole(_ context.Context, _ service.Actor, _ uint, role string) (dto.UserResponse, error) {
	m.lastRole = role
	if m.err != nil {
		return dto.UserResponse{}, m.err
	}
	return m.userResp, nil
}

func (m *mockAdminUserService) SetLock(_ context.Context, _ service.Actor, _ uint, locked bool) (dto.UserResponse, error) {
	m.lastLocked = &locked
	if m.err != nil {
		return dto.UserResponse{}, m.err
	}
	return m.userResp, nil
}

func (m *mockAdminUserService) Delete(_ context.Context, _ service.Actor, _ uint) error {
	return m.err
}

func newAdminUserTestApp(svc *mockAdminUserService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/users", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewAdminUserHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAdminUserHandlerList(t *testing.T) {
	svc := &mockAdminUserService{listResp: []dto.UserResponse{
		{ID: 1, FullName: "Nguyễn Văn A", Role: "user"},
		{ID: 2, FullName: "Trần Thị B", Role: "secretary"},
	}}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 2)
}

func TestAdminUserHandlerCreateConflict(t *testing.T) {
	svc := &mockAdminUserService{err: service.ErrEmailTaken}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/users",
		`{"fullName":"A","studentId":"SV1","email":"taken@example.com","password":"secret123","role":"user"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminUserHandlerUpdateRole(t *testing.T) {
	svc := &mockAdminUserService{userResp: dto.UserResponse{ID: 5, Role: "secretary"}}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/admin/users/5/role", `{"role":"secretary"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "secretary", svc.lastRole)
}

func TestAdminUserHandlerUpdateRoleInvalid(t *testing.T) {
	svc := &mockAdminUserService{err: service.ErrInvalidRole}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/admin/users/5/role", `{"role":"superuser"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminUserHandlerSetLock(t *testing.T) {
	svc := &mockAdminUserService{userResp: dto.UserResponse{ID: 5, Locked: true}}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/admin/users/5/lock", `{"lock":true}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastLocked)
	require.True(t, *svc.lastLocked)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/admin/users/5/lock", `{"lock":false}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.False(t, *svc.lastLocked)

	// The lock flag is mandatory, not defaulted.
	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/admin/users/5/lock", `{}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminUserHandlerDeleteNotFound(t *testing.T) {
	svc := &mockAdminUserService{err: service.ErrUserNotFound}
	app := newAdminUserTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/users/42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminUserHandlerInvalidIdentifier(t *testing.T) {
	app := newAdminUserTestApp(&mockAdminUserService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/users/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
