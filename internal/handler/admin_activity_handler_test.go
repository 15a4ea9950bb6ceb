package handler_test

import (
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

func newAdminActivityTestApp(svc *mockActivityService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/activities", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewAdminActivityHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAdminActivityHandlerCreate(t *testing.T) {
	code := "123"
	svc := &mockActivityService{createResp: dto.ActivityResponse{
		ID:     "hd000000000001",
		Code:   &code,
		Title:  "Mùa hè xanh",
		Status: "open",
	}}
	app := newAdminActivityTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/activities",
		`{"title":"Mùa hè xanh","status":"Mở đăng ký"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Data    dto.ActivityResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "123", *body.Data.Code)
}

func TestAdminActivityHandlerCreateInvalidDate(t *testing.T) {
	svc := &mockActivityService{createErr: service.ErrInvalidDate}
	app := newAdminActivityTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/activities",
		`{"title":"Mùa hè xanh","activity_date":"15/09/2026"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminActivityHandlerCreateCodeSpaceExhausted(t *testing.T) {
	svc := &mockActivityService{createErr: service.ErrCodeSpaceExhausted}
	app := newAdminActivityTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/activities",
		`{"title":"Mùa hè xanh"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminActivityHandlerUpdateNotFound(t *testing.T) {
	svc := &mockActivityService{updateErr: service.ErrActivityNotFound}
	app := newAdminActivityTestApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/admin/activities/hd999999999999",
		`{"title":"Đổi tên"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminActivityHandlerDelete(t *testing.T) {
	svc := &mockActivityService{}
	app := newAdminActivityTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/admin/activities/hd000000000001", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
