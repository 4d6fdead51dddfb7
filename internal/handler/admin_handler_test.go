package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skhan-ssq/studianclass-dashboard/internal/handler"
	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
)

type stubRefreshService struct {
	result service.RefreshResult
	err    error
	calls  int
}

func (s *stubRefreshService) Refresh(_ context.Context) (service.RefreshResult, error) {
	s.calls++
	if s.err != nil {
		return service.RefreshResult{}, s.err
	}
	return s.result, nil
}

func newAdminApp(svc service.RefreshService) *fiber.App {
	app := fiber.New()
	handler.NewAdminHandler(svc, zerolog.Nop()).Register(app.Group("/api/v2/admin"))
	return app
}

func TestAdminHandler_Refresh(t *testing.T) {
	svc := &stubRefreshService{
		result: service.RefreshResult{
			ProgressRows: 120,
			CertRows:     80,
			GeneratedAt:  "2025-09-20",
			LoadedAt:     time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC),
		},
	}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/admin/refresh", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, svc.calls)

	var payload struct {
		Success bool                  `json:"success"`
		Data    service.RefreshResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.True(t, payload.Success)
	require.Equal(t, 120, payload.Data.ProgressRows)
	require.Equal(t, "2025-09-20", payload.Data.GeneratedAt)
}

func TestAdminHandler_RefreshFailure(t *testing.T) {
	svc := &stubRefreshService{err: errors.New("source unreachable")}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/admin/refresh", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.False(t, payload.Success)
	require.NotEmpty(t, payload.Message)
}

var _ service.RefreshService = (*stubRefreshService)(nil)
