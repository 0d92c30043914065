package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingme/internal/adapter/api"
	"pingme/internal/adapter/api/handler"
	ws "pingme/internal/infrastructure/websocket"
)

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	e.Validator = api.NewValidator()

	healthHandler := handler.NewHealthHandler(nil, ws.NewManager())
	e.GET("/health", healthHandler.Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Assertions
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status      string `json:"status"`
			OnlineUsers int    `json:"online_users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, 0, body.Data.OnlineUsers)
}

func TestUnknownRouteReturns404(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
