package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"pingme/internal/infrastructure/firebase"
	ws "pingme/internal/infrastructure/websocket"
	"pingme/pkg/response"
)

type HealthHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	wsManager    *ws.Manager
}

func NewHealthHandler(firebaseAuth *firebase.FirebaseAuthClient, wsManager *ws.Manager) *HealthHandler {
	return &HealthHandler{
		firebaseAuth: firebaseAuth,
		wsManager:    wsManager,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"status":       "ok",
		"online_users": len(h.wsManager.OnlineUsers()),
	})
}

// FirebaseHealth probes the identity provider credentials.
func (h *HealthHandler) FirebaseHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.firebaseAuth.TestConnection(ctx); err != nil {
		return response.Success(c, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
	}

	return response.Success(c, map[string]string{"status": "ok"})
}
