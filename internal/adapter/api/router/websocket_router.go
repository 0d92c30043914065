package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
)

func setupWebSocketRouter(e *echo.Echo, h *handler.WebSocketHandler) {
	// Authentication happens via the ?ticket= query parameter, not the
	// Authorization header: browsers cannot set headers on websockets.
	e.GET("/ws", h.HandleConnection)
}
