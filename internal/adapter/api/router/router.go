package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
	"pingme/internal/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Message   *handler.MessageHandler
	WebSocket *handler.WebSocketHandler
	Health    *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupAuthRouter(e, h.Auth, authMiddleware)
	setupUserRouter(e, h.User, authMiddleware)
	setupMessageRouter(e, h.Message, authMiddleware)
	setupWebSocketRouter(e, h.WebSocket)
	setupHealthRouter(e, h.Health)
}
