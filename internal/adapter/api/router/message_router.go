package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
	"pingme/internal/adapter/api/middleware"
)

func setupMessageRouter(e *echo.Echo, h *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.GET("/:id", h.GetMessages)
	messages.POST("/send/:id", h.SendMessage)
}
