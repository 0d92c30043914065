package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
	"pingme/internal/adapter/api/middleware"
)

func setupUserRouter(e *echo.Echo, h *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/search", h.Search)
	users.GET("/contacts", h.Contacts)
	users.GET("/profile/:id", h.Profile)
	users.PUT("/privacy", h.UpdatePrivacy)
}
