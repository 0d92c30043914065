package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
	"pingme/internal/adapter/api/middleware"
)

func setupAuthRouter(e *echo.Echo, h *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	// Public routes, throttled per IP
	e.POST("/v1/auth/signup", h.Signup, middleware.AuthRateLimit())
	e.POST("/v1/auth/login", h.Login, middleware.AuthRateLimit())

	// Protected routes
	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/logout", h.Logout)
	protected.GET("/check", h.Check)
	protected.PUT("/update-profile", h.UpdateProfile)
	protected.PUT("/update-theme", h.UpdateTheme)
	protected.GET("/ws-ticket", h.WSTicket)
}
