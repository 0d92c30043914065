package router

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/adapter/api/handler"
)

func setupHealthRouter(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/health", h.Health)
	e.GET("/firebase-health", h.FirebaseHealth)
}
