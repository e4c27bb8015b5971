package router

import (
	"github.com/deppfellow/uom-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic.
// They stay outside the auth group so probes work unauthenticated.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by orchestrators and monitors).
	e.GET("/status", h.Health.Status)
}
