// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/uom-service/internal/handler"
	"github.com/deppfellow/uom-service/internal/middleware"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance with the full middleware chain and all
// routes registered. Order matters: the request ID must exist before the
// context enhancer builds the logger, and tracing must wrap everything
// that should land in a transaction.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())
	e.Use(m.Global.CORS())

	registerSystemRoutes(e, h)
	registerUOMRoutes(e, s, h, m)

	return e
}

// registerUOMRoutes wires the business endpoints. When auth is enabled
// every business route requires a bearer token; system routes stay open.
func registerUOMRoutes(e *echo.Echo, s *server.Server, h *handler.Handlers, m *middleware.Middlewares) {
	api := e.Group("")
	if s.Config.Auth.Enabled {
		api.Use(m.Auth.RequireAuth)
	}

	uoms := api.Group("/uoms")
	uoms.POST("", handler.Handle(h.UOMs.Create, http.StatusCreated))
	uoms.GET("", handler.Handle(h.UOMs.List, http.StatusOK))
	uoms.GET("/:id", handler.Handle(h.UOMs.Get, http.StatusOK))
	uoms.PATCH("/:id", handler.Handle(h.UOMs.Update, http.StatusOK))
	uoms.DELETE("/:id", handler.Handle(h.UOMs.Delete, http.StatusOK))

	conversions := api.Group("/uom-conversions")
	conversions.POST("", handler.Handle(h.Conversions.Create, http.StatusCreated))
	conversions.GET("", handler.Handle(h.Conversions.List, http.StatusOK))
	conversions.GET("/:id", handler.Handle(h.Conversions.Get, http.StatusOK))
	conversions.PATCH("/:id", handler.Handle(h.Conversions.Update, http.StatusOK))
	conversions.DELETE("/:id", handler.Handle(h.Conversions.Delete, http.StatusOK))

	api.POST("/convert", handler.Handle(h.Conversions.Convert, http.StatusOK), m.RateLimit.LimitConversions())
}
