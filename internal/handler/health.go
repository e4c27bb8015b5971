package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/uom-service/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and dependency health. It sits
// outside the generic Handle pipeline because it takes no request payload.
type HealthHandler struct {
	Handler
	startedAt time.Time
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s), startedAt: time.Now()}
}

type healthStatus struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Status probes PostgreSQL and, when configured, Redis. A failed Postgres
// probe degrades the overall status and the endpoint answers 503; Redis is
// best-effort and only reported.
func (h *HealthHandler) Status(c echo.Context) error {
	status := healthStatus{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	}

	obs := h.server.Config.Observability
	if obs.HealthChecks.Enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		status.Dependencies = map[string]string{}

		if err := h.server.DB.Pool.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Dependencies["postgres"] = err.Error()
		} else {
			status.Dependencies["postgres"] = "ok"
		}

		if h.server.Redis != nil {
			if err := h.server.Redis.Ping(ctx).Err(); err != nil {
				status.Dependencies["redis"] = err.Error()
			} else {
				status.Dependencies["redis"] = "ok"
			}
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, DataResponse(status))
}
