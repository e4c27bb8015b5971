package middleware

import (
	"net/http"

	"github.com/deppfellow/uom-service/internal/errs"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// conversionRateLimit bounds /convert per client IP. Lookups are cheap
// but cacheable, so a generous burst is fine.
const (
	conversionRateLimit = rate.Limit(20)
	conversionRateBurst = 40
)

// RateLimitMiddleware throttles the conversion endpoint per client IP and
// records limit hits as New Relic custom events.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{server: s}
}

// LimitConversions returns an in-memory, per-IP rate limiter. Exceeding
// the limit answers 429 through the global error handler.
func (r *RateLimitMiddleware) LimitConversions() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  conversionRateLimit,
			Burst: conversionRateBurst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			return &errs.HTTPError{
				Code:    "RATE_LIMITED",
				Message: "Too many requests, slow down",
				Status:  http.StatusTooManyRequests,
			}
		},
	})
}

// RecordRateLimitHit emits a New Relic custom event when a client trips
// the limiter. No-op without an agent.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
