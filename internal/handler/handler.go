// Package handler is the HTTP layer: the first entry point for business
// logic after the router. It binds and validates requests, calls the
// appropriate service, and writes the success envelope. Errors are
// returned to the global error handler, never written here.
package handler

import (
	"time"

	"github.com/deppfellow/uom-service/internal/middleware"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/deppfellow/uom-service/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type holding shared application
// dependencies. Concrete handlers embed it to reach the server container.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// RequestPtr constrains PReq to "*Req implementing Validatable", which
// lets Handle allocate a fresh request value per call. Binding into a
// shared request struct would race under concurrent requests.
type RequestPtr[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps a typed endpoint function with binding, validation, error
// propagation, structured logging, and tracing attributes, and writes the
// result as JSON with the given status.
func Handle[Req any, PReq RequestPtr[Req], Res any](
	fn func(c echo.Context, req PReq) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		result, err := handleRequest(c, req, func(c echo.Context, req PReq) (any, error) {
			return fn(c, req)
		})
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

// handleRequest is the shared execution pipeline for all endpoints:
// bind + validate, run the handler, and record timing/tracing metadata.
func handleRequest[PReq validation.Validatable](
	c echo.Context,
	req PReq,
	fn func(c echo.Context, req PReq) (any, error),
) (any, error) {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
		}
		return nil, err
	}
	validationDuration := time.Since(validationStart)

	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
		}
		return nil, err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed")

	return result, nil
}
