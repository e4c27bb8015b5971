// Package logger configures the application's logging and observability.
//
// It uses zerolog for structured logging and optionally boots a New Relic
// application when a license key is configured, so logs, traces, and
// request transactions can be forwarded to APM. Without a license key the
// LoggerService carries a nil application and every integration built on
// it degrades to a no-op.
package logger

import (
	"os"
	"time"

	"github.com/deppfellow/uom-service/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// New builds the root zerolog logger from the observability config.
// Local/console format writes human-readable lines to stderr; everything
// else emits JSON for log pipelines.
func New(cfg *config.Config) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Observability.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(level).With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// LoggerService wraps the optional New Relic application instance.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes New Relic when a license key is present.
// It never fails the app over APM: init errors are logged and the service
// continues with a nil application.
func NewLoggerService(cfg *config.Config, logger *zerolog.Logger) *LoggerService {
	nr := cfg.Observability.NewRelic
	if nr.LicenseKey == "" {
		return &LoggerService{}
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(nr.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(nr.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(nr.AppLogForwardingEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"env": cfg.Observability.Environment}
		},
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize New Relic, continuing without APM")
		return &LoggerService{}
	}

	logger.Info().Msg("New Relic application initialized")
	return &LoggerService{nrApp: app}
}

// GetApplication returns the New Relic application, or nil when APM is
// not configured.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call with APM disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.nrApp == nil {
		return
	}
	s.nrApp.Shutdown(timeout)
}

// WithTraceContext returns a child logger annotated with the transaction's
// trace and span IDs so log lines correlate with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
