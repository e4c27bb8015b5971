package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/uom-service/internal/config"
	"github.com/deppfellow/uom-service/internal/handler"
	loggerPkg "github.com/deppfellow/uom-service/internal/logger"
	"github.com/deppfellow/uom-service/internal/middleware"
	"github.com/deppfellow/uom-service/internal/repository"
	"github.com/deppfellow/uom-service/internal/router"
	"github.com/deppfellow/uom-service/internal/server"
	"github.com/deppfellow/uom-service/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// serve composes the application bottom-up (config, logger, server
// container, repositories, services, handlers, middlewares, router) and
// runs the HTTP server until SIGINT/SIGTERM.
func serve() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := loggerPkg.New(cfg)
	loggerService := loggerPkg.NewLoggerService(cfg, logger)

	s, err := server.New(cfg, logger, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		return err
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(s, handlers, middlewares)
	s.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
