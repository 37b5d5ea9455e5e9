// Package server exposes the relationship graph over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ccerv1/rf-weights-testing/internal/config"
	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/logger"
	"github.com/ccerv1/rf-weights-testing/internal/metrics"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ShutdownTimeout bounds how long in-flight requests may run after shutdown starts.
const ShutdownTimeout = 10 * time.Second

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Server serves graphs computed from one read-only relationship table.
type Server struct {
	echo     *echo.Echo
	table    *relationship.Table
	defaults engine.Params
	addr     string
	limiter  *rate.Limiter
}

// New builds a server over table. The table is never mutated, so request
// handlers share it without locking.
func New(table *relationship.Table, cfg *config.Config) (*Server, error) {
	defaults, err := cfg.Defaults.Params()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	s := &Server{
		echo:     e,
		table:    table,
		defaults: defaults,
		addr:     cfg.Server.Addr,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst),
	}

	e.Use(middleware.Recover())
	e.Use(requestMetrics)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	s.registerRoutes()
	metrics.SnapshotRecords.Set(float64(table.Len()))

	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", s.addr, "records", s.table.Len())
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	logger.Info("Shutting down server")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
