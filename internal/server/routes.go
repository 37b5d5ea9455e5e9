package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Recomputing routes share one limiter
	limited := s.rateLimit
	e.GET("/", s.indexHandler, limited)

	api := e.Group("/api")
	api.GET("/graph", s.graphHandler, limited)
	api.GET("/relationship-types", s.typesHandler)
	api.GET("/schema", s.schemaHandler)
}
