package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ccerv1/rf-weights-testing/internal/metrics"
	"github.com/labstack/echo/v4"
)

// rateLimit rejects requests beyond the configured recompute rate.
func (s *Server) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.Allow() {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
		}
		return next(c)
	}
}

// requestMetrics records request counts and latency by route template.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request().Method
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
		return nil
	}
}
