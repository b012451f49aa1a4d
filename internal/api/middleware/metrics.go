// Package middleware provides Echo middleware for the vinted-search API
// server.
package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/vinted-search/internal/metrics"
)

// metricsSkipPaths are excluded from HTTP request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
}

// metricsSkipPrefixes cover the generated API documentation.
var metricsSkipPrefixes = []string{"/docs", "/openapi", "/schemas/"}

// Metrics returns Echo middleware that records request duration and status
// labelled by route template. /healthz only updates the HealthzUp gauge.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if skipMetrics(path) {
				err := next(c)
				if path == "/healthz" {
					up := 0.0
					if s := c.Response().Status; s >= 200 && s < 300 {
						up = 1
					}
					metrics.HealthzUp.Set(up)
				}
				return err
			}

			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func skipMetrics(path string) bool {
	if _, ok := metricsSkipPaths[path]; ok {
		return true
	}
	for _, p := range metricsSkipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
