package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadyFunc reports whether the service can take traffic.
type ReadyFunc func() error

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	ready ReadyFunc
}

// NewHealthHandler creates a new HealthHandler. A nil ready is always ready.
func NewHealthHandler(ready ReadyFunc) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 when ready, otherwise 503 with the reason.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
