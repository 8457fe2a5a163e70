// Package handler provides HTTP handlers for the captcha API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BackgroundCounter reports how many slider backgrounds are loaded.
type BackgroundCounter interface {
	Len() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	ready func() error
	pool  BackgroundCounter
}

// NewHealthHandler creates a new HealthHandler. ready reports whether the
// captcha assets are usable; nil means always ready. pool may be nil.
func NewHealthHandler(ready func() error, pool BackgroundCounter) *HealthHandler {
	return &HealthHandler{ready: ready, pool: pool}
}

// Check returns the health status of the server.
func (h *HealthHandler) Check(c echo.Context) error {
	resp := map[string]interface{}{
		"status": "ok",
	}
	if h.pool != nil {
		resp["backgrounds"] = h.pool.Len()
	}

	if h.ready != nil {
		if err := h.ready(); err != nil {
			c.Logger().Errorf("captcha assets unavailable: %v", err)
			resp["status"] = "unavailable"
			resp["message"] = "CAPTCHAアセットを読み込めません"
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}

	return c.JSON(http.StatusOK, resp)
}
