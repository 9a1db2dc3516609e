package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/fallback"
)

// StatusHandler reports whether the backend is reachable.
type StatusHandler struct {
	probe fallback.Prober
}

func NewStatusHandler(probe fallback.Prober) *StatusHandler {
	return &StatusHandler{probe: probe}
}

// Status handles GET /status.
//
// @Summary      Backend connection status
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /status [get]
func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Online:    h.probe.IsOnline(c.Request().Context()),
		CheckedAt: time.Now().UTC(),
	})
}
