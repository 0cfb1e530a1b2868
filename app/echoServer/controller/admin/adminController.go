package admin

import (
	"log/slog"
	"net/http"

	as "cybersphere/service/admin"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc as.Service
	Log *slog.Logger
}

// GET /v1/admin/stats (admin)
func (h *Controller) Stats(c echo.Context) error {
	t, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		h.Log.Error("admin stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, t)
}
