package remote

import (
	"log/slog"
	"net/http"

	"cybersphere/app/echoServer/jwtx"
	"cybersphere/events"
	wssvc "cybersphere/service/workstation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Controller broadcasts remote-control intents (lock, reboot, message) to
// connected observers. There is no device channel; the event is the effect.
type Controller struct {
	WS  wssvc.Service
	Hub *events.Hub
	V   *validator.Validate
	Log *slog.Logger
}

type actionReq struct {
	WorkstationID int64  `json:"workstation_id" validate:"required,gt=0"`
	Action        string `json:"action" validate:"required"`
}

// POST /v1/remote/action (staff/admin)
func (h *Controller) Action(c echo.Context) error {
	var req actionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if _, err := h.WS.Get(c.Request().Context(), req.WorkstationID); err != nil {
		if wssvc.Code(err) == wssvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "workstation not found"})
		}
		h.Log.Error("remote action", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	uid, _ := jwtx.UserID(c)
	h.Hub.Publish(events.RemoteAction, map[string]any{
		"workstation_id": req.WorkstationID,
		"action":         req.Action,
		"requested_by":   uid,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "broadcast"})
}
