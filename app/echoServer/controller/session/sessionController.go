package session

import (
	"log/slog"
	"net/http"

	"cybersphere/app/echoServer/jwtx"
	"cybersphere/model"
	ss "cybersphere/service/session"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ss.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/session/start
func (h *Controller) Start(c echo.Context) error {
	var req model.StartSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	sess, err := h.Svc.Start(c.Request().Context(), req.WorkstationID, uid)
	if err != nil {
		switch ss.Code(err) {
		case ss.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "workstation not found"})
		case ss.ErrOccupied:
			return c.JSON(http.StatusConflict, echo.Map{"message": "workstation occupied"})
		case ss.ErrMaintenance:
			return c.JSON(http.StatusConflict, echo.Map{"message": "workstation under maintenance"})
		default:
			h.Log.Error("session start", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"session": sess})
}

// POST /v1/session/end
func (h *Controller) End(c echo.Context) error {
	var req model.EndSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	out, err := h.Svc.End(c.Request().Context(), req.SessionID, uid, jwtx.Role(c))
	if err != nil {
		switch ss.Code(err) {
		case ss.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "session not found"})
		case ss.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not permitted"})
		case ss.ErrNotActive:
			return c.JSON(http.StatusConflict, echo.Map{"message": "session not active"})
		default:
			h.Log.Error("session end", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}
