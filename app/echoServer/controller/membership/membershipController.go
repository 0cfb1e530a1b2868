package membership

import (
	"log/slog"
	"net/http"

	"cybersphere/app/echoServer/jwtx"
	"cybersphere/model"
	ms "cybersphere/service/membership"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ms.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/membership/subscribe
func (h *Controller) Subscribe(c echo.Context) error {
	var req model.SubscribeReq
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

	u, err := h.Svc.Subscribe(c.Request().Context(), uid, req.Plan)
	if err != nil {
		switch ms.Code(err) {
		case ms.ErrInvalidPlan:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown plan"})
		case ms.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		default:
			h.Log.Error("membership subscribe", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
