package bill

import (
	"log/slog"
	"net/http"

	"cybersphere/app/echoServer/jwtx"
	"cybersphere/model"
	bls "cybersphere/service/billing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bls.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/bill/pay
func (h *Controller) Pay(c echo.Context) error {
	var req model.PayBillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	b, err := h.Svc.Pay(c.Request().Context(), req.BillID, req.PaymentMethod)
	if err != nil {
		switch bls.Code(err) {
		case bls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "bill not found"})
		case bls.ErrAlreadyPaid:
			return c.JSON(http.StatusConflict, echo.Map{"message": "bill already paid"})
		default:
			h.Log.Error("bill pay", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "bill": b})
}

// GET /v1/bills/my
func (h *Controller) Mine(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bills, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("bill list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": bills})
}
