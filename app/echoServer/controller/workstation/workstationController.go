package workstation

import (
	"log/slog"
	"net/http"
	"strconv"

	"cybersphere/model"
	wssvc "cybersphere/service/workstation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc wssvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/workstations
func (h *Controller) List(c echo.Context) error {
	list, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("workstation list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if list == nil {
		list = []model.Workstation{}
	}
	return c.JSON(http.StatusOK, list)
}

// POST /v1/workstations (admin)
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateWorkstationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	w, err := h.Svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		if wssvc.Code(err) == wssvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "name required"})
		}
		h.Log.Error("workstation create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, w)
}

type maintenanceReq struct {
	On bool `json:"on"`
}

// POST /v1/workstations/:id/maintenance (admin)
func (h *Controller) Maintenance(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req maintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	if err := h.Svc.SetMaintenance(c.Request().Context(), id, req.On); err != nil {
		switch wssvc.Code(err) {
		case wssvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "workstation not found"})
		case wssvc.ErrOccupied:
			return c.JSON(http.StatusConflict, echo.Map{"message": "workstation occupied"})
		default:
			h.Log.Error("workstation maintenance", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}
