package jwtx

import (
	"errors"

	"cybersphere/model"

	"github.com/labstack/echo/v4"
)

func UserID(c echo.Context) (int64, error) {
	if id, ok := c.Get("user_id").(int64); ok {
		return id, nil
	}
	return 0, errors.New("no user id in context")
}

func Role(c echo.Context) model.Role {
	if r, ok := c.Get("role").(model.Role); ok {
		return r
	}
	return model.RoleCustomer
}
