package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cybersphere/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func callWithRole(t *testing.T, mw echo.MiddlewareFunc, role model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", role)

	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireAdmin(t *testing.T) {
	require.Equal(t, http.StatusForbidden, callWithRole(t, RequireAdmin(), model.RoleCustomer).Code)
	require.Equal(t, http.StatusForbidden, callWithRole(t, RequireAdmin(), model.RoleStaff).Code)
	require.Equal(t, http.StatusOK, callWithRole(t, RequireAdmin(), model.RoleAdmin).Code)
}

func TestRequireStaff(t *testing.T) {
	require.Equal(t, http.StatusForbidden, callWithRole(t, RequireStaff(), model.RoleCustomer).Code)
	require.Equal(t, http.StatusOK, callWithRole(t, RequireStaff(), model.RoleStaff).Code)
	require.Equal(t, http.StatusOK, callWithRole(t, RequireStaff(), model.RoleAdmin).Code)
}

func TestRequireStaff_NoRoleInContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireStaff()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
