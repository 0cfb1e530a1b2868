// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"cybersphere/metrics"
	"cybersphere/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(metrics.Middleware())

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// ExtractClaims copies user_id and role out of the verified token so handlers
// never touch jwt types.
func ExtractClaims() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var claims jwt.MapClaims
			switch tok := c.Get("user").(type) {
			case *jwt.Token:
				claims, _ = tok.Claims.(jwt.MapClaims)
			case jwt.MapClaims:
				claims = tok
			}
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, _ := claims["role"].(string)
			if role == "" {
				role = string(model.RoleCustomer)
			}

			c.Set("user_id", int64(sub))
			c.Set("role", model.Role(role))
			return next(c)
		}
	}
}

// RequireStaff gates staff/admin-only routes.
func RequireStaff() echo.MiddlewareFunc {
	return requireRole(func(r model.Role) bool { return r.IsStaff() })
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(func(r model.Role) bool { return r == model.RoleAdmin })
}

func requireRole(allowed func(model.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(model.Role)
			if !allowed(role) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
