package echoServer

import (
	"cybersphere/app/echoServer/controller/admin"
	"cybersphere/app/echoServer/controller/auth"
	"cybersphere/app/echoServer/controller/bill"
	"cybersphere/app/echoServer/controller/booking"
	"cybersphere/app/echoServer/controller/eventstream"
	"cybersphere/app/echoServer/controller/membership"
	"cybersphere/app/echoServer/controller/remote"
	"cybersphere/app/echoServer/controller/session"
	"cybersphere/app/echoServer/controller/workstation"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Workstation *workstation.Controller
	Booking     *booking.Controller
	Session     *session.Controller
	Bill        *bill.Controller
	Membership  *membership.Controller
	Admin       *admin.Controller
	Remote      *remote.Controller
	Events      *eventstream.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/register", c.Auth.Register)
	pub.POST("/login", c.Auth.Login)

	// Authenticated
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ,query:token",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return jwt.MapClaims{}
		},
	}))
	authed.Use(ExtractClaims())

	authed.GET("/workstations", c.Workstation.List)

	authed.POST("/book", c.Booking.Create)
	authed.POST("/bookings/:id/cancel", c.Booking.Cancel)

	authed.POST("/session/start", c.Session.Start)
	authed.POST("/session/end", c.Session.End)

	authed.POST("/bill/pay", c.Bill.Pay)
	authed.GET("/bills/my", c.Bill.Mine)

	authed.POST("/membership/subscribe", c.Membership.Subscribe)

	// websocket broadcast feed (token via query for browser clients)
	authed.GET("/events", c.Events.Stream)

	// Staff/admin
	staff := authed.Group("", RequireStaff())
	staff.GET("/bookings", c.Booking.List)
	staff.POST("/remote/action", c.Remote.Action)

	adm := authed.Group("", RequireAdmin())
	adm.GET("/admin/stats", c.Admin.Stats)
	adm.POST("/workstations", c.Workstation.Create)
	adm.POST("/workstations/:id/maintenance", c.Workstation.Maintenance)
}
