// Package main CyberSphere API.
//
// @title           CyberSphere Cafe API
// @version         1.0
// @description     cyber cafe management (workstations, bookings, sessions, billing, membership).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cybersphere/app/echoServer"
	adminctrl "cybersphere/app/echoServer/controller/admin"
	authctrl "cybersphere/app/echoServer/controller/auth"
	billctrl "cybersphere/app/echoServer/controller/bill"
	bookingctrl "cybersphere/app/echoServer/controller/booking"
	"cybersphere/app/echoServer/controller/eventstream"
	membershipctrl "cybersphere/app/echoServer/controller/membership"
	remotectrl "cybersphere/app/echoServer/controller/remote"
	sessionctrl "cybersphere/app/echoServer/controller/session"
	wsctrl "cybersphere/app/echoServer/controller/workstation"
	"cybersphere/app/echoServer/validation"
	"cybersphere/config"
	"cybersphere/events"
	"cybersphere/metrics"
	billrepo "cybersphere/repository/bill"
	bookingrepo "cybersphere/repository/booking"
	sessionrepo "cybersphere/repository/session"
	statsrepo "cybersphere/repository/stats"
	userrepo "cybersphere/repository/user"
	workstationrepo "cybersphere/repository/workstation"
	adminsvc "cybersphere/service/admin"
	authsvc "cybersphere/service/auth"
	billingsvc "cybersphere/service/billing"
	bookingsvc "cybersphere/service/booking"
	membershipsvc "cybersphere/service/membership"
	sessionsvc "cybersphere/service/session"
	workstationsvc "cybersphere/service/workstation"
	"cybersphere/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, pool, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	defer db.Close()

	// event hub
	hub := events.NewHub()

	// repos
	ur := userrepo.New(db)
	wr := workstationrepo.New(db)
	br := bookingrepo.New(db)
	sr := sessionrepo.New(db)
	blr := billrepo.New(db)
	str := statsrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ws := workstationsvc.New(wr)
	bs := bookingsvc.New(br, hub)
	bls := billingsvc.New(blr, hub, billingsvc.ParseRate(cfg.RatePerMinute))
	ss := sessionsvc.New(sr, bls, hub)
	ms := membershipsvc.New(ur)
	ads := adminsvc.New(str)

	// booking completion sweeper
	sweep := bookingsvc.NewSweeper(br)
	interval, err := time.ParseDuration(cfg.SweepInterval)
	if err != nil || interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for range t.C {
			n, err := sweep.CompletePast(ctx)
			if err != nil {
				log.Error("booking sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("bookings completed", "count", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	wsC := &wsctrl.Controller{Svc: ws, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	sessionC := &sessionctrl.Controller{Svc: ss, V: v, Log: log}
	billC := &billctrl.Controller{Svc: bls, V: v, Log: log}
	membershipC := &membershipctrl.Controller{Svc: ms, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, Log: log}
	remoteC := &remotectrl.Controller{WS: ws, Hub: hub, V: v, Log: log}
	eventsC := &eventstream.Controller{Hub: hub, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Workstation: wsC,
		Booking:     bookingC,
		Session:     sessionC,
		Bill:        billC,
		Membership:  membershipC,
		Admin:       adminC,
		Remote:      remoteC,
		Events:      eventsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
