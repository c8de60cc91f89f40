// Package main book reservation API.
//
// @title           book reservation API
// @version         1.0
// @description     book catalog and booking service (books, categories, bookings, users).
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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookreserve/app/echoServer"
	authctrl "bookreserve/app/echoServer/controller/auth"
	bookctrl "bookreserve/app/echoServer/controller/book"
	bookingctrl "bookreserve/app/echoServer/controller/booking"
	"bookreserve/app/echoServer/validation"
	"bookreserve/config"
	bookrepo "bookreserve/repository/book"
	bookingrepo "bookreserve/repository/booking"
	userrepo "bookreserve/repository/user"
	authsvc "bookreserve/service/auth"
	bookingsvc "bookreserve/service/booking"
	catalogsvc "bookreserve/service/catalog"
	"bookreserve/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	bkr := bookingrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(br)
	bs := bookingsvc.New(bkr, cs)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Catalog: cs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Booking: bookingC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
