package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "bookreserve/app/echoServer/controller/auth"
	bookctrl "bookreserve/app/echoServer/controller/book"
	bookingctrl "bookreserve/app/echoServer/controller/booking"
)

type C struct {
	Auth      *authctrl.Controller
	Book      *bookctrl.Controller
	Booking   *bookingctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	// Books (catalog)
	auth.GET("/books", c.Book.List)
	auth.GET("/books/search", c.Book.Search)
	auth.GET("/books/:id", c.Book.Detail)
	// Moderator endpoints
	auth.POST("/books", c.Book.Create)
	auth.PUT("/books/:id", c.Book.Update)
	auth.POST("/books/:id/categories", c.Book.AddCategory)
	auth.DELETE("/books/:id/categories/:name", c.Book.RemoveCategory)

	// Bookings
	auth.POST("/bookings", c.Booking.Create)
	auth.PUT("/bookings/:id", c.Booking.Update)
	auth.GET("/bookings", c.Booking.List)
	auth.GET("/bookings/my", c.Booking.ListMy)
	auth.GET("/books/:id/bookings", c.Booking.ListForBook)
	auth.GET("/books/:id/bookings/my", c.Booking.ListMyForBook)
}
