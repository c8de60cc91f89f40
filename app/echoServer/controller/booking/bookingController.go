package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookreserve/app/echoServer/jwtx"
	"bookreserve/model"
	bookingsvc "bookreserve/service/booking"
	catalogsvc "bookreserve/service/catalog"
)

type Controller struct {
	Svc     bookingsvc.Service
	Catalog catalogsvc.Service
	V       *validator.Validate
	Log     *slog.Logger
}

func isModerator(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "moderator"
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Controller) mapErr(c echo.Context, op string, err error) error {
	switch bookingsvc.Code(err) {
	case bookingsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case bookingsvc.ErrBookNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	case bookingsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /v1/bookings
//
// The service's Create does not re-check the referenced book; this handler
// owns the existence check against the catalog.
func (h *Controller) Create(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	exists, err := h.Catalog.BookExists(c.Request().Context(), req.BookID)
	if err != nil {
		h.Log.Error("booking create: book check", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	}

	id, err := h.Svc.Create(c.Request().Context(), caller, req.BookID, req.Quantity)
	if err != nil {
		return h.mapErr(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": model.BookingPending})
}

// PUT /v1/bookings/:id  (moderator)
func (h *Controller) Update(c echo.Context) error {
	if !isModerator(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	updated, err := h.Svc.Update(c.Request().Context(), id, req.Quantity, model.BookingStatus(req.Status))
	if err != nil {
		return h.mapErr(c, "booking update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": updated})
}

// GET /v1/bookings?status=  (moderator)
func (h *Controller) List(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var rows []model.Booking
	if status := c.QueryParam("status"); status != "" {
		rows, err = h.Svc.ListByStatus(c.Request().Context(), caller, status)
	} else {
		rows, err = h.Svc.ListAll(c.Request().Context(), caller)
	}
	if err != nil {
		return h.mapErr(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/bookings/my
func (h *Controller) ListMy(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListByUser(c.Request().Context(), caller)
	if err != nil {
		return h.mapErr(c, "booking list my", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id/bookings  (moderator)
func (h *Controller) ListForBook(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListForBook(c.Request().Context(), caller, id)
	if err != nil {
		return h.mapErr(c, "booking list for book", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id/bookings/my
func (h *Controller) ListMyForBook(c echo.Context) error {
	caller, err := jwtx.CallerFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListMineForBook(c.Request().Context(), caller, id)
	if err != nil {
		return h.mapErr(c, "booking list my for book", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
