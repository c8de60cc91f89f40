package booking

import (
	"context"
	"errors"

	"bookreserve/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "BOOKING_NOT_FOUND"
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrForbidden    ErrCode = "FORBIDDEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Insert(ctx context.Context, userID, bookID int64, quantity int, status model.BookingStatus) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	Update(ctx context.Context, id int64, quantity int, status model.BookingStatus) error

	ListAll(ctx context.Context) ([]model.Booking, error)
	ListByStatus(ctx context.Context, status string) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	ListForBook(ctx context.Context, bookID int64) ([]model.Booking, error)
	ListForBookAndUser(ctx context.Context, bookID, userID int64) ([]model.Booking, error)
}

// Books is the slice of the catalog this service needs: existence checks on
// referenced books. Satisfied by the catalog service.
type Books interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
}

type Service interface {
	// ListAll returns every booking, moderators only.
	ListAll(ctx context.Context, caller model.Caller) ([]model.Booking, error)

	// ListByStatus filters on the status string verbatim, moderators only.
	// An unknown status simply matches nothing.
	ListByStatus(ctx context.Context, caller model.Caller, status string) ([]model.Booking, error)

	// ListByUser returns the caller's own bookings.
	ListByUser(ctx context.Context, caller model.Caller) ([]model.Booking, error)

	// ListForBook returns every booking against one book, moderators only.
	ListForBook(ctx context.Context, caller model.Caller, bookID int64) ([]model.Booking, error)

	// ListMineForBook returns the caller's bookings against one book.
	ListMineForBook(ctx context.Context, caller model.Caller, bookID int64) ([]model.Booking, error)

	// Create inserts a booking owned by the caller, status forced to
	// pending. It does NOT verify the book exists; the route checks that
	// against the catalog before calling.
	Create(ctx context.Context, caller model.Caller, bookID int64, quantity int) (int64, error)

	// Update overwrites quantity and status with whatever was supplied.
	// Full replace, no transition rules.
	Update(ctx context.Context, bookingID int64, quantity int, status model.BookingStatus) (int64, error)
}

type service struct {
	r     Repo
	books Books
}

func New(r Repo, books Books) Service { return &service{r: r, books: books} }

func (s *service) ListAll(ctx context.Context, caller model.Caller) ([]model.Booking, error) {
	if !caller.Moderator {
		return nil, makeErr(ErrForbidden)
	}
	return s.r.ListAll(ctx)
}

func (s *service) ListByStatus(ctx context.Context, caller model.Caller, status string) ([]model.Booking, error) {
	if !caller.Moderator {
		return nil, makeErr(ErrForbidden)
	}
	return s.r.ListByStatus(ctx, status)
}

func (s *service) ListByUser(ctx context.Context, caller model.Caller) ([]model.Booking, error) {
	return s.r.ListByUser(ctx, caller.UserID)
}

func (s *service) ListForBook(ctx context.Context, caller model.Caller, bookID int64) ([]model.Booking, error) {
	if !caller.Moderator {
		return nil, makeErr(ErrForbidden)
	}
	ok, err := s.books.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrBookNotFound)
	}
	return s.r.ListForBook(ctx, bookID)
}

func (s *service) ListMineForBook(ctx context.Context, caller model.Caller, bookID int64) ([]model.Booking, error) {
	ok, err := s.books.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrBookNotFound)
	}
	return s.r.ListForBookAndUser(ctx, bookID, caller.UserID)
}

func (s *service) Create(ctx context.Context, caller model.Caller, bookID int64, quantity int) (int64, error) {
	return s.r.Insert(ctx, caller.UserID, bookID, quantity, model.BookingPending)
}

func (s *service) Update(ctx context.Context, bookingID int64, quantity int, status model.BookingStatus) (int64, error) {
	b, err := s.r.FindByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, makeErr(ErrNotFound)
	}
	if err := s.r.Update(ctx, bookingID, quantity, status); err != nil {
		return 0, err
	}
	return bookingID, nil
}
