// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"bookreserve/model"
	"bookreserve/util/database"
)

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

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookingCols = `id, user_id, book_id, quantity, status, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, userID, bookID int64, quantity int, status model.BookingStatus) (int64, error) {
	const q = `
INSERT INTO bookings (user_id, book_id, quantity, status)
VALUES ($1,$2,$3,$4)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, userID, bookID, quantity, string(status)).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID returns (nil, nil) when the booking does not exist.
func (r *repo) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1`
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&b.ID, &b.UserID, &b.BookID, &b.Quantity, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Update(ctx context.Context, id int64, quantity int, status model.BookingStatus) error {
	const q = `
UPDATE bookings
SET quantity = $2, status = $3, updated_at = now()
WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id, quantity, string(status))
	return err
}

func (r *repo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings ORDER BY updated_at DESC`
	return r.list(ctx, q)
}

func (r *repo) ListByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE status = $1 ORDER BY updated_at DESC`
	return r.list(ctx, q, status)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, q, userID)
}

func (r *repo) ListForBook(ctx context.Context, bookID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE book_id = $1 ORDER BY updated_at DESC`
	return r.list(ctx, q, bookID)
}

func (r *repo) ListForBookAndUser(ctx context.Context, bookID, userID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE book_id = $1 AND user_id = $2 ORDER BY updated_at DESC`
	return r.list(ctx, q, bookID, userID)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookID, &b.Quantity, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
