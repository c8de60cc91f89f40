// repository/book/repo.go
package bookrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"bookreserve/model"
	"bookreserve/util/database"
)

type Repo interface {
	Insert(ctx context.Context, title, author, isbn string) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	UpdateTitleAuthor(ctx context.Context, id int64, title, author string) error
	DistinctIDs(ctx context.Context) ([]int64, error)
	SearchIDs(ctx context.Context, query string) ([]int64, error)

	CategoryNames(ctx context.Context, bookID int64) ([]string, error)
	AddCategory(ctx context.Context, bookID int64, name string) error
	RemoveCategory(ctx context.Context, bookID int64, name string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, title, author, isbn string) (int64, error) {
	const q = `
INSERT INTO books (title, author, isbn)
VALUES ($1,$2,$3)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, title, author, isbn).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID returns (nil, nil) when the book does not exist.
func (r *repo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT id, title, author, isbn, created_at, updated_at
FROM books
WHERE id = $1`
	b := &model.Book{}
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// FindByISBN matches the ISBN exactly (case-sensitive). Returns (nil, nil)
// when no book carries it.
func (r *repo) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	const q = `
SELECT id, title, author, isbn, created_at, updated_at
FROM books
WHERE isbn = $1
LIMIT 1`
	b := &model.Book{}
	err := r.db.Pool.QueryRow(ctx, q, isbn).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateTitleAuthor(ctx context.Context, id int64, title, author string) error {
	const q = `
UPDATE books
SET title = $2, author = $3, updated_at = now()
WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id, title, author)
	return err
}

func (r *repo) DistinctIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT DISTINCT id FROM books`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SearchIDs runs the full-text match against title and author, most relevant
// first. Ranking is entirely Postgres' business.
func (r *repo) SearchIDs(ctx context.Context, query string) ([]int64, error) {
	const q = `
SELECT id
FROM books
WHERE search_vector @@ plainto_tsquery('english', $1)
ORDER BY ts_rank(search_vector, plainto_tsquery('english', $1)) DESC`
	rows, err := r.db.Pool.Query(ctx, q, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repo) CategoryNames(ctx context.Context, bookID int64) ([]string, error) {
	const q = `
SELECT DISTINCT category_name
FROM book_categories
WHERE book_id = $1`
	rows, err := r.db.Pool.Query(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// AddCategory is idempotent: inserting an existing membership is a no-op.
func (r *repo) AddCategory(ctx context.Context, bookID int64, name string) error {
	const q = `
INSERT INTO book_categories (category_name, book_id)
VALUES ($1,$2)
ON CONFLICT (category_name, book_id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, name, bookID)
	return err
}

// RemoveCategory is idempotent: deleting an absent membership is a no-op.
func (r *repo) RemoveCategory(ctx context.Context, bookID int64, name string) error {
	const q = `
DELETE FROM book_categories
WHERE category_name = $1 AND book_id = $2`
	_, err := r.db.Pool.Exec(ctx, q, name, bookID)
	return err
}
