// model/book.go
package model

import "time"

type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BookProfile merges a book with the set of category names it belongs to.
// Computed on demand, never persisted.
type BookProfile struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	ISBN       string   `json:"isbn"`
	Categories []string `json:"categories"`
}

// CategoryMembership is a (category_name, book_id) join row. There is no
// first-class category entity; a book is in a category iff the row exists.
type CategoryMembership struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"category_name"`
	BookID       int64  `json:"book_id"`
}
