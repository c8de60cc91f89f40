package catalog

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"bookreserve/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound  ErrCode = "BOOK_NOT_FOUND"
	ErrDuplicateISBN ErrCode = "DUPLICATE_ISBN"
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

type Service interface {
	// ResolveProfile joins one book with its category names.
	ResolveProfile(ctx context.Context, bookID int64) (*model.BookProfile, error)

	// ListAllProfiles resolves every book concurrently, one lookup per id.
	ListAllProfiles(ctx context.Context) ([]model.BookProfile, error)

	// SearchProfiles resolves the books matching query, most relevant first.
	// A blank query yields an empty result without hitting the store.
	SearchProfiles(ctx context.Context, query string) ([]model.BookProfile, error)

	CreateBook(ctx context.Context, title, author, isbn string) (int64, error)
	UpdateBook(ctx context.Context, id int64, title, author string) (int64, error)

	AddToCategory(ctx context.Context, bookID int64, name string) error
	RemoveFromCategory(ctx context.Context, bookID int64, name string) error

	BookExists(ctx context.Context, bookID int64) (bool, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) ResolveProfile(ctx context.Context, bookID int64) (*model.BookProfile, error) {
	b, err := s.r.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	cats, err := s.r.CategoryNames(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return &model.BookProfile{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		ISBN:       b.ISBN,
		Categories: cats,
	}, nil
}

func (s *service) ListAllProfiles(ctx context.Context) ([]model.BookProfile, error) {
	ids, err := s.r.DistinctIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, ids)
}

func (s *service) SearchProfiles(ctx context.Context, query string) ([]model.BookProfile, error) {
	if strings.TrimSpace(query) == "" {
		return []model.BookProfile{}, nil
	}
	ids, err := s.r.SearchIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, ids)
}

// resolveAll fans out one ResolveProfile per id and joins on completion.
// Each result lands at the slot of its originating id, so output order
// matches ids regardless of completion order. The first failure fails the
// whole batch.
func (s *service) resolveAll(ctx context.Context, ids []int64) ([]model.BookProfile, error) {
	profiles := make([]model.BookProfile, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.ResolveProfile(gctx, id)
			if err != nil {
				return err
			}
			profiles[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// CreateBook rejects an ISBN already in use. The check and the insert are
// separate statements, so two concurrent creates with the same ISBN can both
// pass the check; see DESIGN.md.
func (s *service) CreateBook(ctx context.Context, title, author, isbn string) (int64, error) {
	existing, err := s.r.FindByISBN(ctx, isbn)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, makeErr(ErrDuplicateISBN)
	}
	return s.r.Insert(ctx, title, author, isbn)
}

// UpdateBook overwrites title and author with whatever was supplied, empty
// values included. ISBN is never touched here.
func (s *service) UpdateBook(ctx context.Context, id int64, title, author string) (int64, error) {
	b, err := s.r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, makeErr(ErrBookNotFound)
	}
	if err := s.r.UpdateTitleAuthor(ctx, id, title, author); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *service) AddToCategory(ctx context.Context, bookID int64, name string) error {
	return s.r.AddCategory(ctx, bookID, name)
}

func (s *service) RemoveFromCategory(ctx context.Context, bookID int64, name string) error {
	return s.r.RemoveCategory(ctx, bookID, name)
}

func (s *service) BookExists(ctx context.Context, bookID int64) (bool, error) {
	b, err := s.r.FindByID(ctx, bookID)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}
