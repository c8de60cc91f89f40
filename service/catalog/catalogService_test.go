package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bookreserve/model"
)

type repoMock struct {
	insertFn      func(ctx context.Context, title, author, isbn string) (int64, error)
	findByIDFn    func(ctx context.Context, id int64) (*model.Book, error)
	findByISBNFn  func(ctx context.Context, isbn string) (*model.Book, error)
	updateFn      func(ctx context.Context, id int64, title, author string) error
	distinctIDsFn func(ctx context.Context) ([]int64, error)
	searchIDsFn   func(ctx context.Context, query string) ([]int64, error)
	categoriesFn  func(ctx context.Context, bookID int64) ([]string, error)
	addCatFn      func(ctx context.Context, bookID int64, name string) error
	removeCatFn   func(ctx context.Context, bookID int64, name string) error
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) Insert(ctx context.Context, title, author, isbn string) (int64, error) {
	return m.insertFn(ctx, title, author, isbn)
}
func (m *repoMock) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.findByIDFn(ctx, id)
}
func (m *repoMock) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return m.findByISBNFn(ctx, isbn)
}
func (m *repoMock) UpdateTitleAuthor(ctx context.Context, id int64, title, author string) error {
	return m.updateFn(ctx, id, title, author)
}
func (m *repoMock) DistinctIDs(ctx context.Context) ([]int64, error) {
	return m.distinctIDsFn(ctx)
}
func (m *repoMock) SearchIDs(ctx context.Context, query string) ([]int64, error) {
	return m.searchIDsFn(ctx, query)
}
func (m *repoMock) CategoryNames(ctx context.Context, bookID int64) ([]string, error) {
	return m.categoriesFn(ctx, bookID)
}
func (m *repoMock) AddCategory(ctx context.Context, bookID int64, name string) error {
	return m.addCatFn(ctx, bookID, name)
}
func (m *repoMock) RemoveCategory(ctx context.Context, bookID int64, name string) error {
	return m.removeCatFn(ctx, bookID, name)
}

func booksByID(books map[int64]*model.Book) func(ctx context.Context, id int64) (*model.Book, error) {
	return func(ctx context.Context, id int64) (*model.Book, error) {
		return books[id], nil
	}
}

func categoriesByID(cats map[int64][]string) func(ctx context.Context, bookID int64) ([]string, error) {
	return func(ctx context.Context, bookID int64) ([]string, error) {
		return cats[bookID], nil
	}
}

// --- tests ---

func TestResolveProfile_MergesCategories(t *testing.T) {
	m := &repoMock{
		findByIDFn: booksByID(map[int64]*model.Book{
			7: {ID: 7, Title: "Dune", Author: "Herbert", ISBN: "A1"},
		}),
		categoriesFn: categoriesByID(map[int64][]string{
			7: {"Fiction", "SciFi"},
		}),
	}
	s := New(m)

	p, err := s.ResolveProfile(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, "Dune", p.Title)
	require.Equal(t, "A1", p.ISBN)
	require.ElementsMatch(t, []string{"Fiction", "SciFi"}, p.Categories)
}

func TestResolveProfile_NotFound(t *testing.T) {
	m := &repoMock{
		findByIDFn: booksByID(nil),
		categoriesFn: func(ctx context.Context, bookID int64) ([]string, error) {
			t.Fatal("categories must not be fetched for a missing book")
			return nil, nil
		},
	}
	s := New(m)

	p, err := s.ResolveProfile(context.Background(), 404)
	require.Error(t, err)
	require.Nil(t, p)
	require.Equal(t, ErrBookNotFound, Code(err))
}

func TestListAllProfiles_TwoBooks(t *testing.T) {
	m := &repoMock{
		distinctIDsFn: func(ctx context.Context) ([]int64, error) { return []int64{1, 2}, nil },
		findByIDFn: booksByID(map[int64]*model.Book{
			1: {ID: 1, Title: "One", ISBN: "A1"},
			2: {ID: 2, Title: "Two", ISBN: "A2"},
		}),
		categoriesFn: categoriesByID(map[int64][]string{
			1: {"Fiction"},
		}),
	}
	s := New(m)

	profiles, err := s.ListAllProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	// order follows the id list, not goroutine completion order
	require.Equal(t, "A1", profiles[0].ISBN)
	require.Equal(t, []string{"Fiction"}, profiles[0].Categories)
	require.Equal(t, "A2", profiles[1].ISBN)
	require.Equal(t, []string{}, profiles[1].Categories)
}

func TestListAllProfiles_FirstFailureWins(t *testing.T) {
	boom := errors.New("db down")
	m := &repoMock{
		distinctIDsFn: func(ctx context.Context) ([]int64, error) { return []int64{1, 2, 3}, nil },
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			if id == 2 {
				return nil, boom
			}
			return &model.Book{ID: id}, nil
		},
		categoriesFn: categoriesByID(nil),
	}
	s := New(m)

	profiles, err := s.ListAllProfiles(context.Background())
	require.ErrorIs(t, err, boom)
	require.Nil(t, profiles)
}

func TestSearchProfiles_BlankQueryShortCircuits(t *testing.T) {
	m := &repoMock{
		searchIDsFn: func(ctx context.Context, query string) ([]int64, error) {
			t.Fatal("search must not run for a blank query")
			return nil, nil
		},
	}
	s := New(m)

	for _, q := range []string{"", "   ", "\t"} {
		profiles, err := s.SearchProfiles(context.Background(), q)
		require.NoError(t, err)
		require.NotNil(t, profiles)
		require.Empty(t, profiles)
	}
}

func TestSearchProfiles_KeepsRankOrder(t *testing.T) {
	m := &repoMock{
		searchIDsFn: func(ctx context.Context, query string) ([]int64, error) {
			require.Equal(t, "dune", query)
			return []int64{3, 1}, nil
		},
		findByIDFn: booksByID(map[int64]*model.Book{
			1: {ID: 1, ISBN: "A1"},
			3: {ID: 3, ISBN: "A3"},
		}),
		categoriesFn: categoriesByID(nil),
	}
	s := New(m)

	profiles, err := s.SearchProfiles(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, int64(3), profiles[0].ID)
	require.Equal(t, int64(1), profiles[1].ID)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		findByISBNFn: func(ctx context.Context, isbn string) (*model.Book, error) {
			return &model.Book{ID: 9, ISBN: isbn}, nil
		},
		insertFn: func(ctx context.Context, title, author, isbn string) (int64, error) {
			t.Fatal("insert must not run when the ISBN is taken")
			return 0, nil
		},
	}
	s := New(m)

	_, err := s.CreateBook(context.Background(), "T", "A", "A1")
	require.Error(t, err)
	require.Equal(t, ErrDuplicateISBN, Code(err))
}

func TestCreateBook_Success(t *testing.T) {
	m := &repoMock{
		findByISBNFn: func(ctx context.Context, isbn string) (*model.Book, error) { return nil, nil },
		insertFn: func(ctx context.Context, title, author, isbn string) (int64, error) {
			require.Equal(t, "Dune", title)
			require.Equal(t, "Herbert", author)
			require.Equal(t, "A1", isbn)
			return 42, nil
		},
	}
	s := New(m)

	id, err := s.CreateBook(context.Background(), "Dune", "Herbert", "A1")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestUpdateBook_NotFound(t *testing.T) {
	m := &repoMock{findByIDFn: booksByID(nil)}
	s := New(m)

	_, err := s.UpdateBook(context.Background(), 404, "T", "A")
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
}

func TestUpdateBook_OverwritesWithEmptyValues(t *testing.T) {
	var gotTitle, gotAuthor string
	m := &repoMock{
		findByIDFn: booksByID(map[int64]*model.Book{
			5: {ID: 5, Title: "Old", Author: "Old", ISBN: "A1"},
		}),
		updateFn: func(ctx context.Context, id int64, title, author string) error {
			gotTitle, gotAuthor = title, author
			return nil
		},
	}
	s := New(m)

	id, err := s.UpdateBook(context.Background(), 5, "", "")
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
	require.Equal(t, "", gotTitle)
	require.Equal(t, "", gotAuthor)
}

func TestCategoryMembership_IdempotentPassThrough(t *testing.T) {
	adds, removes := 0, 0
	m := &repoMock{
		addCatFn: func(ctx context.Context, bookID int64, name string) error {
			adds++
			return nil
		},
		removeCatFn: func(ctx context.Context, bookID int64, name string) error {
			removes++
			return nil
		},
	}
	s := New(m)
	ctx := context.Background()

	require.NoError(t, s.AddToCategory(ctx, 1, "Fiction"))
	require.NoError(t, s.AddToCategory(ctx, 1, "Fiction"))
	require.NoError(t, s.RemoveFromCategory(ctx, 1, "Fiction"))
	require.NoError(t, s.RemoveFromCategory(ctx, 1, "Fiction"))
	require.Equal(t, 2, adds)
	require.Equal(t, 2, removes)
}
