package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourshelves/bookswap/internal/model"
	"github.com/ourshelves/bookswap/internal/store"
)

type stubCatalog struct {
	info *model.BookInfo
	err  error
}

func (s *stubCatalog) Lookup(ctx context.Context, isbn string) (*model.BookInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func createBookParams(isbn string) *model.CreateBookParams {
	return &model.CreateBookParams{
		ISBN:    isbn,
		Title:   "Reef Fishes of the East Indies",
		Author:  "Gerald R. Allen",
		OwnerID: model.CreateID(),
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	books, err := store.OpenBookStore(":memory:")
	require.NoError(t, err)
	defer books.Close()

	t.Run("Missing isbn", func(t *testing.T) {
		service := New(books, &stubCatalog{})
		_, err := service.Lookup(ctx, "")
		assert.ErrorIs(err, model.ErrorMissingFields)
	})

	t.Run("Passes catalog result through", func(t *testing.T) {
		info := &model.BookInfo{Title: "Reef Fishes of the East Indies", Author: "Gerald R. Allen", Publisher: "Tropical Reef Research"}
		service := New(books, &stubCatalog{info: info})

		got, err := service.Lookup(ctx, "9780979984006")
		assert.Nil(err)
		assert.Equal(info, got)
	})

	t.Run("Propagates catalog failures", func(t *testing.T) {
		service := New(books, &stubCatalog{err: model.ErrorCatalogUnavailable})
		_, err := service.Lookup(ctx, "9780979984006")
		assert.ErrorIs(err, model.ErrorCatalogUnavailable)
	})
}

func TestAdd(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	books, err := store.OpenBookStore(":memory:")
	require.NoError(t, err)
	defer books.Close()

	service := New(books, &stubCatalog{})

	t.Run("Create", func(t *testing.T) {
		book, err := service.Add(ctx, createBookParams("111"))
		assert.Nil(err)
		assert.NotEmpty(book.ID)

		stored, err := books.ByISBN("111")
		assert.Nil(err)
		assert.Equal(book.ID, stored.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := service.Add(ctx, createBookParams("111"))
		assert.ErrorIs(err, model.ErrorDuplicateISBN)
	})

	t.Run("Missing fields", func(t *testing.T) {
		params := createBookParams("222")
		params.Title = ""
		_, err := service.Add(ctx, params)
		assert.ErrorIs(err, model.ErrorMissingFields)
	})
}
