package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ourshelves/bookswap/internal/model"
)

type BookStore interface {
	ByISBN(isbn string) (*model.Book, error)
	Insert(book *model.Book) error
}

type Catalog interface {
	Lookup(ctx context.Context, isbn string) (*model.BookInfo, error)
}

type service struct {
	books   BookStore
	catalog Catalog
}

func New(books BookStore, catalog Catalog) *service {
	return &service{
		books:   books,
		catalog: catalog,
	}
}

func (s *service) Lookup(ctx context.Context, isbn string) (*model.BookInfo, error) {
	if isbn == "" {
		return nil, model.ErrorMissingFields
	}
	return s.catalog.Lookup(ctx, isbn)
}

// Add inserts a book, leaving ISBN uniqueness to the store's unique
// index rather than a racy pre-check.
func (s *service) Add(ctx context.Context, params *model.CreateBookParams) (*model.Book, error) {
	if params.ISBN == "" || params.Title == "" || params.Author == "" || params.OwnerID == "" {
		return nil, model.ErrorMissingFields
	}

	book := &model.Book{
		ID:          model.CreateID(),
		CreatedAt:   time.Now().UTC(),
		ISBN:        params.ISBN,
		Title:       params.Title,
		Author:      params.Author,
		CoverArtURL: params.CoverArtURL,
		OwnerID:     params.OwnerID,
	}

	if err := s.books.Insert(book); err != nil {
		if errors.Is(err, model.ErrorDuplicateISBN) {
			return nil, err
		}
		return nil, fmt.Errorf("inserting book: %w", err)
	}

	return book, nil
}
