package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/model"
)

type BookStore struct {
	db *sqlx.DB
}

func NewBookStore(config *boot.Config) (*BookStore, error) {
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbName := path.Join(config.DataDir, "books.db")
	return OpenBookStore("file:" + dbName)
}

func OpenBookStore(dsn string) (*BookStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &BookStore{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (s *BookStore) Close() error {
	return s.db.Close()
}

func (s *BookStore) createTables() error {
	_, err := s.db.Exec(`create table if not exists book(
		ID          text not null primary key,
		CreatedAt   DATETIME not null,
		ISBN        text not null unique,
		Title       text not null,
		Author      text not null,
		CoverArtURL text null,
		OwnerID     text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating book table: %w", err)
	}
	return nil
}

func (s *BookStore) ByISBN(isbn string) (*model.Book, error) {
	book := &model.Book{}
	err := s.db.Get(book, `select * from book where ISBN = ?`, isbn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorBookNotFound
		}
		return nil, fmt.Errorf("fetching book by isbn: %w", err)
	}
	return book, nil
}

// Insert relies on the unique index for ISBN uniqueness, mirroring
// UserStore.Insert.
func (s *BookStore) Insert(book *model.Book) error {
	res, err := s.db.NamedExec(`insert into book
		(ID, CreatedAt, ISBN, Title, Author, CoverArtURL, OwnerID)
		values(:ID, :CreatedAt, :ISBN, :Title, :Author, :CoverArtURL, :OwnerID)`, book)

	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrorDuplicateISBN
		}
		return fmt.Errorf("inserting book: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}
