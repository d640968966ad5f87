package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/model"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(config *boot.Config) (*UserStore, error) {
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbName := path.Join(config.DataDir, "users.db")
	return OpenUserStore("file:" + dbName)
}

// OpenUserStore connects to the given sqlite DSN directly. Tests use
// this with ":memory:".
func OpenUserStore(dsn string) (*UserStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows one writer; this also keeps :memory: databases on
	// a single connection
	db.SetMaxOpenConns(1)

	store := &UserStore{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (s *UserStore) Close() error {
	return s.db.Close()
}

func (s *UserStore) createTables() error {
	_, err := s.db.Exec(`create table if not exists user(
		ID                    text not null primary key,
		CreatedAt             DATETIME not null,
		Email                 text not null unique,
		PasswordHash          text not null,
		Latitude              real not null,
		Longitude             real not null,
		Geohash               text not null,
		AverageRating         real not null default 0.0,
		CompletedTransactions integer not null default 0,
		MFASecret             text null,
		MFAEnabled            tinyint not null default 0
	)`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}
	return nil
}

func (s *UserStore) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from user where Email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}

func (s *UserStore) ByID(id string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from user where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user by id: %w", err)
	}
	return user, nil
}

// Insert relies on the unique index for email uniqueness. There is no
// prior existence check; a racing duplicate surfaces here as
// ErrorDuplicateEmail.
func (s *UserStore) Insert(user *model.User) error {
	res, err := s.db.NamedExec(`insert into user
		(ID, CreatedAt, Email, PasswordHash, Latitude, Longitude, Geohash, AverageRating, CompletedTransactions, MFASecret, MFAEnabled)
		values(:ID, :CreatedAt, :Email, :PasswordHash, :Latitude, :Longitude, :Geohash, :AverageRating, :CompletedTransactions, :MFASecret, :MFAEnabled)`, user)

	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrorDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

// Save persists the mutable account fields. The geohash is written
// as-is and never recomputed here.
func (s *UserStore) Save(user *model.User) error {
	res, err := s.db.NamedExec(`update user set
		PasswordHash = :PasswordHash,
		AverageRating = :AverageRating,
		CompletedTransactions = :CompletedTransactions,
		MFASecret = :MFASecret,
		MFAEnabled = :MFAEnabled
		where ID = :ID`, user)

	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return model.ErrorUserNotFound
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
