package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/ourshelves/bookswap/internal/model"
)

const sessionKeyPrefix = "session:"

type buntSessionStore struct {
	db  *buntdb.DB
	ttl time.Duration
}

// NewBuntSessionStore opens a buntdb-backed session store. Pass
// ":memory:" to keep sessions off disk.
func NewBuntSessionStore(dbName string, ttl time.Duration) (*buntSessionStore, error) {
	db, err := buntdb.Open(dbName)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	return &buntSessionStore{db, ttl}, nil
}

func (s *buntSessionStore) Get(ctx context.Context, token string) (model.Session, error) {
	session := model.Session{}
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(sessionKeyPrefix + token)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(v), &session)
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return model.Session{}, model.ErrorSessionNotFound
		}
		return model.Session{}, fmt.Errorf("fetching session: %w", err)
	}
	return session, nil
}

func (s *buntSessionStore) Put(ctx context.Context, token string, session model.Session) error {
	bs, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(sessionKeyPrefix+token, string(bs), &buntdb.SetOptions{
			Expires: true,
			TTL:     s.ttl,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (s *buntSessionStore) Delete(ctx context.Context, token string) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(sessionKeyPrefix + token)
		return err
	})
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *buntSessionStore) Close() error {
	return s.db.Close()
}
