package store

import (
	"context"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/model"
)

// SessionStore holds per-client session state keyed by an opaque token.
// Get returns model.ErrorSessionNotFound for unknown or expired tokens;
// callers treat that as an anonymous session.
type SessionStore interface {
	Get(ctx context.Context, token string) (model.Session, error)
	Put(ctx context.Context, token string, session model.Session) error
	Delete(ctx context.Context, token string) error
	Close() error
}

func NewSessionStore(config *boot.Config) (SessionStore, error) {
	switch config.Sessions.Backend {
	case "memory":
		return NewMemorySessionStore(config.Sessions.TTL), nil
	case "buntdb":
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbName := path.Join(config.DataDir, "sessions.db")
		return NewBuntSessionStore(dbName, config.Sessions.TTL)
	case "redis":
		return NewRedisSessionStore(config.Sessions.RedisAddr, config.Sessions.RedisPassword, config.Sessions.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", config.Sessions.Backend)
	}
}

type memorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	session   model.Session
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *memorySessionStore {
	return &memorySessionStore{
		ttl:      ttl,
		sessions: map[string]memorySession{},
	}
}

func (s *memorySessionStore) Get(ctx context.Context, token string) (model.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return model.Session{}, model.ErrorSessionNotFound
	}
	return entry.session, nil
}

func (s *memorySessionStore) Put(ctx context.Context, token string, session model.Session) error {
	s.mu.Lock()
	s.sessions[token] = memorySession{session, time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Close() error {
	return nil
}
