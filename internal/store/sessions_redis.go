package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ourshelves/bookswap/internal/model"
)

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(addr, password string, ttl time.Duration) *redisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &redisSessionStore{client, ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (model.Session, error) {
	v, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Session{}, model.ErrorSessionNotFound
		}
		return model.Session{}, fmt.Errorf("fetching session: %w", err)
	}

	session := model.Session{}
	if err := json.Unmarshal([]byte(v), &session); err != nil {
		return model.Session{}, fmt.Errorf("decoding session: %w", err)
	}
	return session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, token string, session model.Session) error {
	bs, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+token, string(bs), s.ttl).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Close() error {
	return s.client.Close()
}
