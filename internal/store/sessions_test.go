package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourshelves/bookswap/internal/model"
)

func TestMemorySessionStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	sessions := NewMemorySessionStore(time.Hour)
	token := model.CreateID()

	t.Run("Unknown token", func(t *testing.T) {
		_, err := sessions.Get(ctx, token)
		assert.ErrorIs(err, model.ErrorSessionNotFound)
	})

	t.Run("Put and get", func(t *testing.T) {
		assert.Nil(sessions.Put(ctx, token, model.PendingMFASetup("user-1")))

		session, err := sessions.Get(ctx, token)
		assert.Nil(err)
		assert.Equal(model.SessionPendingMFASetup, session.State)
		assert.Equal("user-1", session.UserID)
	})

	t.Run("Replace marker", func(t *testing.T) {
		assert.Nil(sessions.Put(ctx, token, model.Authenticated("user-1")))

		session, err := sessions.Get(ctx, token)
		assert.Nil(err)
		assert.Equal(model.Authenticated("user-1"), session)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Nil(sessions.Delete(ctx, token))
		_, err := sessions.Get(ctx, token)
		assert.ErrorIs(err, model.ErrorSessionNotFound)
	})

	t.Run("Expiry", func(t *testing.T) {
		expiring := NewMemorySessionStore(time.Millisecond)
		assert.Nil(expiring.Put(ctx, token, model.Authenticated("user-1")))
		time.Sleep(5 * time.Millisecond)
		_, err := expiring.Get(ctx, token)
		assert.ErrorIs(err, model.ErrorSessionNotFound)
	})
}

func TestBuntSessionStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	sessions, err := NewBuntSessionStore(":memory:", time.Hour)
	require.NoError(t, err)
	defer sessions.Close()

	token := model.CreateID()

	t.Run("Unknown token", func(t *testing.T) {
		_, err := sessions.Get(ctx, token)
		assert.ErrorIs(err, model.ErrorSessionNotFound)
	})

	t.Run("Put and get", func(t *testing.T) {
		assert.Nil(sessions.Put(ctx, token, model.PendingMFALogin("user-2")))

		session, err := sessions.Get(ctx, token)
		assert.Nil(err)
		assert.Equal(model.PendingMFALogin("user-2"), session)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Nil(sessions.Delete(ctx, token))
		_, err := sessions.Get(ctx, token)
		assert.ErrorIs(err, model.ErrorSessionNotFound)

		// deleting again is not an error
		assert.Nil(sessions.Delete(ctx, token))
	})
}

func TestNewSessionStore(t *testing.T) {
	assert := assert.New(t)

	config := testBootConfig(t)

	t.Run("Memory backend", func(t *testing.T) {
		config.Sessions.Backend = "memory"
		sessions, err := NewSessionStore(config)
		assert.Nil(err)
		assert.NotNil(sessions)
	})

	t.Run("Buntdb backend", func(t *testing.T) {
		config.Sessions.Backend = "buntdb"
		sessions, err := NewSessionStore(config)
		assert.Nil(err)
		assert.Nil(sessions.Close())
	})

	t.Run("Unknown backend", func(t *testing.T) {
		config.Sessions.Backend = "papyrus"
		_, err := NewSessionStore(config)
		assert.NotNil(err)
	})
}
