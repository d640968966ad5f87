package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/model"
)

func testBootConfig(t *testing.T) *boot.Config {
	t.Helper()
	config := &boot.Config{DataDir: t.TempDir()}
	config.Sessions.TTL = time.Hour
	return config
}

func testUser(email string) *model.User {
	return &model.User{
		ID:           model.CreateID(),
		CreatedAt:    time.Now().UTC(),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		Geohash:      "dr5regw",
	}
}

func TestUserStore(t *testing.T) {
	assert := assert.New(t)

	users, err := OpenUserStore(":memory:")
	require.NoError(t, err)
	defer users.Close()

	user := testUser("store@example.com")

	t.Run("Insert and fetch", func(t *testing.T) {
		assert.Nil(users.Insert(user))

		byEmail, err := users.ByEmail("store@example.com")
		assert.Nil(err)
		assert.Equal(user.ID, byEmail.ID)

		byID, err := users.ByID(user.ID)
		assert.Nil(err)
		assert.Equal("store@example.com", byID.Email)
		assert.Nil(byID.MFASecret)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		err := users.Insert(testUser("store@example.com"))
		assert.ErrorIs(err, model.ErrorDuplicateEmail)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := users.ByEmail("nobody@example.com")
		assert.ErrorIs(err, model.ErrorUserNotFound)

		_, err = users.ByID("no-such-id")
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})

	t.Run("Save", func(t *testing.T) {
		secret := "JBSWY3DPEHPK3PXP"
		user.MFASecret = &secret
		user.MFAEnabled = true
		assert.Nil(users.Save(user))

		stored, err := users.ByID(user.ID)
		assert.Nil(err)
		assert.NotNil(stored.MFASecret)
		assert.Equal(secret, *stored.MFASecret)
		assert.True(stored.MFAEnabled)
	})

	t.Run("Save unknown user", func(t *testing.T) {
		err := users.Save(testUser("ghost@example.com"))
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})
}

func TestBookStore(t *testing.T) {
	assert := assert.New(t)

	books, err := OpenBookStore(":memory:")
	require.NoError(t, err)
	defer books.Close()

	cover := "https://example.com/cover.jpg"
	book := &model.Book{
		ID:          model.CreateID(),
		CreatedAt:   time.Now().UTC(),
		ISBN:        "9780134190440",
		Title:       "The Go Programming Language",
		Author:      "Alan A. A. Donovan, Brian W. Kernighan",
		CoverArtURL: &cover,
		OwnerID:     model.CreateID(),
	}

	t.Run("Insert and fetch", func(t *testing.T) {
		assert.Nil(books.Insert(book))

		stored, err := books.ByISBN("9780134190440")
		assert.Nil(err)
		assert.Equal(book.ID, stored.ID)
		assert.NotNil(stored.CoverArtURL)
		assert.Equal(cover, *stored.CoverArtURL)
	})

	t.Run("Duplicate ISBN", func(t *testing.T) {
		dup := *book
		dup.ID = model.CreateID()
		err := books.Insert(&dup)
		assert.ErrorIs(err, model.ErrorDuplicateISBN)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := books.ByISBN("0000000000")
		assert.ErrorIs(err, model.ErrorBookNotFound)
	})
}
