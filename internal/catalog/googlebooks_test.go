package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ourshelves/bookswap/internal/model"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/books/v1/volumes", r.URL.Path)

		switch r.URL.Query().Get("q") {
		case "isbn:9780134190440":
			w.Write([]byte(`{"items":[{"volumeInfo":{
				"title":"The Go Programming Language",
				"authors":["Alan A. A. Donovan","Brian W. Kernighan"],
				"publisher":"Addison-Wesley",
				"imageLinks":{"thumbnail":"https://example.com/cover.jpg"}}}]}`))
		case "isbn:1111111111":
			w.Write([]byte(`{"items":[{"volumeInfo":{}}]}`))
		case "isbn:0000000000":
			w.Write([]byte(`{"totalItems":0}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	client := New(upstream.URL)

	t.Run("Normalizes a match", func(t *testing.T) {
		book, err := client.Lookup(ctx, "9780134190440")
		assert.Nil(err)
		assert.Equal("The Go Programming Language", book.Title)
		assert.Equal("Alan A. A. Donovan, Brian W. Kernighan", book.Author)
		assert.Equal("Addison-Wesley", book.Publisher)
		assert.NotNil(book.CoverArtURL)
		assert.Equal("https://example.com/cover.jpg", *book.CoverArtURL)
	})

	t.Run("Defaults for sparse volumes", func(t *testing.T) {
		book, err := client.Lookup(ctx, "1111111111")
		assert.Nil(err)
		assert.Equal("No Title Found", book.Title)
		assert.Equal("No Author Found", book.Author)
		assert.Equal("No Publisher Found", book.Publisher)
		assert.Nil(book.CoverArtURL)
	})

	t.Run("No match", func(t *testing.T) {
		_, err := client.Lookup(ctx, "0000000000")
		assert.ErrorIs(err, model.ErrorBookNotFound)
	})

	t.Run("Upstream error", func(t *testing.T) {
		_, err := client.Lookup(ctx, "5555555555")
		assert.ErrorIs(err, model.ErrorCatalogUnavailable)
	})

	t.Run("Unreachable upstream", func(t *testing.T) {
		dead := New("http://127.0.0.1:1")
		_, err := dead.Lookup(ctx, "9780134190440")
		assert.ErrorIs(err, model.ErrorCatalogUnavailable)
	})
}
