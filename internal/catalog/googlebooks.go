// Package catalog looks up book metadata on the Google Books volumes
// API and normalizes it into model.BookInfo.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ourshelves/bookswap/internal/model"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			Publisher  string   `json:"publisher"`
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *Client) Lookup(ctx context.Context, isbn string) (*model.BookInfo, error) {
	lookupURL := fmt.Sprintf("%s/books/v1/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrorCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", model.ErrorCatalogUnavailable, resp.StatusCode)
	}

	volumes := volumesResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %s", model.ErrorCatalogUnavailable, err)
	}

	if len(volumes.Items) == 0 {
		return nil, model.ErrorBookNotFound
	}

	info := volumes.Items[0].VolumeInfo

	book := &model.BookInfo{
		Title:     info.Title,
		Author:    strings.Join(info.Authors, ", "),
		Publisher: info.Publisher,
	}
	if book.Title == "" {
		book.Title = "No Title Found"
	}
	if book.Author == "" {
		book.Author = "No Author Found"
	}
	if book.Publisher == "" {
		book.Publisher = "No Publisher Found"
	}
	if info.ImageLinks.Thumbnail != "" {
		book.CoverArtURL = &info.ImageLinks.Thumbnail
	}

	return book, nil
}
