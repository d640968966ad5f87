package model

import "time"

type CreateBookParams struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CoverArtURL *string `json:"cover_art_url"`
	OwnerID     string  `json:"owner_id"`
}

type Book struct {
	ID          string    `db:"ID" json:"id"`
	CreatedAt   time.Time `db:"CreatedAt" json:"-"`
	ISBN        string    `db:"ISBN" json:"isbn"`
	Title       string    `db:"Title" json:"title"`
	Author      string    `db:"Author" json:"author"`
	CoverArtURL *string   `db:"CoverArtURL" json:"cover_art_url"`
	OwnerID     string    `db:"OwnerID" json:"owner_id"`
}

// BookInfo is a catalog lookup result, normalized from whatever the
// upstream catalog returns. It is never persisted as-is.
type BookInfo struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	CoverArtURL *string `json:"cover_art_url"`
}
