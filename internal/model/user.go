package model

import "time"

type CreateUserParams struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type User struct {
	ID                    string    `db:"ID" json:"id"`
	CreatedAt             time.Time `db:"CreatedAt" json:"-"`
	Email                 string    `db:"Email" json:"email"`
	PasswordHash          string    `db:"PasswordHash" json:"-"`
	Latitude              float64   `db:"Latitude" json:"latitude"`
	Longitude             float64   `db:"Longitude" json:"longitude"`
	Geohash               string    `db:"Geohash" json:"geohash"`
	AverageRating         float64   `db:"AverageRating" json:"average_rating"`
	CompletedTransactions int       `db:"CompletedTransactions" json:"completed_transactions"`
	MFASecret             *string   `db:"MFASecret" json:"-"`
	MFAEnabled            bool      `db:"MFAEnabled" json:"mfa_enabled"`
}
