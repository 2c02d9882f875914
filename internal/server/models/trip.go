package models

import "time"

// Trip is a planned journey belonging to a single user.
type Trip struct {
	ID          string
	UserID      string
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	CreatedAt   time.Time
}

// Photo references an object in S3-compatible storage attached to a trip.
// The server stores only the storage key, never the bytes.
type Photo struct {
	ID          string
	TripID      string
	StorageKey  string
	ContentType string
	CreatedAt   time.Time
}
