package models

import "time"

// Trip is a planned journey with its journal metadata.
type Trip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PhotoUpload describes a presigned upload slot for a journal photo.
type PhotoUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
