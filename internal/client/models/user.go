// Package models contains client-side projections of API resources.
package models

// User is the read-mostly projection of the authenticated identity.
// It is owned by the auth session cache and invalidated whenever the
// access token changes.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Guest     bool   `json:"guest,omitempty"`
}
