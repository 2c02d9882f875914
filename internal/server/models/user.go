package models

import "time"

// User is the persistent account record. PasswordHash holds a bcrypt hash
// and never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}
