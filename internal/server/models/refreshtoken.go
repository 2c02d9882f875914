package models

import "time"

// RefreshToken is a server-stored opaque token. The client only ever sees
// the Token string, delivered in an HTTP-only cookie.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
