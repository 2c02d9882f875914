// Package common contains shared constants and sentinel errors used across
// TripKeeper components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer
// access token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix prefixes the access token inside the Authorization header.
const BearerSchemePrefix = "Bearer "

// RefreshCookieName is the name of the HTTP-only cookie holding the refresh
// token. Client code never reads or parses it; the cookie jar carries it
// opaquely to the refresh endpoint.
const RefreshCookieName = "tk_refresh"
