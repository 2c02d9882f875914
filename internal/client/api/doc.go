// Package api contains the client-side building blocks for talking to the
// TripKeeper backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     SignIn/SignUp/SignOut/Refresh/CurrentUser plus trip CRUD and journal
//     photo presigned-URL helpers.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer access token from an injected token store, carries the HTTP-only
//     refresh cookie in a jar, transparently refreshes an expired token with
//     a single-flight guard, replays the failed request exactly once, and
//     maps response statuses to sentinel errors.
//
// # Retry-once policy
//
// A protected call makes at most two attempts of the original request and at
// most one refresh. When the refresh itself fails, the original 401 outcome
// is surfaced unmodified so callers can tear the session down. Credential
// submission (sign-in/sign-up) and sign-out are never replayed.
//
// # Error Handling
//
// Final failures are exposed as sentinel errors that callers match with
// errors.Is: ErrUnauthorized, ErrValidation, ErrRateLimited, ErrUnavailable.
// Statuses outside the taxonomy surface as *StatusError.
package api
