package api

import (
	"context"

	"github.com/ssolovyeva/tripkeeper/internal/client/models"
)

// SignInRequest is the payload for POST /api/v1/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
	Device   string `json:"device"`
}

// SignUpRequest is the payload for POST /api/v1/auth/signup.
type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Device    string `json:"device"`
}

// TripRequest is the payload for creating a trip.
type TripRequest struct {
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Notes       string `json:"notes,omitempty"`
}

// Client is the transport-agnostic API contract used by the auth session and
// the CLI. The concrete implementation is HTTPClient.
type Client interface {
	// SignIn authenticates with email and password; on success the access
	// token is written to the token store and the user projection returned.
	SignIn(ctx context.Context, req SignInRequest) (*models.User, error)

	// SignUp creates an account; response handling matches SignIn.
	SignUp(ctx context.Context, req SignUpRequest) (*models.User, error)

	// SignOut is best effort: it issues at most one network call and never
	// retries. Local state cleanup is the session's responsibility.
	SignOut(ctx context.Context) error

	// Refresh exchanges the ambient session cookie for a new access token.
	// It issues exactly one network call and never retries internally.
	Refresh(ctx context.Context) error

	// CurrentUser fetches the identity behind the current access token.
	CurrentUser(ctx context.Context) (*models.User, error)

	ListTrips(ctx context.Context) ([]models.Trip, error)
	CreateTrip(ctx context.Context, req TripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	// CreatePhotoUpload asks the server for a presigned PUT URL for a journal
	// photo on the given trip.
	CreatePhotoUpload(ctx context.Context, tripID string, contentType string) (*models.PhotoUpload, error)

	// PhotoDownloadURL asks the server for a presigned GET URL for a stored photo.
	PhotoDownloadURL(ctx context.Context, tripID string, key string) (string, error)
}
