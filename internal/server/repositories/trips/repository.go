// Package trips declares the server-side repository contract for trip records.
package trips

import (
	"context"

	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Trip, error)
	GetByID(ctx context.Context, id string, userID string) (*models.Trip, error)

	// Delete removes a trip owned by userID. Returns a not-found error when
	// no such trip exists for that user.
	Delete(ctx context.Context, id string, userID string) error
}
