// Package photos declares the server-side repository contract for trip photo
// metadata. Photo bytes live in object storage, only keys are stored here.
package photos

import (
	"context"

	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	GetByID(ctx context.Context, id string, tripID string) (*models.Photo, error)
	ListByTrip(ctx context.Context, tripID string) ([]*models.Photo, error)
}
