// Package users declares the server-side repository contract for account
// records.
package users

import (
	"context"

	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
