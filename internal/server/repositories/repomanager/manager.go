package repomanager

import (
	"context"
	"database/sql"

	"github.com/ssolovyeva/tripkeeper/internal/dbx"
	"github.com/ssolovyeva/tripkeeper/internal/server/repositories/photos"
	"github.com/ssolovyeva/tripkeeper/internal/server/repositories/refreshtokens"
	"github.com/ssolovyeva/tripkeeper/internal/server/repositories/trips"
	"github.com/ssolovyeva/tripkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Trips(db dbx.DBTX) trips.Repository
	Photos(db dbx.DBTX) photos.Repository
}
