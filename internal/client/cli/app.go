package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ssolovyeva/tripkeeper/internal/client/api"
	"github.com/ssolovyeva/tripkeeper/internal/client/auth"
	"github.com/ssolovyeva/tripkeeper/internal/client/config"
	"github.com/ssolovyeva/tripkeeper/internal/client/models"
	"github.com/ssolovyeva/tripkeeper/internal/client/session"
	"github.com/ssolovyeva/tripkeeper/internal/filex"
)

// stateDirName is where the client keeps local dev state, relative to the
// working directory.
const stateDirName = ".tripkeeper"

// sessionIface is the slice of the auth session the CLI commands need.
// The real *session.Session satisfies it; tests provide a stub.
type sessionIface interface {
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, email, password string, remember bool) error
	Register(ctx context.Context, email, password, firstName, lastName string) error
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*models.User, error)
	Status() session.Status
	User() *models.User
}

// tripAPI is the slice of the API client the trip commands need.
type tripAPI interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	CreateTrip(ctx context.Context, req api.TripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	CreatePhotoUpload(ctx context.Context, tripID string, contentType string) (*models.PhotoUpload, error)
	PhotoDownloadURL(ctx context.Context, tripID string, key string) (string, error)
}

// App wires the session and the API client behind the interactive REPL.
type App struct {
	config  *config.Config
	session sessionIface
	trips   tripAPI
	reader  *bufio.Reader
}

// NewApp builds the CLI application: a token store (file-backed only when
// the dev persistence flag is set), the HTTP API client sharing it, and the
// auth session with a per-run device identifier.
func NewApp(c *config.Config) (*App, error) {
	var tokens auth.TokenStore
	if c.DevTokenFile != "" {
		path := c.DevTokenFile
		// a bare filename lands in a state subdir next to the binary
		if filepath.Base(path) == path {
			dir, err := filex.EnsureSubDir(stateDirName)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, path)
		}
		tokens = auth.NewFileStore(path)
	} else {
		tokens = auth.NewMemoryStore()
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, tokens)
	if err != nil {
		return nil, err
	}

	sess := session.New(apiClient, tokens, uuid.NewString())

	return &App{
		config:  c,
		session: sess,
		trips:   apiClient,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run bootstraps the session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	bctx, cancel := a.withTimeout(ctx)
	a.session.Bootstrap(bctx)
	cancel()

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

// withTimeout derives the per-request deadline from config.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
