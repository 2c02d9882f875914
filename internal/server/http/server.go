// Package http exposes the TripKeeper REST API over chi. It owns the wire
// format: JSON bodies, bearer access tokens, and the HTTP-only refresh cookie.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ssolovyeva/tripkeeper/internal/logging"
	"github.com/ssolovyeva/tripkeeper/internal/server/config"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
	"github.com/ssolovyeva/tripkeeper/internal/server/services"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	SignUp(ctx context.Context, email, password, firstName, lastName string) (*models.User, *services.TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// TripService is the slice of the trip service the handlers need.
type TripService interface {
	List(ctx context.Context, userID string) ([]*models.Trip, error)
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	Delete(ctx context.Context, id string, userID string) error
	CreatePhotoUpload(ctx context.Context, tripID string, userID string, contentType string) (*models.Photo, string, error)
	PhotoDownloadURL(ctx context.Context, tripID string, userID string, photoID string) (string, error)
}

type Server struct {
	address              string
	logger               logging.Logger
	users                UserService
	trips                TripService
	jwtSecret            []byte
	refreshTokenValidity time.Duration
	cookieSecure         bool
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, ts TripService) *Server {
	return &Server{
		address:              cfg.EndpointAddrHTTP,
		logger:               l.With("module", "http_server"),
		users:                us,
		trips:                ts,
		jwtSecret:            []byte(cfg.SecretKey),
		refreshTokenValidity: cfg.RefreshTokenValidityDuration,
		cookieSecure:         cfg.CookieSecure,
	}
}

// Router wires all API routes. Exposed so tests can drive handlers through
// httptest without binding a socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignUp)
			r.Post("/signin", s.handleSignIn)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/signout", s.handleSignOut)

			r.Group(func(r chi.Router) {
				r.Use(s.accessTokenMiddleware)
				r.Get("/user", s.handleCurrentUser)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(s.accessTokenMiddleware)
			r.Get("/", s.handleListTrips)
			r.Post("/", s.handleCreateTrip)
			r.Delete("/{tripID}", s.handleDeleteTrip)
			r.Post("/{tripID}/photos", s.handleCreatePhotoUpload)
			r.Get("/{tripID}/photos/{photoID}", s.handlePhotoDownloadURL)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
