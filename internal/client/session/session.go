// Package session implements the stateful authentication façade the rest of
// the client goes through: bootstrap, login, register, logout, and the cached
// current-user projection.
package session

import (
	"context"
	"sync"

	"github.com/ssolovyeva/tripkeeper/internal/client/api"
	"github.com/ssolovyeva/tripkeeper/internal/client/auth"
	"github.com/ssolovyeva/tripkeeper/internal/client/models"
)

// Status is the externally visible authentication state.
type Status string

const (
	StatusUninitialized   Status = "uninitialized"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// API is the slice of the api.Client contract the session depends on.
type API interface {
	SignIn(ctx context.Context, req api.SignInRequest) (*models.User, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (*models.User, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Session composes the token store and the API client into the stateful
// authentication façade. It owns the cached user projection; the projection
// is invalidated whenever the access token changes.
//
// State transitions:
//
//	uninitialized   -> loading          Bootstrap started
//	loading         -> authenticated    silent refresh + user fetch succeeded
//	loading         -> unauthenticated  no session to resume
//	authenticated   -> unauthenticated  Logout, or a request's retried refresh also failed
//	unauthenticated -> authenticated    Login/Register succeeded
type Session struct {
	api    API
	tokens auth.TokenStore
	device string

	mu     sync.Mutex
	status Status
	user   *models.User
}

// New builds a session in the uninitialized state. Collaborators are
// injected; the session never reaches for ambient globals. The device
// identifier accompanies credential submissions so the server can tell
// concurrent sessions apart.
func New(a API, tokens auth.TokenStore, device string) *Session {
	return &Session{api: a, tokens: tokens, device: device, status: StatusUninitialized}
}

// Bootstrap runs once at application start, before any protected work. When
// no token is already present, it attempts one silent refresh relying on the
// cookie jar. It always completes: a failed or absent refresh simply leaves
// the session unauthenticated.
func (s *Session) Bootstrap(ctx context.Context) {
	s.setStatus(StatusLoading)

	if s.tokens.Get() == "" {
		// silent resume via the refresh cookie; failure is not an error here
		_ = s.api.Refresh(ctx)
	}

	if s.tokens.Get() == "" {
		s.become(StatusUnauthenticated, nil)
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.tokens.Clear()
		s.become(StatusUnauthenticated, nil)
		return
	}
	s.become(StatusAuthenticated, user)
}

// Login authenticates with email and password. On success the token store
// holds the new access token and the cached user projection is replaced.
func (s *Session) Login(ctx context.Context, email, password string, remember bool) error {
	user, err := s.api.SignIn(ctx, api.SignInRequest{
		Email:    email,
		Password: password,
		Remember: remember,
		Device:   s.device,
	})
	if err != nil {
		return err
	}
	s.become(StatusAuthenticated, user)
	return nil
}

// Register creates a new account and signs it in.
func (s *Session) Register(ctx context.Context, email, password, firstName, lastName string) error {
	user, err := s.api.SignUp(ctx, api.SignUpRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Device:    s.device,
	})
	if err != nil {
		return err
	}
	s.become(StatusAuthenticated, user)
	return nil
}

// Logout tears the session down. The server sign-out is best effort: local
// state is cleared even when the network call fails. Calling Logout while
// already unauthenticated resets state without issuing a network call.
func (s *Session) Logout(ctx context.Context) {
	if s.tokens.Get() != "" {
		_ = s.api.SignOut(ctx)
	}
	s.tokens.Clear()
	s.become(StatusUnauthenticated, nil)
}

// CurrentUser returns the cached projection, fetching it when absent. A
// fetch that fails even after the retry-via-refresh pass tears the session
// down.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	cached := s.user
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.tokens.Clear()
		s.become(StatusUnauthenticated, nil)
		return nil, err
	}
	s.become(StatusAuthenticated, user)
	return user, nil
}

// Status reports the current state of the session machine.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns the cached user projection without a network call.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// become updates status and user projection together, so no reader observes
// a new token paired with a stale user.
func (s *Session) become(st Status, user *models.User) {
	s.mu.Lock()
	s.status = st
	s.user = user
	s.mu.Unlock()
}
