package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ssolovyeva/tripkeeper/internal/client/auth"
	"github.com/ssolovyeva/tripkeeper/internal/client/models"
	"github.com/ssolovyeva/tripkeeper/internal/common"
)

// HTTPClient talks to the TripKeeper REST API. It attaches the bearer token
// from the injected TokenStore, sends every request through a cookie jar so
// the HTTP-only refresh cookie flows to the refresh endpoint, and recovers
// from an expired access token with a single refresh-and-replay pass.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenStore

	// concurrent 401s collapse into one in-flight refresh
	refreshGroup singleflight.Group
}

// NewHTTPClient builds a client for the API at baseURL. The token store is
// injected so tests and the auth session share the same credential state.
func NewHTTPClient(baseURL string, tokens auth.TokenStore) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		tokens:  tokens,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// apiResponse is the fully-read result of one network attempt.
type apiResponse struct {
	status int
	body   []byte
}

// refreshPolicy decides whether a request attempt may be replayed after a
// token refresh. Only the first attempt of a logical call is eligible, and
// only on a 401, which caps every call at two attempts of the original
// request and at most one refresh.
func refreshPolicy(attempt int, status int) bool {
	return attempt == 0 && status == http.StatusUnauthorized
}

// send issues exactly one network attempt. The body is rebuilt from the raw
// bytes on every attempt so a replay is byte-identical to the original.
func (c *HTTPClient) send(ctx context.Context, method, path string, body []byte, contentType string, withAuth bool) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if withAuth {
		if t := c.tokens.Get(); t != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerSchemePrefix+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &apiResponse{status: resp.StatusCode, body: b}, nil
}

// do wraps one logical protected call: attach token, send, and on a 401
// refresh once and replay the identical request once. A failed refresh
// returns the original 401 unmodified; it never loops.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, contentType string) (*apiResponse, error) {
	resp, err := c.send(ctx, method, path, body, contentType, true)
	if err != nil {
		return nil, err
	}

	if !refreshPolicy(0, resp.status) {
		return resp, nil
	}

	if err := c.refreshShared(ctx); err != nil {
		return resp, nil
	}

	return c.send(ctx, method, path, body, contentType, true)
}

// refreshShared collapses concurrent refresh attempts into a single
// in-flight call; every waiter observes the same outcome.
func (c *HTTPClient) refreshShared(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.Refresh(ctx)
	})
	return err
}

// Refresh exchanges the ambient session cookie for a new access token.
// It issues exactly one network call; retry policy lives with the callers.
// On success the new token is written to the store. When the server rejects
// the session, the stored token is cleared: it is no longer usable.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, "", false)
	if err != nil {
		return err
	}

	if resp.status != http.StatusOK {
		c.tokens.Clear()
		return ErrUnauthorized
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil || payload.Token == "" {
		c.tokens.Clear()
		return fmt.Errorf("%w: malformed refresh payload", ErrUnauthorized)
	}

	c.tokens.Set(payload.Token)
	return nil
}

// authPayload is the response shape shared by sign-in and sign-up.
type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *HTTPClient) signInOrUp(ctx context.Context, path string, req any) (*models.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	// credential submission is never replayed: its 401 means bad credentials
	resp, err := c.send(ctx, http.MethodPost, path, body, "application/json", false)
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(resp); err != nil {
		return nil, err
	}

	var payload authPayload
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return nil, fmt.Errorf("malformed auth payload: %w", err)
	}

	c.tokens.Set(payload.Token)
	return &payload.User, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, req SignInRequest) (*models.User, error) {
	return c.signInOrUp(ctx, "/api/v1/auth/signin", req)
}

func (c *HTTPClient) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	return c.signInOrUp(ctx, "/api/v1/auth/signup", req)
}

// SignOut is best effort: one attempt with the bearer header if available,
// no refresh and no retry. Callers clear local state regardless of outcome.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/v1/auth/signout", nil, "", true)
	if err != nil {
		return err
	}
	return c.mapStatus(resp)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/auth/user", nil, "")
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(resp); err != nil {
		return nil, err
	}

	user := &models.User{}
	if err := json.Unmarshal(resp.body, user); err != nil {
		return nil, fmt.Errorf("malformed user payload: %w", err)
	}
	return user, nil
}

func (c *HTTPClient) ListTrips(ctx context.Context) ([]models.Trip, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/trips", nil, "")
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(resp); err != nil {
		return nil, err
	}

	var trips []models.Trip
	if err := json.Unmarshal(resp.body, &trips); err != nil {
		return nil, fmt.Errorf("malformed trips payload: %w", err)
	}
	return trips, nil
}

func (c *HTTPClient) CreateTrip(ctx context.Context, req TripRequest) (*models.Trip, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/trips", body, "application/json")
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(resp); err != nil {
		return nil, err
	}

	trip := &models.Trip{}
	if err := json.Unmarshal(resp.body, trip); err != nil {
		return nil, fmt.Errorf("malformed trip payload: %w", err)
	}
	return trip, nil
}

func (c *HTTPClient) DeleteTrip(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/trips/"+id, nil, "")
	if err != nil {
		return err
	}
	return c.mapStatus(resp)
}

func (c *HTTPClient) CreatePhotoUpload(ctx context.Context, tripID string, contentType string) (*models.PhotoUpload, error) {
	body, err := json.Marshal(map[string]string{"contentType": contentType})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/trips/"+tripID+"/photos", body, "application/json")
	if err != nil {
		return nil, err
	}
	if err := c.mapStatus(resp); err != nil {
		return nil, err
	}

	upload := &models.PhotoUpload{}
	if err := json.Unmarshal(resp.body, upload); err != nil {
		return nil, fmt.Errorf("malformed photo upload payload: %w", err)
	}
	return upload, nil
}

func (c *HTTPClient) PhotoDownloadURL(ctx context.Context, tripID string, key string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/trips/"+tripID+"/photos/"+key, nil, "")
	if err != nil {
		return "", err
	}
	if err := c.mapStatus(resp); err != nil {
		return "", err
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return "", fmt.Errorf("malformed photo url payload: %w", err)
	}
	return payload.URL, nil
}

// mapStatus converts a final response into the client error taxonomy.
// A nil return means 2xx.
func (c *HTTPClient) mapStatus(resp *apiResponse) error {
	switch {
	case resp.status >= 200 && resp.status < 300:
		return nil
	case resp.status == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, serverMessage(resp.body))
	case resp.status == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.status >= 500:
		return ErrUnavailable
	default:
		return &StatusError{Code: resp.status, Body: resp.body}
	}
}

// serverMessage extracts the human-readable message from an error payload,
// falling back to the raw body.
func serverMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(body)
}
