package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
)

// signUpRequest mirrors the client payload for POST /api/v1/auth/signup.
type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Device    string `json:"device"`
}

// signInRequest mirrors the client payload for POST /api/v1/auth/signin.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
	Device   string `json:"device"`
}

// userResponse is the public projection of a user record.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// authResponse is returned by sign-up and sign-in. The refresh token is not
// here: it travels only in the HTTP-only cookie.
type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// refreshResponse is returned by POST /api/v1/auth/refresh.
type refreshResponse struct {
	Token string `json:"token"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// setRefreshCookie installs the rotated refresh token. persistent controls
// whether the cookie survives the browser session.
func (s *Server) setRefreshCookie(w http.ResponseWriter, token string, persistent bool) {
	cookie := &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	if persistent {
		cookie.MaxAge = int(s.refreshTokenValidity / time.Second)
	}
	http.SetCookie(w, cookie)
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	user, pair, err := s.users.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		s.logger.Error(r.Context(), "sign-up failed", "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", req.Email, "device", req.Device)
	s.setRefreshCookie(w, pair.RefreshToken, true)
	writeJSON(w, http.StatusOK, authResponse{Token: pair.AccessToken, User: toUserResponse(user)})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	user, pair, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "Signed in", "email", req.Email, "device", req.Device)
	s.setRefreshCookie(w, pair.RefreshToken, req.Remember)
	writeJSON(w, http.StatusOK, authResponse{Token: pair.AccessToken, User: toUserResponse(user)})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(common.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		s.clearRefreshCookie(w)
		writeError(w, err)
		return
	}

	s.setRefreshCookie(w, pair.RefreshToken, true)
	writeJSON(w, http.StatusOK, refreshResponse{Token: pair.AccessToken})
}

// handleSignOut revokes the cookie-borne refresh token. It succeeds even when
// the cookie is already gone so clients can always converge on signed-out.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(common.RefreshCookieName); err == nil && cookie.Value != "" {
		if err := s.users.SignOut(r.Context(), cookie.Value); err != nil {
			s.logger.Error(r.Context(), "sign-out failed", "error", err.Error())
		}
	}

	s.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
