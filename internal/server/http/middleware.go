package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	"github.com/ssolovyeva/tripkeeper/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// accessTokenMiddleware verifies the bearer access token and stores the
// caller's user id in the request context.
func (s *Server) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerSchemePrefix) {
			writeError(w, common.ErrorUnauthorized)
			return
		}
		token := strings.TrimPrefix(header, common.BearerSchemePrefix)

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user id placed by
// accessTokenMiddleware. The empty string means no authenticated caller.
func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
