package middleware

import (
	"context"
	"net/http"

	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
	"github.com/meera/certportal/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// SessionCookie is the name of the login session cookie.
const SessionCookie = "portal_session"

// SessionAuth returns middleware that resolves the session cookie to a user
// and injects the user into the request context.
func SessionAuth(authService *core.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "not logged in")
				return
			}

			user, err := authService.GetSessionUser(r.Context(), cookie.Value)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "session expired or invalid")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the request context.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

// WithUser injects a user into the context. Used by tests.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
