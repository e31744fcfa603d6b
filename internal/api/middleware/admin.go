package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/meera/certportal/internal/api/response"
)

// AdminAPIKey returns middleware that guards administrative endpoints with a
// static API key carried in the X-API-Key header.
func AdminAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				response.WriteError(w, http.StatusForbidden, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
