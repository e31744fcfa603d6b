package handler

import (
	"errors"
	"net/http"

	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
)

// writeServiceError maps service-layer sentinel errors to HTTP statuses.
// Unknown errors become a generic 500 so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUsernameTaken):
		response.WriteError(w, http.StatusBadRequest, "username already taken")
	case errors.Is(err, core.ErrInvalidCredentials):
		response.WriteError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, core.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, core.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrConflict):
		response.WriteError(w, http.StatusConflict, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
