package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withUser injects an authenticated user into the request context, the way
// the session middleware would.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(mw.WithUser(r.Context(), user))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

func testUser() *model.User {
	return &model.User{
		ID:        "test-user-1",
		Username:  "asha",
		FullName:  "Asha Devi",
		Email:     "asha@example.com",
		Mobile:    "9876543210",
		CreatedAt: time.Now(),
	}
}
