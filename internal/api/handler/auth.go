package handler

import (
	"net/http"
	"time"

	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/api/request"
	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
	"github.com/meera/certportal/internal/model"
)

type Auth struct {
	svc          *core.AuthService
	users        *core.UserService
	cookieSecure bool
}

func NewAuth(svc *core.AuthService, users *core.UserService, cookieSecure bool) *Auth {
	return &Auth{svc: svc, users: users, cookieSecure: cookieSecure}
}

type registerRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Mobile     string `json:"mobile" validate:"required,mobile"`
	NationalID string `json:"nationalId" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

// Register creates a new citizen account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), core.RegisterParams{
		Username:   req.Username,
		Password:   req.Password,
		FullName:   req.FullName,
		Email:      req.Email,
		Mobile:     req.Mobile,
		NationalID: req.NationalID,
		Address:    req.Address,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user and opens a cookie-backed session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, session, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	response.WriteJSON(w, http.StatusOK, user)
}

// Logout deletes the caller's session. Safe to call without one.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(mw.SessionCookie); err == nil {
		if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile, read fresh from the database.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), mw.GetUser(r.Context()).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

func (h *Auth) setSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Auth) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
