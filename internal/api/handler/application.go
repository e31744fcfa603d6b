package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/api/request"
	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
)

type Application struct {
	svc *core.ApplicationService
}

func NewApplication(svc *core.ApplicationService) *Application {
	return &Application{svc: svc}
}

// Submit creates a new certificate application for the authenticated user.
// The application is returned in PENDING; document verification runs in the
// background.
func (h *Application) Submit(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	var req request.SubmitApplication
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := request.ValidateFormData(req.CertificateType, req.FormData); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := h.svc.Submit(r.Context(), user.ID, req.CertificateType, req.FormData, req.DocumentIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, app)
}

// List returns the authenticated user's applications, newest first.
func (h *Application) List(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	apps, err := h.svc.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, apps)
}

// Get returns a single application by its public identifier. Owner-only.
func (h *Application) Get(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	applicationID, err := request.RequireID(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := h.svc.GetByApplicationID(r.Context(), applicationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if app.UserID != user.ID {
		response.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	response.WriteJSON(w, http.StatusOK, app)
}

type trackRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	MobileNumber  string `json:"mobileNumber" validate:"required,mobile"`
}

// Track is the public status lookup, gated by the applicant's registered
// mobile number instead of a login session.
func (h *Application) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Track(r.Context(), req.ApplicationID, req.MobileNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}
