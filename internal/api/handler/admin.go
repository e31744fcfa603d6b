package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meera/certportal/internal/api/request"
	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
)

// Admin exposes the official actions on applications: approval (which issues
// the certificate) and rejection.
type Admin struct {
	svc *core.ApplicationService
}

func NewAdmin(svc *core.ApplicationService) *Admin {
	return &Admin{svc: svc}
}

// Approve completes an application and returns the issued certificate.
// Approving an application that is already COMPLETED or REJECTED returns 409.
func (h *Admin) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID, err := request.RequireID(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.svc.Approve(r.Context(), applicationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, cert)
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Reject moves a non-terminal application to REJECTED with a recorded reason.
func (h *Admin) Reject(w http.ResponseWriter, r *http.Request) {
	applicationID, err := request.RequireID(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req rejectRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Reject(r.Context(), applicationID, req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
