package handler

import (
	"net/http"

	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/api/request"
	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
)

type Certificate struct {
	svc *core.CertificateService
}

func NewCertificate(svc *core.CertificateService) *Certificate {
	return &Certificate{svc: svc}
}

// List returns the authenticated user's issued certificates.
func (h *Certificate) List(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	certs, err := h.svc.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, certs)
}

// Get returns a single certificate by its public identifier. The identifier
// contains slashes (TYPE/YEAR/RANDOM), so it is carried in the request body
// rather than the path.
type getCertificateRequest struct {
	CertificateID string `json:"certificateId" validate:"required"`
}

func (h *Certificate) Get(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	var req getCertificateRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.svc.GetByCertificateID(r.Context(), req.CertificateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cert.UserID != user.ID {
		response.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	response.WriteJSON(w, http.StatusOK, cert)
}

type verifyCertificateRequest struct {
	CertificateID string `json:"certificateId" validate:"required"`
}

// Verify is the public authenticity check for an issued certificate.
func (h *Certificate) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyCertificateRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Verify(r.Context(), req.CertificateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}
