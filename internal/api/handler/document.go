package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/api/request"
	"github.com/meera/certportal/internal/api/response"
	"github.com/meera/certportal/internal/core"
)

type Document struct {
	svc *core.DocumentService
}

func NewDocument(svc *core.DocumentService) *Document {
	return &Document{svc: svc}
}

type uploadDocumentRequest struct {
	DocumentType string `json:"documentType" validate:"required"`
	FileName     string `json:"fileName" validate:"required"`
	FileData     string `json:"fileData" validate:"required,base64"`
}

// Upload stores a base64-encoded document for the authenticated user.
func (h *Document) Upload(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	var req uploadDocumentRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.svc.Upload(r.Context(), user.ID, req.DocumentType, req.FileName, req.FileData)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, doc)
}

// List returns the authenticated user's documents without file contents.
func (h *Document) List(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	docs, err := h.svc.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, docs)
}

// Get returns a single document including its file contents. Owner-only.
func (h *Document) Get(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUser(r.Context())

	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if doc.UserID != user.ID {
		response.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	response.WriteJSON(w, http.StatusOK, doc)
}
