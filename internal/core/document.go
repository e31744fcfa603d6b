package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meera/certportal/internal/model"
	"github.com/meera/certportal/internal/platform"
)

type DocumentService struct {
	db DB
}

func NewDocumentService(db DB) *DocumentService {
	return &DocumentService{db: db}
}

// Upload stores a document and immediately marks it verified. The portal's
// document check is a placeholder: every upload passes.
func (s *DocumentService) Upload(ctx context.Context, userID, documentType, fileName, fileData string) (*model.Document, error) {
	details, _ := json.Marshal(map[string]string{
		"message": "Document uploaded and auto-verified",
	})

	doc := model.Document{
		ID:                  platform.NewID(),
		UserID:              userID,
		DocumentType:        documentType,
		FileName:            fileName,
		FileData:            fileData,
		VerificationStatus:  model.VerificationVerified,
		VerificationDetails: details,
		UploadedAt:          time.Now(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO documents (id, user_id, document_type, file_name, file_data, verification_status, verification_details, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.UserID, doc.DocumentType, doc.FileName, doc.FileData,
		doc.VerificationStatus, doc.VerificationDetails, doc.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return &doc, nil
}

// ListByUser returns the caller's documents without file contents; the raw
// payload can be large and the listing endpoints never need it.
func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]model.Document, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, document_type, file_name, verification_status, verification_details, uploaded_at
		 FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents for user %s: %w", userID, err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.DocumentType, &d.FileName,
			&d.VerificationStatus, &d.VerificationDetails, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, document_type, file_name, file_data, verification_status, verification_details, uploaded_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.DocumentType, &d.FileName, &d.FileData,
		&d.VerificationStatus, &d.VerificationDetails, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return &d, nil
}
