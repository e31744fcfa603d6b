package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meera/certportal/internal/model"
)

// DB defines the database operations used by activity structs.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PortalDB contains activities that read from and update the portal database.
type PortalDB struct {
	db DB
}

// NewPortalDB creates a new PortalDB activity struct.
func NewPortalDB(db DB) *PortalDB {
	return &PortalDB{db: db}
}

// GetApplicationByApplicationID retrieves an application by its public
// identifier.
func (a *PortalDB) GetApplicationByApplicationID(ctx context.Context, applicationID string) (*model.Application, error) {
	var app model.Application
	err := a.db.QueryRow(ctx,
		`SELECT id, user_id, certificate_type, application_id, status, form_data, document_ids, verification_result, certificate_id, applied_at, updated_at
		 FROM applications WHERE application_id = $1`, applicationID,
	).Scan(&app.ID, &app.UserID, &app.CertificateType, &app.ApplicationID, &app.Status,
		&app.FormData, &app.DocumentIDs, &app.VerificationResult, &app.CertificateID,
		&app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get application by application_id: %w", err)
	}
	return &app, nil
}

// UpdateApplicationStatusParams holds the parameters for
// UpdateApplicationStatus.
type UpdateApplicationStatusParams struct {
	ApplicationID string
	Status        string
}

// UpdateApplicationStatus sets the status of an application.
func (a *PortalDB) UpdateApplicationStatus(ctx context.Context, params UpdateApplicationStatusParams) error {
	_, err := a.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = now() WHERE application_id = $2`,
		params.Status, params.ApplicationID)
	return err
}

// GetDocumentByID retrieves a document by its ID. Returns nil without error
// when the document does not exist; applications can carry dangling document
// references.
func (a *PortalDB) GetDocumentByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	err := a.db.QueryRow(ctx,
		`SELECT id, user_id, document_type, file_name, verification_status, verification_details, uploaded_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.DocumentType, &d.FileName,
		&d.VerificationStatus, &d.VerificationDetails, &d.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return &d, nil
}

// MarkDocumentVerifiedParams holds the parameters for MarkDocumentVerified.
type MarkDocumentVerifiedParams struct {
	DocumentID string
	Details    json.RawMessage
}

// MarkDocumentVerified sets a document's verification status to VERIFIED with
// the given details.
func (a *PortalDB) MarkDocumentVerified(ctx context.Context, params MarkDocumentVerifiedParams) error {
	_, err := a.db.Exec(ctx,
		`UPDATE documents SET verification_status = $1, verification_details = $2 WHERE id = $3`,
		model.VerificationVerified, params.Details, params.DocumentID)
	return err
}

// SetVerificationResultParams holds the parameters for SetVerificationResult.
type SetVerificationResultParams struct {
	ApplicationID string
	Result        json.RawMessage
}

// SetVerificationResult stores the aggregate verification result on an
// application.
func (a *PortalDB) SetVerificationResult(ctx context.Context, params SetVerificationResultParams) error {
	_, err := a.db.Exec(ctx,
		`UPDATE applications SET verification_result = $1, updated_at = now() WHERE application_id = $2`,
		params.Result, params.ApplicationID)
	return err
}

// DeleteExpiredSessions removes sessions past their expiry and returns the
// number of rows deleted.
func (a *PortalDB) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := a.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
