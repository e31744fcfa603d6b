package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/meera/certportal/internal/model"
	"github.com/meera/certportal/internal/platform"
)

type ApplicationService struct {
	db DB
	tc temporalclient.Client
}

func NewApplicationService(db DB, tc temporalclient.Client) *ApplicationService {
	return &ApplicationService{db: db, tc: tc}
}

// Submit creates an application in PENDING and kicks off the verification
// workflow when documents are attached. The caller gets the PENDING row back;
// verification progress is observed by polling.
func (s *ApplicationService) Submit(ctx context.Context, userID, certificateType string, formData json.RawMessage, documentIDs []string) (*model.Application, error) {
	now := time.Now()
	app := model.Application{
		ID:              platform.NewID(),
		UserID:          userID,
		CertificateType: certificateType,
		ApplicationID:   platform.NewApplicationID(now),
		Status:          model.AppStatusPending,
		FormData:        formData,
		DocumentIDs:     documentIDs,
		AppliedAt:       now,
		UpdatedAt:       now,
	}
	if app.DocumentIDs == nil {
		app.DocumentIDs = []string{}
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, certificate_type, application_id, status, form_data, document_ids, applied_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		app.ID, app.UserID, app.CertificateType, app.ApplicationID, app.Status,
		app.FormData, app.DocumentIDs, app.AppliedAt, app.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	// Applications without documents stay PENDING until an official acts.
	if len(app.DocumentIDs) > 0 {
		if err := startVerification(ctx, s.tc, app.ApplicationID); err != nil {
			return nil, fmt.Errorf("start verification for %s: %w", app.ApplicationID, err)
		}
	}

	return &app, nil
}

func (s *ApplicationService) ListByUser(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, certificate_type, application_id, status, form_data, document_ids, verification_result, certificate_id, applied_at, updated_at
		 FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications for user %s: %w", userID, err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.CertificateType, &a.ApplicationID, &a.Status,
			&a.FormData, &a.DocumentIDs, &a.VerificationResult, &a.CertificateID, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}

// GetByApplicationID looks up an application by its public identifier.
func (s *ApplicationService) GetByApplicationID(ctx context.Context, applicationID string) (*model.Application, error) {
	var a model.Application
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, certificate_type, application_id, status, form_data, document_ids, verification_result, certificate_id, applied_at, updated_at
		 FROM applications WHERE application_id = $1`, applicationID,
	).Scan(&a.ID, &a.UserID, &a.CertificateType, &a.ApplicationID, &a.Status,
		&a.FormData, &a.DocumentIDs, &a.VerificationResult, &a.CertificateID, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", applicationID, ErrNotFound)
		}
		return nil, fmt.Errorf("get application %s: %w", applicationID, err)
	}
	return &a, nil
}

// TrackResult is the public status summary; it deliberately omits form data.
type TrackResult struct {
	ApplicationID   string    `json:"application_id"`
	CertificateType string    `json:"certificate_type"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"applied_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Track returns the status summary for an application, gated by the
// applicant's registered mobile number.
func (s *ApplicationService) Track(ctx context.Context, applicationID, mobile string) (*TrackResult, error) {
	app, err := s.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	var registeredMobile string
	err = s.db.QueryRow(ctx, `SELECT mobile FROM users WHERE id = $1`, app.UserID).Scan(&registeredMobile)
	if err != nil {
		return nil, fmt.Errorf("get applicant mobile: %w", err)
	}
	if registeredMobile != mobile {
		return nil, fmt.Errorf("mobile number mismatch: %w", ErrForbidden)
	}

	return &TrackResult{
		ApplicationID:   app.ApplicationID,
		CertificateType: app.CertificateType,
		Status:          app.Status,
		AppliedAt:       app.AppliedAt,
		UpdatedAt:       app.UpdatedAt,
	}, nil
}

// Approve completes an application and issues its certificate exactly once.
// The certificate insert is the once-only step: certificates carry a unique
// application reference, so a concurrent duplicate insert fails. The COMPLETED
// flip is conditional on the application still being non-terminal, so of two
// racing approvals exactly one succeeds and the other gets ErrConflict. An
// approval interrupted between the two steps is resumed on retry: the existing
// certificate is picked up and the flip is finished.
func (s *ApplicationService) Approve(ctx context.Context, applicationID string) (*model.Certificate, error) {
	app, err := s.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if model.IsTerminalStatus(app.Status) {
		return nil, fmt.Errorf("application %s is already %s: %w", applicationID, app.Status, ErrConflict)
	}

	now := time.Now()
	cert := model.Certificate{
		ID:              platform.NewID(),
		UserID:          app.UserID,
		ApplicationID:   app.ID,
		CertificateID:   platform.NewCertificateID(app.CertificateType, now),
		CertificateType: app.CertificateType,
		IssuedAt:        now,
		ValidUntil:      now.AddDate(model.ValidityYears(app.CertificateType), 0, 0),
		CertificateData: buildCertificateData(app.FormData, app.VerificationResult),
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO certificates (id, user_id, application_id, certificate_id, certificate_type, issued_at, valid_until, certificate_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cert.ID, cert.UserID, cert.ApplicationID, cert.CertificateID,
		cert.CertificateType, cert.IssuedAt, cert.ValidUntil, cert.CertificateData,
	)
	if err != nil {
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("insert certificate: %w", err)
		}
		existing, err := s.certificateForApplication(ctx, app.ID)
		if err != nil {
			return nil, err
		}
		cert = *existing
	}

	result := mergeVerificationResult(app.VerificationResult, func(vr *model.VerificationResult) {
		vr.CertificateID = cert.CertificateID
	})
	tag, err := s.db.Exec(ctx,
		`UPDATE applications SET status = $1, certificate_id = $2, verification_result = $3, updated_at = now()
		 WHERE id = $4 AND status NOT IN ($5, $6)`,
		model.AppStatusCompleted, cert.CertificateID, result, app.ID,
		model.AppStatusCompleted, model.AppStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("complete application %s: %w", applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("application %s was finalized concurrently: %w", applicationID, ErrConflict)
	}

	return &cert, nil
}

// certificateForApplication fetches the certificate issued for an application
// by its internal ID.
func (s *ApplicationService) certificateForApplication(ctx context.Context, appID string) (*model.Certificate, error) {
	var c model.Certificate
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, application_id, certificate_id, certificate_type, issued_at, valid_until, certificate_data
		 FROM certificates WHERE application_id = $1`, appID,
	).Scan(&c.ID, &c.UserID, &c.ApplicationID, &c.CertificateID,
		&c.CertificateType, &c.IssuedAt, &c.ValidUntil, &c.CertificateData)
	if err != nil {
		return nil, fmt.Errorf("get certificate for application %s: %w", appID, err)
	}
	return &c, nil
}

// Reject moves a non-terminal application to REJECTED with a recorded reason.
func (s *ApplicationService) Reject(ctx context.Context, applicationID, reason string) error {
	app, err := s.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return err
	}
	if model.IsTerminalStatus(app.Status) {
		return fmt.Errorf("application %s is already %s: %w", applicationID, app.Status, ErrConflict)
	}

	result := mergeVerificationResult(app.VerificationResult, func(vr *model.VerificationResult) {
		vr.Rejected = true
		vr.Reason = reason
	})
	tag, err := s.db.Exec(ctx,
		`UPDATE applications SET status = $1, verification_result = $2, updated_at = now()
		 WHERE id = $3 AND status NOT IN ($4, $5)`,
		model.AppStatusRejected, result, app.ID,
		model.AppStatusCompleted, model.AppStatusRejected)
	if err != nil {
		return fmt.Errorf("reject application %s: %w", applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s was finalized concurrently: %w", applicationID, ErrConflict)
	}
	return nil
}

// buildCertificateData merges the originating form data with the verification
// result into the issued certificate's snapshot.
func buildCertificateData(formData, verificationResult json.RawMessage) json.RawMessage {
	data := map[string]any{}
	if len(formData) > 0 {
		_ = json.Unmarshal(formData, &data)
	}
	if len(verificationResult) > 0 {
		var vr any
		if err := json.Unmarshal(verificationResult, &vr); err == nil {
			data["verification_result"] = vr
		}
	}
	out, _ := json.Marshal(data)
	return out
}

// mergeVerificationResult applies mutate to the stored verification result,
// preserving existing fields.
func mergeVerificationResult(stored json.RawMessage, mutate func(*model.VerificationResult)) json.RawMessage {
	var vr model.VerificationResult
	if len(stored) > 0 {
		_ = json.Unmarshal(stored, &vr)
	}
	mutate(&vr)
	out, _ := json.Marshal(vr)
	return out
}
