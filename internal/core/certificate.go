package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meera/certportal/internal/model"
)

type CertificateService struct {
	db DB
}

func NewCertificateService(db DB) *CertificateService {
	return &CertificateService{db: db}
}

func (s *CertificateService) ListByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, application_id, certificate_id, certificate_type, issued_at, valid_until, certificate_data
		 FROM certificates WHERE user_id = $1 ORDER BY issued_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates for user %s: %w", userID, err)
	}
	defer rows.Close()

	var certs []model.Certificate
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.ApplicationID, &c.CertificateID,
			&c.CertificateType, &c.IssuedAt, &c.ValidUntil, &c.CertificateData); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certificates: %w", err)
	}
	return certs, nil
}

// GetByCertificateID looks up a certificate by its public identifier.
func (s *CertificateService) GetByCertificateID(ctx context.Context, certificateID string) (*model.Certificate, error) {
	var c model.Certificate
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, application_id, certificate_id, certificate_type, issued_at, valid_until, certificate_data
		 FROM certificates WHERE certificate_id = $1`, certificateID,
	).Scan(&c.ID, &c.UserID, &c.ApplicationID, &c.CertificateID,
		&c.CertificateType, &c.IssuedAt, &c.ValidUntil, &c.CertificateData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("certificate %s: %w", certificateID, ErrNotFound)
		}
		return nil, fmt.Errorf("get certificate %s: %w", certificateID, err)
	}
	return &c, nil
}

// VerifyResult is the public answer for certificate verification. There is no
// revocation mechanism; validity is purely a matter of the validity window.
type VerifyResult struct {
	IsValid         bool      `json:"is_valid"`
	IsExpired       bool      `json:"is_expired"`
	CertificateID   string    `json:"certificate_id"`
	CertificateType string    `json:"certificate_type"`
	IssuedAt        time.Time `json:"issued_at"`
	ValidUntil      time.Time `json:"valid_until"`
}

// Verify reports whether a certificate exists and is inside its validity window.
func (s *CertificateService) Verify(ctx context.Context, certificateID string) (*VerifyResult, error) {
	cert, err := s.GetByCertificateID(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	expired := time.Now().After(cert.ValidUntil)
	return &VerifyResult{
		IsValid:         !expired,
		IsExpired:       expired,
		CertificateID:   cert.CertificateID,
		CertificateType: cert.CertificateType,
		IssuedAt:        cert.IssuedAt,
		ValidUntil:      cert.ValidUntil,
	}, nil
}
