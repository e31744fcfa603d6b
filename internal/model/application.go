package model

import (
	"encoding/json"
	"time"
)

type Application struct {
	ID                 string          `json:"id" db:"id"`
	UserID             string          `json:"user_id" db:"user_id"`
	CertificateType    string          `json:"certificate_type" db:"certificate_type"`
	ApplicationID      string          `json:"application_id" db:"application_id"`
	Status             string          `json:"status" db:"status"`
	FormData           json.RawMessage `json:"form_data" db:"form_data"`
	DocumentIDs        []string        `json:"document_ids" db:"document_ids"`
	VerificationResult json.RawMessage `json:"verification_result,omitempty" db:"verification_result"`
	CertificateID      *string         `json:"certificate_id,omitempty" db:"certificate_id"`
	AppliedAt          time.Time       `json:"applied_at" db:"applied_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// DocumentVerification is one per-document entry in an application's
// aggregate verification result.
type DocumentVerification struct {
	DocumentID   string `json:"document_id"`
	DocumentType string `json:"document_type"`
	Verified     bool   `json:"verified"`
}

// VerificationResult is the aggregate stored on the application once the
// verification pipeline has run. CertificateID is back-filled on approval.
type VerificationResult struct {
	Documents     []DocumentVerification `json:"documents,omitempty"`
	CertificateID string                 `json:"certificate_id,omitempty"`
	Rejected      bool                   `json:"rejected,omitempty"`
	Reason        string                 `json:"reason,omitempty"`
}
