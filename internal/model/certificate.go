package model

import (
	"encoding/json"
	"time"
)

type Certificate struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	ApplicationID   string          `json:"application_id" db:"application_id"`
	CertificateID   string          `json:"certificate_id" db:"certificate_id"`
	CertificateType string          `json:"certificate_type" db:"certificate_type"`
	IssuedAt        time.Time       `json:"issued_at" db:"issued_at"`
	ValidUntil      time.Time       `json:"valid_until" db:"valid_until"`
	CertificateData json.RawMessage `json:"certificate_data" db:"certificate_data"`
}

// ValidityYears returns how many years a certificate of the given type
// stays valid from its issuance date.
func ValidityYears(certificateType string) int {
	switch certificateType {
	case CertTypeCaste:
		return 5
	case CertTypeIncome:
		return 1
	case CertTypeResidence:
		return 3
	default:
		return 2
	}
}
