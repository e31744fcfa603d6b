package model

// Application workflow statuses. Uppercase values are part of the public API
// contract and are stored verbatim in the database.
const (
	AppStatusPending              = "PENDING"
	AppStatusDocumentVerification = "DOCUMENT_VERIFICATION"
	AppStatusOfficialApproval     = "OFFICIAL_APPROVAL"
	AppStatusCompleted            = "COMPLETED"
	AppStatusRejected             = "REJECTED"
)

// Document verification statuses.
const (
	VerificationPending  = "PENDING"
	VerificationVerified = "VERIFIED"
	VerificationFailed   = "FAILED"
)

// Certificate types.
const (
	CertTypeCaste     = "CASTE"
	CertTypeIncome    = "INCOME"
	CertTypeResidence = "RESIDENCE"
)

// IsTerminalStatus reports whether an application can no longer transition.
func IsTerminalStatus(status string) bool {
	return status == AppStatusCompleted || status == AppStatusRejected
}

// ValidCertificateType reports whether t is one of the supported types.
func ValidCertificateType(t string) bool {
	switch t {
	case CertTypeCaste, CertTypeIncome, CertTypeResidence:
		return true
	}
	return false
}
