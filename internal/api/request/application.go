package request

import (
	"encoding/json"
	"fmt"

	"github.com/meera/certportal/internal/model"
)

// SubmitApplication is the payload for submitting a certificate application.
type SubmitApplication struct {
	CertificateType string          `json:"certificateType" validate:"required,oneof=CASTE INCOME RESIDENCE"`
	FormData        json.RawMessage `json:"formData" validate:"required"`
	DocumentIDs     []string        `json:"documentIds"`
}

// Per-type form schemas. Form data is stored as JSON but validated against
// the schema for the requested certificate type before persistence, so a
// malformed submission is rejected up front.

type casteForm struct {
	Caste      string `json:"caste" validate:"required"`
	SubCaste   string `json:"subCaste"`
	FatherName string `json:"fatherName" validate:"required"`
}

type incomeForm struct {
	AnnualIncome float64 `json:"annualIncome" validate:"required,gt=0"`
	Occupation   string  `json:"occupation" validate:"required"`
	EmployerName string  `json:"employerName"`
}

type residenceForm struct {
	ResidenceAddress string `json:"residenceAddress" validate:"required"`
	YearsAtAddress   int    `json:"yearsAtAddress" validate:"gte=0"`
}

// ValidateFormData checks the form data payload against the schema for the
// given certificate type.
func ValidateFormData(certificateType string, formData json.RawMessage) error {
	var form any
	switch certificateType {
	case model.CertTypeCaste:
		form = &casteForm{}
	case model.CertTypeIncome:
		form = &incomeForm{}
	case model.CertTypeResidence:
		form = &residenceForm{}
	default:
		return fmt.Errorf("unknown certificate type: %s", certificateType)
	}

	if err := json.Unmarshal(formData, form); err != nil {
		return fmt.Errorf("invalid form data: %w", err)
	}
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
