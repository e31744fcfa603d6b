package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidityYears(t *testing.T) {
	assert.Equal(t, 5, ValidityYears(CertTypeCaste))
	assert.Equal(t, 1, ValidityYears(CertTypeIncome))
	assert.Equal(t, 3, ValidityYears(CertTypeResidence))
	assert.Equal(t, 2, ValidityYears("OTHER"))
	assert.Equal(t, 2, ValidityYears(""))
}
