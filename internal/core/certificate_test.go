package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meera/certportal/internal/model"
)

func certificateRow(issuedAt, validUntil time.Time) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "cert-1"
		*(dest[1].(*string)) = "user-1"
		*(dest[2].(*string)) = "app-1"
		*(dest[3].(*string)) = "CASTE/2026/ABCDEFGH12"
		*(dest[4].(*string)) = model.CertTypeCaste
		*(dest[5].(*time.Time)) = issuedAt
		*(dest[6].(*time.Time)) = validUntil
		*(dest[7].(*json.RawMessage)) = json.RawMessage(`{"caste":"XYZ"}`)
		return nil
	}}
}

func TestCertificateService_GetByCertificateID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewCertificateService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	_, err := svc.GetByCertificateID(ctx, "CASTE/2026/XXXXXXXXXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCertificateService_Verify_Valid(t *testing.T) {
	db := &mockDB{}
	svc := NewCertificateService(db)
	ctx := context.Background()

	issued := time.Now().Add(-time.Hour)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(certificateRow(issued, issued.AddDate(5, 0, 0)))

	result, err := svc.Verify(ctx, "CASTE/2026/ABCDEFGH12")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.False(t, result.IsExpired)
	assert.Equal(t, "CASTE/2026/ABCDEFGH12", result.CertificateID)
	assert.Equal(t, model.CertTypeCaste, result.CertificateType)
}

func TestCertificateService_Verify_Expired(t *testing.T) {
	db := &mockDB{}
	svc := NewCertificateService(db)
	ctx := context.Background()

	issued := time.Now().AddDate(-6, 0, 0)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(certificateRow(issued, issued.AddDate(5, 0, 0)))

	result, err := svc.Verify(ctx, "CASTE/2026/ABCDEFGH12")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.True(t, result.IsExpired)
}

func TestCertificateService_Verify_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewCertificateService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	_, err := svc.Verify(ctx, "CASTE/2026/XXXXXXXXXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCertificateService_ListByUser_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewCertificateService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	rows := newMockRows(func(dest ...any) error {
		*(dest[0].(*string)) = "cert-1"
		*(dest[1].(*string)) = "user-1"
		*(dest[2].(*string)) = "app-1"
		*(dest[3].(*string)) = "INCOME/2026/ABCDEFGH12"
		*(dest[4].(*string)) = model.CertTypeIncome
		*(dest[5].(*time.Time)) = now
		*(dest[6].(*time.Time)) = now.AddDate(1, 0, 0)
		*(dest[7].(*json.RawMessage)) = json.RawMessage(`{}`)
		return nil
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	certs, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "INCOME/2026/ABCDEFGH12", certs[0].CertificateID)
	db.AssertExpectations(t)
}
