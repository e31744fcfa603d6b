package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meera/certportal/internal/model"
)

func TestDocumentService_Upload_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDocumentService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	doc, err := svc.Upload(ctx, "user-1", "aadhar", "aadhar.pdf", "ZGF0YQ==")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, model.VerificationVerified, doc.VerificationStatus)

	var details map[string]string
	require.NoError(t, json.Unmarshal(doc.VerificationDetails, &details))
	assert.Equal(t, "Document uploaded and auto-verified", details["message"])
	db.AssertExpectations(t)
}

func TestDocumentService_Upload_InsertError(t *testing.T) {
	db := &mockDB{}
	svc := NewDocumentService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("db error"))

	_, err := svc.Upload(ctx, "user-1", "aadhar", "aadhar.pdf", "ZGF0YQ==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert document")
}

func TestDocumentService_ListByUser_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDocumentService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	rows := newMockRows(func(dest ...any) error {
		*(dest[0].(*string)) = "doc-1"
		*(dest[1].(*string)) = "user-1"
		*(dest[2].(*string)) = "aadhar"
		*(dest[3].(*string)) = "aadhar.pdf"
		*(dest[4].(*string)) = model.VerificationVerified
		*(dest[5].(*json.RawMessage)) = json.RawMessage(`{"message":"ok"}`)
		*(dest[6].(*time.Time)) = now
		return nil
	})
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	docs, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)
	// File contents are excluded from listings.
	assert.Empty(t, docs[0].FileData)
	db.AssertExpectations(t)
}

func TestDocumentService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDocumentService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "doc-1"
			*(dest[1].(*string)) = "user-1"
			*(dest[2].(*string)) = "aadhar"
			*(dest[3].(*string)) = "aadhar.pdf"
			*(dest[4].(*string)) = "ZGF0YQ=="
			*(dest[5].(*string)) = model.VerificationVerified
			*(dest[6].(*json.RawMessage)) = json.RawMessage(`{"message":"ok"}`)
			*(dest[7].(*time.Time)) = now
			return nil
		}})

	doc, err := svc.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "ZGF0YQ==", doc.FileData)
}

func TestDocumentService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewDocumentService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
