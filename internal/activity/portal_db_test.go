package activity

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

// ---------- Mock DB ----------

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- GetApplicationByApplicationID ----------

func TestPortalDB_GetApplicationByApplicationID_Success(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "app-1"
			*(dest[1].(*string)) = "user-1"
			*(dest[2].(*string)) = model.CertTypeCaste
			*(dest[3].(*string)) = "CERT-123456-ABCDEF"
			*(dest[4].(*string)) = model.AppStatusPending
			*(dest[5].(*json.RawMessage)) = json.RawMessage(`{}`)
			*(dest[6].(*[]string)) = []string{"doc-1"}
			*(dest[9].(*time.Time)) = now
			*(dest[10].(*time.Time)) = now
			return nil
		}})

	app, err := a.GetApplicationByApplicationID(ctx, "CERT-123456-ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "CERT-123456-ABCDEF", app.ApplicationID)
	assert.Equal(t, []string{"doc-1"}, app.DocumentIDs)
}

func TestPortalDB_GetApplicationByApplicationID_Error(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	_, err := a.GetApplicationByApplicationID(ctx, "CERT-000000-XXXXXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get application by application_id")
}

// ---------- UpdateApplicationStatus ----------

func TestPortalDB_UpdateApplicationStatus(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"),
		[]any{model.AppStatusDocumentVerification, "CERT-123456-ABCDEF"}).
		Return(pgconn.CommandTag{}, nil)

	err := a.UpdateApplicationStatus(ctx, UpdateApplicationStatusParams{
		ApplicationID: "CERT-123456-ABCDEF",
		Status:        model.AppStatusDocumentVerification,
	})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- GetDocumentByID ----------

func TestPortalDB_GetDocumentByID_NotFoundReturnsNil(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }})

	doc, err := a.GetDocumentByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestPortalDB_GetDocumentByID_Success(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "doc-1"
			*(dest[1].(*string)) = "user-1"
			*(dest[2].(*string)) = "aadhar"
			*(dest[3].(*string)) = "aadhar.pdf"
			*(dest[4].(*string)) = model.VerificationVerified
			*(dest[5].(*json.RawMessage)) = json.RawMessage(`{}`)
			*(dest[6].(*time.Time)) = now
			return nil
		}})

	doc, err := a.GetDocumentByID(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "aadhar", doc.DocumentType)
}

// ---------- MarkDocumentVerified / SetVerificationResult ----------

func TestPortalDB_MarkDocumentVerified(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	err := a.MarkDocumentVerified(ctx, MarkDocumentVerifiedParams{
		DocumentID: "doc-1",
		Details:    json.RawMessage(`{"message":"verified"}`),
	})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestPortalDB_SetVerificationResult(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	result, _ := json.Marshal(model.VerificationResult{
		Documents: []model.DocumentVerification{{DocumentID: "doc-1", Verified: true}},
	})
	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{json.RawMessage(result), "CERT-123456-ABCDEF"}).
		Return(pgconn.CommandTag{}, nil)

	err := a.SetVerificationResult(ctx, SetVerificationResultParams{
		ApplicationID: "CERT-123456-ABCDEF",
		Result:        result,
	})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- DeleteExpiredSessions ----------

func TestPortalDB_DeleteExpiredSessions(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 3"), nil)

	n, err := a.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPortalDB_DeleteExpiredSessions_Error(t *testing.T) {
	db := &mockDB{}
	a := NewPortalDB(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("db error"))

	_, err := a.DeleteExpiredSessions(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete expired sessions")
}
