package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filebright/filebright-backend/internal/store"
	"github.com/filebright/filebright-backend/types"
)

func setupMock(t *testing.T) (pgxmock.PgxPoolIface, *DocumentStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewDocumentStore(mock)
}

func testDocument() *types.Document {
	return &types.Document{
		ID:           uuid.NewString(),
		UserID:       uuid.NewString(),
		FileName:     "w2.pdf",
		StorageKey:   "documents/2025/w2.pdf",
		ContentType:  "application/pdf",
		SizeBytes:    48213,
		DocumentType: types.DocTypeOther,
		Status:       types.DocumentStatusUploaded,
		UploadedAt:   time.Now().UTC(),
	}
}

func TestDocumentStore_CreateDocument(t *testing.T) {
	mock, s := setupMock(t)
	doc := testDocument()

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.StorageKey, doc.ContentType,
			doc.SizeBytes, doc.DocumentType, doc.Status, doc.Confidence, doc.UploadedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.CreateDocument(context.Background(), doc)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_GetDocument(t *testing.T) {
	mock, s := setupMock(t)
	doc := testDocument()

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "file_name", "storage_key", "content_type", "size_bytes",
		"document_type", "status", "confidence", "uploaded_at", "processed_at",
	}).AddRow(doc.ID, doc.UserID, doc.FileName, doc.StorageKey, doc.ContentType,
		doc.SizeBytes, doc.DocumentType, doc.Status, doc.Confidence, doc.UploadedAt, nil)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs(doc.ID).
		WillReturnRows(rows)

	got, err := s.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.FileName, got.FileName)
	assert.Nil(t, got.ProcessedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_GetDocumentNotFound(t *testing.T) {
	mock, s := setupMock(t)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := s.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentStore_UpdateStatus(t *testing.T) {
	mock, s := setupMock(t)

	mock.ExpectExec("UPDATE documents SET status").
		WithArgs("doc-1", types.DocumentStatusProcessing).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateStatus(context.Background(), "doc-1", types.DocumentStatusProcessing)
	assert.NoError(t, err)

	mock.ExpectExec("UPDATE documents SET status").
		WithArgs("missing", types.DocumentStatusProcessing).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = s.UpdateStatus(context.Background(), "missing", types.DocumentStatusProcessing)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDocumentStore_SaveExtraction(t *testing.T) {
	mock, s := setupMock(t)
	fields := []types.ExtractedField{
		{FieldName: "WagesTipsAndOtherCompensation", RawValue: json.RawMessage(`{"value":{"valueNumber":60000}}`), Confidence: 0.98},
		{FieldName: "FederalIncomeTaxWithheld", RawValue: json.RawMessage(`{"value":{"valueNumber":5000}}`), Confidence: 0.97},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", types.DocTypeW2, 0.95, types.DocumentStatusProcessed, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM extracted_fields").
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	for _, f := range fields {
		mock.ExpectExec("INSERT INTO extracted_fields").
			WithArgs("doc-1", f.FieldName, f.RawValue, f.Confidence).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	err := s.SaveExtraction(context.Background(), "doc-1", types.DocTypeW2, 0.95, fields)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_SaveExtractionRollsBackOnError(t *testing.T) {
	mock, s := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", types.DocTypeW2, 0.95, types.DocumentStatusProcessed, pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.SaveExtraction(context.Background(), "doc-1", types.DocTypeW2, 0.95, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_ListExtractions(t *testing.T) {
	mock, s := setupMock(t)
	userID := uuid.NewString()

	rows := pgxmock.NewRows([]string{
		"id", "file_name", "document_type", "confidence", "field_name", "raw_value", "confidence",
	}).
		AddRow("doc-1", "w2.pdf", types.DocTypeW2, 0.95, "WagesTipsAndOtherCompensation", json.RawMessage(`60000`), 0.98).
		AddRow("doc-1", "w2.pdf", types.DocTypeW2, 0.95, "FederalIncomeTaxWithheld", json.RawMessage(`5000`), 0.97).
		AddRow("doc-2", "int.pdf", types.DocType1099INT, 0.91, "InterestIncome", json.RawMessage(`1200`), 0.94)

	mock.ExpectQuery("SELECT (.+) FROM documents d").
		WithArgs(userID, types.DocumentStatusProcessed).
		WillReturnRows(rows)

	docs, err := s.ListExtractions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Len(t, docs[0].Fields, 2)
	assert.Equal(t, types.DocType1099INT, docs[1].DocumentType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	mock, s := setupMock(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.DeleteDocument(context.Background(), "doc-1"))

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, s.DeleteDocument(context.Background(), "missing"), store.ErrNotFound)
}
