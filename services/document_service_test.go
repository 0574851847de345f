package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/internal/storage"
	"github.com/filebright/filebright-backend/internal/store/memory"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

func init() {
	logger.IsTest = true
}

// MockExtractor is a mock implementation of the Extractor interface.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Analyze(ctx context.Context, content io.Reader, contentType string, hint types.DocumentType) (*types.SourceDocument, error) {
	args := m.Called(ctx, content, contentType, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SourceDocument), args.Error(1)
}

func newTestService(t *testing.T, extractor Extractor) (*DocumentService, *memory.DocumentStore) {
	t.Helper()
	docStore := memory.NewDocumentStore()
	files := storage.NewLocalFileStorage(t.TempDir())
	return NewDocumentService(docStore, files, extractor), docStore
}

var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj")

func TestDocumentServiceUpload(t *testing.T) {
	svc, _ := newTestService(t, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "my w2.pdf", pdfContent)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "my w2.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, types.DocumentStatusUploaded, doc.Status)
	assert.Equal(t, int64(len(pdfContent)), doc.SizeBytes)

	listed, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestDocumentServiceUploadRejectsUnsupportedType(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Upload(context.Background(), "user-1", "notes.txt", []byte("just some text"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.UnsupportedMediaError, appErr.Type)
}

func TestDocumentServiceUploadRejectsEmptyFile(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Upload(context.Background(), "user-1", "empty.pdf", nil)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestDocumentServiceGetEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(t, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "w2.pdf", pdfContent)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", doc.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.DocumentNotFoundError, appErr.Type)
}

func TestDocumentServiceProcess(t *testing.T) {
	extractor := new(MockExtractor)
	svc, docStore := newTestService(t, extractor)

	doc, err := svc.Upload(context.Background(), "user-1", "w2.pdf", pdfContent)
	require.NoError(t, err)

	extracted := &types.SourceDocument{
		DocumentType: types.DocTypeW2,
		Confidence:   0.95,
		Fields: []types.ExtractedField{
			{FieldName: "WagesTipsAndOtherCompensation", RawValue: json.RawMessage(`60000`), Confidence: 0.98},
		},
	}
	extractor.On("Analyze", mock.Anything, mock.Anything, "application/pdf", types.DocTypeOther).
		Return(extracted, nil)

	source, err := svc.Process(context.Background(), "user-1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, source.ID)
	assert.Equal(t, "w2.pdf", source.FileName)
	assert.Equal(t, types.DocTypeW2, source.DocumentType)

	stored, err := docStore.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusProcessed, stored.Status)
	assert.Equal(t, types.DocTypeW2, stored.DocumentType)
	require.NotNil(t, stored.ProcessedAt)

	extractions, err := docStore.ListExtractions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, extractions, 1)
	assert.Len(t, extractions[0].Fields, 1)

	extractor.AssertExpectations(t)
}

func TestDocumentServiceProcessExtractionFailure(t *testing.T) {
	extractor := new(MockExtractor)
	svc, docStore := newTestService(t, extractor)

	doc, err := svc.Upload(context.Background(), "user-1", "w2.pdf", pdfContent)
	require.NoError(t, err)

	extractor.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("service unavailable"))

	_, err = svc.Process(context.Background(), "user-1", doc.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ExtractionError, appErr.Type)

	stored, err := docStore.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusFailed, stored.Status)
}

func TestDocumentServiceDelete(t *testing.T) {
	svc, _ := newTestService(t, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "w2.pdf", pdfContent)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "user-1", doc.ID))

	_, err = svc.Get(context.Background(), "user-1", doc.ID)
	assert.Error(t, err)
}
