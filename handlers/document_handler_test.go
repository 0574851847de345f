package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filebright/filebright-backend/config"
	"github.com/filebright/filebright-backend/handlers"
	"github.com/filebright/filebright-backend/internal/storage"
	"github.com/filebright/filebright-backend/internal/store/memory"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/router"
	"github.com/filebright/filebright-backend/services"
	"github.com/filebright/filebright-backend/types"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

// stubExtractor returns a fixed extraction result.
type stubExtractor struct {
	result *types.SourceDocument
	err    error
}

func (s *stubExtractor) Analyze(_ context.Context, _ io.Reader, _ string, _ types.DocumentType) (*types.SourceDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.result
	return &copied, nil
}

var pdfContent = []byte("%PDF-1.4\nstub document content")

func w2Extraction() *types.SourceDocument {
	return &types.SourceDocument{
		DocumentType: types.DocTypeW2,
		Confidence:   0.95,
		Fields: []types.ExtractedField{
			{FieldName: "WagesTipsAndOtherCompensation", RawValue: json.RawMessage(`60000`), Confidence: 0.98},
			{FieldName: "FederalIncomeTaxWithheld", RawValue: json.RawMessage(`5000`), Confidence: 0.97},
		},
	}
}

func newTestRouter(t *testing.T, extractor services.Extractor) *gin.Engine {
	t.Helper()

	docStore := memory.NewDocumentStore()
	files := storage.NewLocalFileStorage(t.TempDir())

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			AllowedOrigins: []string{"*"},
		},
	}
	return router.SetupRouter(router.Dependencies{
		Config:          cfg,
		HealthHandler:   handlers.NewHealthHandler(nil, "test"),
		DocumentHandler: handlers.NewDocumentHandler(services.NewDocumentService(docStore, files, extractor)),
		TaxHandler:      handlers.NewTaxHandler(services.NewCalculationService(docStore)),
	})
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadDocument(t *testing.T, r *gin.Engine, userID string) types.Document {
	t.Helper()
	body, contentType := multipartBody(t, "w2.pdf", pdfContent)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var doc types.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"up"`)
}

func TestUploadDocument(t *testing.T) {
	r := newTestRouter(t, nil)

	doc := uploadDocument(t, r, "user-1")
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "w2.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, types.DocumentStatusUploaded, doc.Status)
}

func TestUploadRequiresUserHeader(t *testing.T) {
	r := newTestRouter(t, nil)
	body, contentType := multipartBody(t, "w2.pdf", pdfContent)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsUnsupportedFile(t *testing.T) {
	r := newTestRouter(t, nil)
	body, contentType := multipartBody(t, "notes.txt", []byte("plain text, not a tax form"))

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestListAndGetAndDeleteDocument(t *testing.T) {
	r := newTestRouter(t, nil)
	doc := uploadDocument(t, r, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), doc.ID)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/documents/"+doc.ID, nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user cannot see the document.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/documents/"+doc.ID, nil)
	req.Header.Set("X-User-ID", "user-2")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/v1/documents/"+doc.ID, nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/documents/"+doc.ID, nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessDocument(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{result: w2Extraction()})
	doc := uploadDocument(t, r, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/"+doc.ID+"/process", nil)
	req.Header.Set("X-User-ID", "user-1")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var source types.SourceDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &source))
	assert.Equal(t, doc.ID, source.ID)
	assert.Equal(t, types.DocTypeW2, source.DocumentType)
	assert.Len(t, source.Fields, 2)
}
