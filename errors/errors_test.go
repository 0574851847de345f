package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, DatabaseError, "ignored"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("User", 123)
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "User not found", err.Message)
	assert.Equal(t, "ID: 123", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestDocumentNotFound(t *testing.T) {
	err := DocumentNotFound("doc-42")
	assert.Equal(t, DocumentNotFoundError, err.Type)
	assert.Equal(t, "Document not found", err.Message)
	assert.Equal(t, 404, err.GetHTTPStatus())
}

func TestDocumentProcessingFailed(t *testing.T) {
	cause := fmt.Errorf("analyze timed out")
	err := DocumentProcessingFailed("doc-42", cause)
	assert.Equal(t, DocumentProcessingError, err.Type)
	assert.Equal(t, 422, err.HTTPStatus)
	assert.Equal(t, cause, err.Raw)
	assert.Contains(t, err.Detail, "doc-42")
}

func TestUnsupportedMediaType(t *testing.T) {
	err := UnsupportedMediaType("text/html")
	assert.Equal(t, 415, err.HTTPStatus)
	assert.Contains(t, err.Detail, "text/html")
}

func TestErrorString(t *testing.T) {
	err := ValidationFailed("bad request", "missing filing status")
	assert.Equal(t, "VALIDATION_ERROR: bad request (missing filing status)", err.Error())

	noDetail := InternalServerError("boom")
	assert.Equal(t, "SERVER_ERROR: boom", noDetail.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, StorageError, "upload failed")
	assert.Equal(t, cause, err.Unwrap())
}
