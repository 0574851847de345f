package errors

import (
	"fmt"
	"net/http"

	"github.com/filebright/filebright-backend/logger"
)

type ErrorType string

const (
	ValidationError         ErrorType = "VALIDATION_ERROR"
	NotFoundError           ErrorType = "NOT_FOUND"
	DatabaseError           ErrorType = "DATABASE_ERROR"
	ServerError             ErrorType = "SERVER_ERROR"
	DocumentNotFoundError   ErrorType = "DOCUMENT_NOT_FOUND"
	DocumentProcessingError ErrorType = "DOCUMENT_PROCESSING_FAILED"
	StorageError            ErrorType = "STORAGE_ERROR"
	ExtractionError         ErrorType = "EXTRACTION_FAILED"
	UnsupportedMediaError   ErrorType = "UNSUPPORTED_MEDIA_TYPE"
	ConflictError           ErrorType = "CONFLICT"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status an error should map to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func DocumentNotFound(id string) *AppError {
	return &AppError{
		Type:       DocumentNotFoundError,
		Message:    "Document not found",
		Detail:     fmt.Sprintf("Document ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func DocumentProcessingFailed(id string, err error) *AppError {
	return &AppError{
		Type:       DocumentProcessingError,
		Message:    "Document processing failed",
		Detail:     fmt.Sprintf("Document ID: %s: %v", id, err),
		HTTPStatus: http.StatusUnprocessableEntity,
		Raw:        err,
	}
}

func NewStorageError(err error, message string) *AppError {
	logger.GetLogger().Errorw("Storage error", "error", err)
	return &AppError{
		Type:       StorageError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func ExtractionFailed(message string, err error) *AppError {
	return &AppError{
		Type:       ExtractionError,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func UnsupportedMediaType(detected string) *AppError {
	return &AppError{
		Type:       UnsupportedMediaError,
		Message:    "Unsupported file type",
		Detail:     fmt.Sprintf("Detected content type: %s", detected),
		HTTPStatus: http.StatusUnsupportedMediaType,
	}
}

func NewConflictError(message string, detail string) *AppError {
	return &AppError{
		Type:       ConflictError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, DocumentNotFoundError:
		return http.StatusNotFound
	case DatabaseError, StorageError:
		return http.StatusInternalServerError
	case DocumentProcessingError:
		return http.StatusUnprocessableEntity
	case ExtractionError:
		return http.StatusBadGateway
	case UnsupportedMediaError:
		return http.StatusUnsupportedMediaType
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
