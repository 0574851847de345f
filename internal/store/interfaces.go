// Package store defines the persistence interfaces for uploaded documents
// and their extracted fields.
package store

import (
	"context"

	"github.com/filebright/filebright-backend/types"
)

// DocumentStore handles document lifecycle persistence. Implementations live
// in the postgres and memory subpackages.
type DocumentStore interface {
	// CreateDocument inserts a new document record in the uploaded state.
	CreateDocument(ctx context.Context, doc *types.Document) error

	// GetDocument returns one document by ID, or ErrNotFound.
	GetDocument(ctx context.Context, id string) (*types.Document, error)

	// ListDocuments returns all documents for a user, newest first.
	ListDocuments(ctx context.Context, userID string) ([]*types.Document, error)

	// UpdateStatus moves a document through the processing lifecycle.
	UpdateStatus(ctx context.Context, id string, status types.DocumentStatus) error

	// SaveExtraction records an OCR result: the recognized form type,
	// document confidence, and extracted fields. It replaces any previous
	// extraction and marks the document processed.
	SaveExtraction(ctx context.Context, id string, docType types.DocumentType, confidence float64, fields []types.ExtractedField) error

	// ListExtractions returns the calculation-facing view of every
	// processed document for a user.
	ListExtractions(ctx context.Context, userID string) ([]types.SourceDocument, error)

	// DeleteDocument removes a document and its extracted fields.
	DeleteDocument(ctx context.Context, id string) error
}
