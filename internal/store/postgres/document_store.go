// Package postgres implements the document store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/filebright/filebright-backend/internal/store"
	"github.com/filebright/filebright-backend/types"
)

// DB is the subset of pgxpool.Pool the store uses. pgxmock satisfies it in
// tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DocumentStore implements store.DocumentStore using PostgreSQL.
type DocumentStore struct {
	db DB
}

// NewDocumentStore creates a new DocumentStore instance.
func NewDocumentStore(db DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// CreateDocument inserts a new document record.
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *types.Document) error {
	query := `
		INSERT INTO documents (id, user_id, file_name, storage_key, content_type, size_bytes, document_type, status, confidence, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.StorageKey,
		doc.ContentType,
		doc.SizeBytes,
		doc.DocumentType,
		doc.Status,
		doc.Confidence,
		doc.UploadedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrConflict
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by its ID.
func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	query := `
		SELECT id, user_id, file_name, storage_key, content_type, size_bytes, document_type, status, confidence, uploaded_at, processed_at
		FROM documents
		WHERE id = $1`

	doc := &types.Document{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.StorageKey,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.DocumentType,
		&doc.Status,
		&doc.Confidence,
		&doc.UploadedAt,
		&doc.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("selecting document: %w", err)
	}
	return doc, nil
}

// ListDocuments retrieves all documents for a user, newest first.
func (s *DocumentStore) ListDocuments(ctx context.Context, userID string) ([]*types.Document, error) {
	query := `
		SELECT id, user_id, file_name, storage_key, content_type, size_bytes, document_type, status, confidence, uploaded_at, processed_at
		FROM documents
		WHERE user_id = $1
		ORDER BY uploaded_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*types.Document
	for rows.Next() {
		doc := &types.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.FileName,
			&doc.StorageKey,
			&doc.ContentType,
			&doc.SizeBytes,
			&doc.DocumentType,
			&doc.Status,
			&doc.Confidence,
			&doc.UploadedAt,
			&doc.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateStatus moves a document through the processing lifecycle.
func (s *DocumentStore) UpdateStatus(ctx context.Context, id string, status types.DocumentStatus) error {
	query := `UPDATE documents SET status = $2 WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SaveExtraction persists an OCR result inside one transaction: the document
// row is updated with the recognized type and confidence, any previous fields
// are replaced, and the document is marked processed.
func (s *DocumentStore) SaveExtraction(ctx context.Context, id string, docType types.DocumentType, confidence float64, fields []types.ExtractedField) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, `
		UPDATE documents
		SET document_type = $2, confidence = $3, status = $4, processed_at = $5
		WHERE id = $1`,
		id, docType, confidence, types.DocumentStatusProcessed, now,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM extracted_fields WHERE document_id = $1`, id); err != nil {
		return fmt.Errorf("clearing previous extraction: %w", err)
	}

	for _, field := range fields {
		raw := field.RawValue
		if raw == nil {
			raw = json.RawMessage("null")
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO extracted_fields (document_id, field_name, raw_value, confidence)
			VALUES ($1, $2, $3, $4)`,
			id, field.FieldName, raw, field.Confidence,
		)
		if err != nil {
			return fmt.Errorf("inserting extracted field: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListExtractions returns the calculation-facing view of every processed
// document for a user. Field order within a document follows insertion order.
func (s *DocumentStore) ListExtractions(ctx context.Context, userID string) ([]types.SourceDocument, error) {
	query := `
		SELECT d.id, d.file_name, d.document_type, d.confidence, f.field_name, f.raw_value, f.confidence
		FROM documents d
		JOIN extracted_fields f ON f.document_id = d.id
		WHERE d.user_id = $1 AND d.status = $2
		ORDER BY d.uploaded_at DESC, f.id ASC`

	rows, err := s.db.Query(ctx, query, userID, types.DocumentStatusProcessed)
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	defer rows.Close()

	var (
		result []types.SourceDocument
		index  = map[string]int{}
	)
	for rows.Next() {
		var (
			docID, fileName string
			docType         types.DocumentType
			docConfidence   float64
			field           types.ExtractedField
		)
		err := rows.Scan(&docID, &fileName, &docType, &docConfidence, &field.FieldName, &field.RawValue, &field.Confidence)
		if err != nil {
			return nil, fmt.Errorf("scanning extraction: %w", err)
		}

		i, ok := index[docID]
		if !ok {
			result = append(result, types.SourceDocument{
				ID:           docID,
				FileName:     fileName,
				DocumentType: docType,
				Confidence:   docConfidence,
			})
			i = len(result) - 1
			index[docID] = i
		}
		result[i].Fields = append(result[i].Fields, field)
	}
	return result, rows.Err()
}

// DeleteDocument removes a document; extracted fields cascade.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
