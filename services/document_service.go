// Package services wires the storage, persistence, and OCR boundaries to the
// tax engines behind small, testable service types.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/internal/storage"
	"github.com/filebright/filebright-backend/internal/store"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

// Extractor is the OCR boundary consumed by the document service.
type Extractor interface {
	Analyze(ctx context.Context, content io.Reader, contentType string, hint types.DocumentType) (*types.SourceDocument, error)
}

// DocumentService handles the document lifecycle: upload, listing, OCR
// processing, and deletion.
type DocumentService struct {
	store     store.DocumentStore
	files     storage.FileStorage
	extractor Extractor
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docStore store.DocumentStore, files storage.FileStorage, extractor Extractor) *DocumentService {
	return &DocumentService{
		store:     docStore,
		files:     files,
		extractor: extractor,
	}
}

// Upload validates and stores an uploaded file and creates its document
// record in the uploaded state. The content type is sniffed from the file
// bytes, never trusted from the client.
func (s *DocumentService) Upload(ctx context.Context, userID, fileName string, content []byte) (*types.Document, error) {
	log := logger.GetLogger()

	if len(content) == 0 {
		return nil, apperrors.ValidationFailed("empty file", "the uploaded file has no content")
	}
	if len(content) > storage.MaxFileSize {
		return nil, apperrors.ValidationFailed("file too large",
			fmt.Sprintf("maximum upload size is %d bytes", storage.MaxFileSize))
	}

	contentType, allowed := storage.DetectContentType(content)
	if !allowed {
		return nil, apperrors.UnsupportedMediaType(contentType)
	}

	doc := &types.Document{
		ID:           uuid.NewString(),
		UserID:       userID,
		FileName:     path.Base(fileName),
		ContentType:  contentType,
		SizeBytes:    int64(len(content)),
		DocumentType: types.DocTypeOther,
		Status:       types.DocumentStatusUploaded,
		UploadedAt:   time.Now().UTC(),
	}
	doc.StorageKey = fmt.Sprintf("documents/%s/%s", userID, doc.ID)

	if err := s.files.Save(ctx, doc.StorageKey, bytes.NewReader(content), doc.SizeBytes); err != nil {
		log.Errorw("Failed to store uploaded file", "userId", userID, "fileName", doc.FileName, "error", err)
		return nil, apperrors.NewStorageError(err, "failed to store uploaded file")
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		// Best effort: don't leave an orphaned blob behind.
		if cleanupErr := s.files.Delete(ctx, doc.StorageKey); cleanupErr != nil {
			log.Warnw("Failed to clean up stored file after insert failure", "storageKey", doc.StorageKey, "error", cleanupErr)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Infow("Document uploaded", "documentId", doc.ID, "userId", userID, "contentType", contentType, "sizeBytes", doc.SizeBytes)
	return doc, nil
}

// Get returns one of the user's documents.
func (s *DocumentService) Get(ctx context.Context, userID, id string) (*types.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.DocumentNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if doc.UserID != userID {
		// Ownership failures are indistinguishable from missing documents.
		return nil, apperrors.DocumentNotFound(id)
	}
	return doc, nil
}

// List returns all of the user's documents, newest first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]*types.Document, error) {
	docs, err := s.store.ListDocuments(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return docs, nil
}

// Delete removes a document record and its stored file.
func (s *DocumentService) Delete(ctx context.Context, userID, id string) error {
	log := logger.GetLogger()

	doc, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, doc.StorageKey); err != nil {
		// The record is still removed; an orphaned blob beats a phantom row.
		log.Warnw("Failed to delete stored file", "documentId", id, "storageKey", doc.StorageKey, "error", err)
	}

	if err := s.store.DeleteDocument(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.DocumentNotFound(id)
		}
		return apperrors.NewDatabaseError(err)
	}

	log.Infow("Document deleted", "documentId", id, "userId", userID)
	return nil
}

// Process runs OCR extraction for one document and persists the result. On
// extraction failure the document is marked failed and the error surfaced.
func (s *DocumentService) Process(ctx context.Context, userID, id string) (*types.SourceDocument, error) {
	log := logger.GetLogger()

	doc, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, types.DocumentStatusProcessing); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	content, err := s.files.Open(ctx, doc.StorageKey)
	if err != nil {
		s.markFailed(ctx, id)
		return nil, apperrors.NewStorageError(err, "failed to read stored file")
	}
	defer content.Close()

	source, err := s.extractor.Analyze(ctx, content, doc.ContentType, doc.DocumentType)
	if err != nil {
		log.Errorw("Document extraction failed", "documentId", id, "error", err)
		s.markFailed(ctx, id)
		return nil, apperrors.ExtractionFailed("document analysis failed", err)
	}
	source.ID = doc.ID
	source.FileName = doc.FileName

	if err := s.store.SaveExtraction(ctx, id, source.DocumentType, source.Confidence, source.Fields); err != nil {
		s.markFailed(ctx, id)
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Infow("Document processed",
		"documentId", id,
		"documentType", source.DocumentType,
		"confidence", source.Confidence,
		"fieldCount", len(source.Fields),
	)
	return source, nil
}

func (s *DocumentService) markFailed(ctx context.Context, id string) {
	if err := s.store.UpdateStatus(ctx, id, types.DocumentStatusFailed); err != nil {
		logger.GetLogger().Warnw("Failed to mark document as failed", "documentId", id, "error", err)
	}
}
