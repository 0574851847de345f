// Package memory provides an in-memory DocumentStore used by unit tests and
// local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/filebright/filebright-backend/internal/store"
	"github.com/filebright/filebright-backend/types"
)

// DocumentStore is a thread-safe in-memory implementation of
// store.DocumentStore.
type DocumentStore struct {
	mu          sync.RWMutex
	documents   map[string]*types.Document
	extractions map[string][]types.ExtractedField
}

// NewDocumentStore creates an empty in-memory store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:   make(map[string]*types.Document),
		extractions: make(map[string][]types.ExtractedField),
	}
}

func (s *DocumentStore) CreateDocument(_ context.Context, doc *types.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; exists {
		return store.ErrConflict
	}
	copied := *doc
	s.documents[doc.ID] = &copied
	return nil
}

func (s *DocumentStore) GetDocument(_ context.Context, id string) (*types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *DocumentStore) ListDocuments(_ context.Context, userID string) ([]*types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*types.Document
	for _, doc := range s.documents {
		if doc.UserID == userID {
			copied := *doc
			docs = append(docs, &copied)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (s *DocumentStore) UpdateStatus(_ context.Context, id string, status types.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return store.ErrNotFound
	}
	doc.Status = status
	return nil
}

func (s *DocumentStore) SaveExtraction(_ context.Context, id string, docType types.DocumentType, confidence float64, fields []types.ExtractedField) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return store.ErrNotFound
	}

	now := time.Now().UTC()
	doc.DocumentType = docType
	doc.Confidence = confidence
	doc.Status = types.DocumentStatusProcessed
	doc.ProcessedAt = &now

	s.extractions[id] = append([]types.ExtractedField(nil), fields...)
	return nil
}

func (s *DocumentStore) ListExtractions(_ context.Context, userID string) ([]types.SourceDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*types.Document
	for _, doc := range s.documents {
		if doc.UserID == userID && doc.Status == types.DocumentStatusProcessed {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})

	result := make([]types.SourceDocument, 0, len(docs))
	for _, doc := range docs {
		result = append(result, types.SourceDocument{
			ID:           doc.ID,
			FileName:     doc.FileName,
			DocumentType: doc.DocumentType,
			Confidence:   doc.Confidence,
			Fields:       append([]types.ExtractedField(nil), s.extractions[doc.ID]...),
		})
	}
	return result, nil
}

func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.extractions, id)
	return nil
}
