package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage stores files on the local filesystem.
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates a new local file storage instance.
func NewLocalFileStorage(basePath string) *LocalFileStorage {
	_ = os.MkdirAll(basePath, 0755)
	return &LocalFileStorage{basePath: basePath}
}

// containedPath resolves the full path and verifies it stays within basePath.
// Returns an error if the key escapes the storage directory.
func (s *LocalFileStorage) containedPath(key string) (string, error) {
	fullPath := filepath.Join(s.basePath, key)
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve full path: %w", err)
	}
	if !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) && absFull != absBase {
		return "", fmt.Errorf("path traversal detected")
	}
	return absFull, nil
}

// Save stores a file at the given key relative to basePath.
func (s *LocalFileStorage) Save(_ context.Context, key string, reader io.Reader, _ int64) error {
	fullPath, err := s.containedPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Open returns a reader over a stored file.
func (s *LocalFileStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.containedPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a file at the given key relative to basePath.
func (s *LocalFileStorage) Delete(_ context.Context, key string) error {
	fullPath, err := s.containedPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
