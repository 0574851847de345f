// Package storage provides the file storage abstraction behind document
// uploads, with local-filesystem and S3-compatible backends.
package storage

import (
	"context"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the maximum allowed upload size (10MB).
const MaxFileSize = 10 * 1024 * 1024

// allowedMimeTypes are the document formats the OCR provider accepts.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

// FileStorage provides an abstraction over file storage backends.
type FileStorage interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// DetectContentType sniffs the real media type from file content, ignoring
// the client-declared header. The second return reports whether the type is
// accepted for document processing.
func DetectContentType(head []byte) (string, bool) {
	mime := mimetype.Detect(head)
	for m := mime; m != nil; m = m.Parent() {
		if allowedMimeTypes[m.String()] {
			return m.String(), true
		}
	}
	return mime.String(), false
}
