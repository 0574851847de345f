package types

import (
	"encoding/json"
	"time"
)

// DocumentType identifies which IRS form a document was recognized as.
// It selects the classification rule table applied to extracted fields.
type DocumentType string

const (
	DocTypeW2       DocumentType = "W2"
	DocType1099INT  DocumentType = "FORM_1099_INT"
	DocType1099DIV  DocumentType = "FORM_1099_DIV"
	DocType1099NEC  DocumentType = "FORM_1099_NEC"
	DocType1099MISC DocumentType = "FORM_1099_MISC"
	DocType1040     DocumentType = "FORM_1040"
	DocTypeOther    DocumentType = "OTHER"
)

// DocumentStatus tracks a document through the upload/extract lifecycle.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// ExtractedField is a single field returned by the OCR provider. RawValue
// keeps the provider's value payload verbatim; the aggregator is responsible
// for coercing it to a number (the provider wraps values in several envelope
// shapes). Immutable once read.
type ExtractedField struct {
	FieldName  string          `json:"fieldName"`
	RawValue   json.RawMessage `json:"rawValue,omitempty"`
	Confidence float64         `json:"confidence"`
}

// SourceDocument is the calculation-facing view of one uploaded file: the
// recognized form type plus its extracted fields.
type SourceDocument struct {
	ID           string           `json:"id"`
	FileName     string           `json:"fileName"`
	DocumentType DocumentType     `json:"documentType"`
	Confidence   float64          `json:"confidence"`
	Fields       []ExtractedField `json:"fields"`
}

// Document is the persisted record for an uploaded file.
type Document struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	FileName     string         `json:"fileName"`
	StorageKey   string         `json:"-"`
	ContentType  string         `json:"contentType"`
	SizeBytes    int64          `json:"sizeBytes"`
	DocumentType DocumentType   `json:"documentType"`
	Status       DocumentStatus `json:"status"`
	Confidence   float64        `json:"confidence"`
	UploadedAt   time.Time      `json:"uploadedAt"`
	ProcessedAt  *time.Time     `json:"processedAt,omitempty"`
}
