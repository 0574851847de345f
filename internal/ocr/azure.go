// Package ocr integrates with Azure Document Intelligence: it submits a
// document for analysis, polls the async operation, and flattens the vendor
// result into the calculation-facing SourceDocument shape.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

const apiVersion = "2024-11-30"

// Prebuilt model IDs per recognized form. Unknown document types fall back to
// the generic document model.
var modelByDocType = map[types.DocumentType]string{
	types.DocTypeW2:       "prebuilt-tax.us.w2",
	types.DocType1099INT:  "prebuilt-tax.us.1099INT",
	types.DocType1099DIV:  "prebuilt-tax.us.1099DIV",
	types.DocType1099NEC:  "prebuilt-tax.us.1099NEC",
	types.DocType1099MISC: "prebuilt-tax.us.1099MISC",
	types.DocType1040:     "prebuilt-tax.us.1040",
}

const fallbackModel = "prebuilt-document"

// Config carries the connection and polling parameters for the client.
type Config struct {
	Endpoint     string
	APIKey       string
	PollInterval time.Duration
	MaxPolls     int
}

// Client is an Azure Document Intelligence REST client.
type Client struct {
	endpoint     string
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
}

// NewClient creates a client with sane polling defaults (2s interval, 30
// attempts) where the config leaves them zero.
func NewClient(cfg Config) *Client {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 30
	}
	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:       cfg.APIKey,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		pollInterval: interval,
		maxPolls:     maxPolls,
	}
}

// ModelFor returns the analysis model used for a document type.
func ModelFor(docType types.DocumentType) string {
	if model, ok := modelByDocType[docType]; ok {
		return model
	}
	return fallbackModel
}

// Analyze submits a document and blocks until the analysis completes, the
// poll budget is exhausted, or ctx is cancelled. The returned SourceDocument
// carries flattened field names; nested transaction arrays appear as
// Transactions[i].Field paths.
func (c *Client) Analyze(ctx context.Context, content io.Reader, contentType string, hint types.DocumentType) (*types.SourceDocument, error) {
	log := logger.GetLogger()
	model := ModelFor(hint)

	opLocation, err := c.submit(ctx, model, content, contentType)
	if err != nil {
		return nil, err
	}
	log.Debugw("Document submitted for analysis", "model", model)

	result, err := c.poll(ctx, opLocation)
	if err != nil {
		return nil, err
	}
	return mapResult(result, hint), nil
}

func (c *Client) submit(ctx context.Context, model string, content io.Reader, contentType string) (string, error) {
	url := fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?api-version=%s", c.endpoint, model, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, content)
	if err != nil {
		return "", fmt.Errorf("building analyze request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting document for analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("analyze request rejected with status %d: %s", resp.StatusCode, string(body))
	}

	opLocation := resp.Header.Get("Operation-Location")
	if opLocation == "" {
		return "", fmt.Errorf("analyze response missing Operation-Location header")
	}
	return opLocation, nil
}

func (c *Client) poll(ctx context.Context, opLocation string) (*analyzeResult, error) {
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, opLocation, nil)
		if err != nil {
			return nil, fmt.Errorf("building poll request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("polling analysis operation: %w", err)
		}

		var op operationResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&op)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decoding poll response: %w", decodeErr)
		}

		switch op.Status {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return nil, fmt.Errorf("analysis succeeded but returned no result")
			}
			return op.AnalyzeResult, nil
		case "failed":
			return nil, fmt.Errorf("analysis failed: %s", op.Error.Message)
		}
		// notStarted / running: keep polling.
	}
	return nil, fmt.Errorf("analysis did not complete after %d polls", c.maxPolls)
}

type operationResponse struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult"`
	Error         struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type analyzeResult struct {
	Documents []analyzedDocument `json:"documents"`
}

type analyzedDocument struct {
	DocType    string                     `json:"docType"`
	Confidence float64                    `json:"confidence"`
	Fields     map[string]json.RawMessage `json:"fields"`
}

// analyzeField is the subset of the vendor field object needed to flatten
// the result. RawValue payloads are stored verbatim; the aggregator owns
// numeric coercion.
type analyzeField struct {
	Confidence  float64                    `json:"confidence"`
	ValueArray  []json.RawMessage          `json:"valueArray"`
	ValueObject map[string]json.RawMessage `json:"valueObject"`
}

// mapResult converts the vendor analyze result to a SourceDocument. The
// vendor docType wins over the caller's hint when it maps to a known form.
func mapResult(result *analyzeResult, hint types.DocumentType) *types.SourceDocument {
	doc := &types.SourceDocument{DocumentType: hint}
	if len(result.Documents) == 0 {
		return doc
	}

	analyzed := result.Documents[0]
	if mapped := mapDocType(analyzed.DocType); mapped != types.DocTypeOther {
		doc.DocumentType = mapped
	}
	doc.Confidence = analyzed.Confidence

	for _, name := range sortedKeys(analyzed.Fields) {
		doc.Fields = append(doc.Fields, flattenField(name, analyzed.Fields[name])...)
	}
	return doc
}

// flattenField expands nested arrays and objects into dotted/indexed field
// names, emitting one ExtractedField per scalar leaf.
func flattenField(name string, raw json.RawMessage) []types.ExtractedField {
	var field analyzeField
	if err := json.Unmarshal(raw, &field); err != nil {
		return []types.ExtractedField{{FieldName: name, RawValue: raw}}
	}

	if len(field.ValueArray) > 0 {
		var fields []types.ExtractedField
		for i, item := range field.ValueArray {
			var entry analyzeField
			if err := json.Unmarshal(item, &entry); err == nil && len(entry.ValueObject) > 0 {
				for _, sub := range sortedKeys(entry.ValueObject) {
					fields = append(fields, flattenField(fmt.Sprintf("%s[%d].%s", name, i, sub), entry.ValueObject[sub])...)
				}
			} else {
				fields = append(fields, types.ExtractedField{
					FieldName:  fmt.Sprintf("%s[%d]", name, i),
					RawValue:   item,
					Confidence: field.Confidence,
				})
			}
		}
		return fields
	}

	if len(field.ValueObject) > 0 {
		var fields []types.ExtractedField
		for _, sub := range sortedKeys(field.ValueObject) {
			fields = append(fields, flattenField(name+"."+sub, field.ValueObject[sub])...)
		}
		return fields
	}

	return []types.ExtractedField{{FieldName: name, RawValue: raw, Confidence: field.Confidence}}
}

// mapDocType translates vendor docType labels ("tax.us.w2",
// "tax.us.1099INT.2024", ...) to the internal form enum.
func mapDocType(vendor string) types.DocumentType {
	normalized := strings.ToUpper(strings.ReplaceAll(vendor, ".", ""))
	switch {
	case strings.Contains(normalized, "W2"):
		return types.DocTypeW2
	case strings.Contains(normalized, "1099INT"):
		return types.DocType1099INT
	case strings.Contains(normalized, "1099DIV"):
		return types.DocType1099DIV
	case strings.Contains(normalized, "1099NEC"):
		return types.DocType1099NEC
	case strings.Contains(normalized, "1099MISC"):
		return types.DocType1099MISC
	case strings.Contains(normalized, "1040"):
		return types.DocType1040
	default:
		return types.DocTypeOther
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
