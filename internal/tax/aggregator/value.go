package aggregator

import (
	"encoding/json"
	"strconv"
	"strings"
)

// vendorEnvelope models the shapes the OCR provider wraps numeric values in:
// {"value": 123}, {"value": {"valueNumber": 123}}, {"value": {"valueString":
// "1,234.56"}}, or the inner object appearing bare.
type vendorEnvelope struct {
	Value       json.RawMessage `json:"value"`
	ValueNumber *float64        `json:"valueNumber"`
	ValueString *string         `json:"valueString"`
}

// ParseFieldValue coerces a raw OCR value payload to a float64. It accepts
// bare numbers, numeric strings with currency formatting, and the vendor's
// nested envelopes. Unparseable input yields 0; it never fails.
func ParseFieldValue(raw json.RawMessage) float64 {
	return parseValue(raw, 0)
}

// parseValue recurses through at most a few envelope levels. The depth cap
// defends against pathological self-nesting in a hostile payload.
func parseValue(raw json.RawMessage, depth int) float64 {
	if len(raw) == 0 || depth > 4 {
		return 0
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0
	}

	// Bare number.
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	// Bare string, possibly currency-formatted ("$1,234.56").
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return parseNumericString(str)
	}

	// Envelope object.
	var env vendorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0
	}
	if env.ValueNumber != nil {
		return *env.ValueNumber
	}
	if env.ValueString != nil {
		return parseNumericString(*env.ValueString)
	}
	if len(env.Value) > 0 {
		return parseValue(env.Value, depth+1)
	}

	return 0
}

func parseNumericString(s string) float64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
