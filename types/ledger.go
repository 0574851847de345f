package types

// IncomeTotals is the income side of the aggregated ledger.
type IncomeTotals struct {
	Wages                   float64 `json:"wages"`
	Interest                float64 `json:"interest"`
	Dividends               float64 `json:"dividends"`
	NonEmployeeCompensation float64 `json:"nonEmployeeCompensation"`
	MiscellaneousIncome     float64 `json:"miscellaneousIncome"`
	RentalRoyalties         float64 `json:"rentalRoyalties"`
	Other                   float64 `json:"other"`
}

// Total sums every income bucket.
func (i IncomeTotals) Total() float64 {
	return i.Wages + i.Interest + i.Dividends + i.NonEmployeeCompensation +
		i.MiscellaneousIncome + i.RentalRoyalties + i.Other
}

// WithholdingTotals is the withholding side of the aggregated ledger.
type WithholdingTotals struct {
	FederalTax        float64 `json:"federalTax"`
	StateTax          float64 `json:"stateTax"`
	SocialSecurityTax float64 `json:"socialSecurityTax"`
	MedicareTax       float64 `json:"medicareTax"`
}

// Total sums every withholding bucket.
func (w WithholdingTotals) Total() float64 {
	return w.FederalTax + w.StateTax + w.SocialSecurityTax + w.MedicareTax
}

// FieldContribution records the provenance of one counted field.
type FieldContribution struct {
	FieldName      string         `json:"fieldName"`
	BoxReference   string         `json:"boxReference"`
	Classification Classification `json:"classification"`
	Category       string         `json:"category"`
	Description    string         `json:"description,omitempty"`
	Amount         float64        `json:"amount"`
	Confidence     float64        `json:"confidence"`
}

// DocumentContribution is the per-document audit entry in the ledger breakdown.
type DocumentContribution struct {
	DocumentID   string              `json:"documentId"`
	FileName     string              `json:"fileName"`
	DocumentType DocumentType        `json:"documentType"`
	Income       float64             `json:"income"`
	Withholding  float64             `json:"withholding"`
	Fields       []FieldContribution `json:"fields"`
}

// TaxBreakdown carries the audit trail for an aggregated ledger.
type TaxBreakdown struct {
	ByDocument []DocumentContribution `json:"byDocument"`
}

// TaxDocumentData is the aggregated income/withholding ledger built from all
// of a user's processed documents. It is rebuilt on every calculation request
// and never cached, since the underlying documents can change between calls.
type TaxDocumentData struct {
	Income       IncomeTotals      `json:"income"`
	Withholdings WithholdingTotals `json:"withholdings"`
	Breakdown    TaxBreakdown      `json:"breakdown"`
}
