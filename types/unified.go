package types

// CombinedSummary folds the federal and state results into one balance.
type CombinedSummary struct {
	FederalTax         float64 `json:"federalTax"`
	StateTax           float64 `json:"stateTax"`
	TotalTaxLiability  float64 `json:"totalTaxLiability"`
	FederalWithholding float64 `json:"federalWithholding"`
	StateWithholding   float64 `json:"stateWithholding"`
	EstimatedPayments  float64 `json:"estimatedPayments"`
	TotalPayments      float64 `json:"totalPayments"`
	FinalBalance       float64 `json:"finalBalance"`
	IsRefund           bool    `json:"isRefund"`
}

// UnifiedTaxResult is the orchestrator output: federal always, state only
// when the filer supplied a state.
type UnifiedTaxResult struct {
	Federal  *ComprehensiveTaxResult `json:"federalResult"`
	State    *StateTaxResult         `json:"stateTaxResult,omitempty"`
	Combined CombinedSummary         `json:"combinedSummary"`
}
