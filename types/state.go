package types

// State tax regime labels surfaced in StateTaxResult.TaxType.
const (
	StateTaxTypeNone        = "No State Income Tax"
	StateTaxTypeFlat        = "Flat Rate"
	StateTaxTypeProgressive = "Progressive"
	StateTaxTypeSpecial     = "Special Regime"
	StateTaxTypeUnsupported = "Unsupported State"
	StateTaxTypeError       = "Calculation Error"
)

// StateTaxInput carries everything the state engine needs; it is independent
// of the federal result except for the AGI handoff.
type StateTaxInput struct {
	State               string       `json:"state"`
	FilingStatus        FilingStatus `json:"filingStatus"`
	FederalAGI          float64      `json:"federalAgi"`
	TotalIncome         float64      `json:"totalIncome"`
	ItemizedDeductions  float64      `json:"itemizedDeductions"`
	DependentsUnder17   int          `json:"dependentsUnder17"`
	Dependents17AndOver int          `json:"dependents17AndOver"`
	Age65OrOlder        bool         `json:"age65OrOlder"`
	Blind               bool         `json:"blind"`
	CapitalGains        float64      `json:"capitalGains"`
	QualifiedDividends  float64      `json:"qualifiedDividends"`
}

// StateCreditApplied is one credit line in a state result.
type StateCreditApplied struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// StateTaxLine is one row of a state bracket breakdown.
type StateTaxLine struct {
	BracketMin  float64 `json:"bracketMin"`
	BracketMax  float64 `json:"bracketMax"` // 0 means no upper bound
	Rate        float64 `json:"rate"`
	AmountTaxed float64 `json:"amountTaxed"`
	Tax         float64 `json:"tax"`
}

// StateTaxResult is the immutable output of the state engine. Failures are
// carried as data: an unsupported or malformed input yields a zero-tax result
// with an explanatory note, never an error.
type StateTaxResult struct {
	State         string               `json:"state"`
	StateName     string               `json:"stateName"`
	TaxType       string               `json:"taxType"`
	StateTax      float64              `json:"stateTax"`
	EffectiveRate float64              `json:"effectiveRate"`
	MarginalRate  float64              `json:"marginalRate"`
	TaxableIncome float64              `json:"taxableIncome"`
	Credits       []StateCreditApplied `json:"credits"`
	Breakdown     []StateTaxLine       `json:"breakdown"`
	Notes         []string             `json:"notes"`
}
