package types

import "strings"

// FilingStatus is the federal filing status driving bracket and deduction
// table selection.
type FilingStatus string

const (
	FilingStatusSingle          FilingStatus = "single"
	FilingStatusMarriedJoint    FilingStatus = "married_joint"
	FilingStatusMarriedSeparate FilingStatus = "married_separate"
	FilingStatusHeadOfHousehold FilingStatus = "head_of_household"
	FilingStatusQualifyingWidow FilingStatus = "qualifying_widow"
)

// ParseFilingStatus normalizes common spellings to a FilingStatus. Unknown
// values fall back to single, which matches how the intake flow defaults.
func ParseFilingStatus(s string) FilingStatus {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_"))) {
	case "married_joint", "married_filing_jointly", "mfj":
		return FilingStatusMarriedJoint
	case "married_separate", "married_filing_separately", "mfs":
		return FilingStatusMarriedSeparate
	case "head_of_household", "hoh":
		return FilingStatusHeadOfHousehold
	case "qualifying_widow", "qualifying_widower", "qualifying_surviving_spouse", "qw":
		return FilingStatusQualifyingWidow
	default:
		return FilingStatusSingle
	}
}

// Valid reports whether fs is one of the five recognized statuses.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingStatusSingle, FilingStatusMarriedJoint, FilingStatusMarriedSeparate,
		FilingStatusHeadOfHousehold, FilingStatusQualifyingWidow:
		return true
	}
	return false
}

// PersonalInfo carries the filer attributes that parameterize a calculation.
type PersonalInfo struct {
	FirstName           string       `json:"firstName,omitempty"`
	LastName            string       `json:"lastName,omitempty"`
	SSN                 string       `json:"ssn,omitempty"`
	State               string       `json:"state,omitempty"`
	FilingStatus        FilingStatus `json:"filingStatus"`
	DependentsUnder17   int          `json:"dependentsUnder17"`
	Dependents17AndOver int          `json:"dependents17AndOver"`
	Age65OrOlder        bool         `json:"age65OrOlder"`
	Blind               bool         `json:"blind"`
}

// CalculationOptions are the per-request elections for a calculation.
type CalculationOptions struct {
	UseItemized       bool    `json:"useItemized"`
	ItemizedAmount    float64 `json:"itemizedAmount"`
	EstimatedPayments float64 `json:"estimatedPayments"`
	TaxYear           int     `json:"taxYear,omitempty"`
}
