package types

// Classification is the disposition of a single extracted field.
type Classification string

const (
	ClassificationIncome      Classification = "income"
	ClassificationWithholding Classification = "withholding"
	ClassificationIgnore      Classification = "ignore"
)

// Income categories. Each maps to one bucket in IncomeTotals.
const (
	CategoryWages                   = "wages"
	CategoryInterest                = "interest"
	CategoryDividends               = "dividends"
	CategoryNonEmployeeCompensation = "nonEmployeeCompensation"
	CategoryMiscellaneousIncome     = "miscellaneousIncome"
	CategoryRentalRoyalties         = "rentalRoyalties"
	CategoryOtherIncome             = "other"
)

// Withholding categories. Each maps to one bucket in WithholdingTotals.
const (
	CategoryFederalTax        = "federalTax"
	CategoryStateTax          = "stateTax"
	CategorySocialSecurityTax = "socialSecurityTax"
	CategoryMedicareTax       = "medicareTax"
)

// ClassifiedField is the classifier's verdict for one field: where the amount
// belongs, which IRS box it came from, and a human-readable description for
// the audit trail. Derived, never persisted.
type ClassifiedField struct {
	Classification Classification `json:"classification"`
	Category       string         `json:"category,omitempty"`
	BoxReference   string         `json:"boxReference,omitempty"`
	Description    string         `json:"description,omitempty"`
}
