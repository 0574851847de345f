package types

import "time"

// Final balance statuses produced by phase 11.
const (
	BalanceStatusRefund = "refund"
	BalanceStatusOwed   = "owed"
	BalanceStatusEven   = "even"
)

// Deduction selection outcomes recorded in phase 4 and metadata.
const (
	DeductionStandard = "standard"
	DeductionItemized = "itemized"
)

// IncomeCollection (phase 1) copies ledger categories into named income lines
// and separates ordinarily-taxed income from preferentially-taxed investment
// income.
type IncomeCollection struct {
	Wages                   float64 `json:"wages"`
	Interest                float64 `json:"interest"`
	OrdinaryDividends       float64 `json:"ordinaryDividends"`
	NonEmployeeCompensation float64 `json:"nonEmployeeCompensation"`
	MiscellaneousIncome     float64 `json:"miscellaneousIncome"`
	RentalRoyalties         float64 `json:"rentalRoyalties"`
	OtherIncome             float64 `json:"otherIncome"`
	QualifiedDividends      float64 `json:"qualifiedDividends"`
	CapitalGains            float64 `json:"capitalGains"`
	TaxExemptInterest       float64 `json:"taxExemptInterest"`
}

// IncomeAggregation (phase 2) sums the collected lines.
type IncomeAggregation struct {
	OrdinaryIncome     float64 `json:"ordinaryIncome"`
	PreferentialIncome float64 `json:"preferentialIncome"`
	TaxExemptIncome    float64 `json:"taxExemptIncome"`
	TotalIncome        float64 `json:"totalIncome"`
}

// AdjustedGrossIncome (phase 3) applies above-the-line deductions.
type AdjustedGrossIncome struct {
	TotalIncome      float64 `json:"totalIncome"`
	SETaxDeduction   float64 `json:"seTaxDeduction"`
	TotalAdjustments float64 `json:"totalAdjustments"`
	AGI              float64 `json:"agi"`
}

// DeductionDetermination (phase 4) selects standard vs itemized.
type DeductionDetermination struct {
	StandardDeduction float64 `json:"standardDeduction"`
	ItemizedAmount    float64 `json:"itemizedAmount"`
	DeductionUsed     string  `json:"deductionUsed"`
	DeductionAmount   float64 `json:"deductionAmount"`
}

// TaxableIncome (phase 5).
type TaxableIncome struct {
	AGI             float64 `json:"agi"`
	DeductionAmount float64 `json:"deductionAmount"`
	TaxableIncome   float64 `json:"taxableIncome"`
}

// BracketLine is one row of the regular-tax bracket breakdown.
type BracketLine struct {
	BracketMin    float64 `json:"bracketMin"`
	BracketMax    float64 `json:"bracketMax"` // 0 means no upper bound
	Rate          float64 `json:"rate"`
	AmountTaxed   float64 `json:"amountTaxed"`
	TaxForBracket float64 `json:"taxForBracket"`
	CumulativeTax float64 `json:"cumulativeTax"`
}

// RegularTax (phase 6) is the progressive ordinary-income tax.
type RegularTax struct {
	TaxableIncome float64       `json:"taxableIncome"`
	Tax           float64       `json:"tax"`
	MarginalRate  float64       `json:"marginalRate"`
	EffectiveRate float64       `json:"effectiveRate"`
	Brackets      []BracketLine `json:"brackets"`
}

// SelfEmploymentTax (phase 7).
type SelfEmploymentTax struct {
	GrossSEIncome         float64 `json:"grossSeIncome"`
	NetSEIncome           float64 `json:"netSeIncome"`
	SocialSecurityTax     float64 `json:"socialSecurityTax"`
	MedicareTax           float64 `json:"medicareTax"`
	AdditionalMedicareTax float64 `json:"additionalMedicareTax"`
	TotalSETax            float64 `json:"totalSeTax"`
	SETaxDeduction        float64 `json:"seTaxDeduction"`
}

// InvestmentTax (phase 8) covers preferential-rate tax and NIIT.
type InvestmentTax struct {
	QualifiedDividends  float64 `json:"qualifiedDividends"`
	CapitalGains        float64 `json:"capitalGains"`
	PreferentialIncome  float64 `json:"preferentialIncome"`
	PreferentialTax     float64 `json:"preferentialTax"`
	NetInvestmentIncome float64 `json:"netInvestmentIncome"`
	NIIT                float64 `json:"niit"`
	TotalInvestmentTax  float64 `json:"totalInvestmentTax"`
}

// TotalLiability (phase 9).
type TotalLiability struct {
	RegularTax        float64 `json:"regularTax"`
	SelfEmploymentTax float64 `json:"selfEmploymentTax"`
	InvestmentTax     float64 `json:"investmentTax"`
	TotalLiability    float64 `json:"totalLiability"`
}

// WithholdingsAndPayments (phase 10) passes through ledger withholdings plus
// estimated payments.
type WithholdingsAndPayments struct {
	FederalWithholding        float64 `json:"federalWithholding"`
	StateWithholding          float64 `json:"stateWithholding"`
	SocialSecurityWithholding float64 `json:"socialSecurityWithholding"`
	MedicareWithholding       float64 `json:"medicareWithholding"`
	EstimatedPayments         float64 `json:"estimatedPayments"`
	TotalPayments             float64 `json:"totalPayments"`
}

// FinalBalance (phase 11). Negative FinalBalance is a refund.
type FinalBalance struct {
	TotalLiability float64 `json:"totalLiability"`
	TotalPayments  float64 `json:"totalPayments"`
	FinalBalance   float64 `json:"finalBalance"`
	Status         string  `json:"status"`
}

// FederalTaxSummary condenses the phase outputs for presentation.
type FederalTaxSummary struct {
	TotalIncome   float64 `json:"totalIncome"`
	AGI           float64 `json:"agi"`
	TaxableIncome float64 `json:"taxableIncome"`
	TotalTax      float64 `json:"totalTax"`
	TotalPayments float64 `json:"totalPayments"`
	FinalBalance  float64 `json:"finalBalance"`
	EffectiveRate float64 `json:"effectiveRate"`
	MarginalRate  float64 `json:"marginalRate"`
}

// CalculationMetadata records which parameters produced a result.
type CalculationMetadata struct {
	FilingStatus  FilingStatus `json:"filingStatus"`
	TaxYear       int          `json:"taxYear"`
	DeductionUsed string       `json:"deductionUsed"`
	CalculatedAt  time.Time    `json:"calculatedAt"`
}

// ComprehensiveTaxResult is the immutable output of the federal engine: one
// sub-object per calculation phase plus a summary and metadata.
type ComprehensiveTaxResult struct {
	Phase1IncomeCollection   IncomeCollection        `json:"phase1IncomeCollection"`
	Phase2IncomeAggregation  IncomeAggregation       `json:"phase2IncomeAggregation"`
	Phase3AGI                AdjustedGrossIncome     `json:"phase3Agi"`
	Phase4Deduction          DeductionDetermination  `json:"phase4Deduction"`
	Phase5TaxableIncome      TaxableIncome           `json:"phase5TaxableIncome"`
	Phase6RegularTax         RegularTax              `json:"phase6RegularTax"`
	Phase7SelfEmploymentTax  SelfEmploymentTax       `json:"phase7SelfEmploymentTax"`
	Phase8InvestmentTax      InvestmentTax           `json:"phase8InvestmentTax"`
	Phase9TotalLiability     TotalLiability          `json:"phase9TotalLiability"`
	Phase10Withholdings      WithholdingsAndPayments `json:"phase10Withholdings"`
	Phase11FinalBalance      FinalBalance            `json:"phase11FinalBalance"`
	Summary                  FederalTaxSummary       `json:"summary"`
	Metadata                 CalculationMetadata     `json:"metadata"`
}
