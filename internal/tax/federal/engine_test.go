package federal

import (
	"testing"

	"github.com/filebright/filebright-backend/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWith(income types.IncomeTotals, withholdings types.WithholdingTotals) types.TaxDocumentData {
	return types.TaxDocumentData{Income: income, Withholdings: withholdings}
}

// Single filer, W-2 wages $60,000 with $5,000 federal withholding.
func TestCalculateSingleW2Scenario(t *testing.T) {
	ledger := ledgerWith(
		types.IncomeTotals{Wages: 60000},
		types.WithholdingTotals{FederalTax: 5000},
	)

	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{})

	assert.Equal(t, 60000.0, result.Phase2IncomeAggregation.TotalIncome)
	assert.Equal(t, 60000.0, result.Phase3AGI.AGI)
	assert.Equal(t, 13850.0, result.Phase4Deduction.DeductionAmount)
	assert.Equal(t, types.DeductionStandard, result.Phase4Deduction.DeductionUsed)
	assert.Equal(t, 46150.0, result.Phase5TaxableIncome.TaxableIncome)

	// 10% of 11,925 plus 12% of the remainder.
	assert.Equal(t, 5299.50, result.Phase6RegularTax.Tax)
	assert.Equal(t, 0.12, result.Phase6RegularTax.MarginalRate)

	assert.Equal(t, 0.0, result.Phase7SelfEmploymentTax.TotalSETax)
	assert.Equal(t, 0.0, result.Phase8InvestmentTax.TotalInvestmentTax)

	assert.Equal(t, 5299.50, result.Phase9TotalLiability.TotalLiability)
	assert.Equal(t, 5000.0, result.Phase10Withholdings.FederalWithholding)
	assert.Equal(t, 299.50, result.Phase11FinalBalance.FinalBalance)
	assert.Equal(t, types.BalanceStatusOwed, result.Phase11FinalBalance.Status)

	assert.Equal(t, types.FilingStatusSingle, result.Metadata.FilingStatus)
	assert.Equal(t, TaxYear, result.Metadata.TaxYear)
}

func TestCalculateBracketBreakdown(t *testing.T) {
	ledger := ledgerWith(types.IncomeTotals{Wages: 60000}, types.WithholdingTotals{})
	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{})

	lines := result.Phase6RegularTax.Brackets
	require.Len(t, lines, 2)

	assert.Equal(t, 0.10, lines[0].Rate)
	assert.Equal(t, 11925.0, lines[0].AmountTaxed)
	assert.Equal(t, 1192.50, lines[0].TaxForBracket)

	assert.Equal(t, 0.12, lines[1].Rate)
	assert.Equal(t, 34225.0, lines[1].AmountTaxed)
	assert.Equal(t, 4107.0, lines[1].TaxForBracket)
	assert.Equal(t, 5299.50, lines[1].CumulativeTax)
}

// tax(income) is non-decreasing and the marginal rate equals the rate of the
// highest bracket reached.
func TestBracketMonotonicity(t *testing.T) {
	incomes := []float64{0, 5000, 11925, 11926, 30000, 48475, 100000, 103350,
		200000, 250525, 400000, 626350, 1000000}

	prevTax := decimal.Zero
	for _, income := range incomes {
		tax, marginal, _ := computeBracketTax(d(income), ordinaryBrackets[types.FilingStatusSingle])
		assert.True(t, tax.GreaterThanOrEqual(prevTax),
			"tax(%v) = %s < tax at lower income %s", income, tax, prevTax)
		prevTax = tax

		// Recover the expected marginal rate from the table.
		expected := 0.0
		for _, b := range ordinaryBrackets[types.FilingStatusSingle] {
			if income > b.Min {
				expected = b.Rate
			}
		}
		assert.Equal(t, expected, marginal, "marginal rate at %v", income)
	}
}

func TestCalculateSelfEmploymentTax(t *testing.T) {
	ledger := ledgerWith(types.IncomeTotals{NonEmployeeCompensation: 50000}, types.WithholdingTotals{})
	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{})

	se := result.Phase7SelfEmploymentTax
	assert.Equal(t, 50000.0, se.GrossSEIncome)
	assert.Equal(t, 46175.0, se.NetSEIncome) // 50,000 * 0.9235
	assert.Equal(t, 5725.70, se.SocialSecurityTax)
	assert.Equal(t, 1339.08, se.MedicareTax)
	assert.Equal(t, 0.0, se.AdditionalMedicareTax)
	assert.Equal(t, 7064.78, se.TotalSETax)
	assert.Equal(t, 3532.39, se.SETaxDeduction)

	// The deduction feeds back into AGI.
	assert.Equal(t, 46467.61, result.Phase3AGI.AGI)
	assert.Equal(t, 3532.39, result.Phase3AGI.SETaxDeduction)
}

func TestSelfEmploymentTaxWageBaseAndAdditionalMedicare(t *testing.T) {
	se := computeSelfEmploymentTax(d(250000), types.FilingStatusSingle)

	assert.Equal(t, 230875.0, se.NetSEIncome)
	// Social Security stops at the wage base.
	assert.Equal(t, 21836.40, se.SocialSecurityTax)
	assert.Equal(t, 6695.38, se.MedicareTax)
	// 0.9% above the 200k single threshold.
	assert.Equal(t, 277.88, se.AdditionalMedicareTax)
	assert.Equal(t, 28809.66, se.TotalSETax)
	assert.Equal(t, 14404.83, se.SETaxDeduction)
}

func TestSelfEmploymentTaxZeroGross(t *testing.T) {
	se := computeSelfEmploymentTax(decimal.Zero, types.FilingStatusSingle)
	assert.Equal(t, types.SelfEmploymentTax{}, se)
}

func TestStackedPreferentialTax(t *testing.T) {
	// 20k of gains stacked on 40k ordinary: 8,350 falls in the 0% tier,
	// 11,650 in the 15% tier.
	tax := computeStackedPreferentialTax(d(20000), d(40000), capitalGainsBrackets[types.FilingStatusSingle])
	assert.Equal(t, 1747.50, fl(tax))

	// Entirely inside the 0% tier.
	tax = computeStackedPreferentialTax(d(10000), d(20000), capitalGainsBrackets[types.FilingStatusSingle])
	assert.Equal(t, 0.0, fl(tax))

	// No preferential income, no tax.
	tax = computeStackedPreferentialTax(decimal.Zero, d(500000), capitalGainsBrackets[types.FilingStatusSingle])
	assert.Equal(t, 0.0, fl(tax))
}

func TestCalculateNIIT(t *testing.T) {
	// AGI 260k: 60k over the single threshold, NII of 20k is the smaller
	// base. 20,000 * 3.8% = 760.
	ledger := ledgerWith(
		types.IncomeTotals{Wages: 240000, Interest: 10000, Dividends: 10000},
		types.WithholdingTotals{},
	)
	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{})

	assert.Equal(t, 260000.0, result.Phase3AGI.AGI)
	assert.Equal(t, 20000.0, result.Phase8InvestmentTax.NetInvestmentIncome)
	assert.Equal(t, 760.0, result.Phase8InvestmentTax.NIIT)
	assert.Equal(t, 760.0, result.Phase8InvestmentTax.TotalInvestmentTax)
}

func TestCalculateNIITBelowThreshold(t *testing.T) {
	ledger := ledgerWith(
		types.IncomeTotals{Wages: 100000, Interest: 5000},
		types.WithholdingTotals{},
	)
	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{})
	assert.Equal(t, 0.0, result.Phase8InvestmentTax.NIIT)
}

func TestCalculateItemizedDeduction(t *testing.T) {
	ledger := ledgerWith(types.IncomeTotals{Wages: 80000}, types.WithholdingTotals{})

	result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{
		UseItemized:    true,
		ItemizedAmount: 20000,
	})
	assert.Equal(t, types.DeductionItemized, result.Phase4Deduction.DeductionUsed)
	assert.Equal(t, 20000.0, result.Phase4Deduction.DeductionAmount)
	assert.Equal(t, 60000.0, result.Phase5TaxableIncome.TaxableIncome)

	// Electing to itemize never yields less than the standard deduction.
	result = Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{
		UseItemized:    true,
		ItemizedAmount: 5000,
	})
	assert.Equal(t, types.DeductionStandard, result.Phase4Deduction.DeductionUsed)
	assert.Equal(t, 13850.0, result.Phase4Deduction.DeductionAmount)
}

// finalBalance = totalLiability - (federalWithholding + estimatedPayments),
// and the status follows its sign.
func TestBalanceIdentity(t *testing.T) {
	tests := []struct {
		name       string
		wages      float64
		withheld   float64
		estimated  float64
		wantStatus string
	}{
		{"owed", 60000, 1000, 0, types.BalanceStatusOwed},
		{"refund", 60000, 8000, 0, types.BalanceStatusRefund},
		{"refund via estimated payments", 60000, 4000, 4000, types.BalanceStatusRefund},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := ledgerWith(
				types.IncomeTotals{Wages: tt.wages},
				types.WithholdingTotals{FederalTax: tt.withheld},
			)
			result := Calculate(ledger, types.FilingStatusSingle, types.CalculationOptions{
				EstimatedPayments: tt.estimated,
			})

			liability := result.Phase9TotalLiability.TotalLiability
			payments := tt.withheld + tt.estimated
			assert.InDelta(t, liability-payments, result.Phase11FinalBalance.FinalBalance, 0.001)
			assert.Equal(t, tt.wantStatus, result.Phase11FinalBalance.Status)
		})
	}
}

func TestCalculateEmptyLedger(t *testing.T) {
	result := Calculate(types.TaxDocumentData{}, types.FilingStatusSingle, types.CalculationOptions{})

	assert.Equal(t, 0.0, result.Phase2IncomeAggregation.TotalIncome)
	assert.Equal(t, 0.0, result.Phase5TaxableIncome.TaxableIncome)
	assert.Equal(t, 0.0, result.Phase9TotalLiability.TotalLiability)
	assert.Equal(t, 0.0, result.Phase11FinalBalance.FinalBalance)
	assert.Equal(t, types.BalanceStatusEven, result.Phase11FinalBalance.Status)
	assert.Equal(t, 0.0, result.Summary.EffectiveRate)
}

func TestCalculateMarriedJointUsesOwnTables(t *testing.T) {
	ledger := ledgerWith(types.IncomeTotals{Wages: 60000}, types.WithholdingTotals{})
	result := Calculate(ledger, types.FilingStatusMarriedJoint, types.CalculationOptions{})

	assert.Equal(t, 27700.0, result.Phase4Deduction.DeductionAmount)
	// 60,000 - 27,700 = 32,300; 10% of 23,850 plus 12% of 8,450.
	assert.Equal(t, 32300.0, result.Phase5TaxableIncome.TaxableIncome)
	assert.Equal(t, 3399.0, result.Phase6RegularTax.Tax)
}

func TestCalculateInvalidFilingStatusDefaultsToSingle(t *testing.T) {
	ledger := ledgerWith(types.IncomeTotals{Wages: 60000}, types.WithholdingTotals{})
	result := Calculate(ledger, types.FilingStatus("bogus"), types.CalculationOptions{})
	assert.Equal(t, types.FilingStatusSingle, result.Metadata.FilingStatus)
	assert.Equal(t, 13850.0, result.Phase4Deduction.DeductionAmount)
}
