// Package federal implements the multi-phase federal tax calculation. The
// computation runs as eleven ordered phases, each a pure function of the
// previous phase's output plus the static tables in tables.go. Every monetary
// phase output is rounded to the cent at the phase boundary, not deferred to
// the end; downstream phases consume the rounded values.
package federal

import (
	"time"

	"github.com/filebright/filebright-backend/types"
	"github.com/shopspring/decimal"
)

var (
	half         = decimal.NewFromFloat(0.5)
	seFactor     = decimal.NewFromFloat(seNetEarningsFactor)
	ssRateDec    = decimal.NewFromFloat(socialSecurityRate)
	medRateDec   = decimal.NewFromFloat(medicareRate)
	addlRateDec  = decimal.NewFromFloat(additionalMedicareRate)
	niitRateDec  = decimal.NewFromFloat(niitRate)
	ssWageBase   = decimal.NewFromInt(socialSecurityWageBase)
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func r2(x decimal.Decimal) decimal.Decimal { return x.Round(2) }

func fl(x decimal.Decimal) float64 {
	f, _ := x.Float64()
	return f
}

// Calculate runs the full federal computation for an aggregated ledger.
// Inputs are validated numeric ledger values by construction, so the engine
// carries no internal error paths.
func Calculate(ledger types.TaxDocumentData, filingStatus types.FilingStatus, opts types.CalculationOptions) *types.ComprehensiveTaxResult {
	if !filingStatus.Valid() {
		filingStatus = types.FilingStatusSingle
	}

	taxYear := opts.TaxYear
	if taxYear == 0 {
		taxYear = TaxYear
	}

	// Phase 1: income collection. Qualified dividends and capital gains are
	// placeholders until brokerage import lands; they flow through the
	// preferential-rate machinery below when populated.
	p1 := types.IncomeCollection{
		Wages:                   fl(r2(d(ledger.Income.Wages))),
		Interest:                fl(r2(d(ledger.Income.Interest))),
		OrdinaryDividends:       fl(r2(d(ledger.Income.Dividends))),
		NonEmployeeCompensation: fl(r2(d(ledger.Income.NonEmployeeCompensation))),
		MiscellaneousIncome:     fl(r2(d(ledger.Income.MiscellaneousIncome))),
		RentalRoyalties:         fl(r2(d(ledger.Income.RentalRoyalties))),
		OtherIncome:             fl(r2(d(ledger.Income.Other))),
	}

	// Phase 2: income aggregation.
	ordinary := r2(d(p1.Wages).Add(d(p1.Interest)).Add(d(p1.OrdinaryDividends)).
		Add(d(p1.NonEmployeeCompensation)).Add(d(p1.MiscellaneousIncome)).
		Add(d(p1.RentalRoyalties)).Add(d(p1.OtherIncome)))
	preferential := r2(d(p1.QualifiedDividends).Add(d(p1.CapitalGains)))
	taxExempt := r2(d(p1.TaxExemptInterest))
	totalIncome := r2(ordinary.Add(preferential))

	p2 := types.IncomeAggregation{
		OrdinaryIncome:     fl(ordinary),
		PreferentialIncome: fl(preferential),
		TaxExemptIncome:    fl(taxExempt),
		TotalIncome:        fl(totalIncome),
	}

	// Phase 7 is computed ahead of phase 3 because half the SE tax is an
	// above-the-line deduction. This is a single-pass approximation of the
	// mutual AGI/SE-tax dependency, matching the reference behavior.
	p7 := computeSelfEmploymentTax(d(p1.NonEmployeeCompensation), filingStatus)

	// Phase 3: adjusted gross income.
	seDeduction := d(p7.SETaxDeduction)
	agi := totalIncome.Sub(seDeduction)
	if agi.IsNegative() {
		agi = decimal.Zero
	}
	agi = r2(agi)

	p3 := types.AdjustedGrossIncome{
		TotalIncome:      fl(totalIncome),
		SETaxDeduction:   fl(seDeduction),
		TotalAdjustments: fl(seDeduction),
		AGI:              fl(agi),
	}

	// Phase 4: deduction determination.
	standard := d(standardDeductions[filingStatus])
	deductionUsed := types.DeductionStandard
	deductionAmount := standard
	if opts.UseItemized && d(opts.ItemizedAmount).GreaterThan(standard) {
		deductionUsed = types.DeductionItemized
		deductionAmount = d(opts.ItemizedAmount)
	}
	deductionAmount = r2(deductionAmount)

	p4 := types.DeductionDetermination{
		StandardDeduction: fl(standard),
		ItemizedAmount:    fl(r2(d(opts.ItemizedAmount))),
		DeductionUsed:     deductionUsed,
		DeductionAmount:   fl(deductionAmount),
	}

	// Phase 5: taxable income.
	taxable := agi.Sub(deductionAmount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxable = r2(taxable)

	p5 := types.TaxableIncome{
		AGI:             fl(agi),
		DeductionAmount: fl(deductionAmount),
		TaxableIncome:   fl(taxable),
	}

	// Phase 6: regular tax on the ordinary portion of taxable income. The
	// preferential portion is stacked on top in phase 8.
	ordinaryTaxable := taxable.Sub(preferential)
	if ordinaryTaxable.IsNegative() {
		ordinaryTaxable = decimal.Zero
	}

	regularTax, marginalRate, lines := computeBracketTax(ordinaryTaxable, ordinaryBrackets[filingStatus])

	effectiveRegular := 0.0
	if ordinaryTaxable.IsPositive() {
		effectiveRegular = fl(regularTax.Div(ordinaryTaxable).Round(4))
	}

	p6 := types.RegularTax{
		TaxableIncome: fl(ordinaryTaxable),
		Tax:           fl(regularTax),
		MarginalRate:  marginalRate,
		EffectiveRate: effectiveRegular,
		Brackets:      lines,
	}

	// Phase 8: preferential-rate tax plus NIIT.
	p8 := computeInvestmentTax(p1, preferential, ordinaryTaxable, agi, filingStatus, ledger)

	// Phase 9: total liability.
	totalTax := r2(regularTax.Add(d(p7.TotalSETax)).Add(d(p8.TotalInvestmentTax)))

	p9 := types.TotalLiability{
		RegularTax:        fl(regularTax),
		SelfEmploymentTax: p7.TotalSETax,
		InvestmentTax:     p8.TotalInvestmentTax,
		TotalLiability:    fl(totalTax),
	}

	// Phase 10: withholdings and payments pass through unchanged. Only
	// federal withholding and estimated payments credit against federal
	// liability; the rest is informational.
	fedWithholding := r2(d(ledger.Withholdings.FederalTax))
	estimated := r2(d(opts.EstimatedPayments))
	totalPayments := r2(fedWithholding.Add(estimated))

	p10 := types.WithholdingsAndPayments{
		FederalWithholding:        fl(fedWithholding),
		StateWithholding:          fl(r2(d(ledger.Withholdings.StateTax))),
		SocialSecurityWithholding: fl(r2(d(ledger.Withholdings.SocialSecurityTax))),
		MedicareWithholding:       fl(r2(d(ledger.Withholdings.MedicareTax))),
		EstimatedPayments:         fl(estimated),
		TotalPayments:             fl(totalPayments),
	}

	// Phase 11: final balance. Negative means refund.
	balance := r2(totalTax.Sub(totalPayments))
	status := types.BalanceStatusEven
	switch {
	case balance.IsNegative():
		status = types.BalanceStatusRefund
	case balance.IsPositive():
		status = types.BalanceStatusOwed
	}

	p11 := types.FinalBalance{
		TotalLiability: fl(totalTax),
		TotalPayments:  fl(totalPayments),
		FinalBalance:   fl(balance),
		Status:         status,
	}

	effective := 0.0
	if totalIncome.IsPositive() {
		effective = fl(totalTax.Div(totalIncome).Round(4))
	}

	return &types.ComprehensiveTaxResult{
		Phase1IncomeCollection:  p1,
		Phase2IncomeAggregation: p2,
		Phase3AGI:               p3,
		Phase4Deduction:         p4,
		Phase5TaxableIncome:     p5,
		Phase6RegularTax:        p6,
		Phase7SelfEmploymentTax: p7,
		Phase8InvestmentTax:     p8,
		Phase9TotalLiability:    p9,
		Phase10Withholdings:     p10,
		Phase11FinalBalance:     p11,
		Summary: types.FederalTaxSummary{
			TotalIncome:   fl(totalIncome),
			AGI:           fl(agi),
			TaxableIncome: fl(taxable),
			TotalTax:      fl(totalTax),
			TotalPayments: fl(totalPayments),
			FinalBalance:  fl(balance),
			EffectiveRate: effective,
			MarginalRate:  marginalRate,
		},
		Metadata: types.CalculationMetadata{
			FilingStatus:  filingStatus,
			TaxYear:       taxYear,
			DeductionUsed: deductionUsed,
			CalculatedAt:  time.Now().UTC(),
		},
	}
}

// computeBracketTax applies the standard marginal-bracket algorithm: each
// bracket taxes the slice of income between its bounds at its rate. Returns
// the rounded total, the marginal rate of the highest bracket reached, and a
// line-item breakdown.
func computeBracketTax(income decimal.Decimal, brackets []bracket) (decimal.Decimal, float64, []types.BracketLine) {
	lines := []types.BracketLine{}
	cumulative := decimal.Zero
	marginal := 0.0

	for _, b := range brackets {
		lower := d(b.Min)
		if income.LessThanOrEqual(lower) {
			break
		}

		upper := income
		if b.Max > 0 && d(b.Max).LessThan(income) {
			upper = d(b.Max)
		}

		amount := upper.Sub(lower)
		taxForBracket := r2(amount.Mul(d(b.Rate)))
		cumulative = r2(cumulative.Add(taxForBracket))
		marginal = b.Rate

		lines = append(lines, types.BracketLine{
			BracketMin:    b.Min,
			BracketMax:    b.Max,
			Rate:          b.Rate,
			AmountTaxed:   fl(amount),
			TaxForBracket: fl(taxForBracket),
			CumulativeTax: fl(cumulative),
		})
	}

	return cumulative, marginal, lines
}

// computeSelfEmploymentTax applies §1401: net SE earnings are 92.35% of gross
// SE income; Social Security applies up to the wage base, Medicare to all of
// it, and the 0.9% additional Medicare above the filing-status threshold.
func computeSelfEmploymentTax(grossSE decimal.Decimal, filingStatus types.FilingStatus) types.SelfEmploymentTax {
	if !grossSE.IsPositive() {
		return types.SelfEmploymentTax{}
	}

	netSE := r2(grossSE.Mul(seFactor))

	ssBase := netSE
	if ssBase.GreaterThan(ssWageBase) {
		ssBase = ssWageBase
	}
	ssTax := r2(ssBase.Mul(ssRateDec))
	medicareTax := r2(netSE.Mul(medRateDec))

	additional := decimal.Zero
	threshold := d(additionalMedicareThresholds[filingStatus])
	if netSE.GreaterThan(threshold) {
		additional = r2(netSE.Sub(threshold).Mul(addlRateDec))
	}

	total := r2(ssTax.Add(medicareTax).Add(additional))
	deduction := r2(total.Mul(half))

	return types.SelfEmploymentTax{
		GrossSEIncome:         fl(grossSE),
		NetSEIncome:           fl(netSE),
		SocialSecurityTax:     fl(ssTax),
		MedicareTax:           fl(medicareTax),
		AdditionalMedicareTax: fl(additional),
		TotalSETax:            fl(total),
		SETaxDeduction:        fl(deduction),
	}
}

// computeInvestmentTax stacks preferential income on top of ordinary taxable
// income through the capital-gains brackets, then adds NIIT when AGI exceeds
// the filing-status threshold.
func computeInvestmentTax(p1 types.IncomeCollection, preferential, ordinaryTaxable, agi decimal.Decimal, filingStatus types.FilingStatus, ledger types.TaxDocumentData) types.InvestmentTax {
	preferentialTax := computeStackedPreferentialTax(preferential, ordinaryTaxable, capitalGainsBrackets[filingStatus])

	// Net investment income: interest, dividends, capital gains, and passive
	// rental/royalty income.
	nii := r2(d(ledger.Income.Interest).
		Add(d(ledger.Income.Dividends)).
		Add(d(ledger.Income.RentalRoyalties)).
		Add(preferential))

	niit := decimal.Zero
	threshold := d(niitThresholds[filingStatus])
	if agi.GreaterThan(threshold) && nii.IsPositive() {
		excess := agi.Sub(threshold)
		base := nii
		if excess.LessThan(base) {
			base = excess
		}
		niit = r2(base.Mul(niitRateDec))
	}

	total := r2(preferentialTax.Add(niit))

	return types.InvestmentTax{
		QualifiedDividends:  p1.QualifiedDividends,
		CapitalGains:        p1.CapitalGains,
		PreferentialIncome:  fl(preferential),
		PreferentialTax:     fl(preferentialTax),
		NetInvestmentIncome: fl(nii),
		NIIT:                fl(niit),
		TotalInvestmentTax:  fl(total),
	}
}

// computeStackedPreferentialTax taxes the preferential slice that sits
// between ordinaryTaxable and ordinaryTaxable+preferential in the 0/15/20%
// brackets.
func computeStackedPreferentialTax(preferential, ordinaryTaxable decimal.Decimal, brackets []bracket) decimal.Decimal {
	if !preferential.IsPositive() {
		return decimal.Zero
	}

	top := ordinaryTaxable.Add(preferential)
	tax := decimal.Zero

	for _, b := range brackets {
		lower := d(b.Min)
		if ordinaryTaxable.GreaterThan(lower) {
			lower = ordinaryTaxable
		}

		upper := top
		if b.Max > 0 && d(b.Max).LessThan(top) {
			upper = d(b.Max)
		}

		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(d(b.Rate)))
		}
	}

	return r2(tax)
}
