// Package unified orchestrates the federal and state engines into a single
// combined result for one return.
package unified

import (
	"github.com/shopspring/decimal"

	"github.com/filebright/filebright-backend/internal/tax/federal"
	"github.com/filebright/filebright-backend/internal/tax/state"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

// Calculate runs the federal engine, then the state engine when the filer
// supplied a state, and folds both into a combined balance. The state leg
// receives the federal AGI so states that start from it line up with the
// federal result.
func Calculate(ledger types.TaxDocumentData, personal types.PersonalInfo, opts types.CalculationOptions) *types.UnifiedTaxResult {
	log := logger.GetLogger()

	filingStatus := personal.FilingStatus
	if !filingStatus.Valid() {
		filingStatus = types.FilingStatusSingle
	}

	federalResult := federal.Calculate(ledger, filingStatus, opts)

	var stateResult *types.StateTaxResult
	if personal.State != "" {
		input := types.StateTaxInput{
			State:               personal.State,
			FilingStatus:        filingStatus,
			FederalAGI:          federalResult.Phase3AGI.AGI,
			TotalIncome:         federalResult.Phase2IncomeAggregation.TotalIncome,
			DependentsUnder17:   personal.DependentsUnder17,
			Dependents17AndOver: personal.Dependents17AndOver,
			Age65OrOlder:        personal.Age65OrOlder,
			Blind:               personal.Blind,
			CapitalGains:        federalResult.Phase1IncomeCollection.CapitalGains,
			QualifiedDividends:  federalResult.Phase1IncomeCollection.QualifiedDividends,
		}
		if opts.UseItemized {
			input.ItemizedDeductions = opts.ItemizedAmount
		}
		stateResult = state.Calculate(input)
	} else {
		log.Debugw("No state provided, skipping state tax calculation")
	}

	result := &types.UnifiedTaxResult{
		Federal:  federalResult,
		State:    stateResult,
		Combined: combine(federalResult, stateResult),
	}

	log.Infow("Unified tax calculation complete",
		"filingStatus", filingStatus,
		"federalTax", result.Combined.FederalTax,
		"stateTax", result.Combined.StateTax,
		"finalBalance", result.Combined.FinalBalance,
	)
	return result
}

// combine folds both liabilities against all payments. State withholding
// credits here even though it is only informational on the federal side.
func combine(fed *types.ComprehensiveTaxResult, st *types.StateTaxResult) types.CombinedSummary {
	federalTax := decimal.NewFromFloat(fed.Phase9TotalLiability.TotalLiability)
	stateTax := decimal.Zero
	if st != nil {
		stateTax = decimal.NewFromFloat(st.StateTax)
	}
	totalTax := federalTax.Add(stateTax).Round(2)

	fedWithholding := decimal.NewFromFloat(fed.Phase10Withholdings.FederalWithholding)
	stateWithholding := decimal.NewFromFloat(fed.Phase10Withholdings.StateWithholding)
	estimated := decimal.NewFromFloat(fed.Phase10Withholdings.EstimatedPayments)
	totalPayments := fedWithholding.Add(stateWithholding).Add(estimated).Round(2)

	balance := totalTax.Sub(totalPayments).Round(2)

	federalTaxF, _ := federalTax.Float64()
	stateTaxF, _ := stateTax.Float64()
	totalTaxF, _ := totalTax.Float64()
	fedWithholdingF, _ := fedWithholding.Float64()
	stateWithholdingF, _ := stateWithholding.Float64()
	estimatedF, _ := estimated.Float64()
	totalPaymentsF, _ := totalPayments.Float64()
	balanceF, _ := balance.Float64()

	return types.CombinedSummary{
		FederalTax:         federalTaxF,
		StateTax:           stateTaxF,
		TotalTaxLiability:  totalTaxF,
		FederalWithholding: fedWithholdingF,
		StateWithholding:   stateWithholdingF,
		EstimatedPayments:  estimatedF,
		TotalPayments:      totalPaymentsF,
		FinalBalance:       balanceF,
		IsRefund:           balance.IsNegative(),
	}
}
