package state

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/types"
)

// Calculate computes state income tax for one return. It never returns an
// error: unknown states yield an Unsupported State result and any internal
// failure is converted to a Calculation Error result, both with zero tax and
// an explanatory note.
func Calculate(input types.StateTaxInput) (result *types.StateTaxResult) {
	log := logger.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			log.Errorw("State tax calculation failed", "state", input.State, "panic", r)
			result = &types.StateTaxResult{
				State:   strings.ToUpper(strings.TrimSpace(input.State)),
				TaxType: types.StateTaxTypeError,
				Notes:   []string{fmt.Sprintf("State tax could not be calculated: %v", r)},
			}
		}
	}()

	code, ok := NormalizeStateCode(input.State)
	if !ok {
		log.Warnw("Unrecognized state in tax calculation", "state", input.State)
		return &types.StateTaxResult{
			State:   strings.ToUpper(strings.TrimSpace(input.State)),
			TaxType: types.StateTaxTypeUnsupported,
			Notes:   []string{fmt.Sprintf("State %q is not recognized; state tax was not calculated", input.State)},
		}
	}

	cfg := stateConfigs[code]

	switch cfg.Regime {
	case RegimeNoTax:
		return &types.StateTaxResult{
			State:     code,
			StateName: cfg.Name,
			TaxType:   types.StateTaxTypeNone,
			Notes:     []string{fmt.Sprintf("%s has no state income tax", cfg.Name)},
		}
	case RegimeFlat, RegimeProgressive:
		return calculateIncomeTax(code, cfg, input)
	case RegimeSpecial:
		return calculateSpecial(code, cfg, input)
	default:
		return &types.StateTaxResult{
			State:     code,
			StateName: cfg.Name,
			TaxType:   types.StateTaxTypeError,
			Notes:     []string{fmt.Sprintf("%s has an unrecognized tax regime configuration", cfg.Name)},
		}
	}
}

func calculateIncomeTax(code string, cfg StateConfig, input types.StateTaxInput) *types.StateTaxResult {
	fs := input.FilingStatus
	if !fs.Valid() {
		fs = types.FilingStatusSingle
	}

	base := input.TotalIncome
	if cfg.UsesFederalAGI {
		base = input.FederalAGI
	}

	var notes []string

	deduction := cfg.deductionFor(fs)
	if cfg.AllowsItemized && input.ItemizedDeductions > deduction {
		deduction = input.ItemizedDeductions
		notes = append(notes, "Itemized deductions used in place of the state standard deduction")
	}

	exemptions := exemptionTotal(cfg, fs, input, base, &notes)

	taxable := decimal.NewFromFloat(base).
		Sub(decimal.NewFromFloat(deduction)).
		Sub(decimal.NewFromFloat(exemptions))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxable = taxable.Round(2)

	var (
		tax       decimal.Decimal
		marginal  float64
		breakdown []types.StateTaxLine
		taxType   string
	)

	if cfg.Regime == RegimeFlat {
		taxType = types.StateTaxTypeFlat
		tax = taxable.Mul(decimal.NewFromFloat(cfg.FlatRate)).Round(2)
		if taxable.IsPositive() {
			marginal = cfg.FlatRate
			amount, _ := taxable.Float64()
			lineTax, _ := tax.Float64()
			breakdown = []types.StateTaxLine{{Rate: cfg.FlatRate, AmountTaxed: amount, Tax: lineTax}}
		}
	} else {
		taxType = types.StateTaxTypeProgressive
		schedule := cfg.scheduleFor(fs)
		if len(schedule) == 0 {
			panic(fmt.Sprintf("%s is configured as progressive but has no rate schedule", cfg.Name))
		}
		tax, marginal, breakdown = bracketTax(taxable, schedule)
	}

	credits := applyCredits(cfg, fs, input, base, &notes)
	creditTotal := decimal.Zero
	for _, c := range credits {
		creditTotal = creditTotal.Add(decimal.NewFromFloat(c.Amount))
	}
	if creditTotal.IsPositive() {
		tax = tax.Sub(creditTotal)
		if tax.IsNegative() {
			tax = decimal.Zero
		}
		tax = tax.Round(2)
	}

	taxF, _ := tax.Float64()
	taxableF, _ := taxable.Float64()

	effective := 0.0
	if taxableF > 0 {
		eff, _ := tax.Div(taxable).Round(4).Float64()
		effective = eff
	}

	return &types.StateTaxResult{
		State:         code,
		StateName:     cfg.Name,
		TaxType:       taxType,
		StateTax:      taxF,
		EffectiveRate: effective,
		MarginalRate:  marginal,
		TaxableIncome: taxableF,
		Credits:       credits,
		Breakdown:     breakdown,
		Notes:         notes,
	}
}

// calculateSpecial handles narrow-base regimes. Washington taxes only
// long-term capital gains above a standard exemption.
func calculateSpecial(code string, cfg StateConfig, input types.StateTaxInput) *types.StateTaxResult {
	if cfg.Special == nil || cfg.Special.Kind != "capital_gains" {
		panic(fmt.Sprintf("%s has an incomplete special regime configuration", cfg.Name))
	}

	excess := decimal.NewFromFloat(input.CapitalGains).
		Sub(decimal.NewFromFloat(cfg.Special.Exemption))
	if excess.IsNegative() {
		excess = decimal.Zero
	}
	excess = excess.Round(2)

	tax := excess.Mul(decimal.NewFromFloat(cfg.Special.Rate)).Round(2)

	taxF, _ := tax.Float64()
	excessF, _ := excess.Float64()

	result := &types.StateTaxResult{
		State:         code,
		StateName:     cfg.Name,
		TaxType:       types.StateTaxTypeSpecial,
		StateTax:      taxF,
		TaxableIncome: excessF,
		Notes: []string{fmt.Sprintf(
			"%s taxes only long-term capital gains above a $%.0f exemption",
			cfg.Name, cfg.Special.Exemption,
		)},
	}
	if excessF > 0 {
		result.MarginalRate = cfg.Special.Rate
		result.EffectiveRate = cfg.Special.Rate
		result.Breakdown = []types.StateTaxLine{{Rate: cfg.Special.Rate, AmountTaxed: excessF, Tax: taxF}}
	}
	return result
}

// exemptionTotal sums personal and dependent exemptions, zeroing them when
// the state phases exemptions out above an income threshold.
func exemptionTotal(cfg StateConfig, fs types.FilingStatus, input types.StateTaxInput, base float64, notes *[]string) float64 {
	if cfg.PersonalExemption == 0 && cfg.DependentExemption == 0 {
		return 0
	}

	if cfg.ExemptionPhaseOutAbove > 0 && base > cfg.ExemptionPhaseOutAbove {
		*notes = append(*notes, fmt.Sprintf(
			"State exemptions phased out above $%.0f of income", cfg.ExemptionPhaseOutAbove))
		return 0
	}

	filers := 1.0
	if fs == types.FilingStatusMarriedJoint || fs == types.FilingStatusQualifyingWidow {
		filers = 2.0
	}
	dependents := float64(input.DependentsUnder17 + input.Dependents17AndOver)

	return cfg.PersonalExemption*filers + cfg.DependentExemption*dependents
}

// applyCredits evaluates the state's credit table against the return.
func applyCredits(cfg StateConfig, fs types.FilingStatus, input types.StateTaxInput, base float64, notes *[]string) []types.StateCreditApplied {
	var applied []types.StateCreditApplied

	for _, credit := range cfg.Credits {
		if len(credit.FilingStatus) > 0 && !containsStatus(credit.FilingStatus, fs) {
			continue
		}
		if credit.PhaseOutAbove > 0 && base > credit.PhaseOutAbove {
			*notes = append(*notes, fmt.Sprintf(
				"%s not available above $%.0f of income", credit.Name, credit.PhaseOutAbove))
			continue
		}

		units := 0.0
		switch credit.Per {
		case "return":
			units = 1
		case "filer":
			units = 1
			if fs == types.FilingStatusMarriedJoint || fs == types.FilingStatusQualifyingWidow {
				units = 2
			}
		case "dependent":
			units = float64(input.DependentsUnder17 + input.Dependents17AndOver)
		case "dependent_under_17":
			units = float64(input.DependentsUnder17)
		}
		if units == 0 {
			continue
		}

		applied = append(applied, types.StateCreditApplied{
			Name:   credit.Name,
			Amount: credit.Amount * units,
		})
	}
	return applied
}

func containsStatus(statuses []string, fs types.FilingStatus) bool {
	for _, s := range statuses {
		if s == string(fs) {
			return true
		}
	}
	return false
}

// bracketTax walks a graduated schedule, rounding each tier to cents.
func bracketTax(taxable decimal.Decimal, schedule []Bracket) (decimal.Decimal, float64, []types.StateTaxLine) {
	total := decimal.Zero
	marginal := 0.0
	var lines []types.StateTaxLine

	for _, b := range schedule {
		lower := decimal.NewFromFloat(b.Min)
		if taxable.LessThanOrEqual(lower) {
			break
		}

		upper := taxable
		if b.Max > 0 {
			ceiling := decimal.NewFromFloat(b.Max)
			if ceiling.LessThan(upper) {
				upper = ceiling
			}
		}

		amount := upper.Sub(lower)
		tierTax := amount.Mul(decimal.NewFromFloat(b.Rate)).Round(2)
		total = total.Add(tierTax)
		marginal = b.Rate

		amountF, _ := amount.Float64()
		tierTaxF, _ := tierTax.Float64()
		lines = append(lines, types.StateTaxLine{
			BracketMin:  b.Min,
			BracketMax:  b.Max,
			Rate:        b.Rate,
			AmountTaxed: amountF,
			Tax:         tierTaxF,
		})
	}

	return total.Round(2), marginal, lines
}
