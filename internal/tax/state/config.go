// Package state implements the state income tax engine. Each state is
// described by a static configuration entry (embedded YAML, loaded once at
// process start and never mutated) classifying it as no-tax, flat,
// progressive, or a special narrow-base regime.
package state

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/filebright/filebright-backend/types"
	"gopkg.in/yaml.v3"
)

//go:embed states.yaml
var statesYAML []byte

// Regime is the broad classification of a state's income tax.
type Regime string

const (
	RegimeNoTax       Regime = "no_tax"
	RegimeFlat        Regime = "flat"
	RegimeProgressive Regime = "progressive"
	RegimeSpecial     Regime = "special"
)

// Bracket is one tier of a state rate schedule. Max of 0 means unbounded.
type Bracket struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Rate float64 `yaml:"rate"`
}

// CreditConfig describes one state credit. Per selects the qualifying unit;
// a credit with PhaseOutAbove set is denied entirely once income exceeds it.
type CreditConfig struct {
	Name          string   `yaml:"name"`
	Amount        float64  `yaml:"amount"`
	Per           string   `yaml:"per"` // return, filer, dependent, dependent_under_17
	FilingStatus  []string `yaml:"filing_status,omitempty"`
	PhaseOutAbove float64  `yaml:"phase_out_above,omitempty"`
}

// SpecialConfig describes a narrow-base regime, currently only the
// capital-gains excise pattern (Washington).
type SpecialConfig struct {
	Kind      string  `yaml:"kind"`
	Exemption float64 `yaml:"exemption"`
	Rate      float64 `yaml:"rate"`
}

// StateConfig is the full per-state entry.
type StateConfig struct {
	Name                    string               `yaml:"name"`
	Regime                  Regime               `yaml:"regime"`
	UsesFederalAGI          bool                 `yaml:"uses_federal_agi"`
	FlatRate                float64              `yaml:"flat_rate,omitempty"`
	StandardDeduction       map[string]float64   `yaml:"standard_deduction,omitempty"`
	AllowsItemized          bool                 `yaml:"allows_itemized,omitempty"`
	PersonalExemption       float64              `yaml:"personal_exemption,omitempty"`
	DependentExemption      float64              `yaml:"dependent_exemption,omitempty"`
	ExemptionPhaseOutAbove  float64              `yaml:"exemption_phase_out_above,omitempty"`
	Brackets                map[string][]Bracket `yaml:"brackets,omitempty"`
	Credits                 []CreditConfig       `yaml:"credits,omitempty"`
	Special                 *SpecialConfig       `yaml:"special,omitempty"`
}

type configFile struct {
	States map[string]StateConfig `yaml:"states"`
}

var (
	stateConfigs map[string]StateConfig
	// nameToCode maps lowercase full state names to their 2-letter codes.
	nameToCode map[string]string
)

func init() {
	var parsed configFile
	if err := yaml.Unmarshal(statesYAML, &parsed); err != nil {
		panic(fmt.Sprintf("state tax configuration is invalid: %v", err))
	}

	stateConfigs = parsed.States
	nameToCode = make(map[string]string, len(stateConfigs))
	for code, cfg := range stateConfigs {
		nameToCode[strings.ToLower(cfg.Name)] = code
	}
}

// NormalizeStateCode resolves full state names and abbreviations
// (case-insensitive) to a canonical 2-letter code. The second return is false
// when the input matches no known state.
func NormalizeStateCode(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	upper := strings.ToUpper(trimmed)
	if len(upper) == 2 {
		if _, ok := stateConfigs[upper]; ok {
			return upper, true
		}
		return "", false
	}

	if code, ok := nameToCode[strings.ToLower(trimmed)]; ok {
		return code, true
	}
	return "", false
}

// Profile is the public summary of a state's tax regime, served by the
// state lookup endpoint.
type Profile struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Regime         Regime  `json:"regime"`
	FlatRate       float64 `json:"flatRate,omitempty"`
	UsesFederalAGI bool    `json:"usesFederalAgi"`
}

// GetProfile resolves a state name or code to its regime profile. The second
// return is false for unrecognized states.
func GetProfile(input string) (Profile, bool) {
	code, ok := NormalizeStateCode(input)
	if !ok {
		return Profile{}, false
	}
	cfg := stateConfigs[code]
	return Profile{
		Code:           code,
		Name:           cfg.Name,
		Regime:         cfg.Regime,
		FlatRate:       cfg.FlatRate,
		UsesFederalAGI: cfg.UsesFederalAGI,
	}, true
}

// deductionFor picks the standard deduction for a filing status, falling
// back joint→single the way most state schedules collapse.
func (c StateConfig) deductionFor(fs types.FilingStatus) float64 {
	if len(c.StandardDeduction) == 0 {
		return 0
	}

	if amount, ok := c.StandardDeduction[string(fs)]; ok {
		return amount
	}

	switch fs {
	case types.FilingStatusMarriedJoint, types.FilingStatusQualifyingWidow:
		if amount, ok := c.StandardDeduction["married_joint"]; ok {
			return amount
		}
	}
	return c.StandardDeduction["single"]
}

// scheduleFor picks the bracket schedule for a filing status. States publish
// at most single and married-joint schedules here; separate filers and heads
// of household use the single schedule, surviving spouses the joint one.
func (c StateConfig) scheduleFor(fs types.FilingStatus) []Bracket {
	if c.Brackets == nil {
		return nil
	}

	if schedule, ok := c.Brackets[string(fs)]; ok {
		return schedule
	}

	switch fs {
	case types.FilingStatusMarriedJoint, types.FilingStatusQualifyingWidow:
		if schedule, ok := c.Brackets["married_joint"]; ok {
			return schedule
		}
	}
	return c.Brackets["single"]
}
