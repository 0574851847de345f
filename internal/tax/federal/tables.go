package federal

import "github.com/filebright/filebright-backend/types"

// TaxYear is the tax year the static tables below describe.
const TaxYear = 2025

// Self-employment tax constants (IRC §1401, §1402).
const (
	seNetEarningsFactor    = 0.9235
	socialSecurityRate     = 0.124
	medicareRate           = 0.029
	additionalMedicareRate = 0.009
	socialSecurityWageBase = 176100
)

// Net investment income tax (IRC §1411).
const niitRate = 0.038

// bracket is one tier of a progressive rate table. Max of 0 means unbounded.
type bracket struct {
	Min  float64
	Max  float64
	Rate float64
}

// ordinaryBrackets are the progressive ordinary-income tables per filing
// status.
var ordinaryBrackets = map[types.FilingStatus][]bracket{
	types.FilingStatusSingle: {
		{0, 11925, 0.10},
		{11925, 48475, 0.12},
		{48475, 103350, 0.22},
		{103350, 197300, 0.24},
		{197300, 250525, 0.32},
		{250525, 626350, 0.35},
		{626350, 0, 0.37},
	},
	types.FilingStatusMarriedJoint: {
		{0, 23850, 0.10},
		{23850, 96950, 0.12},
		{96950, 206700, 0.22},
		{206700, 394600, 0.24},
		{394600, 501050, 0.32},
		{501050, 751600, 0.35},
		{751600, 0, 0.37},
	},
	types.FilingStatusMarriedSeparate: {
		{0, 11925, 0.10},
		{11925, 48475, 0.12},
		{48475, 103350, 0.22},
		{103350, 197300, 0.24},
		{197300, 250525, 0.32},
		{250525, 375800, 0.35},
		{375800, 0, 0.37},
	},
	types.FilingStatusHeadOfHousehold: {
		{0, 17000, 0.10},
		{17000, 64850, 0.12},
		{64850, 103350, 0.22},
		{103350, 197300, 0.24},
		{197300, 250525, 0.32},
		{250525, 626350, 0.35},
		{626350, 0, 0.37},
	},
	types.FilingStatusQualifyingWidow: {
		{0, 23850, 0.10},
		{23850, 96950, 0.12},
		{96950, 206700, 0.22},
		{206700, 394600, 0.24},
		{394600, 501050, 0.32},
		{501050, 751600, 0.35},
		{751600, 0, 0.37},
	},
}

// capitalGainsBrackets are the long-term capital gains / qualified dividend
// preferential-rate tables.
var capitalGainsBrackets = map[types.FilingStatus][]bracket{
	types.FilingStatusSingle: {
		{0, 48350, 0},
		{48350, 533400, 0.15},
		{533400, 0, 0.20},
	},
	types.FilingStatusMarriedJoint: {
		{0, 96700, 0},
		{96700, 600050, 0.15},
		{600050, 0, 0.20},
	},
	types.FilingStatusMarriedSeparate: {
		{0, 48350, 0},
		{48350, 300000, 0.15},
		{300000, 0, 0.20},
	},
	types.FilingStatusHeadOfHousehold: {
		{0, 64750, 0},
		{64750, 566700, 0.15},
		{566700, 0, 0.20},
	},
	types.FilingStatusQualifyingWidow: {
		{0, 96700, 0},
		{96700, 600050, 0.15},
		{600050, 0, 0.20},
	},
}

// standardDeductions per filing status.
var standardDeductions = map[types.FilingStatus]float64{
	types.FilingStatusSingle:          13850,
	types.FilingStatusMarriedJoint:    27700,
	types.FilingStatusMarriedSeparate: 13850,
	types.FilingStatusHeadOfHousehold: 20800,
	types.FilingStatusQualifyingWidow: 27700,
}

// additionalMedicareThresholds are the 0.9% Additional Medicare Tax
// thresholds per filing status.
var additionalMedicareThresholds = map[types.FilingStatus]float64{
	types.FilingStatusSingle:          200000,
	types.FilingStatusMarriedJoint:    250000,
	types.FilingStatusMarriedSeparate: 125000,
	types.FilingStatusHeadOfHousehold: 200000,
	types.FilingStatusQualifyingWidow: 200000,
}

// niitThresholds are the NIIT MAGI thresholds per filing status.
var niitThresholds = map[types.FilingStatus]float64{
	types.FilingStatusSingle:          200000,
	types.FilingStatusMarriedJoint:    250000,
	types.FilingStatusMarriedSeparate: 125000,
	types.FilingStatusHeadOfHousehold: 200000,
	types.FilingStatusQualifyingWidow: 250000,
}
