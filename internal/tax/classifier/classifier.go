// Package classifier maps raw OCR field names to strict income/withholding
// categories. Field names are vendor-controlled and unreliable: the same box
// may arrive as a semantic name ("FederalIncomeTaxWithheld"), a bare box
// reference ("Box2"), or a transaction-array path ("Transactions[0].Box1a").
//
// Classification is driven by ordered rule tables. Order is load-bearing:
// guard rules (state identification numbers, qualified-dividend subsets) are
// evaluated ahead of the broader rules they would otherwise collide with.
package classifier

import (
	"regexp"
	"strings"

	"github.com/filebright/filebright-backend/types"
)

// Rule pairs a predicate over the normalized field name with the verdict to
// return when it matches. Rules are evaluated strictly in slice order.
type Rule struct {
	Match  func(name string) bool
	Result types.ClassifiedField
}

// Classify resolves a single extracted field to income, withholding, or
// ignore. It never fails: unrecognized fields are ignored. The numeric value
// does not influence classification but is part of the contract so resolvers
// could consult it.
func Classify(fieldName string, value float64, documentType types.DocumentType) types.ClassifiedField {
	name := normalize(fieldName)

	// Guards run first regardless of document type. The state identification
	// number guard in particular must win over the generic state-withholding
	// rule below.
	for _, r := range guardRules {
		if r.Match(name) {
			return r.Result
		}
	}

	if rules, ok := documentRules[documentType]; ok {
		for _, r := range rules {
			if r.Match(name) {
				return r.Result
			}
		}
	}

	for _, r := range genericWithholdingRules {
		if r.Match(name) {
			return r.Result
		}
	}

	return types.ClassifiedField{
		Classification: types.ClassificationIgnore,
		Description:    "Unrecognized field",
	}
}

// normalize lowercases and strips whitespace and underscores so rule patterns
// only have to deal with one spelling.
func normalize(fieldName string) string {
	name := strings.ToLower(fieldName)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// contains builds a predicate that requires every given substring.
func contains(substrs ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range substrs {
			if !strings.Contains(name, s) {
				return false
			}
		}
		return true
	}
}

// anyOf builds a predicate that requires at least one of the given predicates.
func anyOf(preds ...func(string) bool) func(string) bool {
	return func(name string) bool {
		for _, p := range preds {
			if p(name) {
				return true
			}
		}
		return false
	}
}

var boxPatternCache = map[string]*regexp.Regexp{}

// box builds a predicate matching an exact box reference such as "1", "1a",
// or "2f". It will not match a longer reference that merely shares a prefix
// ("Box1" must not match "Box1a" or "Box12"), and it tolerates array paths
// like "transactions[0].box1a".
func box(ref string) func(string) bool {
	re, ok := boxPatternCache[ref]
	if !ok {
		re = regexp.MustCompile(`(?:^|[^a-z0-9])box0*` + ref + `(?:[^a-z0-9]|$)`)
		boxPatternCache[ref] = re
	}
	return func(name string) bool {
		return re.MatchString(name)
	}
}

func income(category, boxRef, description string) types.ClassifiedField {
	return types.ClassifiedField{
		Classification: types.ClassificationIncome,
		Category:       category,
		BoxReference:   boxRef,
		Description:    description,
	}
}

func withholding(category, boxRef, description string) types.ClassifiedField {
	return types.ClassifiedField{
		Classification: types.ClassificationWithholding,
		Category:       category,
		BoxReference:   boxRef,
		Description:    description,
	}
}

func ignore(boxRef, description string) types.ClassifiedField {
	return types.ClassifiedField{
		Classification: types.ClassificationIgnore,
		BoxReference:   boxRef,
		Description:    description,
	}
}

// guardRules are checked before everything else, for every document type.
var guardRules = []Rule{
	{
		// A state identification number is an identifier, not a withheld
		// amount, even though the name contains "state". This must be tested
		// ahead of the generic "state" + "tax" withholding rule.
		Match:  anyOf(contains("stateidentificationnumber"), contains("stateidnumber"), contains("payersstateno")),
		Result: ignore("", "State identification number (identifier, not an amount)"),
	},
	{
		Match:  anyOf(contains("employeridentificationnumber"), contains("accountnumber"), contains("taxpayeridnumber"), contains("tinnumber")),
		Result: ignore("", "Identifier field (not an amount)"),
	},
}

// genericWithholdingRules catch "tax withheld"-style fields on any form,
// including forms without a dedicated rule table. Specific payroll taxes are
// tested before the broad federal/state patterns, and the bare "withheld"
// fallback comes last.
var genericWithholdingRules = []Rule{
	{
		Match:  contains("socialsecurity", "tax"),
		Result: withholding(types.CategorySocialSecurityTax, "Box 4", "Social Security tax withheld"),
	},
	{
		Match:  contains("medicare", "tax"),
		Result: withholding(types.CategoryMedicareTax, "Box 6", "Medicare tax withheld"),
	},
	{
		Match:  anyOf(contains("federal", "withheld"), contains("federalincometax")),
		Result: withholding(types.CategoryFederalTax, "Box 4", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("state", "withheld"), contains("state", "tax")),
		Result: withholding(types.CategoryStateTax, "Box 17", "State income tax withheld"),
	},
	{
		Match:  contains("withheld"),
		Result: withholding(types.CategoryFederalTax, "", "Tax withheld"),
	},
}

// documentRules holds the per-form ordered rule tables.
var documentRules = map[types.DocumentType][]Rule{
	types.DocTypeW2:       w2Rules,
	types.DocType1099INT:  int1099Rules,
	types.DocType1099DIV:  div1099Rules,
	types.DocType1099NEC:  nec1099Rules,
	types.DocType1099MISC: misc1099Rules,
}
