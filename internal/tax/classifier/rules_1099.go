package classifier

import "github.com/filebright/filebright-backend/types"

// int1099Rules classify 1099-INT fields. Boxes 1, 3, 8, and 9 are interest
// income variants; Box 2 is an early-withdrawal penalty (an adjustment, not
// income) and must never reach the ledger.
var int1099Rules = []Rule{
	{
		Match:  anyOf(contains("earlywithdrawalpenalty"), box("2")),
		Result: ignore("1099-INT Box 2", "Early withdrawal penalty (adjustment, not income)"),
	},
	{
		Match:  anyOf(contains("interestonustreasury"), contains("savingsbonds"), box("3")),
		Result: income(types.CategoryInterest, "1099-INT Box 3", "US savings bond and Treasury interest"),
	},
	{
		Match:  anyOf(contains("federalincometaxwithheld"), box("4")),
		Result: withholding(types.CategoryFederalTax, "1099-INT Box 4", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("foreigntaxpaid"), box("6")),
		Result: ignore("1099-INT Box 6", "Foreign tax paid (credit, not income)"),
	},
	{
		Match:  anyOf(contains("taxexemptinterest"), box("8")),
		Result: income(types.CategoryInterest, "1099-INT Box 8", "Tax-exempt interest"),
	},
	{
		Match:  anyOf(contains("privateactivitybond"), box("9")),
		Result: income(types.CategoryInterest, "1099-INT Box 9", "Specified private activity bond interest"),
	},
	{
		Match:  anyOf(contains("statetaxwithheld"), box("17")),
		Result: withholding(types.CategoryStateTax, "1099-INT Box 17", "State tax withheld"),
	},
	{
		// Ordered after the more specific interest variants so "tax-exempt
		// interest" and Treasury interest resolve to their own boxes.
		Match:  anyOf(contains("interestincome"), box("1")),
		Result: income(types.CategoryInterest, "1099-INT Box 1", "Interest income"),
	},
}

// div1099Rules classify 1099-DIV fields. Box 1b (qualified dividends) is a
// subset of Box 1a and is ignored to avoid double-counting; the qualified
// split is resolved later by the federal engine's preferential-rate phase.
var div1099Rules = []Rule{
	{
		Match:  anyOf(contains("qualifieddividends"), box("1b")),
		Result: ignore("1099-DIV Box 1b", "Qualified dividends (subset of Box 1a, already counted)"),
	},
	{
		Match:  anyOf(contains("unrecapturedsection1250"), box("2b")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2b", "Unrecaptured section 1250 gain"),
	},
	{
		Match:  anyOf(contains("section1202"), box("2c")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2c", "Section 1202 gain"),
	},
	{
		Match:  anyOf(contains("collectibles"), box("2d")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2d", "Collectibles (28%) gain"),
	},
	{
		Match:  anyOf(contains("section897ordinary"), box("2e")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2e", "Section 897 ordinary dividends"),
	},
	{
		Match:  anyOf(contains("section897capitalgain"), box("2f")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2f", "Section 897 capital gain"),
	},
	{
		Match:  anyOf(contains("totalcapitalgain"), contains("capitalgaindistr"), box("2a")),
		Result: income(types.CategoryDividends, "1099-DIV Box 2a", "Total capital gain distributions"),
	},
	{
		// After the 2e rule: "Section897OrdinaryDividends" also contains
		// the substring "ordinarydividends".
		Match:  anyOf(contains("totalordinarydividends"), contains("ordinarydividends"), box("1a")),
		Result: income(types.CategoryDividends, "1099-DIV Box 1a", "Total ordinary dividends"),
	},
	{
		Match:  anyOf(contains("nondividenddistributions"), box("3")),
		Result: income(types.CategoryDividends, "1099-DIV Box 3", "Nondividend distributions"),
	},
	{
		Match:  anyOf(contains("federalincometaxwithheld"), box("4")),
		Result: withholding(types.CategoryFederalTax, "1099-DIV Box 4", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("section199a"), box("5")),
		Result: income(types.CategoryDividends, "1099-DIV Box 5", "Section 199A dividends"),
	},
	{
		Match:  anyOf(contains("foreigntaxpaid"), box("7")),
		Result: ignore("1099-DIV Box 7", "Foreign tax paid (credit, not income)"),
	},
	{
		// Before the Box 8 rule: "NoncashLiquidationDistributions" contains
		// the substring "cashliquidation".
		Match:  anyOf(contains("noncashliquidation"), box("9")),
		Result: income(types.CategoryDividends, "1099-DIV Box 9", "Noncash liquidation distributions"),
	},
	{
		Match:  anyOf(contains("cashliquidation"), box("8")),
		Result: income(types.CategoryDividends, "1099-DIV Box 8", "Cash liquidation distributions"),
	},
	{
		Match:  anyOf(contains("exemptinterestdividends"), box("12")),
		Result: ignore("1099-DIV Box 12", "Exempt-interest dividends (not taxable income)"),
	},
	{
		Match:  box("10"),
		Result: income(types.CategoryDividends, "1099-DIV Box 10", "Box 10 distributions"),
	},
	{
		Match:  anyOf(contains("statetaxwithheld"), box("16")),
		Result: withholding(types.CategoryStateTax, "1099-DIV Box 16", "State tax withheld"),
	},
}

// nec1099Rules classify 1099-NEC fields.
var nec1099Rules = []Rule{
	{
		Match:  anyOf(contains("nonemployeecompensation"), box("1")),
		Result: income(types.CategoryNonEmployeeCompensation, "1099-NEC Box 1", "Nonemployee compensation"),
	},
	{
		Match:  anyOf(contains("directsales"), box("2")),
		Result: ignore("1099-NEC Box 2", "Direct sales indicator (checkbox, not an amount)"),
	},
	{
		Match:  anyOf(contains("federalincometaxwithheld"), box("4")),
		Result: withholding(types.CategoryFederalTax, "1099-NEC Box 4", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("statetaxwithheld"), box("5")),
		Result: withholding(types.CategoryStateTax, "1099-NEC Box 5", "State tax withheld"),
	},
	{
		Match:  anyOf(contains("stateincome"), box("7")),
		Result: ignore("1099-NEC Box 7", "State income (tax base, duplicates Box 1)"),
	},
}

// misc1099Rules classify 1099-MISC fields. Rents and royalties accumulate
// into the rental/royalty bucket; most remaining boxes are miscellaneous
// income variants.
var misc1099Rules = []Rule{
	{
		Match:  anyOf(contains("rents"), box("1")),
		Result: income(types.CategoryRentalRoyalties, "1099-MISC Box 1", "Rents"),
	},
	{
		Match:  anyOf(contains("royalties"), box("2")),
		Result: income(types.CategoryRentalRoyalties, "1099-MISC Box 2", "Royalties"),
	},
	{
		Match:  anyOf(contains("otherincome"), box("3")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 3", "Other income"),
	},
	{
		Match:  anyOf(contains("federalincometaxwithheld"), box("4")),
		Result: withholding(types.CategoryFederalTax, "1099-MISC Box 4", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("fishingboatproceeds"), box("5")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 5", "Fishing boat proceeds"),
	},
	{
		Match:  anyOf(contains("medicalandhealthcare"), contains("medicalhealthcare"), box("6")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 6", "Medical and health care payments"),
	},
	{
		Match:  anyOf(contains("directsales"), box("7")),
		Result: ignore("1099-MISC Box 7", "Direct sales indicator (checkbox, not an amount)"),
	},
	{
		Match:  anyOf(contains("substitutepayments"), box("8")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 8", "Substitute payments in lieu of dividends"),
	},
	{
		Match:  anyOf(contains("cropinsurance"), box("9")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 9", "Crop insurance proceeds"),
	},
	{
		Match:  anyOf(contains("grossproceedsattorney"), contains("attorney"), box("10")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 10", "Gross proceeds paid to an attorney"),
	},
	{
		Match:  anyOf(contains("fishpurchased"), box("11")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 11", "Fish purchased for resale"),
	},
	{
		Match:  anyOf(contains("section409a"), box("12")),
		Result: income(types.CategoryMiscellaneousIncome, "1099-MISC Box 12", "Section 409A deferrals"),
	},
	{
		Match:  anyOf(contains("excessgoldenparachute"), box("14")),
		Result: ignore("1099-MISC Box 14", "Excess golden parachute payments (separate excise treatment)"),
	},
	{
		Match:  anyOf(contains("statetaxwithheld"), box("16")),
		Result: withholding(types.CategoryStateTax, "1099-MISC Box 16", "State tax withheld"),
	},
	{
		Match:  anyOf(contains("stateincome"), box("18")),
		Result: ignore("1099-MISC Box 18", "State income (tax base, duplicates federal boxes)"),
	},
}
