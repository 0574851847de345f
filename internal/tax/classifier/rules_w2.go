package classifier

import "github.com/filebright/filebright-backend/types"

// w2Rules classify W-2 fields. Box 1 is the sole primary wage source; boxes
// 3, 5, 7, and 16 restate the same earnings for other tax bases and counting
// them would double wages.
var w2Rules = []Rule{
	{
		Match:  anyOf(contains("wagestipsothercompensation"), contains("wagestipsandothercompensation"), box("1")),
		Result: income(types.CategoryWages, "W-2 Box 1", "Wages, tips, other compensation"),
	},
	{
		Match:  anyOf(contains("federalincometaxwithheld"), box("2")),
		Result: withholding(types.CategoryFederalTax, "W-2 Box 2", "Federal income tax withheld"),
	},
	{
		Match:  anyOf(contains("socialsecuritywages"), box("3")),
		Result: ignore("W-2 Box 3", "Social Security wages (tax base, duplicates Box 1)"),
	},
	{
		Match:  anyOf(contains("socialsecuritytaxwithheld"), box("4")),
		Result: withholding(types.CategorySocialSecurityTax, "W-2 Box 4", "Social Security tax withheld"),
	},
	{
		Match:  anyOf(contains("medicarewages"), box("5")),
		Result: ignore("W-2 Box 5", "Medicare wages (tax base, duplicates Box 1)"),
	},
	{
		Match:  anyOf(contains("medicaretaxwithheld"), box("6")),
		Result: withholding(types.CategoryMedicareTax, "W-2 Box 6", "Medicare tax withheld"),
	},
	{
		Match:  anyOf(contains("socialsecuritytips"), box("7")),
		Result: ignore("W-2 Box 7", "Social Security tips (included in Box 1)"),
	},
	{
		Match:  anyOf(contains("allocatedtips"), box("8")),
		Result: ignore("W-2 Box 8", "Allocated tips (reported separately, not Box 1 income)"),
	},
	{
		Match:  anyOf(contains("dependentcarebenefits"), box("10")),
		Result: ignore("W-2 Box 10", "Dependent care benefits"),
	},
	{
		Match:  anyOf(contains("nonqualifiedplans"), box("11")),
		Result: ignore("W-2 Box 11", "Nonqualified plan distributions"),
	},
	{
		Match:  anyOf(contains("box12"), contains("codesandamounts")),
		Result: ignore("W-2 Box 12", "Coded benefit amounts (401k, HSA, etc.)"),
	},
	{
		Match:  anyOf(contains("statewages"), box("16")),
		Result: ignore("W-2 Box 16", "State wages (tax base, duplicates Box 1)"),
	},
	{
		Match:  anyOf(contains("stateincometax"), box("17")),
		Result: withholding(types.CategoryStateTax, "W-2 Box 17", "State income tax withheld"),
	},
	{
		Match:  anyOf(contains("localwages"), box("18")),
		Result: ignore("W-2 Box 18", "Local wages (tax base, duplicates Box 1)"),
	},
	{
		Match:  anyOf(contains("localincometax"), box("19")),
		Result: ignore("W-2 Box 19", "Local income tax (not tracked)"),
	},
	{
		Match:  anyOf(contains("localityname"), box("20")),
		Result: ignore("W-2 Box 20", "Locality name"),
	},
}
