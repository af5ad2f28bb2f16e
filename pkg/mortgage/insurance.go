package mortgage

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// InsuranceTier charges Rate (a fraction of the asking price) when the down
// payment ratio is below UpperBound.
type InsuranceTier struct {
	UpperBound float64
	Rate       float64
}

// insuranceTiers must stay sorted by UpperBound; the first match wins.
var insuranceTiers = []InsuranceTier{
	{UpperBound: 0.10, Rate: 0.0315},
	{UpperBound: 0.15, Rate: 0.024},
	{UpperBound: constants.InsuranceExemptRatioFloor, Rate: 0.018},
}

// InsuranceTiers returns a copy of the tier table.
func InsuranceTiers() []InsuranceTier {
	return append([]InsuranceTier(nil), insuranceTiers...)
}

// InsuranceRate returns the insurance rate for a down payment ratio, or 0
// when the ratio is high enough to need none.
func InsuranceRate(ratio float64) float64 {
	for _, tier := range insuranceTiers {
		if ratio < tier.UpperBound {
			return tier.Rate
		}
	}
	return 0
}

// Insurance returns the mortgage insurance owed. Homes priced at or above
// the insurance cap cannot be insured and return 0.
func Insurance(askingPrice, downPayment float64) float64 {
	if askingPrice >= constants.InsuranceMaxAskingPrice {
		return 0
	}
	return InsuranceRate(mathutil.SafeRatio(downPayment, askingPrice)) * askingPrice
}
