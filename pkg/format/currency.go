// Package format renders money and rates for logs and terminal output.
package format

import (
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	formatted := groupThousands(d.Abs().StringFixed(constants.DecimalPlaces))
	if d.Round(constants.DecimalPlaces).IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a rate expressed in percent units, e.g. 2.5 -> "2.500%".
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).StringFixed(3) + "%"
}

func groupThousands(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	if len(intPart) <= 3 {
		return fixed
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	if len(parts) == 2 {
		builder.WriteByte('.')
		builder.WriteString(parts[1])
	}
	return builder.String()
}
