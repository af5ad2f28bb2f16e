// Package validation checks calculation inputs against the lending rules
// before any arithmetic is attempted.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/schedule"
)

// Report is an ordered list of violation messages. An empty report means the
// input is acceptable.
type Report []string

// Empty reports whether no rule was violated.
func (r Report) Empty() bool {
	return len(r) == 0
}

// Err returns nil for an empty report and an *Error carrying every
// violation otherwise.
func (r Report) Err() error {
	if r.Empty() {
		return nil
	}
	return &Error{Violations: append([]string(nil), r...)}
}

func (r *Report) add(format string, args ...interface{}) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

// Error is returned when a calculation request violates one or more rules.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return strings.Join(e.Violations, ", ")
}

// MinimumDownPayment is 5% of the asking price up to the break point plus
// 10% of any amount above it.
func MinimumDownPayment(askingPrice float64) float64 {
	if askingPrice < constants.MinDownPaymentBreakPoint {
		return constants.MinDownPaymentBelowRate * askingPrice
	}
	return constants.MinDownPaymentBelowRate*constants.MinDownPaymentBreakPoint +
		constants.MinDownPaymentAboveRate*(askingPrice-constants.MinDownPaymentBreakPoint)
}

// InterestRateInBounds reports whether rate lies in (0, 100].
func InterestRateInBounds(rate float64) bool {
	return rate > constants.MinInterestRate && rate <= constants.MaxInterestRate
}

// ValidatePayment checks the inputs of a payment calculation. Every rule is
// evaluated; rate is only checked when supplied.
func ValidatePayment(askingPrice, downPayment float64, paymentSchedule string, amortizationPeriod int, rate *float64) Report {
	var report Report
	checkTerms(&report, paymentSchedule, amortizationPeriod, rate)

	priceOK := checkFinite(&report, "asking price", askingPrice)
	downOK := checkFinite(&report, "down payment", downPayment)

	if priceOK && downOK && downPayment > askingPrice {
		report.add("the down payment cannot exceed the asking price")
	}
	if downOK && downPayment < 0 {
		report.add("the down payment must not be negative")
	}
	if priceOK && askingPrice < 0 {
		report.add("the asking price must not be negative")
	}
	if priceOK && downOK {
		if minimum := MinimumDownPayment(askingPrice); downPayment < minimum {
			report.add("the down payment must be at least %.2f", minimum)
		}
	}
	return report
}

// ValidateMortgage checks the inputs of a maximum mortgage calculation. The
// asking price is unknown here so only the schedule, amortization and rate
// bounds apply, plus non-negative amounts.
func ValidateMortgage(payment, downPayment float64, paymentSchedule string, amortizationPeriod int, rate *float64) Report {
	var report Report
	checkTerms(&report, paymentSchedule, amortizationPeriod, rate)

	if checkFinite(&report, "payment", payment) && payment < 0 {
		report.add("the payment must not be negative")
	}
	if checkFinite(&report, "down payment", downPayment) && downPayment < 0 {
		report.add("the down payment must not be negative")
	}
	return report
}

// checkFinite reports NaN and infinite amounts, which every ordering
// comparison would otherwise let through.
func checkFinite(report *Report, name string, amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		report.add("the %s must be a finite number", name)
		return false
	}
	return true
}

func checkTerms(report *Report, paymentSchedule string, amortizationPeriod int, rate *float64) {
	if !schedule.Known(paymentSchedule) {
		report.add("payment schedule must be one of [%s]", strings.Join(schedule.Names(), ", "))
	}
	if amortizationPeriod < constants.MinAmortizationPeriod || amortizationPeriod > constants.MaxAmortizationPeriod {
		report.add("the amortization period must be between %d and %d years inclusive, got %d",
			constants.MinAmortizationPeriod, constants.MaxAmortizationPeriod, amortizationPeriod)
	}
	if rate != nil && !InterestRateInBounds(*rate) {
		report.add("the interest rate, %.3f, must be greater than zero and less than or equal to 100", *rate)
	}
}
