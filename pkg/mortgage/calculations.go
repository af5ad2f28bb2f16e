// Package mortgage implements the amortizing payment formula, its inverse and
// the mortgage insurance lookup.
package mortgage

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/schedule"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
)

// PaymentRequest holds the inputs of a payment calculation. InterestRate is
// in percent units.
type PaymentRequest struct {
	AskingPrice        float64
	DownPayment        float64
	Schedule           string
	AmortizationPeriod int
	InterestRate       float64
}

// PaymentResult holds the payment and the intermediate values used to
// derive it.
type PaymentResult struct {
	Payment            float64 `json:"payment"`
	AskingPrice        float64 `json:"asking_price"`
	DownPayment        float64 `json:"down_payment"`
	Schedule           string  `json:"payment_schedule"`
	AmortizationPeriod int     `json:"amortization_period"`
	InterestRate       float64 `json:"interest_rate"`
	NumPayments        int     `json:"num_payments"`
	PerPaymentRate     float64 `json:"per_payment_rate"`
	PaymentsPerYear    int     `json:"payments_per_year"`
	MinimumDownPayment float64 `json:"minimum_down_payment"`
	DownPaymentRatio   float64 `json:"down_payment_ratio"`
	Insurance          float64 `json:"insurance"`
	LoanTotal          float64 `json:"loan_total"`
	Principal          float64 `json:"principal"`
}

// MortgageRequest holds the inputs of a maximum mortgage calculation. A zero
// DownPayment reports the bare loan principal.
type MortgageRequest struct {
	Payment            float64
	DownPayment        float64
	Schedule           string
	AmortizationPeriod int
	InterestRate       float64
}

// MortgageResult holds the maximum mortgage amount (loan plus down payment)
// affordable for a given payment.
type MortgageResult struct {
	MortgageAmount     float64 `json:"mortgage_amount"`
	Payment            float64 `json:"payment"`
	DownPayment        float64 `json:"down_payment"`
	Schedule           string  `json:"payment_schedule"`
	AmortizationPeriod int     `json:"amortization_period"`
	InterestRate       float64 `json:"interest_rate"`
	NumPayments        int     `json:"num_payments"`
	PerPaymentRate     float64 `json:"per_payment_rate"`
	PaymentsPerYear    int     `json:"payments_per_year"`
}

// PerPaymentRate converts an annual rate in percent to the fractional rate
// applied to one payment period.
func PerPaymentRate(annualRate float64, paymentsPerYear int) float64 {
	return mathutil.ApplyPercentage(1, annualRate) / float64(paymentsPerYear)
}

// CalculatePayment applies P = L*c*(1+c)^n / ((1+c)^n - 1). A rate too
// small to register falls back to straight-line repayment.
func CalculatePayment(principal, perPaymentRate float64, numPayments int) float64 {
	growth := math.Pow(1+perPaymentRate, float64(numPayments))
	if perPaymentRate == 0 || growth == 1 {
		return principal / float64(numPayments)
	}
	return principal * perPaymentRate * growth / (growth - 1)
}

// PrincipalForPayment is the inverse of CalculatePayment solved for the
// principal.
func PrincipalForPayment(payment, perPaymentRate float64, numPayments int) float64 {
	growth := math.Pow(1+perPaymentRate, float64(numPayments))
	if perPaymentRate == 0 || growth == 1 {
		return payment * float64(numPayments)
	}
	denominator := perPaymentRate * growth / (growth - 1)
	return payment / denominator
}

// PaymentAmount validates req and computes the recurring payment. Insurance
// is added to the principal; the minimum down payment is checked against
// the bare asking price. A *validation.Error is returned before any
// arithmetic when the request is invalid.
func PaymentAmount(req PaymentRequest) (PaymentResult, error) {
	rate := req.InterestRate
	report := validation.ValidatePayment(req.AskingPrice, req.DownPayment, req.Schedule, req.AmortizationPeriod, &rate)
	if err := report.Err(); err != nil {
		return PaymentResult{}, err
	}

	s := schedule.Normalize(req.Schedule)
	paymentsPerYear := s.PaymentsPerYear()
	numPayments := req.AmortizationPeriod * paymentsPerYear

	insurance := Insurance(req.AskingPrice, req.DownPayment)
	principal := req.AskingPrice + insurance - req.DownPayment
	perPaymentRate := PerPaymentRate(rate, paymentsPerYear)
	payment := CalculatePayment(principal, perPaymentRate, numPayments)

	return PaymentResult{
		Payment:            payment,
		AskingPrice:        req.AskingPrice,
		DownPayment:        req.DownPayment,
		Schedule:           s.String(),
		AmortizationPeriod: req.AmortizationPeriod,
		InterestRate:       rate,
		NumPayments:        numPayments,
		PerPaymentRate:     perPaymentRate,
		PaymentsPerYear:    paymentsPerYear,
		MinimumDownPayment: validation.MinimumDownPayment(req.AskingPrice),
		DownPaymentRatio:   mathutil.SafeRatio(req.DownPayment, req.AskingPrice),
		Insurance:          insurance,
		LoanTotal:          payment * float64(numPayments),
		Principal:          principal,
	}, nil
}

// MortgageAmount validates req and computes the largest asking price whose
// payment equals req.Payment, i.e. the implied principal plus the down
// payment.
func MortgageAmount(req MortgageRequest) (MortgageResult, error) {
	rate := req.InterestRate
	report := validation.ValidateMortgage(req.Payment, req.DownPayment, req.Schedule, req.AmortizationPeriod, &rate)
	if err := report.Err(); err != nil {
		return MortgageResult{}, err
	}

	s := schedule.Normalize(req.Schedule)
	paymentsPerYear := s.PaymentsPerYear()
	numPayments := req.AmortizationPeriod * paymentsPerYear
	perPaymentRate := PerPaymentRate(rate, paymentsPerYear)

	return MortgageResult{
		MortgageAmount:     PrincipalForPayment(req.Payment, perPaymentRate, numPayments) + req.DownPayment,
		Payment:            req.Payment,
		DownPayment:        req.DownPayment,
		Schedule:           s.String(),
		AmortizationPeriod: req.AmortizationPeriod,
		InterestRate:       rate,
		NumPayments:        numPayments,
		PerPaymentRate:     perPaymentRate,
		PaymentsPerYear:    paymentsPerYear,
	}, nil
}

// ToMap returns the numeric fields keyed by their wire names. Money is
// rounded to cents; rates, ratios and counts are left exact.
func (r PaymentResult) ToMap() map[string]float64 {
	return map[string]float64{
		"payment":              mathutil.Round(r.Payment),
		"asking_price":         mathutil.Round(r.AskingPrice),
		"down_payment":         mathutil.Round(r.DownPayment),
		"amortization_period":  float64(r.AmortizationPeriod),
		"interest_rate":        r.InterestRate,
		"num_payments":         float64(r.NumPayments),
		"per_payment_rate":     r.PerPaymentRate,
		"payments_per_year":    float64(r.PaymentsPerYear),
		"minimum_down_payment": mathutil.Round(r.MinimumDownPayment),
		"down_payment_ratio":   r.DownPaymentRatio,
		"insurance":            mathutil.Round(r.Insurance),
		"loan_total":           mathutil.Round(r.LoanTotal),
		"principal":            mathutil.Round(r.Principal),
	}
}

// ToMap returns the numeric fields keyed by their wire names.
func (r MortgageResult) ToMap() map[string]float64 {
	return map[string]float64{
		"mortgage_amount":     mathutil.Round(r.MortgageAmount),
		"payment":             mathutil.Round(r.Payment),
		"down_payment":        mathutil.Round(r.DownPayment),
		"amortization_period": float64(r.AmortizationPeriod),
		"interest_rate":       r.InterestRate,
		"num_payments":        float64(r.NumPayments),
		"per_payment_rate":    r.PerPaymentRate,
		"payments_per_year":   float64(r.PaymentsPerYear),
	}
}
