package mortgage

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentAmountReferenceValues(t *testing.T) {
	// Reference payments for a 400,000 loan at 7% over 25 years.
	tests := []struct {
		schedule        string
		expected        float64
		tolerance       float64
		paymentsPerYear int
	}{
		{"monthly", 2802, 30, 12},
		{"biweekly", 1293, 15, 26},
		{"weekly", 647, 5, 52},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			result, err := PaymentAmount(PaymentRequest{
				AskingPrice:        500000,
				DownPayment:        100000,
				Schedule:           tt.schedule,
				AmortizationPeriod: 25,
				InterestRate:       7,
			})
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, result.Payment, tt.tolerance)
			assert.Equal(t, tt.paymentsPerYear, result.PaymentsPerYear)
			assert.Equal(t, 25*tt.paymentsPerYear, result.NumPayments)
			assert.InDelta(t, 0.07/float64(tt.paymentsPerYear), result.PerPaymentRate, 1e-12)
			assert.Zero(t, result.Insurance)
			assert.InDelta(t, 400000, result.Principal, 1e-9)
			assert.InDelta(t, result.Payment*float64(result.NumPayments), result.LoanTotal, 1e-6)
		})
	}
}

func TestPaymentAmountDefaultRateReference(t *testing.T) {
	result, err := PaymentAmount(PaymentRequest{
		AskingPrice:        500000,
		DownPayment:        100000,
		Schedule:           "monthly",
		AmortizationPeriod: 25,
		InterestRate:       2.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1792, result.Payment, 5)
}

func TestPaymentAmountScheduleIsCaseInsensitive(t *testing.T) {
	lower, err := PaymentAmount(PaymentRequest{AskingPrice: 500000, DownPayment: 100000, Schedule: "weekly", AmortizationPeriod: 25, InterestRate: 5})
	require.NoError(t, err)
	mixed, err := PaymentAmount(PaymentRequest{AskingPrice: 500000, DownPayment: 100000, Schedule: "Weekly", AmortizationPeriod: 25, InterestRate: 5})
	require.NoError(t, err)
	assert.Equal(t, lower, mixed)
	assert.Equal(t, "weekly", mixed.Schedule)
}

func TestPaymentAmountMinimumDownPayment(t *testing.T) {
	_, err := PaymentAmount(PaymentRequest{AskingPrice: 750000, DownPayment: 49000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0], "50000.00")

	result, err := PaymentAmount(PaymentRequest{AskingPrice: 750000, DownPayment: 50000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5})
	require.NoError(t, err)
	assert.Equal(t, 50000.0, result.ToMap()["minimum_down_payment"])
	// 6.67% down lands in the first tier
	assert.InDelta(t, 0.0315*750000, result.Insurance, 1e-6)
	assert.InDelta(t, 750000+0.0315*750000-50000, result.Principal, 1e-6)
}

func TestPaymentAmountInsuranceTierBoundary(t *testing.T) {
	result, err := PaymentAmount(PaymentRequest{
		AskingPrice:        750000,
		DownPayment:        0.145 * 750000,
		Schedule:           "monthly",
		AmortizationPeriod: 25,
		InterestRate:       5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.024*750000, result.Insurance, 1e-6)
	assert.InDelta(t, 0.145, result.DownPaymentRatio, 1e-12)
}

func TestPaymentAmountRejectsInvalidInput(t *testing.T) {
	base := PaymentRequest{AskingPrice: 500000, DownPayment: 100000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5}

	tests := []struct {
		name   string
		mutate func(*PaymentRequest)
	}{
		{"rate above 100", func(r *PaymentRequest) { r.InterestRate = 101 }},
		{"negative rate", func(r *PaymentRequest) { r.InterestRate = -1 }},
		{"zero rate", func(r *PaymentRequest) { r.InterestRate = 0 }},
		{"amortization 2", func(r *PaymentRequest) { r.AmortizationPeriod = 2 }},
		{"amortization 30", func(r *PaymentRequest) { r.AmortizationPeriod = 30 }},
		{"unknown schedule", func(r *PaymentRequest) { r.Schedule = "dne" }},
		{"down payment above price", func(r *PaymentRequest) { r.DownPayment = 600000 }},
		{"negative asking price", func(r *PaymentRequest) { r.AskingPrice = -1; r.DownPayment = -2 }},
		{"NaN asking price", func(r *PaymentRequest) { r.AskingPrice = math.NaN() }},
		{"NaN down payment", func(r *PaymentRequest) { r.DownPayment = math.NaN() }},
		{"infinite asking price", func(r *PaymentRequest) { r.AskingPrice = math.Inf(1) }},
		{"NaN rate", func(r *PaymentRequest) { r.InterestRate = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			result, err := PaymentAmount(req)
			var verr *validation.Error
			assert.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
			assert.Equal(t, PaymentResult{}, result)
		})
	}
}

func TestMortgageAmountRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		askingPrice float64
		downPayment float64
		schedule    string
		period      int
		rate        float64
	}{
		{"monthly 5%", 500000, 100000, "monthly", 25, 5},
		{"biweekly 7%", 500000, 100000, "biweekly", 25, 7},
		{"weekly insured", 750000, 60000, "weekly", 20, 3.2},
		{"short amortization", 300000, 15000, "Monthly", 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := PaymentAmount(PaymentRequest{
				AskingPrice:        tt.askingPrice,
				DownPayment:        tt.downPayment,
				Schedule:           tt.schedule,
				AmortizationPeriod: tt.period,
				InterestRate:       tt.rate,
			})
			require.NoError(t, err)

			result, err := MortgageAmount(MortgageRequest{
				Payment:            payment.Payment,
				DownPayment:        tt.downPayment,
				Schedule:           tt.schedule,
				AmortizationPeriod: tt.period,
				InterestRate:       tt.rate,
			})
			require.NoError(t, err)
			// The inverse recovers the principal, which includes insurance.
			assert.InDelta(t, payment.Principal+tt.downPayment, result.MortgageAmount, 1)
			assert.Equal(t, payment.NumPayments, result.NumPayments)
			assert.Equal(t, payment.PaymentsPerYear, result.PaymentsPerYear)
		})
	}
}

func TestMortgageAmountRecoversAskingPrice(t *testing.T) {
	payment, err := PaymentAmount(PaymentRequest{AskingPrice: 500000, DownPayment: 100000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5})
	require.NoError(t, err)

	result, err := MortgageAmount(MortgageRequest{Payment: payment.Payment, DownPayment: 100000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5})
	require.NoError(t, err)
	assert.InDelta(t, 500000, result.MortgageAmount, 1)
}

func TestMortgageAmountDefaultDownPayment(t *testing.T) {
	result, err := MortgageAmount(MortgageRequest{Payment: 2000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 2.5})
	require.NoError(t, err)
	assert.Zero(t, result.DownPayment)
	assert.InDelta(t, 445815, result.MortgageAmount, 1)
}

func TestMortgageAmountRejectsInvalidInput(t *testing.T) {
	for _, req := range []MortgageRequest{
		{Payment: 2000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 101},
		{Payment: 2000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: -1},
		{Payment: 2000, Schedule: "dne", AmortizationPeriod: 25, InterestRate: 5},
		{Payment: 2000, Schedule: "monthly", AmortizationPeriod: 30, InterestRate: 5},
		{Payment: -1, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5},
		{Payment: math.NaN(), Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5},
		{Payment: math.Inf(1), Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5},
		{Payment: 2000, DownPayment: math.NaN(), Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 5},
	} {
		_, err := MortgageAmount(req)
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr), "request %+v", req)
	}
}

func TestCalculatePaymentZeroRate(t *testing.T) {
	assert.InDelta(t, 1000, CalculatePayment(300000, 0, 300), 1e-9)
	assert.InDelta(t, 1000, CalculatePayment(300000, 1e-300, 300), 1e-9)
	assert.InDelta(t, 300000, PrincipalForPayment(1000, 0, 300), 1e-9)
}

func TestPaymentResultToMapKeys(t *testing.T) {
	result, err := PaymentAmount(PaymentRequest{AskingPrice: 500000, DownPayment: 100000, Schedule: "monthly", AmortizationPeriod: 25, InterestRate: 7})
	require.NoError(t, err)

	m := result.ToMap()
	for _, key := range []string{"payment", "num_payments", "per_payment_rate", "payments_per_year",
		"minimum_down_payment", "down_payment_ratio", "insurance", "loan_total", "principal"} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, 2827.12, m["payment"])
	assert.Equal(t, 300.0, m["num_payments"])
	assert.Equal(t, result.PerPaymentRate, m["per_payment_rate"])
}
