// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Payment schedule names accepted on input (after lower-casing).
const (
	ScheduleWeekly   = "weekly"
	ScheduleBiweekly = "biweekly"
	ScheduleMonthly  = "monthly"
)

// Payments per year for each schedule. These are exact counts; an averaged
// weekly count such as 52.1786 drifts over multi-year amortizations.
const (
	WeeklyPaymentsPerYear   = 52
	BiweeklyPaymentsPerYear = 26
	MonthlyPaymentsPerYear  = 12
)

// Amortization bounds in years, both inclusive.
const (
	MinAmortizationPeriod = 5
	MaxAmortizationPeriod = 25
)

// Minimum down payment rule: 5% of the first $500k plus 10% of the excess.
const (
	MinDownPaymentBreakPoint  = 500000.0
	MinDownPaymentBelowRate   = 0.05
	MinDownPaymentAboveRate   = 0.10
	InsuranceMaxAskingPrice   = 1000000.0
	InsuranceExemptRatioFloor = 0.20
)

// Interest rate bounds in percent units; the lower bound is exclusive.
const (
	MinInterestRate = 0.0
	MaxInterestRate = 100.0

	// DefaultInterestRate is the process-wide rate used when a request
	// omits one.
	DefaultInterestRate = 2.5

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Financial constants
const (
	// DecimalPlaces is the precision for currency rounding
	DecimalPlaces = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Rate store kinds
const (
	RateStoreMemory = "memory"
	RateStoreRedis  = "redis"

	// DefaultRedisRateKey is the key holding the current default rate.
	DefaultRedisRateKey = "mortgage-calculator:interest-rate"
)

// Configuration file constants
const (
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is prepended to environment overrides, e.g. MORTGAGE_INTERESTRATE_DEFAULT.
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	DefaultReadTimeout     = "15s"
	DefaultWriteTimeout    = "15s"
	DefaultShutdownTimeout = "10s"
)
