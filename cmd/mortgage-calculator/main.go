package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", "", "path to configuration file (optional)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	mode := flag.String("mode", "payment", "calculation to run: payment, mortgage")
	askingPrice := flag.Float64("asking-price", 0, "asking price of the home (payment mode)")
	downPayment := flag.Float64("down-payment", 0, "down payment")
	payment := flag.Float64("payment", 0, "recurring payment (mortgage mode)")
	paymentSchedule := flag.String("schedule", constants.ScheduleMonthly, "payment schedule: weekly, biweekly, monthly")
	amortization := flag.Int("amortization", constants.MaxAmortizationPeriod, "amortization period in years")
	rateFlag := flag.Float64("rate", 0, "annual interest rate in percent; defaults to the configured rate")
	flag.Parse()

	// Local .env files are optional.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	service, closeStore, err := calculator.FromConfig(context.Background(), logger, conf)
	if err != nil {
		logger.Fatal("failed to initialize calculator",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		_ = closeStore()
	}()

	var interestRate *float64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "rate" {
			interestRate = rateFlag
		}
	})

	var (
		title  string
		fields map[string]float64
	)
	switch strings.ToLower(*mode) {
	case "payment":
		result, calcErr := service.ComputePayment(*askingPrice, *downPayment, *paymentSchedule, *amortization, interestRate)
		err = calcErr
		title, fields = "Payment amount", result.ToMap()
	case "mortgage":
		result, calcErr := service.ComputeMortgageAmount(*payment, *downPayment, *paymentSchedule, *amortization, interestRate)
		err = calcErr
		title, fields = "Mortgage amount", result.ToMap()
	default:
		logger.Fatal(fmt.Sprintf("unknown mode %s, expected payment or mortgage", *mode),
			zap.String("op", "main"),
		)
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		for _, violation := range verr.Violations {
			fmt.Fprintln(os.Stderr, violation)
		}
		_ = logger.Sync()
		os.Exit(2)
	} else if err != nil {
		logger.Fatal("calculation failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, title, fields)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, fields)
	}
	if err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
