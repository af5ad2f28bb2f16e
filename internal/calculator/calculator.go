// Package calculator is the entry point used by transports: it resolves the
// default interest rate, runs the calculations and keeps the rate store in
// step with the in-process rate.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iwvelando/mortgage-calculator/internal/rate"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

// Service computes payments and mortgage amounts against a shared default
// rate.
type Service struct {
	logger *zap.Logger
	rates  *rate.Cell
	store  rate.Store

	// updates serializes writers so the store and the cell always hold the
	// same committed rate.
	updates sync.Mutex
}

// RateChange describes the outcome of SetDefaultRate.
type RateChange struct {
	Old      float64
	New      float64
	Accepted bool
}

// NewService builds a Service. store may be nil, in which case the rate only
// lives in memory.
func NewService(logger *zap.Logger, rates *rate.Cell, store rate.Store) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, rates: rates, store: store}
}

// Restore seeds the rate cell from the store. A store without a saved rate
// is seeded with the current cell value.
func (s *Service) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.updates.Lock()
	defer s.updates.Unlock()

	stored, err := s.store.Load(ctx)
	if errors.Is(err, rate.ErrNotFound) {
		current := s.rates.Get()
		s.logger.Info("no stored interest rate, saving default",
			zap.String("op", "calculator.Restore"),
			zap.Float64("rate", current),
		)
		return s.store.Save(ctx, current)
	}
	if err != nil {
		return err
	}

	if !s.rates.Set(stored) {
		return fmt.Errorf("stored interest rate %s is out of bounds", format.Percent(stored))
	}
	s.logger.Info("restored interest rate",
		zap.String("op", "calculator.Restore"),
		zap.Float64("rate", stored),
	)
	return nil
}

// DefaultRate returns the current default rate.
func (s *Service) DefaultRate() float64 {
	return s.rates.Get()
}

// SetDefaultRate validates and commits a new default rate. An out of bounds
// rate is reported through RateChange.Accepted, not as an error; an error
// means the store could not be updated and the rate is unchanged.
func (s *Service) SetDefaultRate(ctx context.Context, newRate float64) (RateChange, error) {
	s.updates.Lock()
	defer s.updates.Unlock()

	change := RateChange{Old: s.rates.Get(), New: newRate}
	if !validation.InterestRateInBounds(newRate) {
		s.logger.Debug("rejected interest rate",
			zap.String("op", "calculator.SetDefaultRate"),
			zap.Float64("rate", newRate),
		)
		return change, nil
	}

	if s.store != nil {
		if err := s.store.Save(ctx, newRate); err != nil {
			return change, err
		}
	}

	old, ok := s.rates.Swap(newRate)
	change.Old = old
	change.Accepted = ok

	s.logger.Info(fmt.Sprintf("interest rate changed from %s to %s", format.Percent(old), format.Percent(newRate)),
		zap.String("op", "calculator.SetDefaultRate"),
	)
	return change, nil
}

// ComputePayment returns the recurring payment for a purchase. A nil rate
// uses the default rate.
func (s *Service) ComputePayment(askingPrice, downPayment float64, paymentSchedule string, amortizationPeriod int, interestRate *float64) (mortgage.PaymentResult, error) {
	req := mortgage.PaymentRequest{
		AskingPrice:        askingPrice,
		DownPayment:        downPayment,
		Schedule:           paymentSchedule,
		AmortizationPeriod: amortizationPeriod,
		InterestRate:       s.resolve(interestRate),
	}

	result, err := mortgage.PaymentAmount(req)
	if err != nil {
		s.logRejected("calculator.ComputePayment", err)
		return result, err
	}

	s.logger.Debug(fmt.Sprintf("payment %s for principal %s", format.Currency(result.Payment), format.Currency(result.Principal)),
		zap.String("op", "calculator.ComputePayment"),
		zap.String("schedule", result.Schedule),
		zap.Int("num_payments", result.NumPayments),
		zap.Float64("rate", result.InterestRate),
		zap.Float64("insurance", result.Insurance),
	)
	return result, nil
}

// ComputeMortgageAmount returns the largest mortgage a payment can carry. A
// nil rate uses the default rate.
func (s *Service) ComputeMortgageAmount(payment, downPayment float64, paymentSchedule string, amortizationPeriod int, interestRate *float64) (mortgage.MortgageResult, error) {
	req := mortgage.MortgageRequest{
		Payment:            payment,
		DownPayment:        downPayment,
		Schedule:           paymentSchedule,
		AmortizationPeriod: amortizationPeriod,
		InterestRate:       s.resolve(interestRate),
	}

	result, err := mortgage.MortgageAmount(req)
	if err != nil {
		s.logRejected("calculator.ComputeMortgageAmount", err)
		return result, err
	}

	s.logger.Debug(fmt.Sprintf("mortgage amount %s for payment %s", format.Currency(result.MortgageAmount), format.Currency(payment)),
		zap.String("op", "calculator.ComputeMortgageAmount"),
		zap.String("schedule", result.Schedule),
		zap.Int("num_payments", result.NumPayments),
		zap.Float64("rate", result.InterestRate),
	)
	return result, nil
}

// resolve reads the cell once so a concurrent update cannot split a
// calculation across two rates.
func (s *Service) resolve(interestRate *float64) float64 {
	if interestRate != nil {
		return *interestRate
	}
	return s.rates.Get()
}

// logRejected records a calculation refused by validation, the only error
// pkg/mortgage returns.
func (s *Service) logRejected(op string, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Error(err),
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		fields = append(fields, zap.Strings("violations", verr.Violations))
	}
	s.logger.Debug("calculation rejected", fields...)
}
