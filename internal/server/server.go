// Package server exposes the calculator over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

type handler struct {
	logger  *zap.Logger
	service *calculator.Service
	version string
}

type errorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// NewHandler constructs the HTTP handler serving the calculator API.
func NewHandler(logger *zap.Logger, service *calculator.Service, allowedOrigins []string, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, service: service, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/payment-amount", h.handlePaymentAmount)
	r.Get("/mortgage-amount", h.handleMortgageAmount)
	r.Get("/interest-rate", h.handleGetInterestRate)
	r.Patch("/interest-rate/{rate}", h.handleSetInterestRate)

	r.Get("/api/version", h.handleVersion)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(r)
}

// RequestIDFromContext returns the ID assigned to the request, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request served",
			zap.String("op", "server.logRequests"),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handlePaymentAmount(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	askingPrice := q.float("asking_price")
	downPayment := q.float("down_payment")
	paymentSchedule := q.str("payment_schedule")
	amortizationPeriod := q.int("amortization_period")
	interestRate := q.optionalFloat("interest_rate")
	if len(q.problems) > 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error:      strings.Join(q.problems, ", "),
			Violations: q.problems,
		}, "server.handlePaymentAmount")
		return
	}

	result, err := h.service.ComputePayment(askingPrice, downPayment, paymentSchedule, amortizationPeriod, interestRate)
	if err != nil {
		h.respondCalculationError(w, r, err, "server.handlePaymentAmount")
		return
	}
	h.writeJSON(w, http.StatusOK, result.ToMap())
}

func (h *handler) handleMortgageAmount(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	payment := q.float("payment")
	downPayment := 0.0
	if dp := q.optionalFloat("down_payment"); dp != nil {
		downPayment = *dp
	}
	paymentSchedule := q.str("payment_schedule")
	amortizationPeriod := q.int("amortization_period")
	interestRate := q.optionalFloat("interest_rate")
	if len(q.problems) > 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error:      strings.Join(q.problems, ", "),
			Violations: q.problems,
		}, "server.handleMortgageAmount")
		return
	}

	result, err := h.service.ComputeMortgageAmount(payment, downPayment, paymentSchedule, amortizationPeriod, interestRate)
	if err != nil {
		h.respondCalculationError(w, r, err, "server.handleMortgageAmount")
		return
	}
	h.writeJSON(w, http.StatusOK, result.ToMap())
}

func (h *handler) handleGetInterestRate(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]float64{
		"interest_rate": h.service.DefaultRate(),
	})
}

func (h *handler) handleSetInterestRate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "rate")
	newRate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("invalid interest rate %q", raw),
		}, "server.handleSetInterestRate")
		return
	}

	change, err := h.service.SetDefaultRate(r.Context(), newRate)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, errorResponse{
			Error: fmt.Sprintf("failed to update interest rate: %v", err),
		}, "server.handleSetInterestRate")
		return
	}
	if !change.Accepted {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("the interest rate, %1.3f, must be greater than zero and less than or equal to 100", newRate),
		}, "server.handleSetInterestRate")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]float64{
		"old_interest_rate": change.Old,
		"new_interest_rate": change.New,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errorResponse{
			Error:      verr.Error(),
			Violations: verr.Violations,
		}, op)
		return
	}
	h.respondErrorWithOp(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()}, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, resp errorResponse, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Int("status", status),
		zap.String("error", resp.Error),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
