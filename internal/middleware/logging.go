package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/kirana/internal/metrics"
	"github.com/mmynk/kirana/internal/models"
)

// Outcome labels recorded for each operation.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomePersistence = "persistence_error"
	OutcomeError       = "error"
)

// Observe runs fn as the named ledger operation. It logs the operation,
// duration and any error, and records outcome and latency in m (which may
// be nil). Recoverable input errors log at Warn, everything else at Error.
func Observe(ctx context.Context, m *metrics.Metrics, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)
	outcome := Outcome(err)
	if m != nil {
		m.Operations.WithLabelValues(operation, outcome).Inc()
		m.Duration.WithLabelValues(operation).Observe(duration.Seconds())
	}

	switch outcome {
	case OutcomeOK:
		slog.Debug("Operation ok",
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
		)
	case OutcomeInvalid, OutcomeNotFound:
		slog.Warn("Operation rejected",
			"operation", operation,
			"outcome", outcome,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
	default:
		slog.Error("Operation failed",
			"operation", operation,
			"outcome", outcome,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
	}

	return err
}

// Outcome classifies err into one of the outcome labels.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}

	var verr *models.ValidationError
	var parseErr *models.ParseError
	var perr *models.PersistenceError
	switch {
	case errors.As(err, &perr):
		return OutcomePersistence
	case errors.Is(err, models.ErrNotFound):
		return OutcomeNotFound
	case errors.As(err, &verr), errors.As(err, &parseErr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
