package core

import (
	"context"
	"log/slog"
	"time"
)

// Service coordinates validation requests. It bounds concurrency with a
// ValidationLimiter and turns uploaded bytes into a validation report. It
// holds no per-request state; every call is independent and nothing is
// cached or shared between requests.
type Service struct {
	limiter *ValidationLimiter
}

// NewService creates a Service allowing at most maxConcurrent simultaneous
// validations, each waiting up to maxWait for a slot.
func NewService(maxConcurrent int, maxWait time.Duration) *Service {
	return &Service{
		limiter: NewValidationLimiter(maxConcurrent, maxWait),
	}
}

// ValidateCSV validates one uploaded CSV file. Ingestion failures are
// returned as errors and never appear inside a Result; rule violations are
// reported inside the Result with status fail.
func (s *Service) ValidateCSV(ctx context.Context, fileName string, data []byte) (*Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()

	table, err := ParseTable(data)
	if err != nil {
		slog.Warn("csv ingestion failed",
			"file", fileName,
			"bytes", len(data),
			"error", err,
		)
		return nil, err
	}

	result := Validate(table)

	slog.Info("file validated",
		"file", fileName,
		"columns", len(table.Columns),
		"rows", len(table.Rows),
		"status", result.Status,
		"errors", len(result.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &result, nil
}

// LimiterStatus returns a snapshot of validation concurrency for monitoring.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForValidations blocks until all active validations complete or the
// context is cancelled. Used during graceful shutdown.
func (s *Service) WaitForValidations(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
