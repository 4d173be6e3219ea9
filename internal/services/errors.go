package services

import (
	"context"
	"errors"
	"fmt"

	"salarylens/internal/predictor"
	"salarylens/internal/salary"
)

// Service errors
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyName    = errors.New("a name is required to build a report")

	// Rendering errors
	ErrUnknownChart = errors.New("unknown chart")
	ErrRenderFailed = errors.New("report rendering failed")

	// General errors
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// classify wraps domain and context errors with the service sentinel the
// transport layer maps to a status code.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrOperationTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, salary.ErrUnknownLabel),
		errors.Is(err, salary.ErrInvalidCompensation),
		errors.Is(err, salary.ErrInvalidTakeHome),
		errors.Is(err, predictor.ErrUnknownLabel),
		errors.Is(err, predictor.ErrInvalidYears):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
