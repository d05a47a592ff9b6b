// Package resilience bounds the run time of CPU-bound work that cooperates
// through its context.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/edammap/pkg/errors"
)

// WithTimeout runs fn with a derived context that is cancelled after
// timeout. A zero or negative timeout only forwards ctx. When the deadline
// passes or ctx is cancelled first, WithTimeout returns an ErrCanceled
// AppError without waiting for fn; fn is expected to notice its context and
// return soon after.
func WithTimeout(ctx context.Context, timeout time.Duration, name string, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- fn(timeoutCtx)
	}()
	select {
	case err := <-done:
		if err != nil && timeoutCtx.Err() != nil && errors.Is(err, timeoutCtx.Err()) {
			return expired(ctx, name, timeout)
		}
		return err
	case <-timeoutCtx.Done():
		return expired(ctx, name, timeout)
	}
}

// expired wraps both ErrCanceled and the context error, so callers can tell
// a deadline from a cancellation with errors.Is.
func expired(parent context.Context, name string, timeout time.Duration) error {
	if err := parent.Err(); err != nil {
		return &apperrors.AppError{
			Err:      fmt.Errorf("%w: %w", apperrors.ErrCanceled, err),
			Message:  name + ": parent context cancelled",
			ExitCode: apperrors.ExitCanceled,
		}
	}
	return &apperrors.AppError{
		Err:      fmt.Errorf("%w: %w", apperrors.ErrCanceled, context.DeadlineExceeded),
		Message:  fmt.Sprintf("%s: limit %v", name, timeout),
		ExitCode: apperrors.ExitCanceled,
	}
}
