package contextutil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds outbound calls made without an explicit timeout.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is returned when a call exceeds its deadline.
var ErrTimeout = errors.New("operation timed out")

// CallWithTimeout runs fn with a context that is cancelled after timeout.
// A non-positive timeout uses DefaultTimeout. If the deadline fires before fn
// returns, the error wraps both ErrTimeout and context.DeadlineExceeded.
// Cancellation of the parent context is reported as-is.
func CallWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(callCtx)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		var zero T
		return zero, fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, context.DeadlineExceeded)
	}
	return result, err
}
