package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrAllAttemptsFailed = errors.New("all attempts failed")

// Retry runs function once per delay entry, sleeping the delay after each
// failed attempt. The first nil error wins.
func Retry(
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) error,
) error {
	var lastErr error
	for _, delay := range attemptDelays {
		if ctx.Err() != nil {
			return fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		lastErr = function(ctx)
		if lastErr == nil {
			return nil
		}
		if err := SleepCtx(ctx, delay); err != nil {
			return err
		}
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
	}
	return ErrAllAttemptsFailed
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}
