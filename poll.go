package cloudglue

import (
	"context"
	"time"
)

// Default polling cadence for WaitOptions.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultWaitTimeout  = 10 * time.Minute
)

// WaitOptions controls how long-running creations wait for the server to
// finish processing.
type WaitOptions struct {
	// PollInterval is the delay between status checks. Defaults to
	// DefaultPollInterval.
	PollInterval time.Duration

	// Timeout is the total wait budget. Defaults to DefaultWaitTimeout.
	// The budget is accounted in whole poll intervals, so wall time may
	// exceed it by up to one fetch latency per iteration.
	Timeout time.Duration
}

func (w *WaitOptions) interval() time.Duration {
	if w != nil && w.PollInterval > 0 {
		return w.PollInterval
	}
	return DefaultPollInterval
}

func (w *WaitOptions) timeout() time.Duration {
	if w != nil && w.Timeout > 0 {
		return w.Timeout
	}
	return DefaultWaitTimeout
}

// pollStatus repeatedly invokes fetch until it reports a status in terminal,
// returning that status. Elapsed time advances by the configured interval,
// not measured wall-clock time. A fetch error aborts immediately; there is
// no retry on transient failures. Exhausting the budget returns ErrTimeout
// wrapped in *Error.
func pollStatus(ctx context.Context, what string, terminal []Status, opts *WaitOptions, fetch func(context.Context) (Status, error)) (Status, error) {
	interval := opts.interval()
	timeout := opts.timeout()

	for elapsed := time.Duration(0); elapsed < timeout; elapsed += interval {
		status, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		if statusIn(status, terminal) {
			return status, nil
		}
		if err := sleep(ctx, interval); err != nil {
			return "", newNetworkError(err, "")
		}
	}

	return "", newTimeoutError(what, timeout)
}

func statusIn(status Status, set []Status) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// sleep blocks for d, honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
