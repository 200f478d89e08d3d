package cloudglue

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastWait keeps test polling loops quick while preserving the
// interval-to-timeout ratio of the defaults.
func fastWait(interval, timeout time.Duration) *WaitOptions {
	return &WaitOptions{PollInterval: interval, Timeout: timeout}
}

func TestPollStatusReturnsFirstTerminal(t *testing.T) {
	sequence := []Status{StatusPending, StatusProcessing, StatusReady}
	fetches := 0

	status, err := pollStatus(context.Background(), "test resource", resourceTerminalStatuses,
		fastWait(time.Millisecond, time.Second),
		func(ctx context.Context) (Status, error) {
			s := sequence[fetches]
			fetches++
			return s, nil
		})

	if err != nil {
		t.Fatalf("pollStatus() error = %v", err)
	}
	if status != StatusReady {
		t.Errorf("status = %q, want %q", status, StatusReady)
	}
	if fetches != 3 {
		t.Errorf("fetches = %d, want 3", fetches)
	}
}

func TestPollStatusTerminalOnFirstFetch(t *testing.T) {
	fetches := 0

	status, err := pollStatus(context.Background(), "test job", jobTerminalStatuses,
		fastWait(time.Millisecond, time.Second),
		func(ctx context.Context) (Status, error) {
			fetches++
			return StatusFailed, nil
		})

	if err != nil {
		t.Fatalf("pollStatus() error = %v", err)
	}
	if status != StatusFailed {
		t.Errorf("status = %q, want %q", status, StatusFailed)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}
}

func TestPollStatusTimeout(t *testing.T) {
	// interval 5, timeout 10: budget admits exactly two fetches before the
	// elapsed counter reaches the timeout.
	fetches := 0

	_, err := pollStatus(context.Background(), "test job", jobTerminalStatuses,
		fastWait(5*time.Millisecond, 10*time.Millisecond),
		func(ctx context.Context) (Status, error) {
			fetches++
			return StatusProcessing, nil
		})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("pollStatus() error = %v, want ErrTimeout", err)
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetches)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", apiErr.StatusCode)
	}
}

func TestPollStatusFetchErrorAborts(t *testing.T) {
	fetchErr := &Error{Message: "boom", StatusCode: 500}
	fetches := 0

	_, err := pollStatus(context.Background(), "test job", jobTerminalStatuses,
		fastWait(time.Millisecond, time.Second),
		func(ctx context.Context) (Status, error) {
			fetches++
			if fetches == 2 {
				return "", fetchErr
			}
			return StatusProcessing, nil
		})

	if !errors.Is(err, fetchErr) {
		t.Fatalf("pollStatus() error = %v, want the fetch error", err)
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2: a failed fetch must not be retried", fetches)
	}
}

func TestPollStatusContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := pollStatus(ctx, "test job", jobTerminalStatuses,
		fastWait(time.Hour, 2*time.Hour),
		func(ctx context.Context) (Status, error) {
			cancel()
			return StatusProcessing, nil
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("pollStatus() error = %v, want context.Canceled", err)
	}
}

func TestWaitOptionsDefaults(t *testing.T) {
	var opts *WaitOptions
	if got := opts.interval(); got != DefaultPollInterval {
		t.Errorf("interval() = %v, want %v", got, DefaultPollInterval)
	}
	if got := opts.timeout(); got != DefaultWaitTimeout {
		t.Errorf("timeout() = %v, want %v", got, DefaultWaitTimeout)
	}

	opts = &WaitOptions{PollInterval: time.Second, Timeout: time.Minute}
	if got := opts.interval(); got != time.Second {
		t.Errorf("interval() = %v, want %v", got, time.Second)
	}
	if got := opts.timeout(); got != time.Minute {
		t.Errorf("timeout() = %v, want %v", got, time.Minute)
	}
}
