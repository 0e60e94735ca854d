package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		if calls < 2 {
			return &rateLimitError{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryOnlyRateLimits(t *testing.T) {
	calls := 0
	wantErr := errors.New("server exploded")
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("non-rate-limit error retried %d times", calls)
	}
}

func TestRetryNeverRetriesAuthErrors(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return &authError{message: "bad key"}
	})
	if !IsAuthError(err) {
		t.Fatalf("err = %v, want auth error", err)
	}
	if calls != 1 {
		t.Errorf("auth error retried %d times", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 1, func() error {
		calls++
		return &rateLimitError{}
	})
	var rl *rateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (initial + 1 retry)", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retryWithBackoff(ctx, 3, func() error {
		calls++
		cancel()
		return &rateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsAuthErrorWrapped(t *testing.T) {
	err := fmt.Errorf("calling API: %w", &authError{message: "denied"})
	if !IsAuthError(err) {
		t.Error("wrapped auth error not detected")
	}
	if IsAuthError(errors.New("other")) {
		t.Error("plain error misclassified as auth error")
	}
}
