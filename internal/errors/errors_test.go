package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestProbeError_Error(t *testing.T) {
	err := NewTransportError("http://example.com/backup.zip", "probe", fmt.Errorf("connection refused"))

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error message")
	}
	if err.Type != Transport {
		t.Errorf("expected Transport type, got %v", err.Type)
	}
	if err.URL != "http://example.com/backup.zip" {
		t.Errorf("unexpected URL: %s", err.URL)
	}
}

func TestProbeError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := New(Transport, "http://example.com/", "probe", "request failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{Transport, "transport"},
		{Timeout, "timeout"},
		{TLS, "tls"},
		{Config, "config"},
		{Cancelled, "cancelled"},
	}

	for _, tt := range tests {
		if got := tt.errType.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errType, got, tt.want)
		}
	}
}

func TestCategorize_Cancelled(t *testing.T) {
	err := Categorize(context.Canceled, "http://example.com/")
	if err.Type != Cancelled {
		t.Errorf("expected Cancelled, got %v", err.Type)
	}
	if !IsCancelled(err) {
		t.Error("IsCancelled should report true")
	}
}

func TestCategorize_Timeout(t *testing.T) {
	err := Categorize(context.DeadlineExceeded, "http://example.com/")
	if err.Type != Timeout {
		t.Errorf("expected Timeout, got %v", err.Type)
	}
}

func TestCategorize_Network(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: fmt.Errorf("connection refused")}
	err := Categorize(opErr, "http://example.com/")
	if err.Type != Transport {
		t.Errorf("expected Transport, got %v", err.Type)
	}
}

func TestCategorize_TLS(t *testing.T) {
	err := Categorize(fmt.Errorf("x509: certificate signed by unknown authority"), "https://example.com/")
	if err.Type != TLS {
		t.Errorf("expected TLS, got %v", err.Type)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewTransportError("http://x/", "probe", nil)) {
		t.Error("transport errors should be retryable")
	}
	if !IsRetryable(NewTimeoutError("http://x/", "probe", nil)) {
		t.Error("timeout errors should be retryable")
	}
	if IsRetryable(NewConfigError("bad flag", nil)) {
		t.Error("config errors should not be retryable")
	}
	if IsRetryable(NewCancelledError("http://x/", "probe")) {
		t.Error("cancellation should not be retryable")
	}
}

func TestRetrier_NoRetriesByDefault(t *testing.T) {
	retrier := NewDefaultRetrier()

	calls := 0
	result := retrier.Do(context.Background(), "probe", "http://x/", func(ctx context.Context) error {
		calls++
		return NewTimeoutError("http://x/", "probe", nil)
	})

	if calls != 1 {
		t.Errorf("expected exactly 1 attempt with default config, got %d", calls)
	}
	if result.Success {
		t.Error("expected failure result")
	}
}

func TestRetrier_RetriesTransportErrors(t *testing.T) {
	config := DefaultRetryConfig()
	config.MaxRetries = 2
	config.InitialDelay = time.Millisecond
	retrier := NewRetrier(config)

	calls := 0
	result := retrier.Do(context.Background(), "probe", "http://x/", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return NewTransportError("http://x/", "probe", fmt.Errorf("connection reset"))
		}
		return nil
	})

	if !result.Success {
		t.Fatalf("expected success after retries, last error: %v", result.LastError)
	}
	if result.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", result.Attempts)
	}
}

func TestRetrier_StopsOnNonRetryable(t *testing.T) {
	config := DefaultRetryConfig()
	config.MaxRetries = 5
	config.InitialDelay = time.Millisecond
	retrier := NewRetrier(config)

	calls := 0
	result := retrier.Do(context.Background(), "probe", "http://x/", func(ctx context.Context) error {
		calls++
		return NewConfigError("bad configuration", nil)
	})

	if calls != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", calls)
	}
	if result.Success {
		t.Error("expected failure result")
	}
}

func TestRetrier_ContextCancellation(t *testing.T) {
	config := DefaultRetryConfig()
	config.MaxRetries = 10
	config.InitialDelay = 100 * time.Millisecond
	retrier := NewRetrier(config)

	ctx, cancel := context.WithCancel(context.Background())

	result := retrier.Do(ctx, "probe", "http://x/", func(ctx context.Context) error {
		cancel()
		return NewTransportError("http://x/", "probe", nil)
	})

	if result.Success {
		t.Error("expected failure after cancellation")
	}
	if !IsCancelled(result.LastError) {
		t.Errorf("expected cancelled error, got %v", result.LastError)
	}
}
