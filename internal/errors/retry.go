package errors

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxRetries     int           // Maximum number of retries (0 = no retries)
	InitialDelay   time.Duration // Initial delay before first retry
	MaxDelay       time.Duration // Maximum delay between retries
	Multiplier     float64       // Delay multiplier for exponential backoff
	Jitter         float64       // Random jitter factor (0-1)
	RetryableTypes []ErrorType   // Error types that should be retried
}

// DefaultRetryConfig returns the scanner default: probes are not retried.
// The scanner favors coverage throughput over per-request resilience.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   0,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
		RetryableTypes: []ErrorType{
			Transport,
			Timeout,
		},
	}
}

// Retrier implements retry logic with exponential backoff.
type Retrier struct {
	config RetryConfig
	rng    *rand.Rand
}

// NewRetrier creates a new retrier.
func NewRetrier(config RetryConfig) *Retrier {
	return &Retrier{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewDefaultRetrier creates a retrier with default configuration.
func NewDefaultRetrier() *Retrier {
	return NewRetrier(DefaultRetryConfig())
}

// RetryFunc is a function that can be retried.
type RetryFunc func(ctx context.Context) error

// RetryResult holds the result of a retry operation.
type RetryResult struct {
	Attempts  int           // Number of attempts made
	LastError error         // The last error encountered
	Duration  time.Duration // Total time spent retrying
	Success   bool          // Whether the operation succeeded
}

// Do executes the function with retries.
func (r *Retrier) Do(ctx context.Context, operation string, url string, fn RetryFunc) *RetryResult {
	result := &RetryResult{}
	start := time.Now()

	var lastErr error
	delay := r.config.InitialDelay

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		result.Attempts++

		err := fn(ctx)
		if err == nil {
			result.Success = true
			result.Duration = time.Since(start)
			return result
		}

		lastErr = err

		if ctx.Err() != nil {
			result.LastError = NewCancelledError(url, operation)
			result.Duration = time.Since(start)
			return result
		}

		if attempt >= r.config.MaxRetries {
			break
		}

		if !r.shouldRetry(err) {
			break
		}

		// Apply jitter to the backoff delay
		jittered := delay
		if r.config.Jitter > 0 {
			jitterRange := float64(delay) * r.config.Jitter
			jittered = delay + time.Duration(r.rng.Float64()*jitterRange-jitterRange/2)
		}

		select {
		case <-time.After(jittered):
		case <-ctx.Done():
			result.LastError = NewCancelledError(url, operation)
			result.Duration = time.Since(start)
			return result
		}

		delay = time.Duration(float64(delay) * r.config.Multiplier)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}

	result.LastError = lastErr
	result.Duration = time.Since(start)
	return result
}

// shouldRetry checks whether the error type is in the retryable set.
func (r *Retrier) shouldRetry(err error) bool {
	errType := GetErrorType(Categorize(err, ""))
	for _, t := range r.config.RetryableTypes {
		if errType == t {
			return true
		}
	}
	return false
}
