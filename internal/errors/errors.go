// Package errors provides error types and handling for the leftover scanner.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Transport represents network-level failures (DNS, connection refused/reset).
	Transport
	// Timeout represents request timeouts.
	Timeout
	// TLS represents TLS handshake or certificate failures.
	TLS
	// Config represents invalid configuration detected before probing.
	Config
	// Cancelled represents context cancellation.
	Cancelled
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Transport:
		return "transport"
	case Timeout:
		return "timeout"
	case TLS:
		return "tls"
	case Config:
		return "config"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsRetryable returns whether errors of this type may be retried.
func (t ErrorType) IsRetryable() bool {
	switch t {
	case Transport, Timeout:
		return true
	default:
		return false
	}
}

// ProbeError represents a categorized probe error.
type ProbeError struct {
	Type      ErrorType
	URL       string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.URL, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target.
func (e *ProbeError) Is(target error) bool {
	t, ok := target.(*ProbeError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new ProbeError.
func New(errType ErrorType, url, operation, message string, cause error) *ProbeError {
	return &ProbeError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewTransportError creates a transport error.
func NewTransportError(url, operation string, cause error) *ProbeError {
	return New(Transport, url, operation, "network failure", cause)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(url, operation string, cause error) *ProbeError {
	return New(Timeout, url, operation, "request timed out", cause)
}

// NewTLSError creates a TLS error.
func NewTLSError(url string, cause error) *ProbeError {
	return New(TLS, url, "tls_handshake", "TLS negotiation failed", cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *ProbeError {
	return New(Config, "", "configure", message, cause)
}

// NewCancelledError creates a cancelled error.
func NewCancelledError(url, operation string) *ProbeError {
	return New(Cancelled, url, operation, "operation cancelled", nil)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, url string) *ProbeError {
	if err == nil {
		return nil
	}

	// Already a ProbeError
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr
	}

	if errors.Is(err, context.Canceled) {
		return NewCancelledError(url, "request")
	}

	if isTimeout(err) {
		return NewTimeoutError(url, "request", err)
	}

	if isTLSError(err) {
		return NewTLSError(url, err)
	}

	if isNetworkError(err) {
		return NewTransportError(url, "request", err)
	}

	return New(Unknown, url, "request", err.Error(), err)
}

// isTimeout checks if an error is a timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isTLSError checks if an error comes from TLS negotiation.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "tls:") ||
		strings.Contains(errStr, "x509:") ||
		strings.Contains(errStr, "certificate")
}

// isNetworkError checks if an error is network-related.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp")
}

// IsRetryable checks if an error may be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Type.IsRetryable()
	}

	return isTimeout(err) || isNetworkError(err)
}

// IsCancelled checks if an error represents a cancelled operation.
func IsCancelled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Type == Cancelled
	}
	return false
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Type
	}
	return Unknown
}
