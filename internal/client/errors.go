package client

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrProviderConstruction is wrapped by every client construction failure.
	ErrProviderConstruction = errors.New("cannot construct LLM client")

	// ErrUnknownProvider means the provider name has no variant.
	ErrUnknownProvider = fmt.Errorf("%w: unsupported provider", ErrProviderConstruction)

	// ErrMissingCredential means a keyed provider was configured without a key.
	ErrMissingCredential = fmt.Errorf("%w: API key required", ErrProviderConstruction)
)

// APIError represents a non-success HTTP status from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// TransportError is a network or decoding failure talking to a provider.
type TransportError struct {
	Provider string
	Op       string // "request" or "decode"
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetryableAPIError returns true if the API error has a retryable status code.
func IsRetryableAPIError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}

// IsRetryableError reports whether another attempt could succeed.
// Cancellation by the caller is never retried.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if IsRetryableAPIError(err) {
		return true
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Op == "request"
	}
	return false
}
