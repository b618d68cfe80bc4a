// Package errors provides error classification for the client SDK.
// Every failed call is reduced to one APIError carrying a display-ready message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind tells callers which boundary a failure crossed.
type Kind int

const (
	// KindServer means the server answered with a non-2xx status.
	KindServer Kind = iota + 1

	// KindNetwork means the request was sent but no response arrived.
	// Timeouts, refused connections and DNS failures land here.
	KindNetwork

	// KindRequest means the request could not be built or sent at all.
	KindRequest

	// KindStore means the durable token store failed.
	KindStore
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	case KindStore:
		return "store"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// APIError wraps an error with the friendly message derived at the failure boundary.
type APIError struct {
	Kind       Kind
	StatusCode int    // HTTP status code (0 unless Kind == KindServer)
	Message    string // single-line, display-ready
	Body       []byte // raw response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// As extracts the first *APIError in err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of kind k.
func IsKind(err error, k Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == k
}
