package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Request describes one call relative to the client's base URL.
type Request struct {
	Operation string // metric/log label, e.g. "cancel_booking"
	Method    string
	Path      string
	Query     url.Values
}

// Caller sends a Request through the shared client. Implementations attach
// the bearer token and return a classified *errors.APIError on any failure.
type Caller interface {
	Call(ctx context.Context, req Request) ([]byte, error)
}

// decode unmarshals body into out. An empty body leaves out untouched.
func decode(op string, body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
