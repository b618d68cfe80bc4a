package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run in order, before the authorization hook is registered.
// Transport options wrap whatever transport is installed at that point,
// so pass WithTransport before WithDebugLogging.
type Option func(*Client) error

// WithHTTPTimeout replaces DefaultTimeout. Exceeding it surfaces as a
// network error. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithTransport sets the base http.RoundTripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return errors.New("transport cannot be nil")
		}
		c.http.SetTransport(rt)
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged at debug level when enabled is true. Authorization values are redacted.
// Do not enable this option in production; response bodies are logged verbatim.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if _, already := c.http.GetClient().Transport.(*debugTransport); already {
			return nil
		}
		c.http.SetTransport(&debugTransport{base: c.http.GetClient().Transport})
		return nil
	}
}

// WithDefaultToken sets the process-default token that ResetToken restores
// and GetToken falls back to.
func WithDefaultToken(token string) Option {
	return func(c *Client) error {
		c.tokens = NewTokenCache(token)
		return nil
	}
}

// WithTokenCache installs a caller-owned cache, e.g. one shared by several clients.
func WithTokenCache(tc *TokenCache) Option {
	return func(c *Client) error {
		if tc == nil {
			return errors.New("token cache cannot be nil")
		}
		c.tokens = tc
		return nil
	}
}
