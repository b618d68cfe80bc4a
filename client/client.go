package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/qwikyankit/qwiky-admin-emergent/client/internal/api"
	"github.com/qwikyankit/qwiky-admin-emergent/internal/config"
	"github.com/qwikyankit/qwiky-admin-emergent/pkg/kvstore"
)

const (
	// BasePath is prepended to every request path. The admin gateway routes
	// /api to the backend, so it must not change independently of that rule.
	BasePath = "/api"

	// DefaultTimeout bounds each request end to end.
	DefaultTimeout = 30 * time.Second

	// TokenKey is the single key under which the bearer token is persisted.
	TokenKey = "admin_token"

	// HoodID is the hood whose bookings FetchBookings lists.
	HoodID = api.HoodID
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the admin booking API. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	store  kvstore.Store
	tokens *TokenCache
}

// New constructs a Client for origin (scheme://host[:port]); requests go to
// origin + BasePath. store persists the bearer token and is owned by the caller.
// Additional options can be provided via functional arguments.
func New(origin string, store kvstore.Store, opts ...Option) (*Client, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return nil, errors.New("origin cannot be empty")
	}
	if store == nil {
		return nil, errors.New("token store cannot be nil")
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(origin+BasePath).
			SetTimeout(DefaultTimeout).
			SetHeader("Accept", "application/json").
			SetLogger(restyLogger{}),
		store:  store,
		tokens: NewTokenCache(""),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.http.OnBeforeRequest(c.authorize)

	return c, nil
}

// NewFromConfig builds a Client from loaded settings. cfg.Token becomes the
// process-default token.
func NewFromConfig(cfg *config.Config, store kvstore.Store, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	base := []Option{
		WithDefaultToken(cfg.Token),
		WithHTTPTimeout(cfg.Timeout),
		WithDebugLogging(cfg.Debug),
	}
	return New(cfg.Origin, store, append(base, opts...)...)
}

// NewFromEnv reads QWIKY_ADMIN_* variables and builds a Client.
func NewFromEnv(store kvstore.Store, opts ...Option) (*Client, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, store, opts...)
}

// HTTP returns the shared resty client for callers that need endpoints this
// package does not wrap. Requests made through it still carry the bearer token.
func (c *Client) HTTP() *resty.Client {
	return c.http
}

// Tokens returns the in-memory token cache.
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

// --------------------------------------------------------------------
// Booking operations - delegated to internal/api
// --------------------------------------------------------------------

// FetchBookings lists one page of the hood's bookings.
func (c *Client) FetchBookings(ctx context.Context, page, size int) (*PaginatedResponse, error) {
	return api.ListBookings(ctx, caller{c}, page, size)
}

// CancelBooking cancels the booking and returns the server's decoded reply
// unchanged. Use AsRecord when the reply is expected to be an object.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (any, error) {
	return api.CancelBooking(ctx, caller{c}, bookingID)
}

// SettleBooking marks the booking settled and returns the server's decoded reply.
func (c *Client) SettleBooking(ctx context.Context, bookingID string) (any, error) {
	return api.SettleBooking(ctx, caller{c}, bookingID)
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// FetchUserDetails retrieves a user by ID and returns the decoded reply.
func (c *Client) FetchUserDetails(ctx context.Context, userID string) (any, error) {
	return api.GetUser(ctx, caller{c}, userID)
}
