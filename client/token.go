package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	clienterrors "github.com/qwikyankit/qwiky-admin-emergent/client/internal/errors"
)

// TokenCache holds the bearer token used for the Authorization header.
//
// It always holds either the most recently persisted token or the default.
// Each read and write is atomic, but the pre-request refresh is a store read
// followed by a separate Store, so concurrent requests may overwrite a newer
// value with an older one. The last writer wins.
type TokenCache struct {
	mu      sync.RWMutex
	current string
	def     string
}

// NewTokenCache returns a cache holding def.
func NewTokenCache(def string) *TokenCache {
	return &TokenCache{current: def, def: def}
}

// Load returns the cached token.
func (tc *TokenCache) Load() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.current
}

// Store replaces the cached token.
func (tc *TokenCache) Store(token string) {
	tc.mu.Lock()
	tc.current = token
	tc.mu.Unlock()
}

// Reset restores the default token.
func (tc *TokenCache) Reset() {
	tc.mu.Lock()
	tc.current = tc.def
	tc.mu.Unlock()
}

// Default returns the process-default token.
func (tc *TokenCache) Default() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.def
}

// GetToken returns the persisted token, or the default when none is stored.
// Store read failures count as "none stored".
func (c *Client) GetToken(ctx context.Context) string {
	token, found, err := c.store.Get(ctx, TokenKey)
	if err != nil {
		tokenStoreFailuresTotal.WithLabelValues("get").Inc()
		log.Debug().Err(err).Msg("token store read failed; using default token")
		return c.tokens.Default()
	}
	if !found || token == "" {
		return c.tokens.Default()
	}
	return token
}

// SetToken persists token and, once that succeeds, caches it for later requests.
// A store failure is returned as a store-kind *APIError and the cache is left as is.
func (c *Client) SetToken(ctx context.Context, token string) error {
	if err := c.store.Set(ctx, TokenKey, token); err != nil {
		tokenStoreFailuresTotal.WithLabelValues("set").Inc()
		return fmt.Errorf("set token: %w", clienterrors.NewStoreError("write", err))
	}
	c.tokens.Store(token)
	return nil
}

// ResetToken deletes the persisted token and restores the default in memory.
// Deletion is best-effort: a store failure is logged and otherwise ignored.
func (c *Client) ResetToken(ctx context.Context) {
	if err := c.store.Remove(ctx, TokenKey); err != nil {
		tokenStoreFailuresTotal.WithLabelValues("remove").Inc()
		log.Warn().Err(err).Msg("token store delete failed; default token restored in memory only")
	}
	c.tokens.Reset()
}
