package client

import (
	"context"
	"errors"
	"sync"

	"github.com/qwikyankit/qwiky-admin-emergent/pkg/kvstore"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore wraps an in-memory store and fails selected operations.
type flakyStore struct {
	*kvstore.Memory

	mu                           sync.Mutex
	failGet, failSet, failRemove bool
	gets                         int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Memory: kvstore.NewMemory()}
}

func (f *flakyStore) fail(get, set, remove bool) {
	f.mu.Lock()
	f.failGet, f.failSet, f.failRemove = get, set, remove
	f.mu.Unlock()
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	f.gets++
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errStoreDown
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failRemove
	f.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return f.Memory.Remove(ctx, key)
}
