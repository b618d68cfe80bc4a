// Package kvstore provides small durable key/value stores for client-side
// state such as the admin bearer token.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is a string key/value store. Every method may fail.
// Get reports found=false (and a nil error) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// ErrBlankKey is returned by Set when key is empty.
var ErrBlankKey = errors.New("key is blank")

// ErrClosed is returned after Close.
var ErrClosed = errors.New("store is closed")

// Open returns the store selected by driver. path is ignored for memory.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverBolt, "bbolt":
		b, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}
