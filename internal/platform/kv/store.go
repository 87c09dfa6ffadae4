// Package kv defines the engine's only durability contract: an abstract
// key-value store holding JSON-encoded values. The engine tolerates absence
// of any key (first run) by falling back to defaults.
package kv

import "context"

type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error
}
