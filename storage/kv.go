// Package storage provides the key-value backends the recipe store persists
// through.
//
// Every backend implements [KV], a two-call get/set contract over string
// keys and values. The recipe store only ever touches one key, so backends
// are kept deliberately small:
//   - [Memory]: in-process map, used by tests and the "memory" backend
//   - [Bolt]: a bbolt file, the default for local use
//   - [SQLite]: a single kv table in a pure Go SQLite database
//   - [Firestore]: one document per key in a Cloud Firestore collection
//
// Use [Open] to build the backend selected in configuration.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: closed")

// KV is the host-provided persistence boundary.
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	Close() error
}
