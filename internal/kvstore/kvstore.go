// Package kvstore defines the key-value persistence substrate backing
// every storefront collection, with file, in-memory, PostgreSQL and
// Redis implementations.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// ErrUnavailable is reported when no storage backend is present in the
// current environment. Collection readers treat it the same as an
// absent key.
var ErrUnavailable = errors.New("kvstore: storage unavailable")

// Store is the persistence contract shared by all collections: a flat
// mapping from string keys to string values. Implementations give no
// transactional guarantee across keys.
type Store interface {
	// Get returns the value stored under key, ErrKeyNotFound if the key
	// is absent, or ErrUnavailable if there is no backend at all.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Unavailable is a Store for environments without a storage backend.
// Every read reports ErrUnavailable so that collections resolve to
// empty, and writes are rejected.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, error) { return "", ErrUnavailable }
func (Unavailable) Set(context.Context, string, string) error   { return ErrUnavailable }
func (Unavailable) Delete(context.Context, string) error        { return ErrUnavailable }
