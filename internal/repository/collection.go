package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/delarro/freshbites/internal/kvstore"
)

// Fixed keys for the storefront collections.
const (
	usersKey      = "users"
	productsKey   = "products"
	categoriesKey = "categories"
	ordersKey     = "orders"
	cartKeyPrefix = "cart_"
)

// cartKey returns the per-user cart key.
func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// loadCollection reads and decodes the full collection stored under key.
// An absent key or unavailable backend yields an empty slice with no
// error; a blob that fails to decode yields an empty slice together
// with ErrCorruptData so callers can log the corruption before
// continuing.
func loadCollection[T any](ctx context.Context, store kvstore.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) || errors.Is(err, kvstore.ErrUnavailable) {
			return []T{}, nil
		}
		return []T{}, err
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, fmt.Errorf("%w: key %q: %v", ErrCorruptData, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection encodes items and writes them back under key,
// replacing the previous blob.
func saveCollection[T any](ctx context.Context, store kvstore.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist collection %q: %w", key, err)
	}
	return nil
}
