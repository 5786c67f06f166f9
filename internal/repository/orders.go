package repository

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

// Orders is the repository over the append-only orders collection.
type Orders struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewOrders creates an order repository backed by the given store.
func NewOrders(store kvstore.Store, log *zap.Logger) *Orders {
	return &Orders{store: store, log: log}
}

// ListAll returns every recorded order.
func (r *Orders) ListAll(ctx context.Context) []models.Order {
	orders, err := loadCollection[models.Order](ctx, r.store, ordersKey)
	if err != nil {
		r.log.Warn("discarding unreadable orders collection", zap.Error(err))
	}
	return orders
}

// Append records a new order. Orders are never updated or removed once
// written.
func (r *Orders) Append(ctx context.Context, order models.Order) error {
	orders := r.ListAll(ctx)
	return saveCollection(ctx, r.store, ordersKey, append(orders, order))
}

// ByUser returns the orders placed by the given user, newest first.
func (r *Orders) ByUser(ctx context.Context, userID string) []models.Order {
	var mine []models.Order
	for _, o := range r.ListAll(ctx) {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].Date.After(mine[j].Date)
	})
	return mine
}
