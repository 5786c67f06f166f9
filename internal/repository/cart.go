package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

// Carts is the repository over the per-user cart collections. Each user
// owns one cart, stored under its own key.
type Carts struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewCarts creates a cart repository backed by the given store.
func NewCarts(store kvstore.Store, log *zap.Logger) *Carts {
	return &Carts{store: store, log: log}
}

// Items returns the cart content for the given user.
func (r *Carts) Items(ctx context.Context, userID string) []models.CartItem {
	items, err := loadCollection[models.CartItem](ctx, r.store, cartKey(userID))
	if err != nil {
		r.log.Warn("discarding unreadable cart", zap.String("user", userID), zap.Error(err))
	}
	return items
}

// Add puts one unit of the product into the user's cart. When the
// product is already present its quantity goes up by one; otherwise a
// new line is appended, snapshotting the product's name, price and
// image as they are now.
func (r *Carts) Add(ctx context.Context, userID string, product models.Product) error {
	items := r.Items(ctx, userID)

	for i, item := range items {
		if item.ProductID == product.ID {
			items[i].Quantity++
			return saveCollection(ctx, r.store, cartKey(userID), items)
		}
	}

	items = append(items, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		Image:     product.Image,
	})
	return saveCollection(ctx, r.store, cartKey(userID), items)
}

// UpdateQuantity overwrites the quantity of one cart line. Quantities
// below one are rejected and the cart is left untouched; a missing line
// yields ErrNotFound.
func (r *Carts) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return validationErr("quantity", "quantity must be at least 1")
	}

	items := r.Items(ctx, userID)
	for i, item := range items {
		if item.ProductID == productID {
			items[i].Quantity = quantity
			return saveCollection(ctx, r.store, cartKey(userID), items)
		}
	}
	return ErrNotFound
}

// Remove deletes one line from the cart. Removing an absent product is
// not an error.
func (r *Carts) Remove(ctx context.Context, userID, productID string) error {
	items := r.Items(ctx, userID)

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return saveCollection(ctx, r.store, cartKey(userID), kept)
}

// Total returns the sum of price times quantity over the cart.
func (r *Carts) Total(ctx context.Context, userID string) decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items(ctx, userID) {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count returns the number of units in the cart, across all lines.
func (r *Carts) Count(ctx context.Context, userID string) int {
	count := 0
	for _, item := range r.Items(ctx, userID) {
		count += item.Quantity
	}
	return count
}

// Clear empties the user's cart.
func (r *Carts) Clear(ctx context.Context, userID string) error {
	return saveCollection(ctx, r.store, cartKey(userID), []models.CartItem{})
}
