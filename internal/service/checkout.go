package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/models"
)

// ErrNoCurrentUser is returned by cart mutations and checkout when
// nobody is logged in; a cart key only resolves for a current user.
var ErrNoCurrentUser = errors.New("no user is logged in")

// ErrEmptyCart is returned by Checkout when the cart has no items.
var ErrEmptyCart = errors.New("the cart is empty")

// CartStore defines the cart persistence operations required by the
// checkout service.
type CartStore interface {
	Items(ctx context.Context, userID string) []models.CartItem
	Add(ctx context.Context, userID string, product models.Product) error
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Total(ctx context.Context, userID string) decimal.Decimal
	Count(ctx context.Context, userID string) int
	Clear(ctx context.Context, userID string) error
}

// OrderStore defines the order persistence operations required by the
// checkout service.
type OrderStore interface {
	Append(ctx context.Context, order models.Order) error
	ByUser(ctx context.Context, userID string) []models.Order
	ListAll(ctx context.Context) []models.Order
}

// CurrentUser resolves the logged-in user, usually a *Session.
type CurrentUser interface {
	Current(ctx context.Context) (models.PublicUser, bool)
}

// Checkout drives the cart and order flow for the logged-in user. Reads
// without a session resolve to empty; mutations require one.
type Checkout struct {
	session CurrentUser
	carts   CartStore
	orders  OrderStore
	log     *zap.Logger
}

// NewCheckout constructs the checkout service.
func NewCheckout(session CurrentUser, carts CartStore, orders OrderStore, log *zap.Logger) *Checkout {
	return &Checkout{session: session, carts: carts, orders: orders, log: log}
}

// Cart returns the current user's cart, or an empty list when nobody is
// logged in.
func (c *Checkout) Cart(ctx context.Context) []models.CartItem {
	user, ok := c.session.Current(ctx)
	if !ok {
		return []models.CartItem{}
	}
	return c.carts.Items(ctx, user.ID)
}

// CartTotal returns the sum of price times quantity over the current
// user's cart.
func (c *Checkout) CartTotal(ctx context.Context) decimal.Decimal {
	user, ok := c.session.Current(ctx)
	if !ok {
		return decimal.Zero
	}
	return c.carts.Total(ctx, user.ID)
}

// CartCount returns the number of units in the current user's cart.
func (c *Checkout) CartCount(ctx context.Context) int {
	user, ok := c.session.Current(ctx)
	if !ok {
		return 0
	}
	return c.carts.Count(ctx, user.ID)
}

// AddToCart puts one unit of the product into the current user's cart.
func (c *Checkout) AddToCart(ctx context.Context, product models.Product) error {
	user, ok := c.session.Current(ctx)
	if !ok {
		return ErrNoCurrentUser
	}
	return c.carts.Add(ctx, user.ID, product)
}

// UpdateQuantity overwrites the quantity of one line in the current
// user's cart.
func (c *Checkout) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	user, ok := c.session.Current(ctx)
	if !ok {
		return ErrNoCurrentUser
	}
	return c.carts.UpdateQuantity(ctx, user.ID, productID, quantity)
}

// RemoveFromCart deletes one line from the current user's cart.
// Removing an absent product is not an error.
func (c *Checkout) RemoveFromCart(ctx context.Context, productID string) error {
	user, ok := c.session.Current(ctx)
	if !ok {
		return ErrNoCurrentUser
	}
	return c.carts.Remove(ctx, user.ID, productID)
}

// ClearCart empties the current user's cart.
func (c *Checkout) ClearCart(ctx context.Context) error {
	user, ok := c.session.Current(ctx)
	if !ok {
		return ErrNoCurrentUser
	}
	return c.carts.Clear(ctx, user.ID)
}

// PlaceOrder snapshots the current cart into a new order, appends it to
// the orders collection and then clears the cart. The two writes are
// sequential: the order is recorded first, so a failure while clearing
// leaves the order in place and returns it along with the error.
func (c *Checkout) PlaceOrder(ctx context.Context) (models.Order, error) {
	user, ok := c.session.Current(ctx)
	if !ok {
		return models.Order{}, ErrNoCurrentUser
	}

	items := c.carts.Items(ctx, user.ID)
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	order := models.Order{
		ID:       "order-" + uuid.NewString(),
		UserID:   user.ID,
		UserName: user.Name,
		Date:     time.Now().UTC(),
		Items:    items,
		Total:    total,
	}

	if err := c.orders.Append(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("record order: %w", err)
	}

	if err := c.carts.Clear(ctx, user.ID); err != nil {
		c.log.Warn("order recorded but cart not cleared",
			zap.String("order", order.ID), zap.Error(err))
		return order, fmt.Errorf("order %s recorded but cart not cleared: %w", order.ID, err)
	}

	c.log.Info("order placed",
		zap.String("order", order.ID),
		zap.String("user", user.ID),
		zap.Int("lines", len(items)))
	return order, nil
}

// AllOrders returns every recorded order, for the admin view.
func (c *Checkout) AllOrders(ctx context.Context) []models.Order {
	return c.orders.ListAll(ctx)
}

// UserOrders returns the current user's orders, newest first, or an
// empty list when nobody is logged in.
func (c *Checkout) UserOrders(ctx context.Context) []models.Order {
	user, ok := c.session.Current(ctx)
	if !ok {
		return []models.Order{}
	}
	return c.orders.ByUser(ctx, user.ID)
}
