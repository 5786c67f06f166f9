package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
	"github.com/delarro/freshbites/internal/repository"
)

// fakeSession is a CurrentUser with a settable user.
type fakeSession struct {
	user *models.PublicUser
}

func (f *fakeSession) Current(context.Context) (models.PublicUser, bool) {
	if f.user == nil {
		return models.PublicUser{}, false
	}
	return *f.user, true
}

func newCheckout(t *testing.T) (*Checkout, *fakeSession, *repository.Orders) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	log := zap.NewNop()
	carts := repository.NewCarts(store, log)
	orders := repository.NewOrders(store, log)
	session := &fakeSession{user: &models.PublicUser{ID: "user-1", Name: "Ana", Role: models.RoleUser}}
	return NewCheckout(session, carts, orders, log), session, orders
}

func coffee() models.Product {
	return models.Product{ID: "prod-1", Name: "Coffee", Price: decimal.NewFromFloat(2.50)}
}

func tea() models.Product {
	return models.Product{ID: "prod-2", Name: "Tea", Price: decimal.NewFromInt(3)}
}

func TestCartMutationsRequireUser(t *testing.T) {
	c, session, _ := newCheckout(t)
	session.user = nil
	ctx := context.Background()

	assert.ErrorIs(t, c.AddToCart(ctx, coffee()), ErrNoCurrentUser)
	assert.ErrorIs(t, c.UpdateQuantity(ctx, "prod-1", 2), ErrNoCurrentUser)
	assert.ErrorIs(t, c.RemoveFromCart(ctx, "prod-1"), ErrNoCurrentUser)
	assert.ErrorIs(t, c.ClearCart(ctx), ErrNoCurrentUser)
	_, err := c.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrNoCurrentUser)

	// reads resolve to empty instead of failing
	assert.Empty(t, c.Cart(ctx))
	assert.True(t, c.CartTotal(ctx).IsZero())
	assert.Zero(t, c.CartCount(ctx))
	assert.Empty(t, c.UserOrders(ctx))
}

func TestAddToCart_MergesAndTotals(t *testing.T) {
	c, _, _ := newCheckout(t)
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, coffee()))
	require.NoError(t, c.AddToCart(ctx, coffee()))
	require.NoError(t, c.AddToCart(ctx, tea()))

	items := c.Cart(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, c.CartTotal(ctx).Equal(decimal.NewFromInt(8))) // 2*2.50 + 3
	assert.Equal(t, 3, c.CartCount(ctx))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	c, _, orders := newCheckout(t)
	ctx := context.Background()

	_, err := c.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.ListAll(ctx))
}

func TestPlaceOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	c, _, orders := newCheckout(t)
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, coffee()))
	require.NoError(t, c.AddToCart(ctx, coffee()))
	require.NoError(t, c.AddToCart(ctx, tea()))
	before := c.Cart(ctx)

	start := time.Now().UTC()
	order, err := c.PlaceOrder(ctx)
	require.NoError(t, err)

	assert.True(t, len(order.ID) > len("order-") && order.ID[:6] == "order-")
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "Ana", order.UserName)
	assert.False(t, order.Date.Before(start))
	assert.Equal(t, before, order.Items)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(8)))

	// recorded once, and the cart is empty again
	recorded := orders.ListAll(ctx)
	require.Len(t, recorded, 1)
	assert.Equal(t, order.ID, recorded[0].ID)
	assert.Empty(t, c.Cart(ctx))
}

func TestPlaceOrder_SnapshotIgnoresLaterPriceChanges(t *testing.T) {
	c, _, orders := newCheckout(t)
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, coffee()))
	_, err := c.PlaceOrder(ctx)
	require.NoError(t, err)

	// the recorded line keeps the price from add time
	recorded := orders.ListAll(ctx)
	require.Len(t, recorded, 1)
	assert.True(t, recorded[0].Items[0].Price.Equal(decimal.NewFromFloat(2.50)))
}

func TestUserOrders_OwnOrdersNewestFirst(t *testing.T) {
	c, session, orders := newCheckout(t)
	ctx := context.Background()

	d1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Append(ctx, models.Order{ID: "order-a", UserID: "user-1", Date: d1}))
	require.NoError(t, orders.Append(ctx, models.Order{ID: "order-b", UserID: "user-2", Date: d1}))
	require.NoError(t, orders.Append(ctx, models.Order{ID: "order-c", UserID: "user-1", Date: d2}))

	mine := c.UserOrders(ctx)
	require.Len(t, mine, 2)
	assert.Equal(t, "order-c", mine[0].ID)
	assert.Equal(t, "order-a", mine[1].ID)

	// the admin view sees everything
	session.user = &models.PublicUser{ID: "admin-id", Name: "Administrator", Role: models.RoleAdmin}
	assert.Len(t, c.AllOrders(ctx), 3)
}

func TestUpdateQuantity_ZeroLeavesCartUnchanged(t *testing.T) {
	c, _, _ := newCheckout(t)
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, coffee()))
	require.Error(t, c.UpdateQuantity(ctx, "prod-1", 0))

	items := c.Cart(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}
