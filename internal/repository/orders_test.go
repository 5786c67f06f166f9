package repository

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
)

func newOrders(t *testing.T) *Orders {
	t.Helper()
	return NewOrders(kvstore.NewMemoryStore(), zap.NewNop())
}

func order(id, userID string, date time.Time) models.Order {
	return models.Order{
		ID:     id,
		UserID: userID,
		Date:   date,
		Items:  []models.CartItem{{ProductID: "p", Name: "Coffee", Price: decimal.NewFromInt(2), Quantity: 1}},
		Total:  decimal.NewFromInt(2),
	}
}

func TestOrdersByUser_FiltersAndSortsNewestFirst(t *testing.T) {
	repo := newOrders(t)
	ctx := context.Background()

	d1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, order("order-1", "ana", d1)))
	require.NoError(t, repo.Append(ctx, order("order-2", "bob", d1)))
	require.NoError(t, repo.Append(ctx, order("order-3", "ana", d2)))

	mine := repo.ByUser(ctx, "ana")
	require.Len(t, mine, 2)
	assert.Equal(t, "order-3", mine[0].ID)
	assert.Equal(t, "order-1", mine[1].ID)

	assert.Len(t, repo.ListAll(ctx), 3)
	assert.Empty(t, repo.ByUser(ctx, "nobody"))
}

func TestOrdersSurviveRoundTrip(t *testing.T) {
	repo := newOrders(t)
	ctx := context.Background()

	placed := order("order-1", "ana", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Append(ctx, placed))

	got := repo.ListAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, placed.ID, got[0].ID)
	assert.True(t, placed.Date.Equal(got[0].Date))
	assert.True(t, placed.Total.Equal(got[0].Total))
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Coffee", got[0].Items[0].Name)
}
