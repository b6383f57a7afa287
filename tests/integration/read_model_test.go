//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/repo"
	"github.com/3b3zeem/le-souk-offers-service/tests/testutil"
)

func TestReadModel_GetItemByID(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	readModel := repo.NewReadModel(client)

	t.Run("item found", func(t *testing.T) {
		testutil.CreateTestItemOnSale(t, client, "item-1", "Copper Kettle", 20, 4)

		item, err := readModel.GetItemByID(ctx, "item-1")
		require.NoError(t, err)

		assert.Equal(t, "item-1", item.ID)
		assert.Equal(t, "Copper Kettle", item.Name)
		assert.True(t, item.OnSale)
		require.NotNil(t, item.BasePrice)
		assert.InDelta(t, 150.0, item.BasePrice.Float64(), 0.0001)
		require.NotNil(t, item.SalePrice)
		assert.InDelta(t, 120.0, item.SalePrice.Float64(), 0.0001)
		require.NotNil(t, item.DiscountPercent)
		assert.Equal(t, 20.0, *item.DiscountPercent)
	})

	t.Run("missing item yields sentinel error", func(t *testing.T) {
		_, err := readModel.GetItemByID(ctx, "no-such-item")
		assert.True(t, errors.Is(err, domain.ErrItemNotFound))
	})
}

func TestReadModel_ListOnSale(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	readModel := repo.NewReadModel(client)

	testutil.CreateTestItemOnSale(t, client, "sale-1", "On Sale", 20, 4)
	testutil.CreateTestItem(t, client, "plain-1", "Regular")

	items, err := readModel.ListOnSale(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sale-1", items[0].ID)
}

func TestReadModel_ListWithSaleWindow(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	readModel := repo.NewReadModel(client)

	now := time.Now().UTC()
	testutil.CreateTestItemWithWindow(t, client, "later", now.Add(-time.Hour), now.Add(72*time.Hour))
	testutil.CreateTestItemWithWindow(t, client, "sooner", now.Add(-time.Hour), now.Add(24*time.Hour))
	testutil.CreateTestItem(t, client, "windowless", "No Window")

	items, err := readModel.ListWithSaleWindow(ctx)
	require.NoError(t, err)

	var ids []string
	for _, item := range items {
		ids = append(ids, item.ID)
		require.NotNil(t, item.SaleStartsAt)
		require.NotNil(t, item.SaleEndsAt)
	}
	// Soonest expiry first.
	assert.Contains(t, ids, "sooner")
	assert.Contains(t, ids, "later")
	if len(ids) >= 2 {
		assert.Equal(t, "sooner", ids[0])
	}
}
