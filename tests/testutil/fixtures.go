package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_catalog_item"
)

// CreateTestItem inserts a plain, not-on-sale catalog item.
func CreateTestItem(t *testing.T, client *spanner.Client, itemID, name string) {
	t.Helper()

	data := &m_catalog_item.Data{
		ItemID:               itemID,
		Name:                 name,
		Kind:                 "product",
		BasePriceNumerator:   spanner.NullInt64{Int64: 15000, Valid: true},
		BasePriceDenominator: spanner.NullInt64{Int64: 100, Valid: true},
		OnSale:               false,
		SyncedAt:             time.Now().UTC(),
	}
	applyItem(t, client, data)
}

// CreateTestItemOnSale inserts an on-sale item with an active window spanning
// windowDays around now.
func CreateTestItemOnSale(t *testing.T, client *spanner.Client, itemID, name string, discountPercent float64, windowDays int) {
	t.Helper()

	now := time.Now().UTC()
	half := time.Duration(windowDays) * 12 * time.Hour

	data := &m_catalog_item.Data{
		ItemID:                   itemID,
		Name:                     name,
		Kind:                     "product",
		BasePriceNumerator:       spanner.NullInt64{Int64: 15000, Valid: true},
		BasePriceDenominator:     spanner.NullInt64{Int64: 100, Valid: true},
		SalePriceNumerator:       spanner.NullInt64{Int64: 12000, Valid: true},
		SalePriceDenominator:     spanner.NullInt64{Int64: 100, Valid: true},
		DiscountPercent:          spanner.NullFloat64{Float64: discountPercent, Valid: true},
		OnSale:                   true,
		DiscountValueNumerator:   spanner.NullInt64{Int64: 3000, Valid: true},
		DiscountValueDenominator: spanner.NullInt64{Int64: 100, Valid: true},
		SaleStartsAt:             spanner.NullTime{Time: now.Add(-half), Valid: true},
		SaleEndsAt:               spanner.NullTime{Time: now.Add(half), Valid: true},
		SyncedAt:                 now,
	}
	applyItem(t, client, data)
}

// CreateTestItemWithWindow inserts an on-sale item with explicit window bounds.
func CreateTestItemWithWindow(t *testing.T, client *spanner.Client, itemID string, startsAt, endsAt time.Time) {
	t.Helper()

	data := &m_catalog_item.Data{
		ItemID:                   itemID,
		Name:                     "Windowed " + itemID,
		Kind:                     "product",
		BasePriceNumerator:       spanner.NullInt64{Int64: 15000, Valid: true},
		BasePriceDenominator:     spanner.NullInt64{Int64: 100, Valid: true},
		SalePriceNumerator:       spanner.NullInt64{Int64: 12000, Valid: true},
		SalePriceDenominator:     spanner.NullInt64{Int64: 100, Valid: true},
		DiscountPercent:          spanner.NullFloat64{Float64: 20, Valid: true},
		OnSale:                   true,
		DiscountValueNumerator:   spanner.NullInt64{Int64: 3000, Valid: true},
		DiscountValueDenominator: spanner.NullInt64{Int64: 100, Valid: true},
		SaleStartsAt:             spanner.NullTime{Time: startsAt.UTC(), Valid: true},
		SaleEndsAt:               spanner.NullTime{Time: endsAt.UTC(), Valid: true},
		SyncedAt:                 time.Now().UTC(),
	}
	applyItem(t, client, data)
}

func applyItem(t *testing.T, client *spanner.Client, data *m_catalog_item.Data) {
	t.Helper()

	model := m_catalog_item.NewModel()
	_, err := client.Apply(context.Background(), []*spanner.Mutation{model.UpsertMut(data)})
	require.NoError(t, err, "failed to create test catalog item")
}
