package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, f float64) *Money {
	t.Helper()
	m, err := NewMoneyFromFloat(f)
	require.NoError(t, err)
	return m
}

func percent(p float64) *float64 {
	return &p
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	start := now.Add(-48 * time.Hour)
	end := now.Add(48 * time.Hour)

	discountedItem := func(t *testing.T) CatalogItem {
		return CatalogItem{
			ID:              "1",
			BasePrice:       mustMoney(t, 150),
			SalePrice:       mustMoney(t, 120),
			DiscountValue:   mustMoney(t, 30),
			DiscountPercent: percent(20),
			OnSale:          true,
			SaleStartsAt:    &start,
			SaleEndsAt:      &end,
		}
	}

	t.Run("active sale shows sale price and badge", func(t *testing.T) {
		ev := Evaluate(discountedItem(t), now)
		assert.True(t, ev.IsDiscounted)
		assert.InDelta(t, 120.0, ev.DisplayPrice.Float64(), 0.0001)
		require.NotNil(t, ev.OriginalPrice)
		assert.InDelta(t, 150.0, ev.OriginalPrice.Float64(), 0.0001)
		require.NotNil(t, ev.PercentOff)
		assert.Equal(t, 20.0, *ev.PercentOff)
	})

	t.Run("not on sale", func(t *testing.T) {
		item := discountedItem(t)
		item.OnSale = false
		ev := Evaluate(item, now)
		assert.False(t, ev.IsDiscounted)
		assert.InDelta(t, 150.0, ev.DisplayPrice.Float64(), 0.0001)
		assert.Nil(t, ev.OriginalPrice)
		assert.Nil(t, ev.PercentOff)
	})

	t.Run("zero discount value never discounts", func(t *testing.T) {
		item := discountedItem(t)
		item.DiscountValue = mustMoney(t, 0)
		ev := Evaluate(item, now)
		assert.False(t, ev.IsDiscounted)
	})

	t.Run("missing discount value never discounts", func(t *testing.T) {
		item := discountedItem(t)
		item.DiscountValue = nil
		assert.False(t, Evaluate(item, now).IsDiscounted)
	})

	t.Run("outside window renders fully regular", func(t *testing.T) {
		item := discountedItem(t)
		ev := Evaluate(item, end.Add(time.Second))
		assert.False(t, ev.IsDiscounted)
		assert.InDelta(t, 150.0, ev.DisplayPrice.Float64(), 0.0001)
		assert.Nil(t, ev.OriginalPrice)
		assert.Nil(t, ev.PercentOff)
	})

	t.Run("window ends are inclusive", func(t *testing.T) {
		item := discountedItem(t)
		assert.True(t, Evaluate(item, start).IsDiscounted)
		assert.True(t, Evaluate(item, end).IsDiscounted)
	})

	t.Run("badge without distinct sale price keeps base display", func(t *testing.T) {
		item := discountedItem(t)
		item.SalePrice = nil
		ev := Evaluate(item, now)
		assert.True(t, ev.IsDiscounted)
		assert.InDelta(t, 150.0, ev.DisplayPrice.Float64(), 0.0001)
		assert.Nil(t, ev.OriginalPrice)
	})

	t.Run("sale price equal to base shows no strike-through", func(t *testing.T) {
		item := discountedItem(t)
		item.SalePrice = mustMoney(t, 150)
		ev := Evaluate(item, now)
		assert.True(t, ev.IsDiscounted)
		assert.Nil(t, ev.OriginalPrice)
	})

	t.Run("missing base price degrades to zero display", func(t *testing.T) {
		item := discountedItem(t)
		item.BasePrice = nil
		ev := Evaluate(item, now)
		require.NotNil(t, ev.DisplayPrice)
	})
}
