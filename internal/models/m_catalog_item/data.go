package m_catalog_item

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the catalog_items table.
// Prices are stored as numerator/denominator pairs; nullable pairs mean the
// upstream record had no usable value for that field.
type Data struct {
	ItemID                   string              `spanner:"item_id"`
	Name                     string              `spanner:"name"`
	Image                    string              `spanner:"image"`
	Kind                     string              `spanner:"kind"`
	BasePriceNumerator       spanner.NullInt64   `spanner:"base_price_numerator"`
	BasePriceDenominator     spanner.NullInt64   `spanner:"base_price_denominator"`
	SalePriceNumerator       spanner.NullInt64   `spanner:"sale_price_numerator"`
	SalePriceDenominator     spanner.NullInt64   `spanner:"sale_price_denominator"`
	DiscountPercent          spanner.NullFloat64 `spanner:"discount_percent"`
	OnSale                   bool                `spanner:"on_sale"`
	DiscountValueNumerator   spanner.NullInt64   `spanner:"discount_value_numerator"`
	DiscountValueDenominator spanner.NullInt64   `spanner:"discount_value_denominator"`
	SaleStartsAt             spanner.NullTime    `spanner:"sale_starts_at"`
	SaleEndsAt               spanner.NullTime    `spanner:"sale_ends_at"`
	SyncedAt                 time.Time           `spanner:"synced_at"`
	UpdatedAt                time.Time           `spanner:"updated_at"`
}
