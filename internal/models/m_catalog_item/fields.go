package m_catalog_item

// Field name constants for the catalog_items table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "catalog_items"

	ItemID                   = "item_id"
	Name                     = "name"
	Image                    = "image"
	Kind                     = "kind"
	BasePriceNumerator       = "base_price_numerator"
	BasePriceDenominator     = "base_price_denominator"
	SalePriceNumerator       = "sale_price_numerator"
	SalePriceDenominator     = "sale_price_denominator"
	DiscountPercent          = "discount_percent"
	OnSale                   = "on_sale"
	DiscountValueNumerator   = "discount_value_numerator"
	DiscountValueDenominator = "discount_value_denominator"
	SaleStartsAt             = "sale_starts_at"
	SaleEndsAt               = "sale_ends_at"
	SyncedAt                 = "synced_at"
	UpdatedAt                = "updated_at"
)
