package m_catalog_item

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the catalog_items table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the full column list in Data field order.
func (m *Model) Columns() []string {
	return []string{
		ItemID,
		Name,
		Image,
		Kind,
		BasePriceNumerator,
		BasePriceDenominator,
		SalePriceNumerator,
		SalePriceDenominator,
		DiscountPercent,
		OnSale,
		DiscountValueNumerator,
		DiscountValueDenominator,
		SaleStartsAt,
		SaleEndsAt,
		SyncedAt,
		UpdatedAt,
	}
}

// UpsertMut creates a Spanner mutation for inserting or replacing a catalog
// item. Sync replaces rows wholesale, so there is no partial-update variant.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.Columns(),
		[]interface{}{
			data.ItemID,
			data.Name,
			data.Image,
			data.Kind,
			data.BasePriceNumerator,
			data.BasePriceDenominator,
			data.SalePriceNumerator,
			data.SalePriceDenominator,
			data.DiscountPercent,
			data.OnSale,
			data.DiscountValueNumerator,
			data.DiscountValueDenominator,
			data.SaleStartsAt,
			data.SaleEndsAt,
			data.SyncedAt,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a catalog item.
func (m *Model) DeleteMut(itemID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{itemID})
}
