package m_sale_history

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the sale_history table.
// One row per observed change to an item's sale window.
type Data struct {
	HistoryID   string
	ItemID      string
	OldStartsAt spanner.NullTime
	OldEndsAt   spanner.NullTime
	NewStartsAt spanner.NullTime
	NewEndsAt   spanner.NullTime
	RecordedAt  time.Time
}

// Model provides a facade for type-safe operations on the sale_history table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a sale window change.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			HistoryID,
			ItemID,
			OldStartsAt,
			OldEndsAt,
			NewStartsAt,
			NewEndsAt,
			RecordedAt,
		},
		[]interface{}{
			data.HistoryID,
			data.ItemID,
			data.OldStartsAt,
			data.OldEndsAt,
			data.NewStartsAt,
			data.NewEndsAt,
			spanner.CommitTimestamp,
		},
	)
}
