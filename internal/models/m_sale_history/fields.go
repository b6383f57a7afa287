package m_sale_history

// Field name constants for the sale_history table.
const (
	TableName = "sale_history"

	HistoryID   = "history_id"
	ItemID      = "item_id"
	OldStartsAt = "old_starts_at"
	OldEndsAt   = "old_ends_at"
	NewStartsAt = "new_starts_at"
	NewEndsAt   = "new_ends_at"
	RecordedAt  = "recorded_at"
)
