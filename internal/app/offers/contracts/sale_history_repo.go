package contracts

import (
	"time"

	"cloud.google.com/go/spanner"
)

// SaleHistoryRepository defines the interface for sale window audit records.
type SaleHistoryRepository interface {
	// InsertMut creates a mutation recording one observed window change.
	InsertMut(historyID, itemID string, oldStartsAt, oldEndsAt, newStartsAt, newEndsAt *time.Time) *spanner.Mutation
}
