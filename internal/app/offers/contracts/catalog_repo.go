package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// SaleWindowSnapshot is the stored sale window of one item, used by sync to
// detect window changes without loading full rows.
type SaleWindowSnapshot struct {
	ItemID       string
	SaleStartsAt *time.Time
	SaleEndsAt   *time.Time
}

// Changed reports whether the stored window differs from the given bounds.
func (s SaleWindowSnapshot) Changed(startsAt, endsAt *time.Time) bool {
	return !equalTimePtr(s.SaleStartsAt, startsAt) || !equalTimePtr(s.SaleEndsAt, endsAt)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// CatalogRepository defines the interface for catalog persistence.
// Repositories return mutations, they don't apply them; use cases collect
// mutations into a commit plan and apply it atomically.
type CatalogRepository interface {
	// UpsertMut creates a mutation replacing an item's stored snapshot.
	// Returns an error if money values exceed int64 storage bounds.
	UpsertMut(item domain.CatalogItem, syncedAt time.Time) (*spanner.Mutation, error)

	// ListSaleWindows retrieves the stored sale windows keyed by item ID.
	ListSaleWindows(ctx context.Context) (map[string]SaleWindowSnapshot, error)
}
