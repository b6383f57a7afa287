package contracts

import (
	"context"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// ReadModel defines the interface for catalog queries.
// It returns domain CatalogItems; discount evaluation stays in the domain
// layer so every surface shares one canonical rule set.
type ReadModel interface {
	// GetItemByID retrieves a single catalog item.
	GetItemByID(ctx context.Context, itemID string) (domain.CatalogItem, error)

	// ListOnSale retrieves every item flagged on_sale, newest first.
	ListOnSale(ctx context.Context) ([]domain.CatalogItem, error)

	// ListWithSaleWindow retrieves on-sale items carrying both sale window
	// bounds, the candidate set for weekly deals and expiry tracking.
	ListWithSaleWindow(ctx context.Context) ([]domain.CatalogItem, error)
}
