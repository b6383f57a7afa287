package contracts

import (
	"context"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// Fetcher pulls the full catalog snapshot from the upstream commerce API.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}
