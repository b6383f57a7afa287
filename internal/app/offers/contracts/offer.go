package contracts

import (
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// Offer is one evaluated catalog item ready for a display surface.
// Transport layers map it to their own response shapes.
type Offer struct {
	ItemID     string
	Name       string
	Image      string
	Kind       domain.ItemKind
	Evaluation domain.Evaluation
	SaleEndsAt *time.Time
}

// NewOffer pairs an item with its evaluation at one instant.
func NewOffer(item domain.CatalogItem, now time.Time) Offer {
	return Offer{
		ItemID:     item.ID,
		Name:       item.Name,
		Image:      item.Image,
		Kind:       item.Kind,
		Evaluation: domain.Evaluate(item, now),
		SaleEndsAt: item.SaleEndsAt,
	}
}
