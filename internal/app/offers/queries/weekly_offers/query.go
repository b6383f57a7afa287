package weekly_offers

import (
	"context"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

// WeeklyOffer is a weekly deal with its countdown snapshot.
type WeeklyOffer struct {
	contracts.Offer
	Remaining domain.Remaining
}

// Query handles the deal-of-the-week listing use case.
type Query struct {
	readModel contracts.ReadModel
	clk       clock.Clock
}

// NewQuery creates a new weekly offers query.
func NewQuery(readModel contracts.ReadModel, clk clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		clk:       clk,
	}
}

// Execute returns the currently discounted items whose sale window spans at
// least seven whole days, each with the time left until its window closes.
func (q *Query) Execute(ctx context.Context) ([]WeeklyOffer, error) {
	items, err := q.readModel.ListWithSaleWindow(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clk.Now()

	var offers []WeeklyOffer
	for _, item := range domain.WeeklyOffers(items) {
		ev := domain.Evaluate(item, now)
		if !ev.IsDiscounted {
			continue
		}
		offers = append(offers, WeeklyOffer{
			Offer:     contracts.NewOffer(item, now),
			Remaining: domain.RemainingAt(*item.SaleEndsAt, now),
		})
	}
	return offers, nil
}
