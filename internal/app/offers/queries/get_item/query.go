package get_item

import (
	"context"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

// Request contains parameters for retrieving a single item's offer state.
type Request struct {
	ItemID string
}

// Result is one item's evaluated price plus, when a discounted sale has an
// end time, the countdown to that end.
type Result struct {
	Offer     contracts.Offer
	Remaining *domain.Remaining
}

// Query handles the single item price lookup use case.
type Query struct {
	readModel contracts.ReadModel
	clk       clock.Clock
}

// NewQuery creates a new get item query.
func NewQuery(readModel contracts.ReadModel, clk clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		clk:       clk,
	}
}

// Execute retrieves an item and evaluates its discount state at the current
// instant. Returns domain.ErrItemNotFound when the item does not exist.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	item, err := q.readModel.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	now := q.clk.Now()
	result := &Result{
		Offer: contracts.NewOffer(item, now),
	}
	if result.Offer.Evaluation.IsDiscounted && item.SaleEndsAt != nil {
		r := domain.RemainingAt(*item.SaleEndsAt, now)
		result.Remaining = &r
	}
	return result, nil
}
