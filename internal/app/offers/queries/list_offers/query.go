package list_offers

import (
	"context"
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/cache"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100

	onSaleCacheKey = "offers:on_sale"
)

// Request contains tier selection and per-tier pagination parameters.
type Request struct {
	// PreferredTier is the tab the client asked for; empty or unknown falls
	// back to the first populated tier.
	PreferredTier string
	// Pages maps tier key to its requested 1-based page. Missing tiers
	// default to page 1; out-of-range pages are clamped.
	Pages    map[string]int
	PageSize int
}

// TierView is one tier tab's paginated slice.
type TierView struct {
	Tier       domain.Tier
	Page       int
	TotalPages int
	TotalCount int
	Offers     []contracts.Offer
}

// Result is the full offers surface: the high-discount carousel plus every
// tier tab, with the selected tab resolved server-side.
type Result struct {
	// HasOffers is false when no item qualifies for any surface.
	HasOffers    bool
	SelectedTier domain.Tier
	HighDiscount []contracts.Offer
	Tiers        []TierView
}

// Query handles the offers listing use case.
type Query struct {
	readModel contracts.ReadModel
	cache     *cache.TTLCache
	clk       clock.Clock
}

// NewQuery creates a new list offers query.
func NewQuery(readModel contracts.ReadModel, c *cache.TTLCache, clk clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		cache:     c,
		clk:       clk,
	}
}

// Execute buckets the currently discounted items into tiers and paginates
// each tier independently.
//
// The raw item list is cached; evaluation always runs against the current
// clock so a cached list never shows a discount past its window.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	items, err := q.onSaleItems(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clk.Now()

	var discounted []domain.CatalogItem
	for _, item := range items {
		if domain.Evaluate(item, now).IsDiscounted {
			discounted = append(discounted, item)
		}
	}

	buckets := domain.BucketOffers(discounted)
	selected, hasTier := buckets.SelectTier(domain.Tier(req.PreferredTier))

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	pages := domain.NewTierPages()
	for tier, page := range req.Pages {
		pages.Set(domain.Tier(tier), page)
	}

	result := &Result{
		HasOffers:    hasTier || len(buckets.HighDiscount) > 0,
		SelectedTier: selected,
		HighDiscount: toOffers(buckets.HighDiscount, now),
	}

	for _, tier := range domain.TierOrder {
		members := buckets.Tiers[tier]
		requested := pages.Get(tier)
		page := domain.Paginate(members, requested, pageSize)
		clamped := pages.Clamp(tier, page.TotalPages)
		if clamped != requested {
			page = domain.Paginate(members, clamped, pageSize)
		}
		result.Tiers = append(result.Tiers, TierView{
			Tier:       tier,
			Page:       clamped,
			TotalPages: page.TotalPages,
			TotalCount: len(members),
			Offers:     toOffers(page.Items, now),
		})
	}

	return result, nil
}

// Invalidate drops the cached item list, forcing the next Execute to hit
// storage. Called after a catalog sync and on sale expiry.
func (q *Query) Invalidate() {
	q.cache.Delete(onSaleCacheKey)
}

func (q *Query) onSaleItems(ctx context.Context) ([]domain.CatalogItem, error) {
	if cached, ok := q.cache.Get(onSaleCacheKey); ok {
		if items, ok := cached.([]domain.CatalogItem); ok {
			return items, nil
		}
	}
	items, err := q.readModel.ListOnSale(ctx)
	if err != nil {
		return nil, err
	}
	q.cache.Set(onSaleCacheKey, items)
	return items, nil
}

func toOffers(items []domain.CatalogItem, now time.Time) []contracts.Offer {
	offers := make([]contracts.Offer, 0, len(items))
	for _, item := range items {
		offers = append(offers, contracts.NewOffer(item, now))
	}
	return offers
}
