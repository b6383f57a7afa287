package domain

// Tier is a promotion severity bucket keyed by discount percentage range.
// Keys are wire-stable: the frontend maps them to localized labels.
type Tier string

const (
	Tier1To10  Tier = "1-10"
	Tier11To30 Tier = "11-30"
	Tier31To50 Tier = "31-50"
)

// TierOrder is the fixed display order, also used for fallback selection.
var TierOrder = []Tier{Tier1To10, Tier11To30, Tier31To50}

// Sale windows spanning at least this many whole days qualify for the
// deal-of-the-week surface.
const weeklyMinDays = 7

// Buckets partitions discounted items into promotional surfaces.
type Buckets struct {
	// HighDiscount holds items above 50% off; they get their own carousel
	// and never appear in a tier tab.
	HighDiscount []CatalogItem
	Tiers        map[Tier][]CatalogItem
}

// BucketOffers classifies items by their discount_percentage field.
// Boundaries are inclusive on both ends per tier; percentages outside [1,100]
// or absent are silently dropped from every surface.
func BucketOffers(items []CatalogItem) Buckets {
	b := Buckets{
		Tiers: map[Tier][]CatalogItem{
			Tier1To10:  nil,
			Tier11To30: nil,
			Tier31To50: nil,
		},
	}

	for _, item := range items {
		if item.DiscountPercent == nil {
			continue
		}
		p := *item.DiscountPercent
		switch {
		case p >= 1 && p <= 10:
			b.Tiers[Tier1To10] = append(b.Tiers[Tier1To10], item)
		case p >= 11 && p <= 30:
			b.Tiers[Tier11To30] = append(b.Tiers[Tier11To30], item)
		case p >= 31 && p <= 50:
			b.Tiers[Tier31To50] = append(b.Tiers[Tier31To50], item)
		case p > 50 && p <= 100:
			b.HighDiscount = append(b.HighDiscount, item)
		}
	}

	return b
}

// TierCount returns the number of items in a tier.
func (b Buckets) TierCount(t Tier) int {
	return len(b.Tiers[t])
}

// SelectTier resolves which tier tab should be selected. A tier with zero
// members is never selectable; when preferred is empty (or unknown), selection
// falls back to the first non-empty tier in TierOrder. The second return is
// false when every tier is empty, meaning no tab should render at all.
func (b Buckets) SelectTier(preferred Tier) (Tier, bool) {
	if preferred != "" && b.TierCount(preferred) > 0 {
		return preferred, true
	}
	for _, t := range TierOrder {
		if b.TierCount(t) > 0 {
			return t, true
		}
	}
	return "", false
}

// WeeklyOffers returns the subset of items whose sale window spans at least
// seven whole days. Membership is independent of tier: a weekly deal may also
// sit in a tier tab or the high-discount carousel.
func WeeklyOffers(items []CatalogItem) []CatalogItem {
	var weekly []CatalogItem
	for _, item := range items {
		if days, ok := item.SaleWindowDays(); ok && days >= weeklyMinDays {
			weekly = append(weekly, item)
		}
	}
	return weekly
}
