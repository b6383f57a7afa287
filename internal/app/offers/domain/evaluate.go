package domain

import "time"

// Evaluation is the discount state of a single catalog item at one instant.
// It is plain data for the rendering side: no markup or locale decisions here.
type Evaluation struct {
	IsDiscounted bool
	// DisplayPrice is what the shopper pays right now.
	DisplayPrice *Money
	// OriginalPrice is the struck-through reference price. Nil unless the
	// item is discounted at a price different from the base price.
	OriginalPrice *Money
	// PercentOff is the badge percentage, taken verbatim from the backend's
	// discount_percentage field. Nil means no badge.
	PercentOff *float64
}

// Evaluate derives the discount state of item at now.
//
// now is passed explicitly so one consistent snapshot covers a whole render
// pass; the function never reads the wall clock itself. All display surfaces
// must call this instead of re-deriving price/badge logic inline.
//
// An item is discounted iff it is flagged on_sale, carries a positive
// discount_value, and now falls inside the sale window (absent bounds do not
// gate). Malformed records degrade to the regular price.
func Evaluate(item CatalogItem, now time.Time) Evaluation {
	base := item.BasePrice
	if base == nil {
		base, _ = NewMoney(0, 1)
	}

	ev := Evaluation{
		DisplayPrice: base.Copy(),
	}

	if !item.OnSale {
		return ev
	}
	if item.DiscountValue == nil || !item.DiscountValue.IsPositive() {
		return ev
	}
	if !item.SaleActiveAt(now) {
		return ev
	}

	ev.IsDiscounted = true
	ev.PercentOff = item.DiscountPercent
	if item.SalePrice != nil && !item.SalePrice.Equals(base) {
		ev.DisplayPrice = item.SalePrice.Copy()
		ev.OriginalPrice = base.Copy()
	}
	return ev
}
