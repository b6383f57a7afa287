package domain

import (
	"encoding/json"
	"time"
)

// ItemKind distinguishes single products from bundled packages. Both carry the
// same discount fields and are treated identically by offer evaluation.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindPackage ItemKind = "package"
)

const millisPerDay = 86400000

// CatalogItem is a storefront catalog record as the offers pipeline sees it.
// Optional fields are nil when the upstream record omitted them or shipped
// something unparseable; consumers must treat nil as "absent", never as zero.
type CatalogItem struct {
	ID              string
	Name            string
	Image           string
	Kind            ItemKind
	BasePrice       *Money
	SalePrice       *Money
	DiscountPercent *float64
	OnSale          bool
	DiscountValue   *Money
	SaleStartsAt    *time.Time
	SaleEndsAt      *time.Time
}

// SaleActiveAt reports whether the sale window allows a discount at t.
// An absent bound is unbounded on that side; a window with both bounds is
// inclusive on both ends. An inverted window (end before start) is malformed
// and gates the sale closed.
func (i CatalogItem) SaleActiveAt(t time.Time) bool {
	if i.SaleStartsAt != nil && i.SaleEndsAt != nil && i.SaleEndsAt.Before(*i.SaleStartsAt) {
		return false
	}
	if i.SaleStartsAt != nil && t.Before(*i.SaleStartsAt) {
		return false
	}
	if i.SaleEndsAt != nil && t.After(*i.SaleEndsAt) {
		return false
	}
	return true
}

// SaleWindowDays returns the sale window length truncated to whole days.
// The second return is false when either bound is absent or the window is
// inverted.
func (i CatalogItem) SaleWindowDays() (int64, bool) {
	if i.SaleStartsAt == nil || i.SaleEndsAt == nil {
		return 0, false
	}
	diff := i.SaleEndsAt.Sub(*i.SaleStartsAt).Milliseconds()
	if diff < 0 {
		return 0, false
	}
	return diff / millisPerDay, true
}

// RawCatalogItem mirrors the JSON shape delivered by the upstream commerce API.
// Numeric fields arrive as json.Number because the backend is not consistent
// about emitting numbers vs numeric strings.
type RawCatalogItem struct {
	ID                 json.Number  `json:"id"`
	Name               string       `json:"name"`
	Image              string       `json:"image"`
	Type               string       `json:"type"`
	MinPrice           *json.Number `json:"min_price"`
	MaxPrice           *json.Number `json:"max_price"`
	OriginalPrice      *json.Number `json:"original_price"`
	MinSalePrice       *json.Number `json:"min_sale_price"`
	SalePrice          *json.Number `json:"sale_price"`
	DiscountPercentage *json.Number `json:"discount_percentage"`
	OnSale             *bool        `json:"on_sale"`
	DiscountValue      *json.Number `json:"discount_value"`
	SaleStartsAt       string       `json:"sale_starts_at"`
	SaleEndsAt         string       `json:"sale_ends_at"`
}

// ParseCatalogItem converts a raw upstream record into a CatalogItem.
// It never fails: promotional display fails open to "regular price", so every
// malformed field normalizes to absent instead of producing an error.
func ParseCatalogItem(raw RawCatalogItem) CatalogItem {
	item := CatalogItem{
		ID:    raw.ID.String(),
		Name:  raw.Name,
		Image: raw.Image,
		Kind:  parseKind(raw.Type),
	}

	// Reference price source differs by item type: products carry
	// min_price/max_price, packages carry original_price.
	item.BasePrice = firstMoney(raw.MinPrice, raw.OriginalPrice, raw.MaxPrice)
	item.SalePrice = firstMoney(raw.SalePrice, raw.MinSalePrice)
	item.DiscountValue = parseMoney(raw.DiscountValue)
	item.DiscountPercent = parsePercent(raw.DiscountPercentage)
	if raw.OnSale != nil {
		item.OnSale = *raw.OnSale
	}
	item.SaleStartsAt = parseTimestamp(raw.SaleStartsAt)
	item.SaleEndsAt = parseTimestamp(raw.SaleEndsAt)

	return item
}

func parseKind(s string) ItemKind {
	if s == string(KindPackage) {
		return KindPackage
	}
	return KindProduct
}

// firstMoney returns the first candidate that parses to a usable amount.
func firstMoney(candidates ...*json.Number) *Money {
	for _, c := range candidates {
		if m := parseMoney(c); m != nil {
			return m
		}
	}
	return nil
}

// parseMoney normalizes a raw numeric field. Negative prices are stale junk
// and degrade to absent.
func parseMoney(n *json.Number) *Money {
	if n == nil {
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	m, err := NewMoneyFromFloat(f)
	if err != nil || m.IsNegative() {
		return nil
	}
	return m
}

// parsePercent keeps only percentages in [0,100]; anything else is dropped so
// it can never drive a badge or a bucket.
func parsePercent(n *json.Number) *float64 {
	if n == nil {
		return nil
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > 100 {
		return nil
	}
	return &f
}

// parseTimestamp accepts RFC 3339 and the backend's space-separated variant.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
