package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_catalog_item"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/query"
)

// CatalogRepo implements CatalogRepository for Spanner.
type CatalogRepo struct {
	client *spanner.Client
	model  *m_catalog_item.Model
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) contracts.CatalogRepository {
	return &CatalogRepo{
		client: client,
		model:  m_catalog_item.NewModel(),
	}
}

// UpsertMut creates a mutation replacing an item's stored snapshot.
func (r *CatalogRepo) UpsertMut(item domain.CatalogItem, syncedAt time.Time) (*spanner.Mutation, error) {
	data, err := domainToData(item, syncedAt)
	if err != nil {
		return nil, err
	}
	return r.model.UpsertMut(data), nil
}

// ListSaleWindows retrieves the stored sale windows keyed by item ID.
func (r *CatalogRepo) ListSaleWindows(ctx context.Context) (map[string]contracts.SaleWindowSnapshot, error) {
	stmt := query.From(m_catalog_item.TableName).
		Select(m_catalog_item.ItemID, m_catalog_item.SaleStartsAt, m_catalog_item.SaleEndsAt).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	windows := make(map[string]contracts.SaleWindowSnapshot)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate sale windows: %w", err)
		}

		var (
			itemID   string
			startsAt spanner.NullTime
			endsAt   spanner.NullTime
		)
		if err := row.Columns(&itemID, &startsAt, &endsAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale window: %w", err)
		}

		snapshot := contracts.SaleWindowSnapshot{ItemID: itemID}
		if startsAt.Valid {
			t := startsAt.Time
			snapshot.SaleStartsAt = &t
		}
		if endsAt.Valid {
			t := endsAt.Time
			snapshot.SaleEndsAt = &t
		}
		windows[itemID] = snapshot
	}

	return windows, nil
}

// domainToData converts a domain CatalogItem to database Data.
func domainToData(item domain.CatalogItem, syncedAt time.Time) (*m_catalog_item.Data, error) {
	data := &m_catalog_item.Data{
		ItemID:   item.ID,
		Name:     item.Name,
		Image:    item.Image,
		Kind:     string(item.Kind),
		OnSale:   item.OnSale,
		SyncedAt: syncedAt,
	}

	var err error
	if data.BasePriceNumerator, data.BasePriceDenominator, err = moneyToCols(item.BasePrice); err != nil {
		return nil, fmt.Errorf("base price: %w", err)
	}
	if data.SalePriceNumerator, data.SalePriceDenominator, err = moneyToCols(item.SalePrice); err != nil {
		return nil, fmt.Errorf("sale price: %w", err)
	}
	if data.DiscountValueNumerator, data.DiscountValueDenominator, err = moneyToCols(item.DiscountValue); err != nil {
		return nil, fmt.Errorf("discount value: %w", err)
	}

	if item.DiscountPercent != nil {
		data.DiscountPercent = spanner.NullFloat64{Float64: *item.DiscountPercent, Valid: true}
	}
	if item.SaleStartsAt != nil {
		data.SaleStartsAt = spanner.NullTime{Time: *item.SaleStartsAt, Valid: true}
	}
	if item.SaleEndsAt != nil {
		data.SaleEndsAt = spanner.NullTime{Time: *item.SaleEndsAt, Valid: true}
	}

	return data, nil
}

// moneyToCols converts an optional Money into nullable numerator/denominator
// columns, normalizing first for consistent storage.
func moneyToCols(m *domain.Money) (spanner.NullInt64, spanner.NullInt64, error) {
	if m == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, nil
	}

	normalized := m.Normalize()
	if !normalized.IsSafeForStorage() {
		return spanner.NullInt64{}, spanner.NullInt64{}, domain.ErrMoneyOverflow
	}

	return spanner.NullInt64{Int64: normalized.Numerator(), Valid: true},
		spanner.NullInt64{Int64: normalized.Denominator(), Valid: true},
		nil
}

// colsToMoney converts nullable numerator/denominator columns back to Money.
// Rows written before both columns were populated degrade to absent.
func colsToMoney(num, denom spanner.NullInt64) *domain.Money {
	if !num.Valid || !denom.Valid {
		return nil
	}
	m, err := domain.NewMoney(num.Int64, denom.Int64)
	if err != nil {
		return nil
	}
	return m
}
