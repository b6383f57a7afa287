package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_catalog_item"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
	model  *m_catalog_item.Model
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
		model:  m_catalog_item.NewModel(),
	}
}

// GetItemByID retrieves a single catalog item.
func (rm *ReadModelImpl) GetItemByID(ctx context.Context, itemID string) (domain.CatalogItem, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_catalog_item.TableName, spanner.Key{itemID}, rm.model.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.CatalogItem{}, domain.ErrItemNotFound
		}
		return domain.CatalogItem{}, fmt.Errorf("failed to read catalog item: %w", err)
	}

	var data m_catalog_item.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("failed to parse catalog item: %w", err)
	}

	return dataToDomain(&data), nil
}

// ListOnSale retrieves every item flagged on_sale, newest first.
func (rm *ReadModelImpl) ListOnSale(ctx context.Context) ([]domain.CatalogItem, error) {
	stmt := query.From(m_catalog_item.TableName).
		Select(rm.model.Columns()...).
		Where(query.Eq(m_catalog_item.OnSale, true)).
		OrderBy(m_catalog_item.UpdatedAt, query.Desc).
		Build()

	return rm.queryItems(ctx, stmt)
}

// ListWithSaleWindow retrieves on-sale items carrying both window bounds.
func (rm *ReadModelImpl) ListWithSaleWindow(ctx context.Context) ([]domain.CatalogItem, error) {
	stmt := query.From(m_catalog_item.TableName).
		Select(rm.model.Columns()...).
		Where(query.Eq(m_catalog_item.OnSale, true)).
		Where(query.IsNotNull(m_catalog_item.SaleStartsAt)).
		Where(query.IsNotNull(m_catalog_item.SaleEndsAt)).
		OrderBy(m_catalog_item.SaleEndsAt, query.Asc).
		Build()

	return rm.queryItems(ctx, stmt)
}

func (rm *ReadModelImpl) queryItems(ctx context.Context, stmt spanner.Statement) ([]domain.CatalogItem, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var items []domain.CatalogItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate catalog items: %w", err)
		}

		var data m_catalog_item.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse catalog item: %w", err)
		}

		items = append(items, dataToDomain(&data))
	}

	return items, nil
}

// dataToDomain converts database Data to a domain CatalogItem.
// Storage-level junk degrades to absent fields, same policy as ingest.
func dataToDomain(data *m_catalog_item.Data) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:            data.ItemID,
		Name:          data.Name,
		Image:         data.Image,
		Kind:          domain.ItemKind(data.Kind),
		OnSale:        data.OnSale,
		BasePrice:     colsToMoney(data.BasePriceNumerator, data.BasePriceDenominator),
		SalePrice:     colsToMoney(data.SalePriceNumerator, data.SalePriceDenominator),
		DiscountValue: colsToMoney(data.DiscountValueNumerator, data.DiscountValueDenominator),
	}

	if data.DiscountPercent.Valid {
		p := data.DiscountPercent.Float64
		item.DiscountPercent = &p
	}
	if data.SaleStartsAt.Valid {
		t := data.SaleStartsAt.Time
		item.SaleStartsAt = &t
	}
	if data.SaleEndsAt.Valid {
		t := data.SaleEndsAt.Time
		item.SaleEndsAt = &t
	}

	return item
}
