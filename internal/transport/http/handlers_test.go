package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/get_item"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_events"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/weekly_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/models/m_outbox"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/cache"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

var testNow = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

type fakeReadModel struct {
	items map[string]domain.CatalogItem
}

func (f *fakeReadModel) GetItemByID(ctx context.Context, itemID string) (domain.CatalogItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return domain.CatalogItem{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeReadModel) ListOnSale(ctx context.Context) ([]domain.CatalogItem, error) {
	var out []domain.CatalogItem
	for _, item := range f.items {
		if item.OnSale {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeReadModel) ListWithSaleWindow(ctx context.Context) ([]domain.CatalogItem, error) {
	var out []domain.CatalogItem
	for _, item := range f.items {
		if item.OnSale && item.SaleStartsAt != nil && item.SaleEndsAt != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeEventsReadModel struct {
	events []*m_outbox.Data
}

func (f *fakeEventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	return f.events, nil
}

func saleItem(id string, pct float64, window time.Duration) domain.CatalogItem {
	base, _ := domain.NewMoney(150, 1)
	sale, _ := domain.NewMoney(120, 1)
	value, _ := domain.NewMoney(30, 1)
	start := testNow.Add(-window / 2)
	end := testNow.Add(window / 2)
	return domain.CatalogItem{
		ID:              id,
		Name:            "Item " + id,
		Kind:            domain.KindProduct,
		BasePrice:       base,
		SalePrice:       sale,
		DiscountValue:   value,
		DiscountPercent: &pct,
		OnSale:          true,
		SaleStartsAt:    &start,
		SaleEndsAt:      &end,
	}
}

func newTestServer(rm *fakeReadModel, events *fakeEventsReadModel) *httptest.Server {
	clk := clock.NewMockClock(testNow)
	h := Handlers{
		Offers: NewOffersHandler(
			list_offers.NewQuery(rm, cache.New(time.Minute, clk), clk),
			weekly_offers.NewQuery(rm, clk),
		),
		Items:  NewItemsHandler(get_item.NewQuery(rm, clk), rm),
		Events: NewEventsHandler(list_events.NewQuery(events)),
	}
	return httptest.NewServer(NewRouter(h, zap.NewNop()))
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestOffersEndpoint(t *testing.T) {
	rm := &fakeReadModel{items: map[string]domain.CatalogItem{
		"1": saleItem("1", 20, 48*time.Hour),
		"2": saleItem("2", 75, 48*time.Hour),
	}}
	srv := newTestServer(rm, &fakeEventsReadModel{})
	defer srv.Close()

	t.Run("lists tiers and carousel", func(t *testing.T) {
		var body offersResponse
		status := getJSON(t, srv.URL+"/api/v1/offers", &body)
		require.Equal(t, http.StatusOK, status)

		assert.True(t, body.HasOffers)
		assert.Equal(t, "11-30", body.SelectedTier)
		require.Len(t, body.HighDiscount, 1)
		assert.Equal(t, "2", body.HighDiscount[0].ItemID)
		assert.Equal(t, "120.00", body.HighDiscount[0].DisplayPrice)
		require.NotNil(t, body.HighDiscount[0].OriginalPrice)
		assert.Equal(t, "150.00", *body.HighDiscount[0].OriginalPrice)
	})

	t.Run("rejects bad page size", func(t *testing.T) {
		status := getJSON(t, srv.URL+"/api/v1/offers?page_size=zero", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestWeeklyOffersEndpoint(t *testing.T) {
	rm := &fakeReadModel{items: map[string]domain.CatalogItem{
		"long":  saleItem("long", 20, 14*24*time.Hour),
		"short": saleItem("short", 20, 48*time.Hour),
	}}
	srv := newTestServer(rm, &fakeEventsReadModel{})
	defer srv.Close()

	var body struct {
		Offers []weeklyOfferResponse `json:"offers"`
	}
	status := getJSON(t, srv.URL+"/api/v1/offers/weekly", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Offers, 1)
	assert.Equal(t, "long", body.Offers[0].ItemID)
	assert.Equal(t, int64(7), body.Offers[0].Remaining.Days)
}

func TestItemPriceEndpoint(t *testing.T) {
	rm := &fakeReadModel{items: map[string]domain.CatalogItem{
		"1": saleItem("1", 20, 48*time.Hour),
	}}
	srv := newTestServer(rm, &fakeEventsReadModel{})
	defer srv.Close()

	t.Run("discounted item carries remaining time", func(t *testing.T) {
		var body itemPriceResponse
		status := getJSON(t, srv.URL+"/api/v1/items/1/price", &body)
		require.Equal(t, http.StatusOK, status)

		assert.True(t, body.IsDiscounted)
		assert.Equal(t, "120.00", body.DisplayPrice)
		require.NotNil(t, body.Remaining)
		assert.Equal(t, int64(1), body.Remaining.Days)
	})

	t.Run("unknown item is 404", func(t *testing.T) {
		status := getJSON(t, srv.URL+"/api/v1/items/nope/price", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCountdownEndpoint(t *testing.T) {
	noEnd := saleItem("open", 20, 48*time.Hour)
	noEnd.SaleEndsAt = nil

	rm := &fakeReadModel{items: map[string]domain.CatalogItem{
		"1":    saleItem("1", 20, 48*time.Hour),
		"open": noEnd,
	}}
	srv := newTestServer(rm, &fakeEventsReadModel{})
	defer srv.Close()

	t.Run("snapshot breaks down remaining time", func(t *testing.T) {
		var body remainingResponse
		status := getJSON(t, srv.URL+"/api/v1/items/1/countdown", &body)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(1), body.Days)
	})

	t.Run("item without sale end is 409", func(t *testing.T) {
		status := getJSON(t, srv.URL+"/api/v1/items/open/countdown", nil)
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestEventsEndpoint(t *testing.T) {
	events := &fakeEventsReadModel{events: []*m_outbox.Data{
		{
			EventID:     "e1",
			EventType:   "catalog.synced",
			AggregateID: "s1",
			Status:      m_outbox.StatusPending,
			CreatedAt:   testNow,
		},
	}}
	srv := newTestServer(&fakeReadModel{}, events)
	defer srv.Close()

	var body struct {
		Events []eventResponse `json:"events"`
	}
	status := getJSON(t, srv.URL+"/api/v1/events", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "catalog.synced", body.Events[0].EventType)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeReadModel{}, &fakeEventsReadModel{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
