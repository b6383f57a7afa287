//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/get_item"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_events"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/weekly_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/repo"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/cache"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
	transporthttp "github.com/3b3zeem/le-souk-offers-service/internal/transport/http"
	"github.com/3b3zeem/le-souk-offers-service/tests/testutil"
)

// startServer wires the real read path against the Spanner emulator and
// serves it over a test HTTP listener.
func startServer(t *testing.T) (*httptest.Server, *spanner.Client, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	clk := clock.NewRealClock()
	readModel := repo.NewReadModel(client)

	handlers := transporthttp.Handlers{
		Offers: transporthttp.NewOffersHandler(
			list_offers.NewQuery(readModel, cache.New(time.Minute, clk), clk),
			weekly_offers.NewQuery(readModel, clk),
		),
		Items:  transporthttp.NewItemsHandler(get_item.NewQuery(readModel, clk), readModel),
		Events: transporthttp.NewEventsHandler(list_events.NewQuery(repo.NewEventsReadModel(client))),
	}

	srv := httptest.NewServer(transporthttp.NewRouter(handlers, zap.NewNop()))

	return srv, client, func() {
		srv.Close()
		cleanup()
	}
}

func TestOffersFlow(t *testing.T) {
	srv, client, teardown := startServer(t)
	defer teardown()

	testutil.CreateTestItemOnSale(t, client, "low", "Low Tier", 8, 4)
	testutil.CreateTestItemOnSale(t, client, "mid", "Mid Tier", 25, 4)
	testutil.CreateTestItemOnSale(t, client, "deep", "Deep Cut", 70, 4)
	testutil.CreateTestItemOnSale(t, client, "weekly", "Week Long", 30, 10)

	t.Run("offers surface buckets everything", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/offers")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			HasOffers    bool   `json:"has_offers"`
			SelectedTier string `json:"selected_tier"`
			HighDiscount []struct {
				ItemID string `json:"item_id"`
			} `json:"high_discount"`
			Tiers []struct {
				Tier       string `json:"tier"`
				TotalCount int    `json:"total_count"`
			} `json:"tiers"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.True(t, body.HasOffers)
		assert.Equal(t, "1-10", body.SelectedTier)
		require.Len(t, body.HighDiscount, 1)
		assert.Equal(t, "deep", body.HighDiscount[0].ItemID)

		counts := map[string]int{}
		for _, tier := range body.Tiers {
			counts[tier.Tier] = tier.TotalCount
		}
		assert.Equal(t, 1, counts["1-10"])
		assert.Equal(t, 2, counts["11-30"])
		assert.Equal(t, 0, counts["31-50"])
	})

	t.Run("weekly surface keeps only long windows", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/offers/weekly")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Offers []struct {
				ItemID    string `json:"item_id"`
				Remaining struct {
					Days int64 `json:"days"`
				} `json:"remaining"`
			} `json:"offers"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		require.Len(t, body.Offers, 1)
		assert.Equal(t, "weekly", body.Offers[0].ItemID)
		assert.GreaterOrEqual(t, body.Offers[0].Remaining.Days, int64(4))
	})

	t.Run("item price endpoint evaluates the discount", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/items/mid/price")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			IsDiscounted  bool    `json:"is_discounted"`
			DisplayPrice  string  `json:"display_price"`
			OriginalPrice *string `json:"original_price"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.True(t, body.IsDiscounted)
		assert.Equal(t, "120.00", body.DisplayPrice)
		require.NotNil(t, body.OriginalPrice)
		assert.Equal(t, "150.00", *body.OriginalPrice)
	})

	t.Run("countdown endpoint reports remaining time", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/items/weekly/countdown")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rem struct {
			Days int64 `json:"days"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rem))
		assert.GreaterOrEqual(t, rem.Days, int64(4))
	})

	t.Run("unknown item is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/items/ghost/price")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
