package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_FetchCatalog(t *testing.T) {
	t.Run("merges products and packages", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/products":
				fmt.Fprint(w, `{"data":[{"id":1,"name":"Kettle","min_price":150,"on_sale":true}],"meta":{"last_page":1}}`)
			case "/api/packages":
				fmt.Fprint(w, `{"data":[{"id":2,"name":"Tea Set","original_price":"300"}],"meta":{"last_page":1}}`)
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		client := NewClient(srv.URL, zap.NewNop())
		items, err := client.FetchCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "1", items[0].ID)
		assert.True(t, items[0].OnSale)
		assert.Equal(t, "2", items[1].ID)
		require.NotNil(t, items[1].BasePrice)
		assert.InDelta(t, 300.0, items[1].BasePrice.Float64(), 0.0001)
	})

	t.Run("walks every page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/api/packages" {
				fmt.Fprint(w, `{"data":[],"meta":{"last_page":1}}`)
				return
			}
			page := r.URL.Query().Get("page")
			fmt.Fprintf(w, `{"data":[{"id":%s0,"name":"p%s"}],"meta":{"last_page":3}}`, page, page)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, zap.NewNop())
		items, err := client.FetchCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 3)
		// Page order survives the concurrent fan-out.
		assert.Equal(t, "10", items[0].ID)
		assert.Equal(t, "20", items[1].ID)
		assert.Equal(t, "30", items[2].ID)
	})

	t.Run("records without an id are skipped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/api/products" {
				fmt.Fprint(w, `{"data":[{"name":"ghost"},{"id":5,"name":"real"}],"meta":{"last_page":1}}`)
				return
			}
			fmt.Fprint(w, `{"data":[],"meta":{"last_page":1}}`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, zap.NewNop())
		items, err := client.FetchCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "5", items[0].ID)
	})

	t.Run("non-200 upstream fails the run", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, zap.NewNop())
		_, err := client.FetchCatalog(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed json fails the run", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data": [`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, zap.NewNop())
		_, err := client.FetchCatalog(context.Background())
		assert.Error(t, err)
	})
}
