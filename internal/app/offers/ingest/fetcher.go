// Package ingest pulls catalog snapshots from the upstream commerce API.
//
// The upstream is a fixed collaborator: its records are taken as-is and
// normalized defensively at the edge (domain.ParseCatalogItem), never
// validated into rejection. A broken promotional field on one item must not
// sink the whole sync.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

const (
	defaultPageSize    = 50
	defaultConcurrency = 4
)

// Resources fetched from the upstream API. Products and packages share the
// same discount field shape and merge into one item stream.
var resources = []string{"products", "packages"}

// Client fetches catalog pages over HTTP.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	pageSize    int
	concurrency int
	log         *zap.Logger
}

var _ contracts.Fetcher = (*Client)(nil)

// NewClient creates a catalog fetcher against baseURL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		pageSize:    defaultPageSize,
		concurrency: defaultConcurrency,
		log:         log,
	}
}

// envelope is the upstream's paginated response shape.
type envelope struct {
	Data []domain.RawCatalogItem `json:"data"`
	Meta struct {
		LastPage int `json:"last_page"`
	} `json:"meta"`
}

// FetchCatalog pulls every product and package page and returns the merged,
// normalized item list.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	for _, resource := range resources {
		raws, err := c.fetchResource(ctx, resource)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", resource, err)
		}
		for _, raw := range raws {
			item := domain.ParseCatalogItem(raw)
			if item.ID == "" {
				c.log.Warn("skipping record without id", zap.String("resource", resource))
				continue
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// fetchResource reads page 1 to learn the page count, then fans out over the
// remaining pages with bounded concurrency. Page order is preserved.
func (c *Client) fetchResource(ctx context.Context, resource string) ([]domain.RawCatalogItem, error) {
	first, err := c.fetchPage(ctx, resource, 1)
	if err != nil {
		return nil, err
	}

	lastPage := first.Meta.LastPage
	if lastPage <= 1 {
		return first.Data, nil
	}

	pages := make([][]domain.RawCatalogItem, lastPage+1)
	pages[1] = first.Data

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for page := 2; page <= lastPage; page++ {
		g.Go(func() error {
			env, err := c.fetchPage(gctx, resource, page)
			if err != nil {
				return err
			}
			pages[page] = env.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var raws []domain.RawCatalogItem
	for _, p := range pages {
		raws = append(raws, p...)
	}
	return raws, nil
}

func (c *Client) fetchPage(ctx context.Context, resource string, page int) (*envelope, error) {
	u := fmt.Sprintf("%s/api/%s?%s", c.baseURL, resource, url.Values{
		"page":     {fmt.Sprint(page)},
		"per_page": {fmt.Sprint(c.pageSize)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d for %s page %d", resp.StatusCode, resource, page)
	}

	dec := json.NewDecoder(resp.Body)
	// Numeric fields may arrive as numbers or numeric strings; json.Number
	// defers the distinction to the defensive parser.
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s page %d: %w", resource, page, err)
	}
	return &env, nil
}
