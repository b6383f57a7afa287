package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/ingest"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/get_item"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_events"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/list_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/queries/weekly_offers"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/repo"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/usecases/sync_catalog"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/watch"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/cache"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/committer"
	transporthttp "github.com/3b3zeem/le-souk-offers-service/internal/transport/http"
)

// Config holds runtime settings for wiring the service.
type Config struct {
	SpannerDB   string
	UpstreamURL string
	CacheTTL    time.Duration
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	ReadModel     contracts.ReadModel
	ListOffers    *list_offers.Query
	WeeklyOffers  *weekly_offers.Query
	GetItem       *get_item.Query
	SyncCatalog   *sync_catalog.Interactor
	Watcher       *watch.Registry
	Handlers      transporthttp.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg Config, log *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	offerCache := cache.New(cfg.CacheTTL, clk)

	// 3. Create repositories
	catalogRepo := repo.NewCatalogRepo(spannerClient)
	historyRepo := repo.NewSaleHistoryRepo()
	outboxRepo := repo.NewOutboxRepo()
	readModel := repo.NewReadModel(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	// 4. Create query use cases
	listOffersQuery := list_offers.NewQuery(readModel, offerCache, clk)
	weeklyOffersQuery := weekly_offers.NewQuery(readModel, clk)
	getItemQuery := get_item.NewQuery(readModel, clk)
	listEventsQuery := list_events.NewQuery(eventsReadModel)

	// 5. Create the sync use case
	fetcher := ingest.NewClient(cfg.UpstreamURL, log)
	syncUseCase := sync_catalog.NewInteractor(fetcher, catalogRepo, historyRepo, outboxRepo, comm, clk, log)

	// 6. Create the expiry watcher, invalidating cached listings on expiry
	watcher := watch.NewRegistry(func(string) {
		listOffersQuery.Invalidate()
	}, log)

	// 7. Create HTTP handlers
	handlers := transporthttp.Handlers{
		Offers: transporthttp.NewOffersHandler(listOffersQuery, weeklyOffersQuery),
		Items:  transporthttp.NewItemsHandler(getItemQuery, readModel),
		Events: transporthttp.NewEventsHandler(listEventsQuery),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		ReadModel:     readModel,
		ListOffers:    listOffersQuery,
		WeeklyOffers:  weeklyOffersQuery,
		GetItem:       getItemQuery,
		SyncCatalog:   syncUseCase,
		Watcher:       watcher,
		Handlers:      handlers,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Watcher != nil {
		s.Watcher.CancelAll()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
