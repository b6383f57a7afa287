package sync_catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/contracts"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/committer"
)

// Result summarizes one sync run.
type Result struct {
	SyncID         string
	ItemCount      int
	WindowsChanged int
}

// Interactor handles the catalog sync use case.
type Interactor struct {
	fetcher     contracts.Fetcher
	catalogRepo contracts.CatalogRepository
	historyRepo contracts.SaleHistoryRepository
	outboxRepo  contracts.OutboxRepository
	committer   *committer.Committer
	clock       clock.Clock
	log         *zap.Logger
}

// NewInteractor creates a new catalog sync interactor.
func NewInteractor(
	fetcher contracts.Fetcher,
	catalogRepo contracts.CatalogRepository,
	historyRepo contracts.SaleHistoryRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
	log *zap.Logger,
) *Interactor {
	return &Interactor{
		fetcher:     fetcher,
		catalogRepo: catalogRepo,
		historyRepo: historyRepo,
		outboxRepo:  outboxRepo,
		committer:   committer,
		clock:       clock,
		log:         log,
	}
}

// Execute pulls the upstream catalog and replaces the stored snapshot in one
// atomic commit: item upserts, a sale_history row per changed window, an
// outbox event per changed window, and one summary event for the run.
func (i *Interactor) Execute(ctx context.Context) (*Result, error) {
	// 1. Fetch the upstream snapshot
	items, err := i.fetcher.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	// 2. Load stored windows for change detection
	stored, err := i.catalogRepo.ListSaleWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sale windows: %w", err)
	}

	now := i.clock.Now()
	syncID := uuid.New().String()

	// 3. Build the commit plan
	plan := committer.NewPlan()
	windowsChanged := 0

	for _, item := range items {
		mut, err := i.catalogRepo.UpsertMut(item, now)
		if err != nil {
			i.log.Warn("skipping unstorable item",
				zap.String("item_id", item.ID),
				zap.Error(err))
			continue
		}
		plan.Add(mut)

		prev, known := stored[item.ID]
		if !known || !prev.Changed(item.SaleStartsAt, item.SaleEndsAt) {
			continue
		}
		windowsChanged++

		plan.Add(i.historyRepo.InsertMut(
			uuid.New().String(), item.ID,
			prev.SaleStartsAt, prev.SaleEndsAt,
			item.SaleStartsAt, item.SaleEndsAt,
		))
		if err := i.addEvent(plan, &domain.SaleWindowChangedEvent{
			ItemID:      item.ID,
			OldStartsAt: prev.SaleStartsAt,
			OldEndsAt:   prev.SaleEndsAt,
			NewStartsAt: item.SaleStartsAt,
			NewEndsAt:   item.SaleEndsAt,
			ChangedAt:   now,
		}); err != nil {
			return nil, err
		}
	}

	if err := i.addEvent(plan, &domain.CatalogSyncedEvent{
		SyncID:         syncID,
		ItemCount:      len(items),
		WindowsChanged: windowsChanged,
		SyncedAt:       now,
	}); err != nil {
		return nil, err
	}

	// 4. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.log.Info("catalog synced",
		zap.String("sync_id", syncID),
		zap.Int("items", len(items)),
		zap.Int("windows_changed", windowsChanged))

	return &Result{
		SyncID:         syncID,
		ItemCount:      len(items),
		WindowsChanged: windowsChanged,
	}, nil
}

// addEvent serializes a domain event and stages its outbox insert.
func (i *Interactor) addEvent(plan *committer.CommitPlan, event domain.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	outboxEvent := i.outboxRepo.EnrichEvent(event, string(payload))
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	return nil
}
