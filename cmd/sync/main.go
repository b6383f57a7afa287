// Command sync runs one catalog snapshot sync and exits. Meant to be invoked
// from cron or a CI scheduler when the in-process sync loop is disabled.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/ingest"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/repo"
	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/usecases/sync_catalog"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/committer"
)

func main() {
	spannerDB := flag.String("database", os.Getenv("SPANNER_DATABASE"), "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	upstreamURL := flag.String("upstream", os.Getenv("UPSTREAM_URL"), "Upstream commerce API base URL")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall run timeout")
	flag.Parse()

	if *spannerDB == "" || *upstreamURL == "" {
		log.Fatal("Error: -database and -upstream are required")
	}

	if err := run(*spannerDB, *upstreamURL, *timeout); err != nil {
		log.Fatalf("Sync failed: %v", err)
	}
}

func run(spannerDB, upstreamURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	client, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	interactor := sync_catalog.NewInteractor(
		ingest.NewClient(upstreamURL, logger),
		repo.NewCatalogRepo(client),
		repo.NewSaleHistoryRepo(),
		repo.NewOutboxRepo(),
		committer.NewCommitter(client),
		clock.NewRealClock(),
		logger,
	)

	result, err := interactor.Execute(ctx)
	if err != nil {
		return err
	}

	log.Printf("Synced %d items, %d sale windows changed (sync_id=%s)",
		result.ItemCount, result.WindowsChanged, result.SyncID)
	return nil
}
