// Command cleanup_outbox deletes old processed and failed outbox events.
// Run it periodically; pending events are never touched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
)

type config struct {
	spannerDB              string
	completedRetentionDays int
	failedRetentionDays    int
	dryRun                 bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.spannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&cfg.completedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.failedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Show what would be deleted without deleting")
	flag.Parse()

	if cfg.spannerDB == "" {
		log.Fatal("Error: -database flag is required")
	}

	if err := cleanup(context.Background(), cfg); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	log.Println("Cleanup completed")
}

const cutoffPredicate = `(status = 'completed' AND processed_at < @completedCutoff)
		   OR (status = 'failed' AND processed_at < @failedCutoff)`

func cleanup(ctx context.Context, cfg config) error {
	client, err := spanner.NewClient(ctx, cfg.spannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	params := map[string]interface{}{
		"completedCutoff": now.AddDate(0, 0, -cfg.completedRetentionDays),
		"failedCutoff":    now.AddDate(0, 0, -cfg.failedRetentionDays),
	}

	log.Printf("Outbox cleanup: completed retention %dd, failed retention %dd, dry-run %v",
		cfg.completedRetentionDays, cfg.failedRetentionDays, cfg.dryRun)

	if cfg.dryRun {
		return report(ctx, client, params)
	}
	return purge(ctx, client, params)
}

func report(ctx context.Context, client *spanner.Client, params map[string]interface{}) error {
	stmt := spanner.Statement{
		SQL: `SELECT status, COUNT(*) FROM outbox_events
		WHERE ` + cutoffPredicate + `
		GROUP BY status`,
		Params: params,
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var total int64
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to count events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}
		log.Printf("  Would delete %d %s events", count, status)
		total += count
	}

	log.Printf("DRY RUN: would delete %d events total", total)
	return nil
}

func purge(ctx context.Context, client *spanner.Client, params map[string]interface{}) error {
	stmt := spanner.Statement{
		SQL:    `DELETE FROM outbox_events WHERE ` + cutoffPredicate,
		Params: params,
	}

	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		deleted, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		log.Printf("Deleted %d events", deleted)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return nil
}
