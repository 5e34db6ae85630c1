package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/config"
	"github.com/light-bringer/discovery-service/internal/observability"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be pruned without changing anything")
	flag.Parse()

	if err := run(*dryRun); err != nil {
		log.Fatalf("Prune failed: %v", err)
	}
}

func run(dryRun bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	logger.Info("starting catalog prune", zap.Bool("dry_run", dryRun))

	for _, target := range orphanTargets {
		if dryRun {
			count, err := countOrphans(ctx, client, target)
			if err != nil {
				return err
			}
			logger.Info("would prune", zap.String("target", target.name), zap.Int64("rows", count))
			continue
		}

		var rows int64
		_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
			var err error
			rows, err = txn.Update(ctx, target.deleteStatement())
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to prune %s: %w", target.name, err)
		}
		logger.Info("pruned", zap.String("target", target.name), zap.Int64("rows", rows))
	}

	return nil
}

func countOrphans(ctx context.Context, client *spanner.Client, target orphanTarget) (int64, error) {
	iter := client.Single().Query(ctx, target.countStatement())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", target.name, err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}
