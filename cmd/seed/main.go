package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/config"
	"github.com/light-bringer/discovery-service/internal/observability"
	"github.com/light-bringer/discovery-service/internal/pkg/committer"
)

func main() {
	fixturePath := flag.String("fixture", "fixtures/catalog.yaml", "path to the catalog fixture")
	reset := flag.Bool("reset", false, "delete existing catalog rows before seeding")
	batchSize := flag.Int("batch-size", committer.DefaultBatchSize, "mutations per commit")
	flag.Parse()

	if err := run(*fixturePath, *reset, *batchSize); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func run(fixturePath string, reset bool, batchSize int) error {
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

	file, err := os.Open(fixturePath)
	if err != nil {
		return fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()

	fx, err := loadFixture(file)
	if err != nil {
		return err
	}
	plan, summary, err := buildPlan(fx, reset)
	if err != nil {
		return err
	}

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	if err := committer.NewCommitter(client).ApplyInBatches(ctx, plan, batchSize); err != nil {
		return err
	}

	logger.Info("catalog seeded",
		zap.String("fixture", fixturePath),
		zap.Bool("reset", reset),
		zap.Int("mutations", plan.Count()),
		zap.Int("categories", summary.Categories),
		zap.Int("products", summary.Products),
		zap.Int("assignments", summary.Assignments),
		zap.Int("attribute_values", summary.Attributes),
	)
	return nil
}
