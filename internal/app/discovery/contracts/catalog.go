package contracts

import (
	"context"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

// CatalogExecutor runs a composed query against the catalog service.
// Each call is a single attempt; implementations must not retry.
type CatalogExecutor interface {
	// Execute returns the page of products, total count and facet aggregations.
	Execute(ctx context.Context, query *domain.DiscoveryQuery) (*domain.DiscoveryResult, error)
}
