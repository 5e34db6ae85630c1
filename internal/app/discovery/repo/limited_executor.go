package repo

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

// LimitedExecutor caps the rate of catalog queries. A caller waits for a
// token until its context ends; the query itself is attempted once.
type LimitedExecutor struct {
	next    contracts.CatalogExecutor
	limiter *rate.Limiter
}

// NewLimitedExecutor wraps next with a token bucket of rps and burst.
func NewLimitedExecutor(next contracts.CatalogExecutor, rps float64, burst int) *LimitedExecutor {
	return &LimitedExecutor{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Execute waits for a token, then delegates.
func (e *LimitedExecutor) Execute(ctx context.Context, q *domain.DiscoveryQuery) (*domain.DiscoveryResult, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %w", domain.ErrCatalogUnavailable, err)
	}
	return e.next.Execute(ctx, q)
}
