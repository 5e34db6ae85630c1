package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	domainservices "github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/browse_category"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/search_products"
	"github.com/light-bringer/discovery-service/internal/app/discovery/repo"
	"github.com/light-bringer/discovery-service/internal/config"
	"github.com/light-bringer/discovery-service/internal/pkg/cache"
	"github.com/light-bringer/discovery-service/internal/pkg/clock"
	grpcdiscovery "github.com/light-bringer/discovery-service/internal/transport/grpc/discovery"
	httphandler "github.com/light-bringer/discovery-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	MemoryCache   *cache.MemoryCache

	HTTPHandler       http.Handler
	GRPCHandler       *grpcdiscovery.Handler
	ClientRateLimiter *httphandler.ClientRateLimiter
}

// Collaborators are the upstream services the discovery queries depend on.
type Collaborators struct {
	Categories contracts.CategoryTreeProvider
	Catalog    contracts.CatalogExecutor
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Category tree cache
	treeCache, redisClient, err := newTreeCache(ctx, cfg.Cache, clock.NewRealClock())
	if err != nil {
		spannerClient.Close()
		return nil, err
	}

	// 3. Collaborators backed by Spanner
	var categories contracts.CategoryTreeProvider = repo.NewCategoryTreeRepo(spannerClient)
	if treeCache != nil {
		categories = repo.NewCachedTreeProvider(categories, treeCache, cfg.Cache.TreeTTL, logger)
	}
	catalog := repo.NewLimitedExecutor(
		repo.NewCatalogReadModel(spannerClient, logger),
		cfg.RateLimit.CatalogRPS,
		cfg.RateLimit.CatalogBurst,
	)

	opts := NewServiceOptionsWith(Collaborators{Categories: categories, Catalog: catalog}, cfg.RateLimit, logger)
	opts.SpannerClient = spannerClient
	opts.RedisClient = redisClient
	if mem, ok := treeCache.(*cache.MemoryCache); ok {
		opts.MemoryCache = mem
	}
	return opts, nil
}

// NewServiceOptionsWith wires queries and transports on top of the given
// collaborators.
func NewServiceOptionsWith(collab Collaborators, limits config.RateLimitConfig, logger *zap.Logger) *ServiceOptions {
	composer := domainservices.NewQueryComposer()

	// Queries
	browseQuery := browse_category.NewQuery(collab.Categories, collab.Catalog, composer, logger)
	searchQuery := search_products.NewQuery(collab.Categories, collab.Catalog, composer, logger)

	// HTTP
	limiter := httphandler.NewClientRateLimiter(limits.PerClientRPS, limits.PerClientBurst)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", httphandler.Healthz)
	httphandler.NewDiscoveryHandler(browseQuery, searchQuery, collab.Categories).Register(mux)

	handler := httphandler.Chain(mux,
		httphandler.RequestID(logger),
		httphandler.AccessLog,
		httphandler.Recovery,
		limiter.Middleware,
	)

	return &ServiceOptions{
		HTTPHandler:       handler,
		GRPCHandler:       grpcdiscovery.NewHandler(browseQuery, searchQuery),
		ClientRateLimiter: limiter,
	}
}

// newTreeCache builds the configured cache. A nil cache means the tree is
// read from Spanner on every request.
func newTreeCache(ctx context.Context, cfg config.CacheConfig, clk clock.Clock) (cache.Cache, *redis.Client, error) {
	switch cfg.Type {
	case "redis":
		client, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisCache(client, "discovery:"), client, nil
	case "none":
		return nil, nil, nil
	default:
		return cache.NewMemoryCache(clk), nil, nil
	}
}

// RunMaintenance periodically forgets idle rate-limit clients and purges
// expired in-memory cache entries until ctx is done.
func (s *ServiceOptions) RunMaintenance(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped := s.ClientRateLimiter.Sweep(idle)
			purged := 0
			if s.MemoryCache != nil {
				purged = s.MemoryCache.Purge()
			}
			if dropped > 0 || purged > 0 {
				logger.Debug("maintenance sweep",
					zap.Int("idle_clients_dropped", dropped),
					zap.Int("cache_entries_purged", purged),
				)
			}
		}
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
