package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/observability"
	"github.com/light-bringer/discovery-service/internal/pkg/cache"
)

// TreeCacheKey is the cache key holding the encoded category tree.
const TreeCacheKey = "category_tree:v1"

// CachedTreeProvider serves the category tree from a cache, falling back to
// the wrapped provider on a miss or a cache failure.
type CachedTreeProvider struct {
	next   contracts.CategoryTreeProvider
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTreeProvider wraps next with cache c.
func NewCachedTreeProvider(next contracts.CategoryTreeProvider, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedTreeProvider {
	return &CachedTreeProvider{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchTree returns the cached tree when present; otherwise it fetches,
// stores and returns a fresh one. Upstream errors are never cached.
func (p *CachedTreeProvider) FetchTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	logger := observability.LoggerFrom(ctx, p.logger)

	raw, err := p.cache.Get(ctx, TreeCacheKey)
	switch {
	case err == nil:
		var tree []*domain.CategoryNode
		jsonErr := json.Unmarshal(raw, &tree)
		if jsonErr == nil {
			logger.Debug("category tree cache hit")
			return tree, nil
		}
		logger.Warn("discarding undecodable cached category tree", zap.Error(jsonErr))
	case errors.Is(err, cache.ErrCacheMiss):
		logger.Debug("category tree cache miss")
	default:
		logger.Warn("category tree cache unavailable", zap.Error(err))
	}

	tree, err := p.next.FetchTree(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(tree)
	if err != nil {
		logger.Warn("failed to encode category tree", zap.Error(err))
		return tree, nil
	}
	if err := p.cache.Set(ctx, TreeCacheKey, encoded, p.ttl); err != nil {
		logger.Warn("failed to cache category tree", zap.Error(err))
	}
	return tree, nil
}

// Invalidate drops the cached tree so the next fetch reads upstream.
func (p *CachedTreeProvider) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, TreeCacheKey)
}
