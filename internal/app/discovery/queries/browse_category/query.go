package browse_category

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
	"github.com/light-bringer/discovery-service/internal/observability"
)

// Request contains the category path and the raw query parameters.
type Request struct {
	Path   []string
	Params map[string]string
}

// Response holds everything a category page renders.
type Response struct {
	Query    *domain.DiscoveryQuery
	Category *domain.CategoryNode
	Tree     []*domain.CategoryNode
	Catalog  contracts.Result[*domain.DiscoveryResult]
	Range    domain.ItemRange
}

// Query handles the browse category query use case.
type Query struct {
	categories contracts.CategoryTreeProvider
	catalog    contracts.CatalogExecutor
	composer   *services.QueryComposer
	logger     *zap.Logger
}

// NewQuery creates a new browse category query.
func NewQuery(
	categories contracts.CategoryTreeProvider,
	catalog contracts.CatalogExecutor,
	composer *services.QueryComposer,
	logger *zap.Logger,
) *Query {
	return &Query{
		categories: categories,
		catalog:    catalog,
		composer:   composer,
		logger:     logger,
	}
}

// Execute resolves the category, composes the catalog query and runs it.
// The category tree has to be resolved before the filter can be built, so
// the two collaborator calls run in sequence. A failed tree fetch degrades
// to an unscoped query; a failed catalog call is reported in Catalog.
func (q *Query) Execute(ctx context.Context, req *Request) *Response {
	logger := observability.LoggerFrom(ctx, q.logger)

	tree, err := q.categories.FetchTree(ctx)
	if err != nil {
		logger.Warn("category tree unavailable, browsing full catalog",
			zap.Strings("path", req.Path),
			zap.Error(err),
		)
		tree = nil
	}

	comp := q.composer.ComposeCategoryQuery(req.Path, req.Params, tree)
	if comp.Category == nil && len(req.Path) > 0 {
		logger.Debug("category not found, query is unscoped", zap.Strings("path", req.Path))
	}
	logger.Debug("composed category query", zap.Any("query", comp.Query))

	resp := &Response{
		Query:    comp.Query,
		Category: comp.Category,
		Tree:     tree,
	}

	result, err := q.catalog.Execute(ctx, comp.Query)
	if err != nil {
		logger.Error("catalog query failed", zap.Strings("path", req.Path), zap.Error(err))
		resp.Catalog = contracts.Fail[*domain.DiscoveryResult](err)
		return resp
	}

	resp.Catalog = contracts.Ok(result)
	resp.Range = domain.DisplayRange(
		comp.Query.Page.CurrentPage,
		comp.Query.Page.PageSize,
		len(result.Items),
		result.TotalCount,
	)
	return resp
}
