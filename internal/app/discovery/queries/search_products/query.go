package search_products

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
	"github.com/light-bringer/discovery-service/internal/observability"
)

// Request contains the raw query parameters of the search page.
type Request struct {
	Params map[string]string
}

// Response holds everything a search page renders.
type Response struct {
	Term    string
	Query   *domain.DiscoveryQuery
	Tree    []*domain.CategoryNode
	Catalog contracts.Result[*domain.DiscoveryResult]
	Range   domain.ItemRange
}

// Query handles the search products query use case.
type Query struct {
	categories contracts.CategoryTreeProvider
	catalog    contracts.CatalogExecutor
	composer   *services.QueryComposer
	logger     *zap.Logger
}

// NewQuery creates a new search products query.
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

// Execute runs a free-text search. It returns domain.ErrInvalidSearchTerm
// without calling any collaborator when the term is blank.
//
// The search query does not depend on the category tree, so the tree (used
// for navigation) and the catalog results are fetched in parallel.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	logger := observability.LoggerFrom(ctx, q.logger)

	comp, err := q.composer.ComposeSearchQuery(req.Params)
	if err != nil {
		return nil, err
	}
	logger.Debug("composed search query", zap.Any("query", comp.Query))

	resp := &Response{
		Term:  comp.Query.SearchTerm(),
		Query: comp.Query,
	}

	var (
		g        errgroup.Group
		result   *domain.DiscoveryResult
		queryErr error
	)
	g.Go(func() error {
		tree, err := q.categories.FetchTree(ctx)
		if err != nil {
			logger.Warn("category tree unavailable for search navigation", zap.Error(err))
			return nil
		}
		resp.Tree = tree
		return nil
	})
	g.Go(func() error {
		result, queryErr = q.catalog.Execute(ctx, comp.Query)
		return nil
	})
	_ = g.Wait()

	if queryErr != nil {
		logger.Error("catalog search failed", zap.String("term", resp.Term), zap.Error(queryErr))
		resp.Catalog = contracts.Fail[*domain.DiscoveryResult](queryErr)
		return resp, nil
	}

	resp.Catalog = contracts.Ok(result)
	resp.Range = domain.DisplayRange(
		comp.Query.Page.CurrentPage,
		comp.Query.Page.PageSize,
		len(result.Items),
		result.TotalCount,
	)
	return resp, nil
}
