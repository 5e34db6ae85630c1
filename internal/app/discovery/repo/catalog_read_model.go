package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/models/m_product"
	"github.com/light-bringer/discovery-service/internal/models/m_product_attribute"
	"github.com/light-bringer/discovery-service/internal/observability"
	"github.com/light-bringer/discovery-service/internal/pkg/query"
)

// CatalogReadModel implements contracts.CatalogExecutor on Spanner.
type CatalogReadModel struct {
	client *spanner.Client
	logger *zap.Logger
}

// NewCatalogReadModel creates a new CatalogReadModel.
func NewCatalogReadModel(client *spanner.Client, logger *zap.Logger) contracts.CatalogExecutor {
	return &CatalogReadModel{
		client: client,
		logger: logger,
	}
}

// catalogStatements holds the three statements needed for one page.
type catalogStatements struct {
	items        spanner.Statement
	count        spanner.Statement
	aggregations spanner.Statement
}

// buildCatalogStatements renders the item page, total count and facet
// aggregation queries for q.
func buildCatalogStatements(q *domain.DiscoveryQuery, logger *zap.Logger) catalogStatements {
	filtered := query.From(m_product.TableName)
	for _, c := range productConditions(q, logger) {
		filtered = filtered.Where(c)
	}

	column, direction := sortOrder(q.Sort)
	items := filtered.
		Select(m_product.Columns...).
		OrderBy(column, direction).
		ThenBy(m_product.ProductUID, query.Asc).
		Limit(int64(q.Page.PageSize)).
		Offset(q.Page.Offset())

	aggregations := query.From(m_product_attribute.TableName).
		Select(
			m_product_attribute.AttributeCode,
			m_product_attribute.Value,
			"COUNT(DISTINCT "+m_product_attribute.ProductUID+") AS product_count",
		).
		Where(query.InSubquery(m_product_attribute.ProductUID, filtered.Select(m_product.ProductUID))).
		GroupBy(m_product_attribute.AttributeCode, m_product_attribute.Value).
		OrderBy(m_product_attribute.AttributeCode, query.Asc).
		ThenBy(m_product_attribute.Value, query.Asc)

	return catalogStatements{
		items:        items.Build(),
		count:        filtered.Count().Build(),
		aggregations: aggregations.Build(),
	}
}

// Execute runs the item, count and aggregation queries against one
// read-only snapshot. Each call is a single attempt.
func (rm *CatalogReadModel) Execute(ctx context.Context, q *domain.DiscoveryQuery) (*domain.DiscoveryResult, error) {
	logger := observability.LoggerFrom(ctx, rm.logger)
	stmts := buildCatalogStatements(q, logger)
	logger.Debug("catalog query", zap.String("sql", stmts.items.SQL), zap.Any("params", stmts.items.Params))

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	result := &domain.DiscoveryResult{
		Items:        []domain.Product{},
		Aggregations: []domain.FacetAggregation{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := rm.readItems(gctx, txn, stmts.items)
		result.Items = items
		return err
	})
	g.Go(func() error {
		total, err := rm.readCount(gctx, txn, stmts.count)
		result.TotalCount = int(total)
		return err
	})
	g.Go(func() error {
		aggs, err := rm.readAggregations(gctx, txn, stmts.aggregations)
		result.Aggregations = aggs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	result.PageInfo = domain.PageInfo{
		CurrentPage: q.Page.CurrentPage,
		PageSize:    q.Page.PageSize,
		TotalPages:  domain.TotalPages(result.TotalCount, q.Page.PageSize),
	}
	return result, nil
}

func (rm *CatalogReadModel) readItems(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement) ([]domain.Product, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	items := []domain.Product{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		items = append(items, dataToProduct(&data))
	}
	return items, nil
}

func (rm *CatalogReadModel) readCount(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	var total int64
	if err := row.Columns(&total); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return total, nil
}

func (rm *CatalogReadModel) readAggregations(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement) ([]domain.FacetAggregation, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var rows []aggregationRow
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate aggregations: %w", err)
		}

		var r aggregationRow
		if err := row.Columns(&r.code, &r.value, &r.count); err != nil {
			return nil, fmt.Errorf("failed to parse aggregation: %w", err)
		}
		rows = append(rows, r)
	}
	return groupAggregations(rows), nil
}

type aggregationRow struct {
	code  string
	value string
	count int64
}

// groupAggregations folds rows ordered by attribute code into one
// FacetAggregation per code, keeping row order.
func groupAggregations(rows []aggregationRow) []domain.FacetAggregation {
	aggs := []domain.FacetAggregation{}
	for _, r := range rows {
		if len(aggs) == 0 || aggs[len(aggs)-1].AttributeCode != r.code {
			aggs = append(aggs, domain.FacetAggregation{AttributeCode: r.code})
		}
		last := &aggs[len(aggs)-1]
		last.Options = append(last.Options, domain.AggregationOption{Value: r.value, Count: r.count})
	}
	return aggs
}

// dataToProduct converts a products row to the listing model.
func dataToProduct(data *m_product.Data) domain.Product {
	product := domain.Product{
		UID:          data.ProductUID,
		SKU:          data.SKU,
		Name:         data.Name,
		URLKey:       data.URLKey,
		Currency:     data.Currency,
		RentalUnit:   data.RentalUnit,
		StockStatus:  data.StockStatus,
		ThumbnailURL: data.ThumbnailURL.StringVal,
	}
	if data.Price.Valid {
		product.Price = domain.NewMoneyFromRat(&data.Price.Numeric)
	}
	return product
}
