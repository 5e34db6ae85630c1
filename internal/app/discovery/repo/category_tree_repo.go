package repo

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/models/m_category"
	"github.com/light-bringer/discovery-service/internal/models/m_product_category"
	"github.com/light-bringer/discovery-service/internal/pkg/query"
)

// CategoryTreeRepo implements contracts.CategoryTreeProvider on Spanner.
type CategoryTreeRepo struct {
	client *spanner.Client
}

// NewCategoryTreeRepo creates a new CategoryTreeRepo.
func NewCategoryTreeRepo(client *spanner.Client) contracts.CategoryTreeProvider {
	return &CategoryTreeRepo{client: client}
}

// FetchTree reads every category with its direct product count and
// assembles the tree.
func (r *CategoryTreeRepo) FetchTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	rows, err := r.readCategories(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCategoryTreeUnavailable, err)
	}

	counts, err := r.readProductCounts(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCategoryTreeUnavailable, err)
	}

	return buildTree(rows, counts), nil
}

func (r *CategoryTreeRepo) readCategories(ctx context.Context, txn *spanner.ReadOnlyTransaction) ([]*m_category.Data, error) {
	stmt := query.From(m_category.TableName).Select(m_category.Columns...).Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var rows []*m_category.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}

		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		rows = append(rows, &data)
	}
	return rows, nil
}

func (r *CategoryTreeRepo) readProductCounts(ctx context.Context, txn *spanner.ReadOnlyTransaction) (map[string]int, error) {
	stmt := query.From(m_product_category.TableName).
		Select(m_product_category.CategoryUID, "COUNT(*)").
		GroupBy(m_product_category.CategoryUID).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	counts := make(map[string]int)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate product counts: %w", err)
		}

		var uid string
		var count int64
		if err := row.Columns(&uid, &count); err != nil {
			return nil, fmt.Errorf("failed to parse product count: %w", err)
		}
		counts[uid] = int(count)
	}
	return counts, nil
}

// buildTree links category rows into a forest ordered by position, then
// name. Rows whose parent is missing become roots.
func buildTree(rows []*m_category.Data, counts map[string]int) []*domain.CategoryNode {
	nodes := make(map[string]*domain.CategoryNode, len(rows))
	for _, row := range rows {
		nodes[row.CategoryUID] = &domain.CategoryNode{
			UID:          row.CategoryUID,
			URLKey:       row.URLKey,
			URLPath:      row.URLPath,
			Name:         row.Name,
			ProductCount: counts[row.CategoryUID],
		}
	}

	ordered := make([]*m_category.Data, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].Name < ordered[j].Name
	})

	roots := []*domain.CategoryNode{}
	for _, row := range ordered {
		node := nodes[row.CategoryUID]
		parent, ok := nodes[row.ParentUID.StringVal]
		if !row.ParentUID.Valid || !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
