package browse_category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
)

type fakeTree struct {
	tree []*domain.CategoryNode
	err  error
}

func (f *fakeTree) FetchTree(context.Context) ([]*domain.CategoryNode, error) {
	return f.tree, f.err
}

type fakeCatalog struct {
	calls  int
	last   *domain.DiscoveryQuery
	result *domain.DiscoveryResult
	err    error
}

func (f *fakeCatalog) Execute(_ context.Context, q *domain.DiscoveryQuery) (*domain.DiscoveryResult, error) {
	f.calls++
	f.last = q
	return f.result, f.err
}

func products(n int) []domain.Product {
	items := make([]domain.Product, n)
	for i := range items {
		items[i] = domain.Product{UID: "p", Name: "Item"}
	}
	return items
}

func tree() []*domain.CategoryNode {
	return []*domain.CategoryNode{
		{UID: "c1", URLKey: "bikes", Children: []*domain.CategoryNode{{UID: "c2", URLKey: "e-bikes"}}},
	}
}

func TestBrowseCategory_Success(t *testing.T) {
	catalog := &fakeCatalog{result: &domain.DiscoveryResult{Items: products(12), TotalCount: 30}}
	q := NewQuery(&fakeTree{tree: tree()}, catalog, services.NewQueryComposer(), zap.NewNop())

	resp := q.Execute(context.Background(), &Request{
		Path:   []string{"bikes"},
		Params: map[string]string{"page": "2"},
	})

	require.True(t, resp.Catalog.Success)
	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, "c1", resp.Category.UID)
	assert.Equal(t, []string{"c1", "c2"}, catalog.last.Filter[domain.AttrCategoryUID].Values)
	assert.Equal(t, domain.ItemRange{Start: 13, End: 24}, resp.Range)
	assert.Len(t, resp.Tree, 1)
}

func TestBrowseCategory_TreeFailureDegradesToUnscoped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	catalog := &fakeCatalog{result: &domain.DiscoveryResult{}}
	q := NewQuery(&fakeTree{err: errors.New("connection refused")}, catalog, services.NewQueryComposer(), zap.New(core))

	resp := q.Execute(context.Background(), &Request{Path: []string{"bikes"}, Params: map[string]string{}})

	require.True(t, resp.Catalog.Success)
	assert.Nil(t, resp.Category)
	assert.Nil(t, catalog.last.Filter)
	assert.Equal(t, 1, logs.FilterMessage("category tree unavailable, browsing full catalog").Len())
}

func TestBrowseCategory_CatalogFailureSurfacedVerbatim(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog: deadline exceeded")}
	q := NewQuery(&fakeTree{tree: tree()}, catalog, services.NewQueryComposer(), zap.NewNop())

	resp := q.Execute(context.Background(), &Request{Path: []string{"bikes"}, Params: map[string]string{}})

	assert.False(t, resp.Catalog.Success)
	assert.Equal(t, "catalog: deadline exceeded", resp.Catalog.Error)
	assert.Equal(t, 1, catalog.calls, "no retry")
	assert.Equal(t, domain.ItemRange{}, resp.Range)
	assert.NotNil(t, resp.Query)
}
