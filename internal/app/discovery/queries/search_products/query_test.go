package search_products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
)

type fakeTree struct {
	calls int
	tree  []*domain.CategoryNode
	err   error
}

func (f *fakeTree) FetchTree(context.Context) ([]*domain.CategoryNode, error) {
	f.calls++
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

func TestSearchProducts_Success(t *testing.T) {
	tree := &fakeTree{tree: []*domain.CategoryNode{{UID: "c1", URLKey: "bikes"}}}
	catalog := &fakeCatalog{result: &domain.DiscoveryResult{Items: make([]domain.Product, 5), TotalCount: 5}}
	q := NewQuery(tree, catalog, services.NewQueryComposer(), zap.NewNop())

	resp, err := q.Execute(context.Background(), &Request{Params: map[string]string{"q": "kayak", "color": "red"}})

	require.NoError(t, err)
	require.True(t, resp.Catalog.Success)
	assert.Equal(t, "kayak", resp.Term)
	assert.Equal(t, "kayak", catalog.last.SearchTerm())
	assert.Equal(t, domain.Eq("red"), catalog.last.Filter["color"])
	assert.Len(t, resp.Tree, 1)
	assert.Equal(t, domain.ItemRange{Start: 1, End: 5}, resp.Range)
}

func TestSearchProducts_BlankTermSkipsCollaborators(t *testing.T) {
	tree := &fakeTree{}
	catalog := &fakeCatalog{}
	q := NewQuery(tree, catalog, services.NewQueryComposer(), zap.NewNop())

	resp, err := q.Execute(context.Background(), &Request{Params: map[string]string{"q": "  "}})

	assert.ErrorIs(t, err, domain.ErrInvalidSearchTerm)
	assert.Nil(t, resp)
	assert.Zero(t, tree.calls)
	assert.Zero(t, catalog.calls)
}

func TestSearchProducts_TreeFailureDoesNotFailSearch(t *testing.T) {
	catalog := &fakeCatalog{result: &domain.DiscoveryResult{}}
	q := NewQuery(&fakeTree{err: errors.New("boom")}, catalog, services.NewQueryComposer(), zap.NewNop())

	resp, err := q.Execute(context.Background(), &Request{Params: map[string]string{"q": "tent"}})

	require.NoError(t, err)
	assert.True(t, resp.Catalog.Success)
	assert.Nil(t, resp.Tree)
}

func TestSearchProducts_CatalogFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog unavailable")}
	q := NewQuery(&fakeTree{}, catalog, services.NewQueryComposer(), zap.NewNop())

	resp, err := q.Execute(context.Background(), &Request{Params: map[string]string{"q": "tent"}})

	require.NoError(t, err)
	assert.False(t, resp.Catalog.Success)
	assert.Equal(t, "catalog unavailable", resp.Catalog.Error)
	assert.Equal(t, 1, catalog.calls)
}
