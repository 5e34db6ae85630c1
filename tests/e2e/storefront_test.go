package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

func skus(result *domain.DiscoveryResult) []string {
	out := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		out = append(out, item.SKU)
	}
	return out
}

func TestBrowseCategory_SubtreeScope(t *testing.T) {
	svc, cleanup := setupTest(t)
	defer cleanup()

	reply, err := svc.GRPC.BrowseCategory(ctx(), NewRequestBuilder().
		WithPath("camping").
		WithParam("sort", "price_asc").
		Build(t))
	require.NoError(t, err)

	page := decodeReply(t, reply)
	require.NotNil(t, page.Category)
	assert.Equal(t, svc.Catalog.Camping, page.Category.UID)
	assert.Equal(t, []string{"BAG-MUMMY", "TENT-2P", "TENT-4P", "TENT-UL"}, skus(page.Result))
	assert.Equal(t, 4, page.Result.TotalCount)
	assert.Equal(t, domain.ItemRange{Start: 1, End: 4}, page.Range)
}

func TestBrowseCategory_FiltersAndPaging(t *testing.T) {
	svc, cleanup := setupTest(t)
	defer cleanup()

	t.Run("attribute filter", func(t *testing.T) {
		reply, err := svc.GRPC.BrowseCategory(ctx(), NewRequestBuilder().
			WithPath("camping/tents").
			WithParam("color", "green").
			Build(t))
		require.NoError(t, err)

		page := decodeReply(t, reply)
		assert.ElementsMatch(t, []string{"TENT-2P", "TENT-4P"}, skus(page.Result))
	})

	t.Run("price range", func(t *testing.T) {
		reply, err := svc.GRPC.BrowseCategory(ctx(), NewRequestBuilder().
			WithParam("price", "20_45").
			WithParam("sort", "price_desc").
			Build(t))
		require.NoError(t, err)

		page := decodeReply(t, reply)
		assert.Equal(t, []string{"KAYAK-SOLO", "TENT-4P"}, skus(page.Result))
	})

	t.Run("second page", func(t *testing.T) {
		reply, err := svc.GRPC.BrowseCategory(ctx(), NewRequestBuilder().
			WithPath("camping").
			WithParam("sort", "price_asc").
			WithParam("pageSize", 3).
			WithParam("page", 2).
			Build(t))
		require.NoError(t, err)

		page := decodeReply(t, reply)
		assert.Equal(t, []string{"TENT-UL"}, skus(page.Result))
		assert.Equal(t, domain.ItemRange{Start: 4, End: 4}, page.Range)
		assert.Equal(t, 2, page.Result.PageInfo.TotalPages)
	})

	t.Run("unknown category browses everything", func(t *testing.T) {
		reply, err := svc.GRPC.BrowseCategory(ctx(), NewRequestBuilder().WithPath("nope").Build(t))
		require.NoError(t, err)

		page := decodeReply(t, reply)
		assert.Nil(t, page.Category)
		assert.Equal(t, 5, page.Result.TotalCount)
	})
}

func TestSearchProducts(t *testing.T) {
	svc, cleanup := setupTest(t)
	defer cleanup()

	t.Run("matches name case-insensitively", func(t *testing.T) {
		reply, err := svc.GRPC.SearchProducts(ctx(), NewRequestBuilder().
			WithParam("q", "TENT").
			WithParam("sort", "name_asc").
			Build(t))
		require.NoError(t, err)

		page := decodeReply(t, reply)
		assert.Equal(t, "TENT", page.Term)
		assert.Equal(t, []string{"Family Tent 4P", "Trail Tent 2P", "Ultralight Tent"}, func() []string {
			names := []string{}
			for _, item := range page.Result.Items {
				names = append(names, item.Name)
			}
			return names
		}())
	})

	t.Run("blank term is rejected", func(t *testing.T) {
		_, err := svc.GRPC.SearchProducts(ctx(), NewRequestBuilder().WithParam("q", "   ").Build(t))
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("http redirects blank term home", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc.Options.HTTPHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}
