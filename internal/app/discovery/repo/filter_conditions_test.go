package repo

import (
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

const productColumns = "product_uid, sku, name, url_key, price, currency, rental_unit, stock_status, thumbnail_url, position"

func bound(s string) domain.PriceBound {
	return domain.BoundAt(decimal.RequireFromString(s))
}

func ratParam(t *testing.T, params map[string]interface{}, name string) string {
	t.Helper()
	rat, ok := params[name].(*big.Rat)
	require.True(t, ok, "param %s is %T", name, params[name])
	return rat.RatString()
}

func TestBuildCatalogStatements_FullFilter(t *testing.T) {
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{
			domain.AttrCategoryUID: domain.In("c1", "c2"),
			"color":                domain.In("red", "blue"),
			domain.AttrName:        domain.Match("Tent"),
			domain.AttrPrice:       domain.Range(bound("10"), bound("50")),
		},
		Sort: domain.SortSpec{Field: domain.SortFieldPrice, Direction: domain.SortDesc},
		Page: domain.PageRequest{PageSize: 12, CurrentPage: 2},
	}

	stmts := buildCatalogStatements(q, zap.NewNop())

	where := "product_uid IN (SELECT product_uid FROM product_categories WHERE category_uid IN UNNEST(@p0))" +
		" AND product_uid IN (SELECT product_uid FROM product_attributes WHERE attribute_code = @p1 AND value IN UNNEST(@p2))" +
		" AND LOWER(name) LIKE @p3" +
		" AND price >= @p4 AND price <= @p5"

	assert.Equal(t,
		"SELECT "+productColumns+" FROM products WHERE "+where+
			" ORDER BY price DESC, product_uid ASC LIMIT @limit OFFSET @offset",
		stmts.items.SQL)
	assert.Equal(t, []string{"c1", "c2"}, stmts.items.Params["p0"])
	assert.Equal(t, "color", stmts.items.Params["p1"])
	assert.ElementsMatch(t, []string{"red", "blue"}, stmts.items.Params["p2"])
	assert.Equal(t, "%tent%", stmts.items.Params["p3"])
	assert.Equal(t, "10", ratParam(t, stmts.items.Params, "p4"))
	assert.Equal(t, "50", ratParam(t, stmts.items.Params, "p5"))
	assert.Equal(t, int64(12), stmts.items.Params["limit"])
	assert.Equal(t, int64(12), stmts.items.Params["offset"])

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE "+where, stmts.count.SQL)
	assert.Len(t, stmts.count.Params, 6)

	assert.Equal(t,
		"SELECT attribute_code, value, COUNT(DISTINCT product_uid) AS product_count FROM product_attributes"+
			" WHERE product_uid IN (SELECT product_uid FROM products WHERE "+where+")"+
			" GROUP BY attribute_code, value ORDER BY attribute_code ASC, value ASC",
		stmts.aggregations.SQL)
	assert.Len(t, stmts.aggregations.Params, 6)
}

func TestBuildCatalogStatements_Unfiltered(t *testing.T) {
	q := &domain.DiscoveryQuery{
		Sort: domain.ToSortSpec(domain.SortPosition),
		Page: domain.PageRequest{PageSize: 12, CurrentPage: 1},
	}

	stmts := buildCatalogStatements(q, zap.NewNop())

	assert.Equal(t, "SELECT "+productColumns+" FROM products ORDER BY position ASC, product_uid ASC LIMIT @limit", stmts.items.SQL)
	assert.Equal(t, "SELECT COUNT(*) FROM products", stmts.count.SQL)
	assert.Empty(t, stmts.count.Params)
}

func TestBuildCatalogStatements_SearchTerm(t *testing.T) {
	term := "50% Off_"
	q := &domain.DiscoveryQuery{
		Search: &term,
		Sort:   domain.ToSortSpec(domain.SortNewest),
		Page:   domain.PageRequest{PageSize: 24, CurrentPage: 1},
	}

	stmts := buildCatalogStatements(q, zap.NewNop())

	assert.Equal(t,
		"SELECT COUNT(*) FROM products WHERE (LOWER(name) LIKE @p0 OR LOWER(sku) LIKE @p1)",
		stmts.count.SQL)
	assert.Equal(t, `%50\% off\_%`, stmts.count.Params["p0"])
	assert.Equal(t, `%50\% off\_%`, stmts.count.Params["p1"])
	assert.True(t, strings.HasSuffix(stmts.items.SQL, "ORDER BY position DESC, product_uid ASC LIMIT @limit"))
}

func TestBuildCatalogStatements_CategoryEq(t *testing.T) {
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{domain.AttrCategoryUID: domain.Eq("c1")},
		Page:   domain.PageRequest{PageSize: 12, CurrentPage: 1},
	}

	stmts := buildCatalogStatements(q, zap.NewNop())

	assert.Equal(t,
		"SELECT COUNT(*) FROM products WHERE product_uid IN (SELECT product_uid FROM product_categories WHERE category_uid = @p0)",
		stmts.count.SQL)
}

func TestPriceCondition_MalformedBoundIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{
			domain.AttrPrice: domain.Range(domain.MalformedBound("abc"), bound("50")),
		},
		Page: domain.PageRequest{PageSize: 12, CurrentPage: 1},
	}

	stmts := buildCatalogStatements(q, zap.New(core))

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE price <= @p0", stmts.count.SQL)
	assert.Equal(t, "50", ratParam(t, stmts.count.Params, "p0"))

	entries := logs.FilterMessage("ignoring malformed price bound").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "from", entries[0].ContextMap()["side"])
	assert.Equal(t, "abc", entries[0].ContextMap()["raw"])
}

func TestPriceCondition_OpenRange(t *testing.T) {
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{
			domain.AttrPrice: domain.Range(domain.OpenBound(), domain.OpenBound()),
		},
		Page: domain.PageRequest{PageSize: 12, CurrentPage: 1},
	}

	stmts := buildCatalogStatements(q, zap.NewNop())

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE TRUE", stmts.count.SQL)
	assert.Empty(t, stmts.count.Params)
}

func TestProductConditions_UnsupportedKindLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{
			"color": domain.Range(bound("1"), bound("2")),
		},
	}

	conditions := productConditions(q, zap.New(core))

	assert.Empty(t, conditions)
	assert.Equal(t, 1, logs.FilterMessage("ignoring unsupported filter condition").Len())
}

func TestProductConditions_AttributeMatch(t *testing.T) {
	q := &domain.DiscoveryQuery{
		Filter: domain.FilterSpec{"brand": domain.Match("Coleman")},
	}

	conditions := productConditions(q, zap.NewNop())
	require.Len(t, conditions, 1)

	sql, params := conditions[0].SQL(0)
	assert.Equal(t,
		"product_uid IN (SELECT product_uid FROM product_attributes WHERE attribute_code = @p0 AND LOWER(value) LIKE @p1)",
		sql)
	assert.Equal(t, "%coleman%", params["p1"])
}

func TestSortOrder_UnknownFieldFallsBackToPosition(t *testing.T) {
	column, _ := sortOrder(domain.SortSpec{Field: "rating", Direction: domain.SortAsc})
	assert.Equal(t, "position", column)
}
