package services

import (
	"net/url"
	"strings"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

// Composition is a composed catalog query together with the category it was
// scoped to. Category is nil when the query covers the full catalog.
type Composition struct {
	Query    *domain.DiscoveryQuery
	Category *domain.CategoryNode
}

// QueryComposer is a domain service that turns raw request parameters into a
// DiscoveryQuery for the category browse and free-text search pages.
// It holds no state and performs no I/O.
type QueryComposer struct {
	reserved map[string]struct{}
}

// NewQueryComposer creates a new QueryComposer.
func NewQueryComposer() *QueryComposer {
	return &QueryComposer{reserved: domain.ReservedParams}
}

// ComposeCategoryQuery builds the query for a category page. Only the last
// path segment is resolved; ancestors in the path are not checked. A segment
// that matches no category yields an unscoped query over the whole catalog.
func (c *QueryComposer) ComposeCategoryQuery(
	segments []string,
	params map[string]string,
	tree []*domain.CategoryNode,
) *Composition {
	filter := domain.BuildFilter(params, c.reserved)

	var category *domain.CategoryNode
	if len(segments) > 0 {
		if node, ok := domain.FindByURLKey(tree, segments[len(segments)-1]); ok {
			category = node
			filter = filter.WithCategoryScope(domain.CollectSubtreeUIDs(node))
		}
	}

	if term := strings.TrimSpace(params[domain.ParamSearch]); term != "" {
		filter = filter.WithNameMatch(term)
	}

	return &Composition{
		Query:    c.assemble(nil, filter, params),
		Category: category,
	}
}

// ComposeSearchQuery builds the query for the search page. It returns
// domain.ErrInvalidSearchTerm when the q parameter is absent or blank; the
// caller is expected to send the shopper back to the home page.
func (c *QueryComposer) ComposeSearchQuery(params map[string]string) (*Composition, error) {
	term := strings.TrimSpace(params[domain.ParamQuery])
	if term == "" {
		return nil, domain.ErrInvalidSearchTerm
	}

	filter := domain.BuildFilter(params, c.reserved)

	return &Composition{
		Query: c.assemble(&term, filter, params),
	}, nil
}

func (c *QueryComposer) assemble(search *string, filter domain.FilterSpec, params map[string]string) *domain.DiscoveryQuery {
	if len(filter) == 0 {
		filter = nil
	}
	return &domain.DiscoveryQuery{
		Search: search,
		Filter: filter,
		Sort:   domain.ToSortSpec(domain.ParseSortToken(params[domain.ParamSort])),
		Page: domain.PageRequest{
			PageSize:    domain.ResolvePageSize(params[domain.ParamPageSize]),
			CurrentPage: domain.ResolvePage(params[domain.ParamPage]),
		},
	}
}

// FlattenParams converts URL query values into the flat parameter map the
// composer works on. Repeated keys are joined with commas in arrival order,
// so color=red&color=blue reads the same as color=red,blue.
func FlattenParams(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key, vs := range values {
		params[key] = strings.Join(vs, ",")
	}
	return params
}
