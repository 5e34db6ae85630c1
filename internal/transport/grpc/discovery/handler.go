package discovery

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/browse_category"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/search_products"
)

// Handler implements DiscoveryServiceServer.
// It's a thin coordinator that delegates to the discovery queries.
type Handler struct {
	browse *browse_category.Query
	search *search_products.Query
}

// NewHandler creates a new gRPC discovery handler.
func NewHandler(browse *browse_category.Query, search *search_products.Query) *Handler {
	return &Handler{
		browse: browse,
		search: search,
	}
}

// pageReply mirrors the HTTP page body.
type pageReply struct {
	Term       string                  `json:"term,omitempty"`
	Query      *domain.DiscoveryQuery  `json:"query"`
	Category   *domain.CategoryNode    `json:"category,omitempty"`
	Categories []*domain.CategoryNode  `json:"categories"`
	Result     *domain.DiscoveryResult `json:"result"`
	Range      domain.ItemRange        `json:"range"`
}

// BrowseCategory lists a category page. Request fields: path, params.
func (h *Handler) BrowseCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path, err := requestPath(req)
	if err != nil {
		return nil, err
	}
	params, err := requestParams(req)
	if err != nil {
		return nil, err
	}

	resp := h.browse.Execute(ctx, &browse_category.Request{Path: path, Params: params})
	if !resp.Catalog.Success {
		return nil, status.Error(codes.Unavailable, resp.Catalog.Error)
	}

	return toStruct(pageReply{
		Query:      resp.Query,
		Category:   resp.Category,
		Categories: resp.Tree,
		Result:     resp.Catalog.Data,
		Range:      resp.Range,
	})
}

// SearchProducts runs a free-text search. Request fields: params (with q).
func (h *Handler) SearchProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	params, err := requestParams(req)
	if err != nil {
		return nil, err
	}

	resp, err := h.search.Execute(ctx, &search_products.Request{Params: params})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	if !resp.Catalog.Success {
		return nil, status.Error(codes.Unavailable, resp.Catalog.Error)
	}

	return toStruct(pageReply{
		Term:       resp.Term,
		Query:      resp.Query,
		Categories: resp.Tree,
		Result:     resp.Catalog.Data,
		Range:      resp.Range,
	})
}
