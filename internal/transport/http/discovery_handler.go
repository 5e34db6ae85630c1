package http

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/contracts"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/domain/services"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/browse_category"
	"github.com/light-bringer/discovery-service/internal/app/discovery/queries/search_products"
	"github.com/light-bringer/discovery-service/internal/observability"
)

// DiscoveryHandler serves the storefront discovery endpoints.
type DiscoveryHandler struct {
	browse     *browse_category.Query
	search     *search_products.Query
	categories contracts.CategoryTreeProvider
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(
	browse *browse_category.Query,
	search *search_products.Query,
	categories contracts.CategoryTreeProvider,
) *DiscoveryHandler {
	return &DiscoveryHandler{
		browse:     browse,
		search:     search,
		categories: categories,
	}
}

// CategoriesResponse is the body of GET /api/v1/categories.
type CategoriesResponse struct {
	Success    bool                   `json:"success"`
	Categories []*domain.CategoryNode `json:"categories"`
}

// PageResponse is the body of category and search pages.
type PageResponse struct {
	Success    bool                                      `json:"success"`
	Term       string                                    `json:"term,omitempty"`
	Query      *domain.DiscoveryQuery                    `json:"query"`
	Category   *domain.CategoryNode                      `json:"category,omitempty"`
	Categories []*domain.CategoryNode                    `json:"categories"`
	Catalog    contracts.Result[*domain.DiscoveryResult] `json:"catalog"`
	Range      domain.ItemRange                          `json:"range"`
}

// Register mounts the discovery routes on mux.
func (h *DiscoveryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/categories", h.Categories)
	mux.HandleFunc("GET /api/v1/category/{path...}", h.BrowseCategory)
	mux.HandleFunc("GET /api/v1/search", h.Search)
}

// Categories handles GET /api/v1/categories.
func (h *DiscoveryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.categories.FetchTree(r.Context())
	if err != nil {
		observability.LoggerFrom(r.Context(), nil).Error("failed to fetch category tree", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}
	if tree == nil {
		tree = []*domain.CategoryNode{}
	}
	writeJSON(w, r, http.StatusOK, CategoriesResponse{Success: true, Categories: tree})
}

// BrowseCategory handles GET /api/v1/category/{path...}.
func (h *DiscoveryHandler) BrowseCategory(w http.ResponseWriter, r *http.Request) {
	resp := h.browse.Execute(r.Context(), &browse_category.Request{
		Path:   splitPath(r.PathValue("path")),
		Params: services.FlattenParams(r.URL.Query()),
	})

	writeJSON(w, r, pageStatus(resp.Catalog), PageResponse{
		Success:    resp.Catalog.Success,
		Query:      resp.Query,
		Category:   resp.Category,
		Categories: nonNilTree(resp.Tree),
		Catalog:    resp.Catalog,
		Range:      resp.Range,
	})
}

// Search handles GET /api/v1/search. A blank term redirects to the home page.
func (h *DiscoveryHandler) Search(w http.ResponseWriter, r *http.Request) {
	resp, err := h.search.Execute(r.Context(), &search_products.Request{
		Params: services.FlattenParams(r.URL.Query()),
	})
	if errors.Is(err, domain.ErrInvalidSearchTerm) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, pageStatus(resp.Catalog), PageResponse{
		Success:    resp.Catalog.Success,
		Term:       resp.Term,
		Query:      resp.Query,
		Categories: nonNilTree(resp.Tree),
		Catalog:    resp.Catalog,
		Range:      resp.Range,
	})
}

// Healthz handles GET /healthz.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// splitPath turns "camping/tents/" into ["camping", "tents"].
func splitPath(raw string) []string {
	segments := []string{}
	for _, s := range strings.Split(raw, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func pageStatus(catalog contracts.Result[*domain.DiscoveryResult]) int {
	if catalog.Success {
		return http.StatusOK
	}
	return http.StatusBadGateway
}

func nonNilTree(tree []*domain.CategoryNode) []*domain.CategoryNode {
	if tree == nil {
		return []*domain.CategoryNode{}
	}
	return tree
}
