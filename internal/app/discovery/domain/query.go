package domain

// PageRequest selects one page of results. Both fields are 1 or more.
type PageRequest struct {
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
}

// Offset returns the number of items before the requested page.
func (p PageRequest) Offset() int64 {
	return int64(p.CurrentPage-1) * int64(p.PageSize)
}

// DiscoveryQuery is the request handed to the catalog. It is built once per
// page view and never modified afterwards.
type DiscoveryQuery struct {
	Search *string     `json:"search,omitempty"`
	Filter FilterSpec  `json:"filter,omitempty"`
	Sort   SortSpec    `json:"sort"`
	Page   PageRequest `json:"page"`
}

// SearchTerm returns the free-text term, or "" when the query has none.
func (q *DiscoveryQuery) SearchTerm() string {
	if q == nil || q.Search == nil {
		return ""
	}
	return *q.Search
}
