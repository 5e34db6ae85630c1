package domain

// Product is a catalog item as listed on discovery pages.
type Product struct {
	UID          string `json:"uid"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	URLKey       string `json:"url_key"`
	Price        *Money `json:"price"`
	Currency     string `json:"currency"`
	RentalUnit   string `json:"rental_unit"`
	StockStatus  string `json:"stock_status"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// AggregationOption is one facet value with the number of matching items.
type AggregationOption struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// FacetAggregation holds the counts computed by the catalog for one
// attribute. The engine passes these through unchanged.
type FacetAggregation struct {
	AttributeCode string              `json:"attribute_code"`
	Options       []AggregationOption `json:"options"`
}

// PageInfo describes the page the catalog returned.
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalPages  int `json:"total_pages"`
}

// DiscoveryResult is what the catalog returns for a DiscoveryQuery.
type DiscoveryResult struct {
	Items        []Product          `json:"items"`
	TotalCount   int                `json:"total_count"`
	Aggregations []FacetAggregation `json:"aggregations"`
	PageInfo     PageInfo           `json:"page_info"`
}

// TotalPages returns the number of pages needed for totalCount items.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
