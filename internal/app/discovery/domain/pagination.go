package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
)

// ItemRange is the 1-based range of items shown on a page, e.g. "13-24 of 30".
type ItemRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ResolvePage parses the requested page number. Absent, unparsable and
// non-positive values give DefaultPage. There is no upper bound; the catalog
// answers pages past the end with no items.
func ResolvePage(raw string) int {
	return positiveIntOr(raw, DefaultPage)
}

// ResolvePageSize parses the requested page size, defaulting to
// DefaultPageSize.
func ResolvePageSize(raw string) int {
	return positiveIntOr(raw, DefaultPageSize)
}

// DisplayRange computes the item range for a page. Start is 0 when the page
// holds no items.
func DisplayRange(currentPage, pageSize, itemCountOnPage, totalCount int) ItemRange {
	start := 0
	if itemCountOnPage > 0 {
		start = (currentPage-1)*pageSize + 1
	}
	return ItemRange{
		Start: start,
		End:   min(currentPage*pageSize, totalCount),
	}
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
