package domain

import "errors"

// Domain errors as sentinel values
var (
	// Search errors
	ErrInvalidSearchTerm = errors.New("search term is required")

	// Collaborator errors
	ErrCategoryTreeUnavailable = errors.New("category tree unavailable")
	ErrCatalogUnavailable      = errors.New("catalog query failed")
)
