package contracts

import (
	"context"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

// CategoryTreeProvider supplies the category tree. The tree changes rarely
// and is safe to fetch once per request.
type CategoryTreeProvider interface {
	// FetchTree returns the root categories with their descendants.
	FetchTree(ctx context.Context) ([]*domain.CategoryNode, error)
}
