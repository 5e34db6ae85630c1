package testutil

import (
	"context"
	"math/big"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/discovery-service/internal/models/m_category"
	"github.com/light-bringer/discovery-service/internal/models/m_product"
	"github.com/light-bringer/discovery-service/internal/models/m_product_attribute"
	"github.com/light-bringer/discovery-service/internal/models/m_product_category"
	"github.com/light-bringer/discovery-service/internal/pkg/committer"
)

// CatalogBuilder collects catalog rows and writes them in one commit.
type CatalogBuilder struct {
	plan     *committer.CommitPlan
	position int64
}

// NewCatalogBuilder starts an empty catalog.
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{plan: committer.NewPlan()}
}

// Category adds a category and returns its uid. An empty parentUID makes
// it a root.
func (b *CatalogBuilder) Category(parentUID, urlKey, urlPath, name string, position int64) string {
	uid := uuid.New().String()
	data := &m_category.Data{
		CategoryUID: uid,
		URLKey:      urlKey,
		URLPath:     urlPath,
		Name:        name,
		Position:    position,
	}
	if parentUID != "" {
		data.ParentUID = spanner.NullString{StringVal: parentUID, Valid: true}
	}
	b.plan.Add(m_category.NewModel().InsertMut(data))
	return uid
}

// Product adds an in-stock EUR daily rental priced at num/denom and
// returns its uid. Products are positioned in insertion order.
func (b *CatalogBuilder) Product(sku, name string, num, denom int64) string {
	uid := uuid.New().String()
	b.plan.Add(m_product.NewModel().InsertMut(&m_product.Data{
		ProductUID:  uid,
		SKU:         sku,
		Name:        name,
		URLKey:      sku,
		Price:       spanner.NullNumeric{Numeric: *big.NewRat(num, denom), Valid: true},
		Currency:    "EUR",
		RentalUnit:  "day",
		StockStatus: "IN_STOCK",
		Position:    b.position,
	}))
	b.position++
	return uid
}

// Assign places a product in a category.
func (b *CatalogBuilder) Assign(productUID, categoryUID string) {
	b.plan.Add(m_product_category.NewModel().InsertMut(&m_product_category.Data{
		ProductUID:  productUID,
		CategoryUID: categoryUID,
	}))
}

// Attribute stores one attribute value of a product.
func (b *CatalogBuilder) Attribute(productUID, code, value string) {
	b.plan.Add(m_product_attribute.NewModel().InsertMut(&m_product_attribute.Data{
		ProductUID:    productUID,
		AttributeCode: code,
		Value:         value,
	}))
}

// Commit writes everything collected so far.
func (b *CatalogBuilder) Commit(t *testing.T, client *spanner.Client) {
	t.Helper()

	err := committer.NewCommitter(client).Apply(context.Background(), b.plan)
	require.NoError(t, err, "failed to seed catalog")
	b.plan = committer.NewPlan()
}
