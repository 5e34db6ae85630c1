package m_product_category

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the product_categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for assigning a product to a category.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProductUID, CategoryUID},
		[]interface{}{data.ProductUID, data.CategoryUID},
	)
}

// DeleteAllMut creates a Spanner mutation removing every assignment.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
