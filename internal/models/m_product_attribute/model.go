package m_product_attribute

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the product_attributes table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for storing an attribute value.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProductUID, AttributeCode, Value},
		[]interface{}{data.ProductUID, data.AttributeCode, data.Value},
	)
}

// DeleteAllMut creates a Spanner mutation removing every attribute value.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
