package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for upserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ProductUID,
			SKU,
			Name,
			URLKey,
			Price,
			Currency,
			RentalUnit,
			StockStatus,
			ThumbnailURL,
			Position,
			CreatedAt,
		},
		[]interface{}{
			data.ProductUID,
			data.SKU,
			data.Name,
			data.URLKey,
			data.Price,
			data.Currency,
			data.RentalUnit,
			data.StockStatus,
			data.ThumbnailURL,
			data.Position,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteAllMut creates a Spanner mutation removing every product.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
