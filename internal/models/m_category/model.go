package m_category

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for upserting a category.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{CategoryUID, ParentUID, URLKey, URLPath, Name, Position, CreatedAt},
		[]interface{}{
			data.CategoryUID,
			data.ParentUID,
			data.URLKey,
			data.URLPath,
			data.Name,
			data.Position,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteAllMut creates a Spanner mutation removing every category.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
