package m_category

import (
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the categories table.
type Data struct {
	CategoryUID string             `spanner:"category_uid"`
	ParentUID   spanner.NullString `spanner:"parent_uid"`
	URLKey      string             `spanner:"url_key"`
	URLPath     string             `spanner:"url_path"`
	Name        string             `spanner:"name"`
	Position    int64              `spanner:"position"`
}
