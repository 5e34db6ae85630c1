package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryUID = "category_uid"
	ParentUID   = "parent_uid"
	URLKey      = "url_key"
	URLPath     = "url_path"
	Name        = "name"
	Position    = "position"
	CreatedAt   = "created_at"
)

// Columns lists the readable columns in row order.
var Columns = []string{CategoryUID, ParentUID, URLKey, URLPath, Name, Position}
