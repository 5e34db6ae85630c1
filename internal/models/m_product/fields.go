package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductUID   = "product_uid"
	SKU          = "sku"
	Name         = "name"
	URLKey       = "url_key"
	Price        = "price"
	Currency     = "currency"
	RentalUnit   = "rental_unit"
	StockStatus  = "stock_status"
	ThumbnailURL = "thumbnail_url"
	Position     = "position"
	CreatedAt    = "created_at"
)

// Columns lists the columns read into Data, in row order.
var Columns = []string{
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
}
