package m_product

import (
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductUID   string              `spanner:"product_uid"`
	SKU          string              `spanner:"sku"`
	Name         string              `spanner:"name"`
	URLKey       string              `spanner:"url_key"`
	Price        spanner.NullNumeric `spanner:"price"`
	Currency     string              `spanner:"currency"`
	RentalUnit   string              `spanner:"rental_unit"`
	StockStatus  string              `spanner:"stock_status"`
	ThumbnailURL spanner.NullString  `spanner:"thumbnail_url"`
	Position     int64               `spanner:"position"`
}
