package m_product_category

// Field name constants for the product_categories table.
const (
	TableName = "product_categories"

	ProductUID  = "product_uid"
	CategoryUID = "category_uid"
)
