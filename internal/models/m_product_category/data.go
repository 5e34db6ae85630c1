package m_product_category

// Data represents one product assignment to a category.
type Data struct {
	ProductUID  string `spanner:"product_uid"`
	CategoryUID string `spanner:"category_uid"`
}
