package m_product_attribute

// Data represents one attribute value of a product.
type Data struct {
	ProductUID    string `spanner:"product_uid"`
	AttributeCode string `spanner:"attribute_code"`
	Value         string `spanner:"value"`
}
