package m_product_attribute

// Field name constants for the product_attributes table.
// One row per (product, attribute, value); multi-valued attributes
// contribute several rows.
const (
	TableName = "product_attributes"

	ProductUID    = "product_uid"
	AttributeCode = "attribute_code"
	Value         = "value"
)
