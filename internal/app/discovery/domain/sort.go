package domain

// SortToken is the sort selection a shopper can request.
type SortToken string

const (
	SortPosition  SortToken = "position"
	SortNameAsc   SortToken = "name_asc"
	SortNameDesc  SortToken = "name_desc"
	SortPriceAsc  SortToken = "price_asc"
	SortPriceDesc SortToken = "price_desc"
	SortNewest    SortToken = "newest"
)

// SortField is a field the catalog can order by.
type SortField string

const (
	SortFieldPosition SortField = "position"
	SortFieldName     SortField = "name"
	SortFieldPrice    SortField = "price"
)

// SortDirection represents ORDER BY direction.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortSpec is the canonical (field, direction) pair sent to the catalog.
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

var sortSpecs = map[SortToken]SortSpec{
	SortPosition:  {Field: SortFieldPosition, Direction: SortAsc},
	SortNameAsc:   {Field: SortFieldName, Direction: SortAsc},
	SortNameDesc:  {Field: SortFieldName, Direction: SortDesc},
	SortPriceAsc:  {Field: SortFieldPrice, Direction: SortAsc},
	SortPriceDesc: {Field: SortFieldPrice, Direction: SortDesc},
	// Not every catalog deployment can sort by creation date, so newest is
	// approximated by reverse catalog position.
	SortNewest: {Field: SortFieldPosition, Direction: SortDesc},
}

// ParseSortToken returns the token named by s, or SortPosition when s is
// empty or unknown.
func ParseSortToken(s string) SortToken {
	token := SortToken(s)
	if _, ok := sortSpecs[token]; ok {
		return token
	}
	return SortPosition
}

// ToSortSpec maps a token to the catalog sort pair.
func ToSortSpec(token SortToken) SortSpec {
	if spec, ok := sortSpecs[token]; ok {
		return spec
	}
	return sortSpecs[SortPosition]
}
