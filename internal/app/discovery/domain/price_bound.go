package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type boundState uint8

const (
	boundOpen boundState = iota
	boundValue
	boundMalformed
)

// PriceBound is one side of a price range. A bound is open (no limit), a
// decimal value, or malformed. Malformed bounds keep the raw token so it can
// be handed to the catalog unchanged; this layer does not validate them.
type PriceBound struct {
	state boundState
	value decimal.Decimal
	raw   string
}

// OpenBound returns a bound that places no limit on its side of the range.
func OpenBound() PriceBound {
	return PriceBound{state: boundOpen}
}

// BoundAt returns a bound fixed at the given value.
func BoundAt(value decimal.Decimal) PriceBound {
	return PriceBound{state: boundValue, value: value, raw: value.String()}
}

// MalformedBound returns a bound that could not be parsed as a decimal.
func MalformedBound(raw string) PriceBound {
	return PriceBound{state: boundMalformed, raw: raw}
}

// ParsePriceBound parses one half of a price token. An empty half is open.
func ParsePriceBound(s string) PriceBound {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return OpenBound()
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return MalformedBound(s)
	}
	return BoundAt(d)
}

// IsOpen reports whether the bound places no limit.
func (b PriceBound) IsOpen() bool { return b.state == boundOpen }

// IsMalformed reports whether the bound came from an unparsable token.
func (b PriceBound) IsMalformed() bool { return b.state == boundMalformed }

// Decimal returns the bound value. ok is false for open and malformed bounds.
func (b PriceBound) Decimal() (decimal.Decimal, bool) {
	if b.state != boundValue {
		return decimal.Decimal{}, false
	}
	return b.value, true
}

// Raw returns the token the bound was built from.
func (b PriceBound) Raw() string { return b.raw }

// Equal reports whether two bounds are the same. Decimal bounds compare by
// value, so 20 and 20.00 are equal.
func (b PriceBound) Equal(other PriceBound) bool {
	if b.state != other.state {
		return false
	}
	switch b.state {
	case boundValue:
		return b.value.Equal(other.value)
	case boundMalformed:
		return b.raw == other.raw
	default:
		return true
	}
}

func (b PriceBound) String() string {
	switch b.state {
	case boundValue:
		return b.value.String()
	case boundMalformed:
		return b.raw
	default:
		return "*"
	}
}

// MarshalJSON renders open bounds as null and everything else as a string.
func (b PriceBound) MarshalJSON() ([]byte, error) {
	if b.state == boundOpen {
		return []byte("null"), nil
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (b *PriceBound) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = OpenBound()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = ParsePriceBound(s)
	return nil
}
