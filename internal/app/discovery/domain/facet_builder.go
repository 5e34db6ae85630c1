package domain

import "strings"

const (
	valueSeparator = ","
	rangeSeparator = "_"
)

// composerOwned lists keys that only the query composer may set.
var composerOwned = map[string]struct{}{
	AttrCategoryUID: {},
	AttrName:        {},
}

// BuildFilter turns raw request parameters into facet conditions.
//
// Each parameter that is not reserved and not empty is split on commas with
// empty segments dropped. The price parameter becomes a Range; any other key
// becomes Eq for a single value and In for several. Keys that end up with no
// values are left out.
func BuildFilter(raw map[string]string, reserved map[string]struct{}) FilterSpec {
	spec := make(FilterSpec)
	for key, rawValue := range raw {
		if key == "" || rawValue == "" {
			continue
		}
		if _, skip := reserved[key]; skip {
			continue
		}
		if _, skip := composerOwned[key]; skip {
			continue
		}

		values := splitValues(rawValue)
		if len(values) == 0 {
			continue
		}

		if key == AttrPrice {
			spec[key] = priceCondition(values)
			continue
		}

		values = uniqueStrings(values)
		if len(values) == 1 {
			spec[key] = Eq(values[0])
		} else {
			spec[key] = In(values...)
		}
	}
	return spec
}

// ParsePriceRange parses a "<from>_<to>" token. Either half may be empty,
// which leaves that side open. A token without the separator has a malformed
// upper bound; malformed halves are kept rather than rejected.
func ParsePriceRange(token string) FilterCondition {
	parts := strings.Split(token, rangeSeparator)
	from := ParsePriceBound(parts[0])
	to := MalformedBound("")
	if len(parts) > 1 {
		to = ParsePriceBound(parts[1])
	}
	return Range(from, to)
}

// MergePriceRanges collapses several ranges into the widest range covering
// all of them: the lowest lower bound and the highest upper bound. This is an
// enclosing interval, not a union, so values between two selected ranges
// also match.
//
// An open bound on a side makes the merged side open. A malformed bound on a
// side makes the merged side malformed.
func MergePriceRanges(ranges []FilterCondition) FilterCondition {
	if len(ranges) == 0 {
		return Range(OpenBound(), OpenBound())
	}
	if len(ranges) == 1 {
		return normalizeRange(ranges[0])
	}

	from := ranges[0].From
	to := ranges[0].To
	for _, r := range ranges[1:] {
		from = widerBound(from, r.From, func(a, b PriceBound) bool { return b.value.LessThan(a.value) })
		to = widerBound(to, r.To, func(a, b PriceBound) bool { return b.value.GreaterThan(a.value) })
	}
	return normalizeRange(Range(from, to))
}

// widerBound picks between two bounds on the same side. replace reports
// whether b extends further than a when both hold values.
func widerBound(a, b PriceBound, replace func(a, b PriceBound) bool) PriceBound {
	switch {
	case a.IsMalformed():
		return a
	case b.IsMalformed():
		return b
	case a.IsOpen():
		return a
	case b.IsOpen():
		return b
	case replace(a, b):
		return b
	default:
		return a
	}
}

// normalizeRange keeps from <= to when both bounds hold values.
func normalizeRange(r FilterCondition) FilterCondition {
	from, okFrom := r.From.Decimal()
	to, okTo := r.To.Decimal()
	if okFrom && okTo && from.GreaterThan(to) {
		return Range(r.To, r.From)
	}
	return r
}

func priceCondition(tokens []string) FilterCondition {
	ranges := make([]FilterCondition, 0, len(tokens))
	for _, token := range tokens {
		ranges = append(ranges, ParsePriceRange(token))
	}
	return MergePriceRanges(ranges)
}

func splitValues(raw string) []string {
	parts := strings.Split(raw, valueSeparator)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			values = append(values, p)
		}
	}
	return values
}
