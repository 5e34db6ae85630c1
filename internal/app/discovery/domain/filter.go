package domain

import (
	"encoding/json"
	"fmt"
)

// Attribute codes the composer owns. The per-parameter facet loop never
// produces conditions for these keys.
const (
	AttrCategoryUID = "category_uid"
	AttrName        = "name"
	AttrPrice       = "price"
)

// Reserved parameter names. They carry paging, sorting, search and locale
// information and never become facet filters.
const (
	ParamQuery    = "q"
	ParamSearch   = "search"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamLocale   = "locale"
)

// ReservedParams is the set of parameter names excluded from facet parsing.
var ReservedParams = map[string]struct{}{
	ParamQuery:    {},
	ParamSearch:   {},
	ParamSort:     {},
	ParamPage:     {},
	ParamPageSize: {},
	ParamLocale:   {},
}

// ConditionKind tags the variant held by a FilterCondition.
type ConditionKind int

const (
	ConditionEq ConditionKind = iota
	ConditionIn
	ConditionMatch
	ConditionRange
)

func (k ConditionKind) String() string {
	switch k {
	case ConditionEq:
		return "eq"
	case ConditionIn:
		return "in"
	case ConditionMatch:
		return "match"
	case ConditionRange:
		return "range"
	default:
		return fmt.Sprintf("ConditionKind(%d)", int(k))
	}
}

// FilterCondition is a single attribute condition understood by the catalog.
// Only the fields belonging to Kind are meaningful.
type FilterCondition struct {
	Kind   ConditionKind
	Value  string   // Eq, Match
	Values []string // In; order is not significant
	From   PriceBound
	To     PriceBound
}

// Eq matches attribute values equal to value.
func Eq(value string) FilterCondition {
	return FilterCondition{Kind: ConditionEq, Value: value}
}

// In matches any of values. Duplicates are dropped, first occurrence kept.
func In(values ...string) FilterCondition {
	return FilterCondition{Kind: ConditionIn, Values: uniqueStrings(values)}
}

// Match matches attribute values containing substring.
func Match(substring string) FilterCondition {
	return FilterCondition{Kind: ConditionMatch, Value: substring}
}

// Range matches numeric values between from and to, both inclusive.
func Range(from, to PriceBound) FilterCondition {
	return FilterCondition{Kind: ConditionRange, From: from, To: to}
}

// MarshalJSON renders the condition in the catalog filter input shape:
// {"eq":..}, {"in":[..]}, {"match":..} or {"from":..,"to":..}.
func (c FilterCondition) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ConditionEq:
		return json.Marshal(map[string]string{"eq": c.Value})
	case ConditionIn:
		return json.Marshal(map[string][]string{"in": c.Values})
	case ConditionMatch:
		return json.Marshal(map[string]string{"match": c.Value})
	case ConditionRange:
		return json.Marshal(struct {
			From PriceBound `json:"from"`
			To   PriceBound `json:"to"`
		}{c.From, c.To})
	default:
		return nil, fmt.Errorf("unknown condition kind %d", int(c.Kind))
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *FilterCondition) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	switch {
	case fields["eq"] != nil:
		c.Kind = ConditionEq
		return json.Unmarshal(fields["eq"], &c.Value)
	case fields["in"] != nil:
		c.Kind = ConditionIn
		return json.Unmarshal(fields["in"], &c.Values)
	case fields["match"] != nil:
		c.Kind = ConditionMatch
		return json.Unmarshal(fields["match"], &c.Value)
	}
	_, hasFrom := fields["from"]
	_, hasTo := fields["to"]
	if !hasFrom && !hasTo {
		return fmt.Errorf("unrecognised filter condition: %s", string(data))
	}
	c.Kind = ConditionRange
	c.From, c.To = OpenBound(), OpenBound()
	if hasFrom {
		if err := json.Unmarshal(fields["from"], &c.From); err != nil {
			return err
		}
	}
	if hasTo {
		if err := json.Unmarshal(fields["to"], &c.To); err != nil {
			return err
		}
	}
	return nil
}

// FilterSpec maps attribute codes to their condition.
type FilterSpec map[string]FilterCondition

// Clone returns a shallow copy of the spec.
func (f FilterSpec) Clone() FilterSpec {
	out := make(FilterSpec, len(f)+2)
	for k, v := range f {
		out[k] = v
	}
	return out
}

// WithCategoryScope returns a copy of the spec restricted to the given
// category uids. An empty uid list leaves the spec unscoped.
func (f FilterSpec) WithCategoryScope(uids []string) FilterSpec {
	out := f.Clone()
	if len(uids) == 0 {
		return out
	}
	out[AttrCategoryUID] = In(uids...)
	return out
}

// WithNameMatch returns a copy of the spec that also requires the product
// name to contain term.
func (f FilterSpec) WithNameMatch(term string) FilterSpec {
	out := f.Clone()
	if term == "" {
		return out
	}
	out[AttrName] = Match(term)
	return out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
