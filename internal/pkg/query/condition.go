package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	// A condition consumes exactly len(params) indexes.
	SQL(paramIndex int) (string, map[string]interface{})
}

// comparisonCondition implements binary comparisons (field op value).
type comparisonCondition struct {
	field    string
	operator string
	value    interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparisonCondition{field: field, operator: "=", value: value}
}

// Gte creates a WHERE condition for field >= value.
func Gte(field string, value interface{}) Condition {
	return &comparisonCondition{field: field, operator: ">=", value: value}
}

// Lte creates a WHERE condition for field <= value.
func Lte(field string, value interface{}) Condition {
	return &comparisonCondition{field: field, operator: "<=", value: value}
}

// Like creates a WHERE condition for pattern matching.
// Example: Like("LOWER(name)", "%tent%") generates "LOWER(name) LIKE @p0"
// Use EscapeLike on user input before adding wildcards.
func Like(field string, pattern string) Condition {
	return &comparisonCondition{field: field, operator: "LIKE", value: pattern}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparisonCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.operator, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// inCondition implements array membership (field IN UNNEST(@p)).
type inCondition struct {
	field  string
	values []string
}

// In creates a WHERE condition matching any of the values.
// Example: In("color", []string{"red", "blue"}) generates "color IN UNNEST(@p0)"
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

// SQL generates the SQL fragment for array membership.
func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName)
	return sql, map[string]interface{}{paramName: c.values}
}

// subqueryCondition implements field IN (SELECT ...).
type subqueryCondition struct {
	field    string
	subquery *Builder
}

// InSubquery creates a WHERE condition against the rows of another query.
// The subquery's parameters are numbered in the outer query's sequence;
// its LIMIT and OFFSET are not rendered.
func InSubquery(field string, subquery *Builder) Condition {
	return &subqueryCondition{field: field, subquery: subquery}
}

// SQL generates the SQL fragment for the subquery membership test.
func (c *subqueryCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sub, params, _ := c.subquery.render(paramIndex)
	return fmt.Sprintf("%s IN (%s)", c.field, sub), params
}

// logicalCondition combines conditions with AND or OR.
type logicalCondition struct {
	operator   string
	conditions []Condition
}

// And combines conditions with AND. An empty And renders TRUE.
func And(conditions ...Condition) Condition {
	return &logicalCondition{operator: "AND", conditions: conditions}
}

// Or combines conditions with OR, wrapped in parentheses.
// An empty Or renders FALSE.
func Or(conditions ...Condition) Condition {
	return &logicalCondition{operator: "OR", conditions: conditions}
}

// SQL generates the combined fragment, numbering parameters left to right.
func (c *logicalCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	if len(c.conditions) == 0 {
		if c.operator == "OR" {
			return "FALSE", params
		}
		return "TRUE", params
	}

	parts := make([]string, 0, len(c.conditions))
	for _, condition := range c.conditions {
		fragment, condParams := condition.SQL(paramIndex)
		if nested, ok := condition.(*logicalCondition); ok && nested.operator == "AND" && c.operator == "OR" && len(nested.conditions) > 1 {
			fragment = "(" + fragment + ")"
		}
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}

	sql := strings.Join(parts, " "+c.operator+" ")
	if c.operator == "OR" && len(parts) > 1 {
		sql = "(" + sql + ")"
	}
	return sql, params
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("thumbnail_url") generates "thumbnail_url IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("price") generates "price IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains returns a LIKE pattern matching s anywhere in the value.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}
