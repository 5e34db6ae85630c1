package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type orderTerm struct {
	column    string
	direction Direction
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// It provides a fluent API for WHERE, GROUP BY, ORDER BY, LIMIT and OFFSET.
// Parameter names are generated (@p0, @p1, ...) in condition order, so
// nested builders used as subqueries share one parameter namespace.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	groupByCols  []string
	orderTerms   []orderTerm
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, condition)
	return newBuilder
}

// GroupBy appends GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.groupByCols = append(newBuilder.groupByCols, columns...)
	return newBuilder
}

// OrderBy replaces the ordering with a single column and direction.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderTerms = []orderTerm{{column: column, direction: direction}}
	return newBuilder
}

// ThenBy appends a secondary ordering term, typically a unique tiebreaker.
func (b *Builder) ThenBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderTerms = append(newBuilder.orderTerms, orderTerm{column: column, direction: direction})
	return newBuilder
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	newBuilder := b.clone()
	newBuilder.limitVal = limit
	return newBuilder
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	newBuilder := b.clone()
	newBuilder.offsetVal = offset
	return newBuilder
}

// Count returns a new builder that generates a COUNT(*) query
// with the same FROM and WHERE clauses.
func (b *Builder) Count() *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = []string{"COUNT(*)"}
	// Clear pagination, ordering and grouping for count query
	newBuilder.limitVal = 0
	newBuilder.offsetVal = 0
	newBuilder.orderTerms = nil
	newBuilder.groupByCols = nil
	return newBuilder
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	sql, params, _ := b.render(0)

	// LIMIT and OFFSET use fixed names; only the outermost query carries them.
	if b.limitVal > 0 {
		sql += " LIMIT @limit"
		params["limit"] = b.limitVal
	}
	if b.offsetVal > 0 {
		sql += " OFFSET @offset"
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql,
		Params: params,
	}
}

// render writes everything but LIMIT/OFFSET, numbering parameters from
// startIndex. It returns the next free parameter index.
func (b *Builder) render(startIndex int) (string, map[string]interface{}, int) {
	var sql strings.Builder
	params := make(map[string]interface{})

	// SELECT clause
	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	// FROM clause
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	// WHERE clause
	paramIndex := startIndex
	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		fragment, condParams := And(b.whereClauses...).SQL(paramIndex)
		sql.WriteString(fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}

	// GROUP BY clause
	if len(b.groupByCols) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(b.groupByCols, ", "))
	}

	// ORDER BY clause
	if len(b.orderTerms) > 0 {
		terms := make([]string, 0, len(b.orderTerms))
		for _, term := range b.orderTerms {
			if term.direction == Desc {
				terms = append(terms, term.column+" DESC")
			} else {
				terms = append(terms, term.column+" ASC")
			}
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(terms, ", "))
	}

	return sql.String(), params, paramIndex
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		groupByCols:  make([]string, len(b.groupByCols)),
		orderTerms:   make([]orderTerm, len(b.orderTerms)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(newBuilder.selectCols, b.selectCols)
	copy(newBuilder.whereClauses, b.whereClauses)
	copy(newBuilder.groupByCols, b.groupByCols)
	copy(newBuilder.orderTerms, b.orderTerms)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
