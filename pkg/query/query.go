// Package query builds parameterized SQL SELECT statements with automatic
// placeholder numbering.
package query

import (
	"fmt"
	"strings"
)

// Projection describes the table and column set a query selects from.
type Projection struct {
	table   string
	columns []string
}

// NewProjection creates a Projection over the given table and columns.
func NewProjection(table string, columns ...string) *Projection {
	return &Projection{table: table, columns: columns}
}

// Columns returns the comma-separated column list.
func (p *Projection) Columns() string {
	return strings.Join(p.columns, ", ")
}

// From returns the table name.
func (p *Projection) From() string {
	return p.table
}

type condition struct {
	column   string
	operator string
	arg      any
}

// Builder constructs a SELECT over a projection with optional conditions
// and ordering.
type Builder struct {
	projection *Projection
	conditions []condition
	orderBy    string
}

// NewBuilder creates a Builder for the given projection.
func NewBuilder(projection *Projection) *Builder {
	return &Builder{projection: projection}
}

// WhereGte adds a column >= value condition. No-op for nil values.
func (b *Builder) WhereGte(column string, value any) *Builder {
	return b.where(column, ">=", value)
}

// WhereLte adds a column <= value condition. No-op for nil values.
func (b *Builder) WhereLte(column string, value any) *Builder {
	return b.where(column, "<=", value)
}

// OrderBy sets the ORDER BY column and direction.
func (b *Builder) OrderBy(column string, descending bool) *Builder {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	b.orderBy = fmt.Sprintf(" ORDER BY %s %s", column, direction)
	return b
}

// Build returns the SELECT statement with numbered placeholders and its
// argument list.
func (b *Builder) Build() (string, []any) {
	var where strings.Builder
	args := make([]any, 0, len(b.conditions))

	for i, c := range b.conditions {
		if i == 0 {
			where.WriteString(" WHERE ")
		} else {
			where.WriteString(" AND ")
		}
		fmt.Fprintf(&where, "%s %s $%d", c.column, c.operator, i+1)
		args = append(args, c.arg)
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		where.String(),
		b.orderBy,
	)
	return sql, args
}

func (b *Builder) where(column, operator string, value any) *Builder {
	if value == nil {
		return b
	}
	b.conditions = append(b.conditions, condition{
		column:   column,
		operator: operator,
		arg:      value,
	})
	return b
}
