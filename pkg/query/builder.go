package query

import (
	"fmt"
	"reflect"
	"strings"
)

// paramToken marks where a numbered placeholder goes in a stored
// clause. Placeholders get their final numbers when the WHERE clause
// is rendered, so conditions compose in any order.
const paramToken = "$%d"

type condition struct {
	clause string
	args   []any
}

// SortField is one ORDER BY column. Field is the logical view name,
// resolved through the ProjectionMap at build time.
type SortField struct {
	Field      string
	Descending bool
}

// Builder accumulates conditions and ordering for one projection and
// renders them as parameterized SELECT statements.
type Builder struct {
	projection        *ProjectionMap
	conditions        []condition
	orderByFields     []SortField
	defaultSortFields []SortField
}

// NewBuilder creates a Builder over projection. The defaultSort fields
// apply whenever no explicit ordering is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:        projection,
		conditions:        make([]condition, 0),
		defaultSortFields: defaultSort,
	}
}

// ParseSortFields parses a comma-separated sort string, treating a
// leading "-" as descending ("created_at,-confidence"). Empty input
// yields nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field := SortField{Field: part}
		if after, ok := strings.CutPrefix(part, "-"); ok {
			field = SortField{Field: after, Descending: true}
		}
		fields = append(fields, field)
	}

	return fields
}

// Build renders a SELECT with the accumulated conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.renderWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.renderOrderBy(),
	)
	return sql, args
}

// BuildCount renders a COUNT(*) with the accumulated conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.renderWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage renders a SELECT with ordering, LIMIT, and OFFSET for the
// given 1-indexed page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.renderWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.renderOrderBy(),
		pageSize,
		(page-1)*pageSize,
	)
	return sql, args
}

// BuildSingle renders a SELECT for one record by its ID field,
// ignoring accumulated conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// BuildSingleOrNull renders a SELECT limited to one row with the
// accumulated conditions.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args := b.renderWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(),
		b.projection.From(),
		where,
	)
	return sql, args
}

// OrderByFields sets an explicit sort order, displacing the defaults.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.orderByFields = fields
	return b
}

// WhereContains adds a case-insensitive substring match. Nil or empty
// values add nothing.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.where(
		fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), paramToken),
		"%"+*value+"%",
	)
}

// WhereEquals adds an equality condition. Nil values add nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where(
		fmt.Sprintf("%s = %s", b.projection.Column(field), paramToken),
		value,
	)
}

// WhereNullable adds an equality condition, or IS NULL when value is
// nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNil(value) {
		return b.where(col + " IS NULL")
	}
	return b.where(fmt.Sprintf("%s = %s", col, paramToken), value)
}

// WhereSearch adds one OR group of case-insensitive substring matches
// across fields. Nil or empty search adds nothing.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := "%" + *search + "%"

	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), paramToken)
		args[i] = pattern
	}

	return b.where("("+strings.Join(clauses, " OR ")+")", args...)
}

func (b *Builder) where(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) renderOrderBy() string {
	fields := b.orderByFields
	if len(fields) == 0 {
		fields = b.defaultSortFields
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

// renderWhere joins the accumulated conditions with AND and assigns
// sequential placeholder numbers starting at $1.
func (b *Builder) renderWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	param := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, paramToken, fmt.Sprintf("$%d", param), 1)
			args = append(args, arg)
			param++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
