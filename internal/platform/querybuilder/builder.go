package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder controls how bind parameters are written.
type Placeholder int

const (
	// Question writes "?" for every argument (SQLite, MySQL).
	Question Placeholder = iota
	// Dollar writes "$1", "$2", ... (Postgres).
	Dollar
)

func (p Placeholder) format(i int) string {
	if p == Dollar {
		return "$" + strconv.Itoa(i)
	}
	return "?"
}

type Condition interface {
	appendSQL(w *writer)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ")
	w.bind(c.value)
}

// writer accumulates SQL text and its bind arguments in order.
type writer struct {
	buf  strings.Builder
	args []any
	ph   Placeholder
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString(w.ph.format(len(w.args)))
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

type filter struct {
	table string
	where []Condition
	ph    Placeholder
}

type SelectBuilder struct {
	filter
	columns []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) PlaceholderFormat(ph Placeholder) *SelectBuilder {
	b.ph = ph
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{ph: b.ph}
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)
	return w.buf.String(), w.args, nil
}

// InsertBuilder writes a single-row insert.
type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
	ph      Placeholder
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) PlaceholderFormat(ph Placeholder) *InsertBuilder {
	b.ph = ph
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}

	w := &writer{ph: b.ph}
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(value)
	}
	w.buf.WriteString(")")
	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}
	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	filter
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{filter: filter{table: table}}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) PlaceholderFormat(ph Placeholder) *DeleteBuilder {
	b.ph = ph
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete without where is not allowed")
	}

	w := &writer{ph: b.ph}
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)
	return w.buf.String(), w.args, nil
}
