package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// InsertBuilder renders a multi-row INSERT with $n placeholders and an
// optional ON CONFLICT clause.
type InsertBuilder struct {
	table         string
	columns       []string
	rows          [][]any
	conflictCols  []string
	updateCols    []string
	doNothing     bool
	returningCols []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflict names the unique key; pair it with DoUpdate or DoNothing.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflictCols = append([]string(nil), columns...)
	return b
}

// DoUpdate overwrites the listed columns from EXCLUDED. With no columns,
// every inserted column outside the conflict key is overwritten.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.updateCols = append([]string(nil), columns...)
	b.doNothing = false
	return b
}

func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.updateCols = nil
	b.doNothing = true
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returningCols = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			args = append(args, value)
			buf.WriteString(placeholder(len(args)))
		}
		buf.WriteString(")")
	}

	if err := b.appendConflict(&buf); err != nil {
		return "", nil, err
	}
	if len(b.returningCols) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(b.returningCols, ", "))
	}

	return buf.String(), args, nil
}

func (b *InsertBuilder) appendConflict(buf *strings.Builder) error {
	if len(b.conflictCols) == 0 {
		if b.doNothing || len(b.updateCols) > 0 {
			return fmt.Errorf("conflict action requires conflict columns")
		}
		return nil
	}

	buf.WriteString(" ON CONFLICT (")
	buf.WriteString(strings.Join(b.conflictCols, ", "))
	buf.WriteString(")")

	if b.doNothing {
		buf.WriteString(" DO NOTHING")
		return nil
	}

	updates := b.updateCols
	if len(updates) == 0 {
		key := make(map[string]struct{}, len(b.conflictCols))
		for _, c := range b.conflictCols {
			key[c] = struct{}{}
		}
		for _, c := range b.columns {
			if _, ok := key[c]; !ok {
				updates = append(updates, c)
			}
		}
	}
	if len(updates) == 0 {
		buf.WriteString(" DO NOTHING")
		return nil
	}

	buf.WriteString(" DO UPDATE SET ")
	for i, c := range updates {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(c)
	}
	return nil
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
