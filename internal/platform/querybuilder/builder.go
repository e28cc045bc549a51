// Package querybuilder renders the few Postgres statement shapes the
// repositories issue, with $n placeholders numbered in argument order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type args struct {
	values []any
}

func (a *args) bind(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Condition renders one WHERE term, binding its values.
type Condition func(a *args) string

// In matches column against values. An empty list matches nothing.
func In[T any](column string, values []T) Condition {
	return func(a *args) string {
		if len(values) == 0 {
			return "FALSE"
		}
		marks := make([]string, len(values))
		for i, v := range values {
			marks[i] = a.bind(v)
		}
		return column + " IN (" + strings.Join(marks, ", ") + ")"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Contains matches column case-insensitively against %substr%, with LIKE
// wildcards in substr escaped.
func Contains(column, substr string) Condition {
	return func(a *args) string {
		return column + " ILIKE " + a.bind("%"+likeEscaper.Replace(substr)+"%")
	}
}

// Expr inlines raw SQL, replacing each ? with the next bound value.
func Expr(sql string, values ...any) Condition {
	return func(a *args) string {
		var out strings.Builder
		next := 0
		for i := 0; i < len(sql); i++ {
			if sql[i] == '?' && next < len(values) {
				out.WriteString(a.bind(values[next]))
				next++
				continue
			}
			out.WriteByte(sql[i])
		}
		return out.String()
	}
}

// SelectQuery is a single-table SELECT.
type SelectQuery struct {
	Columns []string
	Table   string
	Where   []Condition
	OrderBy string
	Limit   int
}

func (q SelectQuery) Build() (string, []any, error) {
	if len(q.Columns) == 0 || strings.TrimSpace(q.Table) == "" {
		return "", nil, fmt.Errorf("select needs columns and a table")
	}

	var (
		a   args
		buf strings.Builder
	)
	fmt.Fprintf(&buf, "SELECT %s FROM %s", strings.Join(q.Columns, ", "), q.Table)
	for i, cond := range q.Where {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(cond(&a))
	}
	if q.OrderBy != "" {
		buf.WriteString(" ORDER BY " + q.OrderBy)
	}
	if q.Limit > 0 {
		buf.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}
	return buf.String(), a.values, nil
}

// Upsert renders a multi-row INSERT that overwrites every non-key column on
// conflict. Rows are read from the `db` tags of models, which must share one
// struct type.
func Upsert[M any](table, key string, models []M) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("upsert into %s: no rows", table)
	}

	cols, err := columnsOf(models[0])
	if err != nil {
		return "", nil, err
	}

	var (
		a    args
		buf  strings.Builder
		rows = make([]string, 0, len(models))
	)
	for _, m := range models {
		vals, err := valuesOf(m, len(cols))
		if err != nil {
			return "", nil, err
		}
		marks := make([]string, len(vals))
		for i, v := range vals {
			marks[i] = a.bind(v)
		}
		rows = append(rows, "("+strings.Join(marks, ", ")+")")
	}

	fmt.Fprintf(&buf, "INSERT INTO %s (%s) VALUES %s", table, strings.Join(cols, ", "), strings.Join(rows, ", "))

	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if col != key {
			updates = append(updates, col+" = EXCLUDED."+col)
		}
	}
	if len(updates) == 0 {
		fmt.Fprintf(&buf, " ON CONFLICT (%s) DO NOTHING", key)
	} else {
		fmt.Fprintf(&buf, " ON CONFLICT (%s) DO UPDATE SET %s", key, strings.Join(updates, ", "))
	}
	return buf.String(), a.values, nil
}
