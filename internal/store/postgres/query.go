package postgres

import (
	"context"
	"fmt"
	"strings"

	"mybook/internal/projection"

	"github.com/jackc/pgx/v5"
)

// pgQuery is an immutable SELECT builder implementing projection.Query. Sort
// keys name entity fields; columns whitelists them to SQL columns.
type pgQuery[T any] struct {
	db      querier
	table   string
	selects string
	columns map[string]string
	where   []string
	args    []any
	order   []projection.SortKey
}

func newQuery[T any](db querier, table, selects string, columns map[string]string) *pgQuery[T] {
	lower := make(map[string]string, len(columns))
	for field, col := range columns {
		lower[strings.ToLower(field)] = col
	}
	return &pgQuery[T]{db: db, table: table, selects: selects, columns: lower}
}

func (q *pgQuery[T]) clone() *pgQuery[T] {
	c := *q
	c.where = append([]string(nil), q.where...)
	c.args = append([]any(nil), q.args...)
	c.order = append([]projection.SortKey(nil), q.order...)
	return &c
}

// Where adds a condition. cond is a format string receiving the positional
// index of arg, e.g. "publisher = $%d".
func (q *pgQuery[T]) Where(cond string, arg any) *pgQuery[T] {
	c := q.clone()
	c.args = append(c.args, arg)
	c.where = append(c.where, fmt.Sprintf(cond, len(c.args)))
	return c
}

func (q *pgQuery[T]) OrderBy(keys ...projection.SortKey) projection.Query[T] {
	c := q.clone()
	c.order = append([]projection.SortKey(nil), keys...)
	return c
}

// Count rejects unmapped sort keys up front, like Slice does.
func (q *pgQuery[T]) Count(ctx context.Context) (int, error) {
	if _, err := q.orderClause(); err != nil {
		return 0, err
	}
	var n int
	sql := "SELECT count(*) FROM " + q.table + q.whereClause()
	if err := q.db.QueryRow(ctx, sql, q.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", q.table, err)
	}
	return n, nil
}

func (q *pgQuery[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	sql, args, err := q.sliceSQL(offset, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", q.table, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (q *pgQuery[T]) sliceSQL(offset, limit int) (string, []any, error) {
	orderBy, err := q.orderClause()
	if err != nil {
		return "", nil, err
	}
	args := append([]any(nil), q.args...)
	args = append(args, limit, max(offset, 0))
	sql := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
		q.selects, q.table, q.whereClause(), orderBy, len(args)-1, len(args))
	return sql, args, nil
}

func (q *pgQuery[T]) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

func (q *pgQuery[T]) orderClause() (string, error) {
	if len(q.order) == 0 {
		return "", nil
	}
	parts := make([]string, len(q.order))
	for i, k := range q.order {
		col, ok := q.columns[strings.ToLower(k.Field)]
		if !ok {
			return "", &projection.FieldError{Kind: projection.ErrUnknownSortField, Field: k.Field}
		}
		dir := "ASC"
		if k.Descending {
			dir = "DESC"
		}
		parts[i] = col + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// likePattern builds an ILIKE substring pattern, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
