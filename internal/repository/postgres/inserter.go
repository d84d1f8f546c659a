package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Rrens/careops/internal/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUndefinedColumn = "42703"

var quotedColumn = regexp.MustCompile(`column "([^"]+)"`)

// RowInserter implements schema.Inserter with one multi-row INSERT statement.
// Inside a transaction every attempt runs in its own savepoint so a rejected
// attempt does not abort the surrounding transaction.
type RowInserter struct {
	q querier
}

// NewRowInserter creates an inserter over a pool or a transaction
func NewRowInserter(q querier) *RowInserter {
	return &RowInserter{q: q}
}

// Insert writes rows into table
func (i *RowInserter) Insert(ctx context.Context, table string, rows []schema.Row) error {
	query, args := buildInsert(table, rows)

	tx, ok := i.q.(pgx.Tx)
	if !ok {
		if _, err := i.q.Exec(ctx, query, args...); err != nil {
			return classifyInsertError(table, err)
		}
		return nil
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}
	if _, err := sp.Exec(ctx, query, args...); err != nil {
		_ = sp.Rollback(ctx)
		return classifyInsertError(table, err)
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// buildInsert renders INSERT INTO table (cols) VALUES (...), (...).
// Columns are the sorted union over all rows; a row without a column gets DEFAULT.
func buildInsert(table string, rows []schema.Row) (string, []any) {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range rows {
		for c := range r {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	sort.Strings(cols)

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}

	var (
		b    strings.Builder
		args []any
	)
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")

	for ri, r := range rows {
		if ri > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for ci, c := range cols {
			if ci > 0 {
				b.WriteString(", ")
			}
			v, ok := r[c]
			if !ok {
				b.WriteString("DEFAULT")
				continue
			}
			args = append(args, v)
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}

	return b.String(), args
}

func classifyInsertError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedColumn {
		col := pgErr.ColumnName
		if m := quotedColumn.FindStringSubmatch(pgErr.Message); col == "" && m != nil {
			col = m[1]
		}
		return &schema.UnknownColumnError{Table: table, Column: col, Err: pgErr}
	}
	return err
}
