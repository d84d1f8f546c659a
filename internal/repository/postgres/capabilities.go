package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/careops/internal/schema"
)

// CapabilityLoader reads the column layout of the intake tables from information_schema
type CapabilityLoader struct {
	db *DB
}

// NewCapabilityLoader creates a new capability loader
func NewCapabilityLoader(db *DB) *CapabilityLoader {
	return &CapabilityLoader{db: db}
}

// Load returns the columns present for the given tables in the current schema.
// Tables that do not exist are simply absent from the result.
func (l *CapabilityLoader) Load(ctx context.Context, tables []string) (*schema.Capabilities, error) {
	query := `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position
	`

	rows, err := l.db.Pool.Query(ctx, query, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to load table columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string][]string)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns[table] = append(columns[table], column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", err)
	}

	return schema.NewCapabilities(columns), nil
}
