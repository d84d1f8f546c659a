package postgres

import (
	"errors"

	"github.com/Rrens/careops/internal/schema"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgInvalidTextRepresentation = "22P02"

// capabilitySource exposes the column descriptor shared with the intake writer
type capabilitySource interface {
	Capabilities() *schema.Capabilities
}

func currentCapabilities(src capabilitySource) *schema.Capabilities {
	if src == nil {
		return nil
	}
	return src.Capabilities()
}

// optionalColumn selects expr, or fallback when the table is known to lack column
func optionalColumn(caps *schema.Capabilities, table, column, expr, fallback string) string {
	if caps.Missing(table, column) {
		return fallback
	}
	return expr
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
