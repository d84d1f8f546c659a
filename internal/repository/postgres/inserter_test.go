package postgres

import (
	"errors"
	"testing"

	"github.com/Rrens/careops/internal/schema"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsert_SingleRow(t *testing.T) {
	query, args := buildInsert("contacts", []schema.Row{
		{"name": "Asha", "email": "a@example.com", "workspace_id": "w1"},
	})

	assert.Equal(t, `INSERT INTO "contacts" ("email", "name", "workspace_id") VALUES ($1, $2, $3)`, query)
	assert.Equal(t, []any{"a@example.com", "Asha", "w1"}, args)
}

func TestBuildInsert_MultiRowUsesDefaultForGaps(t *testing.T) {
	query, args := buildInsert("messages", []schema.Row{
		{"body": "a", "channel": "email"},
		{"body": "b"},
	})

	assert.Equal(t, `INSERT INTO "messages" ("body", "channel") VALUES ($1, $2), ($3, DEFAULT)`, query)
	assert.Equal(t, []any{"a", "email", "b"}, args)
}

func TestBuildInsert_QuotesIdentifiers(t *testing.T) {
	query, _ := buildInsert(`odd"table`, []schema.Row{{"x": 1}})
	assert.Equal(t, `INSERT INTO "odd""table" ("x") VALUES ($1)`, query)
}

func TestClassifyInsertError_UndefinedColumn(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    pgUndefinedColumn,
		Message: `column "channel" of relation "messages" does not exist`,
	}

	err := classifyInsertError("messages", pgErr)

	var unknown *schema.UnknownColumnError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "messages", unknown.Table)
	assert.Equal(t, "channel", unknown.Column)
	assert.Contains(t, err.Error(), "channel")
}

func TestClassifyInsertError_OtherErrorsPassThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", Message: `null value in column "name" violates not-null constraint`}
	assert.Same(t, pgErr, classifyInsertError("contacts", pgErr))

	plain := errors.New("boom")
	assert.Equal(t, plain, classifyInsertError("contacts", plain))
}
