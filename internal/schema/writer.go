// Package schema inserts rows into tables whose optional columns may or may not exist.
package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// Row is one record keyed by column name
type Row map[string]any

// Inserter performs a single multi-row insert
type Inserter interface {
	Insert(ctx context.Context, table string, rows []Row) error
}

// UnknownColumnError is returned by inserters that can tell which column the store rejected
type UnknownColumnError struct {
	Table  string
	Column string
	Err    error
}

func (e *UnknownColumnError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("column %q of relation %q does not exist", e.Column, e.Table)
}

func (e *UnknownColumnError) Unwrap() error {
	return e.Err
}

// FallbackHook is called each time a column is dropped after a failed attempt
type FallbackHook func(table, column string, err error)

// Option configures a Writer
type Option func(*Writer)

// WithFallbackHook registers a hook invoked on every fallback retry
func WithFallbackHook(hook FallbackHook) Option {
	return func(w *Writer) {
		w.onFallback = hook
	}
}

// WithCapabilities seeds the writer with a capability descriptor
func WithCapabilities(caps *Capabilities) Option {
	return func(w *Writer) {
		w.caps.Store(caps)
	}
}

// Writer inserts rows, dropping optional ("fragile") columns the store does not have.
// Columns known to be absent are stripped up front; otherwise each fragile column
// named by a failure is dropped and the insert retried once.
type Writer struct {
	inserter   Inserter
	caps       *atomic.Pointer[Capabilities]
	onFallback FallbackHook
}

// NewWriter creates a new schema-tolerant writer
func NewWriter(inserter Inserter, opts ...Option) *Writer {
	w := &Writer{
		inserter: inserter,
		caps:     &atomic.Pointer[Capabilities]{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Using returns a writer bound to another inserter (e.g. a transaction)
// that shares this writer's capabilities and hook.
func (w *Writer) Using(inserter Inserter) *Writer {
	return &Writer{
		inserter:   inserter,
		caps:       w.caps,
		onFallback: w.onFallback,
	}
}

// SetCapabilities swaps the capability descriptor. Nil clears it.
func (w *Writer) SetCapabilities(caps *Capabilities) {
	w.caps.Store(caps)
}

// Capabilities returns the current descriptor, possibly nil
func (w *Writer) Capabilities() *Capabilities {
	return w.caps.Load()
}

// Insert writes rows into table. Fragile columns are tried in the given order;
// the error of the last attempt is returned unchanged.
func (w *Writer) Insert(ctx context.Context, table string, rows []Row, fragile ...string) error {
	if len(rows) == 0 {
		return nil
	}

	work := cloneRows(rows)
	if caps := w.caps.Load(); caps != nil {
		for _, col := range fragile {
			if caps.Missing(table, col) {
				dropColumn(work, col)
			}
		}
	}

	err := w.inserter.Insert(ctx, table, work)
	for _, col := range fragile {
		if err == nil {
			return nil
		}
		if !hasColumn(work, col) || !mentionsColumn(err, col) {
			continue
		}
		if w.onFallback != nil {
			w.onFallback(table, col, err)
		}
		dropColumn(work, col)
		err = w.inserter.Insert(ctx, table, work)
	}
	return err
}

func mentionsColumn(err error, column string) bool {
	var unknown *UnknownColumnError
	if errors.As(err, &unknown) && unknown.Column != "" {
		return unknown.Column == column
	}
	return strings.Contains(err.Error(), column)
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		c := make(Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

func hasColumn(rows []Row, column string) bool {
	for _, r := range rows {
		if _, ok := r[column]; ok {
			return true
		}
	}
	return false
}

func dropColumn(rows []Row, column string) {
	for _, r := range rows {
		delete(r, column)
	}
}
