package schema

import (
	"encoding/json"
	"sort"
)

// Capabilities records which columns each table actually has.
// A nil *Capabilities or an unknown table means "no information".
type Capabilities struct {
	tables map[string]map[string]struct{}
}

// NewCapabilities builds a descriptor from a table -> columns listing
func NewCapabilities(columns map[string][]string) *Capabilities {
	c := &Capabilities{tables: make(map[string]map[string]struct{}, len(columns))}
	for table, cols := range columns {
		set := make(map[string]struct{}, len(cols))
		for _, col := range cols {
			set[col] = struct{}{}
		}
		c.tables[table] = set
	}
	return c
}

// Known reports whether the table was seen when the descriptor was loaded
func (c *Capabilities) Known(table string) bool {
	if c == nil {
		return false
	}
	_, ok := c.tables[table]
	return ok
}

// Missing reports whether the table is known and lacks the column
func (c *Capabilities) Missing(table, column string) bool {
	if !c.Known(table) {
		return false
	}
	_, ok := c.tables[table][column]
	return !ok
}

// Columns lists the known columns of a table in sorted order
func (c *Capabilities) Columns(table string) []string {
	if !c.Known(table) {
		return nil
	}
	cols := make([]string, 0, len(c.tables[table]))
	for col := range c.tables[table] {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Tables lists the known tables in sorted order
func (c *Capabilities) Tables() []string {
	if c == nil {
		return nil
	}
	tables := make([]string, 0, len(c.tables))
	for t := range c.tables {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

func (c *Capabilities) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string)
	for _, t := range c.Tables() {
		out[t] = c.Columns(t)
	}
	return json.Marshal(out)
}

func (c *Capabilities) UnmarshalJSON(data []byte) error {
	var in map[string][]string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = *NewCapabilities(in)
	return nil
}
