// Package ui holds the small terminal output helpers shared by the
// commands: aligned tables for listings and step progress for provisioning.
package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows in aligned columns. The header row is written up
// front; rows are buffered until Flush.
type Table struct {
	w     *tabwriter.Writer
	out   io.Writer
	cols  int
	rows  int
	empty string
}

// NewTable creates a table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	t := &Table{w: tw, out: out, cols: len(headers)}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return t
}

// Empty sets a message printed instead of the table when no rows were added.
func (t *Table) Empty(msg string) *Table {
	t.empty = msg
	return t
}

// Row appends a row. Values beyond the header count are dropped.
func (t *Table) Row(values ...any) {
	if len(values) > t.cols {
		values = values[:t.cols]
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	t.rows++
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered table, or the empty message when configured
// and no rows were added.
func (t *Table) Flush() error {
	if t.rows == 0 && t.empty != "" {
		_, err := fmt.Fprintln(t.out, t.empty)
		return err
	}
	return t.w.Flush()
}
