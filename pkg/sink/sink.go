// Package sink writes the generated tables somewhere durable: a local
// directory, an S3 bucket or PostgreSQL.
package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Common sentinel errors
var (
	ErrSinkClosed     = errors.New("sink is closed")
	ErrEmptyTableName = errors.New("table name is empty")
	ErrRowWidth       = errors.New("row width does not match header")
)

// Table is one named table: a header and its data rows in output order.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Validate checks the name and that every row is as wide as the header.
func (t Table) Validate() error {
	if t.Name == "" {
		return ErrEmptyTableName
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("%w: row %d has %d fields, header has %d", ErrRowWidth, i, len(row), len(t.Header))
		}
	}
	return nil
}

// Sink receives tables. Writing the same table name twice replaces it.
type Sink interface {
	Write(ctx context.Context, t Table) error
	Close() error
	Name() string
}

// WriteError describes a failed sink operation.
type WriteError struct {
	Sink  string // Sink name (e.g., "dir", "s3")
	Table string // Table being written, if any
	Op    string // Operation that failed (e.g., "create", "copy")
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s sink: %s %s: %v", e.Sink, e.Op, e.Table, e.Cause)
	}
	return fmt.Sprintf("%s sink: %s: %v", e.Sink, e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *WriteError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func writeErr(sink, table, op string, cause error) *WriteError {
	return &WriteError{Sink: sink, Table: table, Op: op, Cause: cause}
}

// EncodeCSV writes the header and rows as RFC 4180 CSV with LF line endings.
func EncodeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// FileName is the object or file name a table is stored under.
func FileName(table string, compressed bool) string {
	if compressed {
		return table + ".csv.sz"
	}
	return table + ".csv"
}
