// Package datatable implements the immutable, column-typed row store
// described in spec.md §3.1. A DataTable never mutates after
// construction; DataViews (package dataview) hold only index slices into
// a shared *DataTable.
package datatable

import (
	"fmt"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// DataType identifies the inferred or declared type of a column.
type DataType int

const (
	TypeString DataType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
	TypeDateTime
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeBoolean:
		return "Boolean"
	case TypeDate:
		return "Date"
	case TypeDateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// ColumnDef describes one column of a DataTable.
type ColumnDef struct {
	Name     string
	DataType DataType
	Nullable bool
}

// DataTable is an immutable, column-typed row store loaded from a CSV,
// JSON, or query-snapshot source (spec.md §6.1).
//
// Invariant: every row has exactly len(Columns) cells; cell N has a type
// compatible with Columns[N].DataType or is Null.
type DataTable struct {
	name    string
	columns []ColumnDef
	rows    [][]datavalue.DataValue

	// version is stamped at construction and never changes; it lets the
	// query engine's fingerprint (spec.md §4.6) include "table version"
	// without any mutation-tracking machinery, since tables never mutate.
	version uint64
}

// New constructs a DataTable, validating the row-width invariant.
func New(name string, columns []ColumnDef, rows [][]datavalue.DataValue) (*DataTable, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}
	return &DataTable{
		name:    name,
		columns: columns,
		rows:    rows,
		version: 1,
	}, nil
}

func (t *DataTable) Name() string           { return t.name }
func (t *DataTable) Columns() []ColumnDef   { return t.columns }
func (t *DataTable) NumColumns() int        { return len(t.columns) }
func (t *DataTable) NumRows() int           { return len(t.rows) }
func (t *DataTable) Version() uint64        { return t.version }

// Row returns the cells of the row at the given source row index.
func (t *DataTable) Row(rowIdx int) []datavalue.DataValue {
	return t.rows[rowIdx]
}

// Cell returns the value at (rowIdx, colIdx) in source coordinates.
func (t *DataTable) Cell(rowIdx, colIdx int) datavalue.DataValue {
	return t.rows[rowIdx][colIdx]
}

// ColumnIndex returns the source index of the named column, or -1 if the
// table has no such column.
func (t *DataTable) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnIndexMap returns a map from column name to source index, used by
// the WHERE evaluator (spec.md §4.2).
func (t *DataTable) ColumnIndexMap() map[string]int {
	m := make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		m[c.Name] = i
	}
	return m
}
