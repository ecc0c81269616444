package datatable

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// snapshotDoc mirrors the cached remote query-result shape from spec.md
// §6.1: { "columns": [name], "rows": [[value]] }.
type snapshotDoc struct {
	Columns []string          `json:"columns"`
	Rows    [][]json.RawMessage `json:"rows"`
}

// LoadSnapshotFile loads a DataTable from a query-snapshot JSON file at path.
func LoadSnapshotFile(path string) (*DataTable, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "datatable.LoadSnapshotFile")
	}
	defer f.Close()
	return LoadSnapshot(f, tableNameFromPath(path))
}

// LoadSnapshot loads a DataTable from a query-snapshot JSON document read
// from r. Types are inferred per column from the first non-null value,
// the same as LoadJSON.
func LoadSnapshot(r io.Reader, tableName string) (*DataTable, error) {
	var doc snapshotDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "encoding/json.Decode")
	}

	numCols := len(doc.Columns)
	columnTypes := make([]DataType, numCols)
	for c := 0; c < numCols; c++ {
		columnTypes[c] = TypeString
		for _, row := range doc.Rows {
			if c >= len(row) || isJSONNull(row[c]) {
				continue
			}
			columnTypes[c] = jsonValueType(row[c])
			break
		}
	}

	columns := make([]ColumnDef, numCols)
	for c, name := range doc.Columns {
		columns[c] = ColumnDef{Name: name, DataType: columnTypes[c], Nullable: true}
	}

	rows := make([][]datavalue.DataValue, len(doc.Rows))
	for r, srcRow := range doc.Rows {
		row := make([]datavalue.DataValue, numCols)
		for c := 0; c < numCols; c++ {
			if c >= len(srcRow) || isJSONNull(srcRow[c]) {
				row[c] = datavalue.Null
				continue
			}
			row[c] = jsonValueToDataValue(srcRow[c], columnTypes[c])
		}
		rows[r] = row
	}

	return &DataTable{name: tableName, columns: columns, rows: rows, version: 1}, nil
}
