package datatable

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// DefaultSampleRows is the default number of rows sampled per column for
// type inference (spec.md §6.1).
const DefaultSampleRows = 100

// CSVOptions configures LoadCSV.
type CSVOptions struct {
	// HasHeader indicates the first row holds column names. The zero
	// value (false) reads every row as data and names the columns A, B,
	// C, ...; DefaultCSVOptions sets it to true.
	HasHeader bool

	// SampleRows bounds how many non-empty values per column are
	// inspected for type inference. Zero means DefaultSampleRows.
	SampleRows int

	// TableName overrides the table name (defaults to the base file name
	// when loading from a path; callers loading from an arbitrary
	// io.Reader should set this).
	TableName string
}

// DefaultCSVOptions returns the default options: header row present,
// DefaultSampleRows sampled per column.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{HasHeader: true, SampleRows: DefaultSampleRows}
}

// LoadCSVFile loads a DataTable from a CSV file at path.
func LoadCSVFile(path string, opts CSVOptions) (*DataTable, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "datatable.LoadCSVFile")
	}
	defer f.Close()

	if opts.TableName == "" {
		opts.TableName = tableNameFromPath(path)
	}
	return LoadCSV(f, opts)
}

// LoadCSV loads a DataTable from CSV data read from r.
func LoadCSV(r io.Reader, opts CSVOptions) (*DataTable, error) {
	if opts.SampleRows <= 0 {
		opts.SampleRows = DefaultSampleRows
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; padded/truncated below.

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "encoding/csv.ReadAll")
	}
	if len(records) == 0 {
		return &DataTable{name: opts.TableName, version: 1}, nil
	}

	var header []string
	var dataRows [][]string
	if opts.HasHeader {
		header = records[0]
		dataRows = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = columnLetterName(i)
		}
		dataRows = records
	}

	numCols := len(header)
	columnValues := make([][]string, numCols)
	for _, row := range dataRows {
		for c := 0; c < numCols; c++ {
			var raw string
			if c < len(row) {
				raw = row[c]
			}
			columnValues[c] = append(columnValues[c], raw)
		}
	}

	columns := make([]ColumnDef, numCols)
	for c := 0; c < numCols; c++ {
		dt := sampledColumnType(columnValues[c], opts.SampleRows)
		columns[c] = ColumnDef{
			Name:     header[c],
			DataType: dt,
			Nullable: true,
		}
	}

	rows := make([][]datavalue.DataValue, len(dataRows))
	for r := 0; r < len(dataRows); r++ {
		row := make([]datavalue.DataValue, numCols)
		for c := 0; c < numCols; c++ {
			raw := columnValues[c][r]
			if columns[c].DataType == TypeString && raw != "" {
				row[c] = datavalue.String(raw)
			} else {
				row[c] = inferCellFromString(raw)
			}
		}
		rows[r] = row
	}

	return &DataTable{name: opts.TableName, columns: columns, rows: rows, version: 1}, nil
}

func columnLetterName(i int) string {
	// A, B, C, ... Z, AA, AB, ... mirroring spreadsheet column naming for
	// headerless CSV files.
	name := ""
	for {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return name
}

func tableNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
