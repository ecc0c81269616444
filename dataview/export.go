package dataview

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// ExportCSV renders the view's visible rows and columns, in the view's
// current sort/filter order, as CSV with a header row.
func (v *DataView) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(v.ColumnNames()); err != nil {
		return nil, errors.Wrap(err, "encoding/csv.Write header")
	}

	for i := 0; i < v.RowCount(); i++ {
		row, _ := v.GetRow(i)
		record := make([]string, len(row))
		for c, cell := range row {
			record[c] = cell.String()
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "encoding/csv.Write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "encoding/csv flush")
	}
	return buf.Bytes(), nil
}

// ExportJSON renders the view as a JSON array of objects keyed by
// display column name, preserving the view's current row order. Each
// object's key order matches column_names(): stdlib encoding/json
// doesn't preserve map key order, so rows are marshaled through
// orderedRow's custom MarshalJSON rather than a map[string]any.
func (v *DataView) ExportJSON() ([]byte, error) {
	names := v.ColumnNames()
	rows := make([]orderedRow, v.RowCount())

	for i := 0; i < v.RowCount(); i++ {
		row, _ := v.GetRow(i)
		values := make([]any, len(names))
		for c := range names {
			values[c] = jsonCellValue(row[c])
		}
		rows[i] = orderedRow{names: names, values: values}
	}

	encoded, err := json.Marshal(rows)
	if err != nil {
		return nil, errors.Wrap(err, "encoding/json.Marshal rows")
	}
	return encoded, nil
}

// orderedRow marshals as a JSON object whose keys appear in names'
// order, since a map loses the display column order by the time it
// reaches encoding/json.
type orderedRow struct {
	names  []string
	values []any
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonCellValue(cell datavalue.DataValue) any {
	if cell.IsNull() {
		return nil
	}
	if cell.Kind == datavalue.KindInternalNumber {
		return cell.Str
	}
	if cell.IsNumeric() {
		return cell.AsFloat()
	}
	return cell.String()
}

// ExportCSVFile and ExportJSONFile write the corresponding rendering to
// path via an atomic rename, so a crash mid-write never leaves a
// truncated file in place.
func (v *DataView) ExportCSVFile(path string) error {
	data, err := v.ExportCSV()
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

func (v *DataView) ExportJSONFile(path string) error {
	data, err := v.ExportJSON()
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrap(err, "renameio.NewPendingFile")
	}
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return errors.Wrap(err, "renameio write")
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "renameio.CloseAtomicallyReplace")
	}
	return nil
}
