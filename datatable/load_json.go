package datatable

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// LoadJSONFile loads a DataTable from a JSON array-of-objects file at path
// (spec.md §6.1).
func LoadJSONFile(path string) (*DataTable, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "datatable.LoadJSONFile")
	}
	defer f.Close()
	return LoadJSON(f, tableNameFromPath(path))
}

// LoadJSON loads a DataTable from a JSON array of objects read from r. The
// union of object keys (in first-seen order) becomes the column list; each
// column's type is inferred from the first non-null value seen across rows.
func LoadJSON(r io.Reader, tableName string) (*DataTable, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, errors.Wrapf(err, "encoding/json.Decode")
	}

	// Each object is decoded into a map for lookup; its keys are read a
	// second time as a token stream, since map iteration loses key order.
	raw := make([]map[string]json.RawMessage, len(elems))
	var columnOrder []string
	seen := make(map[string]bool)
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &raw[i]); err != nil {
			return nil, errors.Wrapf(err, "encoding/json.Unmarshal")
		}
		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.Token() // opening '{'
		for dec.More() {
			key, _ := dec.Token()
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				break
			}
			if k, ok := key.(string); ok && !seen[k] {
				seen[k] = true
				columnOrder = append(columnOrder, k)
			}
		}
	}

	columnTypes := make(map[string]DataType, len(columnOrder))
	for _, name := range columnOrder {
		for _, obj := range raw {
			rm, ok := obj[name]
			if !ok || isJSONNull(rm) {
				continue
			}
			columnTypes[name] = jsonValueType(rm)
			break
		}
		if _, ok := columnTypes[name]; !ok {
			columnTypes[name] = TypeString
		}
	}

	columns := make([]ColumnDef, len(columnOrder))
	for i, name := range columnOrder {
		columns[i] = ColumnDef{Name: name, DataType: columnTypes[name], Nullable: true}
	}

	rows := make([][]datavalue.DataValue, len(raw))
	for i, obj := range raw {
		row := make([]datavalue.DataValue, len(columnOrder))
		for c, name := range columnOrder {
			rm, ok := obj[name]
			if !ok || isJSONNull(rm) {
				row[c] = datavalue.Null
				continue
			}
			row[c] = jsonValueToDataValue(rm, columnTypes[name])
		}
		rows[i] = row
	}

	return &DataTable{name: tableName, columns: columns, rows: rows, version: 1}, nil
}

func isJSONNull(rm json.RawMessage) bool {
	return len(rm) == 0 || string(rm) == "null"
}

func jsonValueType(rm json.RawMessage) DataType {
	var f float64
	if err := json.Unmarshal(rm, &f); err == nil {
		if f == float64(int64(f)) {
			return TypeInteger
		}
		return TypeFloat
	}

	var b bool
	if err := json.Unmarshal(rm, &b); err == nil {
		return TypeBoolean
	}

	var s string
	if err := json.Unmarshal(rm, &s); err == nil {
		if v, ok := parseTemporal(s); ok {
			if v.Kind == datavalue.KindDate {
				return TypeDate
			}
			return TypeDateTime
		}
		return TypeString
	}

	return TypeString
}

func jsonValueToDataValue(rm json.RawMessage, dt DataType) datavalue.DataValue {
	switch dt {
	case TypeInteger:
		var i int64
		if err := json.Unmarshal(rm, &i); err == nil {
			return datavalue.Integer(i)
		}
	case TypeFloat:
		var f float64
		if err := json.Unmarshal(rm, &f); err == nil {
			return datavalue.Float(f)
		}
	case TypeBoolean:
		var b bool
		if err := json.Unmarshal(rm, &b); err == nil {
			return datavalue.Boolean(b)
		}
	case TypeDate, TypeDateTime:
		var s string
		if err := json.Unmarshal(rm, &s); err == nil {
			if v, ok := parseTemporal(s); ok {
				return v
			}
		}
	}

	var s string
	if err := json.Unmarshal(rm, &s); err == nil {
		return datavalue.String(s)
	}
	return datavalue.String(string(rm))
}
