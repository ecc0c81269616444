package datatable

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// isoLayouts are tried, in order, before falling back to the lenient
// github.com/jinzhu/now parser (spec.md §6.1: "try ISO-8601 date/datetime").
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTemporal attempts to parse s as a Date or DateTime DataValue.
func parseTemporal(s string) (datavalue.DataValue, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == "2006-01-02" {
				return datavalue.Date(t.Year(), int(t.Month()), t.Day()), true
			}
			return datavalue.DateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()), true
		}
	}

	// Fall back to the lenient parser for less-strict formats
	// (e.g. "Jan 2, 2024", "2024/01/02").
	if t, err := now.Parse(s); err == nil {
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && !strings.ContainsAny(s, ":") {
			return datavalue.Date(t.Year(), int(t.Month()), t.Day()), true
		}
		return datavalue.DateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()), true
	}

	return datavalue.Null, false
}

// inferCellFromString infers a DataValue from a raw string cell the way
// spec.md §6.1 describes for CSV loading: empty -> Null, else integer,
// else float, else ISO-8601 date/datetime, else string.
func inferCellFromString(raw string) datavalue.DataValue {
	if raw == "" {
		return datavalue.Null
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return datavalue.Integer(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return datavalue.Float(f)
	}
	if v, ok := parseTemporal(raw); ok {
		return v
	}
	return datavalue.String(raw)
}

// sampledColumnType inspects up to sampleRows non-empty string values for a
// column and returns the DataType every sampled value is compatible with,
// per spec.md §6.1 CSV loading rules.
func sampledColumnType(values []string, sampleRows int) DataType {
	sawInt, sawFloat, sawDate, sawDateTime, sawAny := true, true, true, true, false
	n := 0
	for _, raw := range values {
		if raw == "" {
			continue
		}
		if n >= sampleRows {
			break
		}
		n++
		sawAny = true

		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			sawInt = false
		}
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			sawFloat = false
		}
		v, ok := parseTemporal(raw)
		if !ok {
			sawDate, sawDateTime = false, false
		} else if v.Kind == datavalue.KindDate {
			sawDateTime = false
		} else {
			sawDate = false
		}
	}

	switch {
	case !sawAny:
		return TypeString
	case sawInt:
		return TypeInteger
	case sawFloat:
		return TypeFloat
	case sawDate:
		return TypeDate
	case sawDateTime:
		return TypeDateTime
	default:
		return TypeString
	}
}
