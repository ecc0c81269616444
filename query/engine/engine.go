// Package engine implements the query driver described in spec.md
// §4.6: parses a query, resolves it against a named table, applies
// projection/WHERE/ORDER BY/LIMIT, and caches the resulting DataView
// behind a fingerprint of the query text, table name, and table
// version.
package engine

import (
	"hash/fnv"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/dataview"
	"github.com/TimelordUK/sql-cli-go/gridqlerr"
	"github.com/TimelordUK/sql-cli-go/query/eval"
	"github.com/TimelordUK/sql-cli-go/query/parser"
)

// DefaultCacheSize bounds the number of cached result views.
const DefaultCacheSize = 128

// TableSource resolves a table by name; callers supply the set of
// currently loaded tables (the host owns table lifetime, not the
// engine).
type TableSource interface {
	Table(name string) (*datatable.DataTable, bool)
}

// Driver executes queries against a TableSource with a bounded LRU
// result cache keyed by fingerprint.
type Driver struct {
	tables         TableSource
	cache          *lru.Cache[uint64, *dataview.DataView]
	caseSensitive  bool
	maxDisplayRows uint64
}

// New creates a Driver. caseSensitive is the default WHERE/LIKE string
// comparison policy (behavior.case_insensitive_default negated).
// maxDisplayRows is the behavior.max_display_rows soft cap on base_rows
// (spec.md §6.3); zero means unlimited.
func New(tables TableSource, caseSensitive bool, maxDisplayRows uint64) *Driver {
	cache, err := lru.New[uint64, *dataview.DataView](DefaultCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// DefaultCacheSize never is.
		panic(err)
	}
	return &Driver{tables: tables, cache: cache, caseSensitive: caseSensitive, maxDisplayRows: maxDisplayRows}
}

// Fingerprint computes a stable hash over normalized query text, table
// name, and table version, used as the result-cache key.
func Fingerprint(queryText, tableName string, tableVersion uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(queryText)))
	h.Write([]byte{0})
	h.Write([]byte(tableName))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatUint(tableVersion, 10)))
	return h.Sum64()
}

// Execute parses queryText, resolves its table, and returns the
// resulting DataView. A cache hit returns a clone of the cached view so
// the caller can mutate it (pin, sort, filter) without corrupting the
// shared cache entry.
func (d *Driver) Execute(queryText string) (*dataview.DataView, error) {
	stmt, err := parser.Parse(queryText)
	if err != nil {
		return nil, err
	}

	table, ok := d.tables.Table(stmt.Table)
	if !ok {
		return nil, &gridqlerr.UnknownTableError{Table: stmt.Table}
	}

	fp := Fingerprint(queryText, stmt.Table, table.Version())
	if cached, ok := d.cache.Get(fp); ok {
		return cached.Clone(), nil
	}

	colIndex := table.ColumnIndexMap()
	if stmt.Where != nil {
		if err := validateColumns(stmt.Where, colIndex); err != nil {
			return nil, err
		}
	}
	if !stmt.IsStar() {
		for _, col := range stmt.Projection {
			if _, ok := colIndex[col]; !ok {
				return nil, &gridqlerr.UnknownColumnError{Column: col}
			}
		}
	}
	if stmt.Order != nil {
		if _, ok := colIndex[stmt.Order.Column]; !ok {
			return nil, &gridqlerr.UnknownColumnError{Column: stmt.Order.Column}
		}
	}

	evaluator := eval.NewEvaluator(d.caseSensitive)
	baseRows := make([]int, 0, table.NumRows())
	for r := 0; r < table.NumRows(); r++ {
		if stmt.Where == nil {
			baseRows = append(baseRows, r)
			continue
		}
		keep, err := evaluator.Evaluate(stmt.Where, table.Row(r), colIndex)
		if err != nil {
			return nil, err
		}
		if keep {
			baseRows = append(baseRows, r)
		}
	}

	// behavior.max_display_rows (spec.md §6.3) soft-caps base_rows
	// before ORDER BY/LIMIT run; an explicit LIMIT may still trim
	// further once the view is built below.
	if d.maxDisplayRows > 0 && uint64(len(baseRows)) > d.maxDisplayRows {
		baseRows = baseRows[:d.maxDisplayRows]
	}

	view := dataview.New(table, baseRows)

	// ORDER BY before LIMIT: the resolved reading of the Open Question
	// in spec.md §9 is that LIMIT trims the already-ordered result.
	if stmt.Order != nil {
		view.SortBy(colIndex[stmt.Order.Column], stmt.Order.Ascending)
	}
	if stmt.Limit >= 0 {
		view.LimitTo(int(stmt.Limit))
	}
	if !stmt.IsStar() {
		cols := make([]int, len(stmt.Projection))
		for i, name := range stmt.Projection {
			cols[i] = colIndex[name]
		}
		view.SetColumnOrder(cols)
	}

	d.cache.Add(fp, view)
	return view.Clone(), nil
}
