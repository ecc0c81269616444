// Package dataview implements the mutable presentation layer over an
// immutable DataTable: row/column filtering, sorting, pin/hide/reorder,
// and view-space coordinate lookups, per spec.md §4.3.
package dataview

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// caseFolder case-folds text filter patterns and cell contents for
// caseless comparison; shared with fuzzy.go.
var caseFolder = cases.Fold()

// Result reports whether a mutating operation actually changed the
// view, so callers (the viewport engine) can distinguish a real
// mutation from a rejected no-op such as move_column crossing the
// pinned/unpinned boundary.
type Result int

const (
	Applied Result = iota
	NoChange
)

// Sort records the active single-column ordering.
type Sort struct {
	ColIndex  int
	Ascending bool
}

// TextFilter is a substring filter over every cell's stringified form.
type TextFilter struct {
	Pattern       string
	CaseSensitive bool
}

// FuzzyFilter is a subsequence-scoring filter; see fuzzy.go.
type FuzzyFilter struct {
	Pattern         string
	CaseInsensitive bool
}

// DataView is a mutable, cheap-to-clone presentation over a shared,
// immutable DataTable.
type DataView struct {
	source *datatable.DataTable

	baseRows    []int
	visibleRows []int

	// baseOrder is every source column index in the user's manual
	// (unpinned) order. pinnedOrder is the subset currently pinned, in
	// pin order. visibleColumns() = pinnedOrder ++ (baseOrder minus
	// pinned minus hidden). Keeping baseOrder's membership unchanged by
	// pin/unpin is what lets unpin_column restore a column's previous
	// unpinned position.
	baseOrder   []int
	pinnedOrder []int
	hidden      map[int]bool

	sort        *Sort
	textFilter  *TextFilter
	fuzzyFilter *FuzzyFilter

	version uint64
}

// New builds a DataView over source, with baseRows as the row set
// selected by the originating query (already ordered/limited) and all
// source columns visible in their natural order.
func New(source *datatable.DataTable, baseRows []int) *DataView {
	baseOrder := make([]int, source.NumColumns())
	for i := range baseOrder {
		baseOrder[i] = i
	}
	v := &DataView{
		source:    source,
		baseRows:  append([]int(nil), baseRows...),
		baseOrder: baseOrder,
		hidden:    make(map[int]bool),
		version:   1,
	}
	v.rebuildVisibleRows()
	return v
}

// Clone returns an independent copy; DataViews are never shared between
// buffers, but the result cache hands out clones of cached views so
// callers can diverge without corrupting the cached original.
func (v *DataView) Clone() *DataView {
	clone := &DataView{
		source:      v.source,
		baseRows:    append([]int(nil), v.baseRows...),
		visibleRows: append([]int(nil), v.visibleRows...),
		baseOrder:   append([]int(nil), v.baseOrder...),
		pinnedOrder: append([]int(nil), v.pinnedOrder...),
		hidden:      make(map[int]bool, len(v.hidden)),
		version:     v.version,
	}
	for k := range v.hidden {
		clone.hidden[k] = true
	}
	if v.sort != nil {
		s := *v.sort
		clone.sort = &s
	}
	if v.textFilter != nil {
		f := *v.textFilter
		clone.textFilter = &f
	}
	if v.fuzzyFilter != nil {
		f := *v.fuzzyFilter
		clone.fuzzyFilter = &f
	}
	return clone
}

// Source returns the underlying table.
func (v *DataView) Source() *datatable.DataTable { return v.source }

// Version returns the monotonic mutation counter.
func (v *DataView) Version() uint64 { return v.version }

func (v *DataView) bump() { v.version++ }

// ApplyTextFilter rebuilds visible_rows from base_rows, keeping rows
// where at least one cell's stringified form contains pattern. An
// empty pattern clears the filter rather than matching everything.
func (v *DataView) ApplyTextFilter(pattern string, caseSensitive bool) {
	if pattern == "" {
		v.textFilter = nil
	} else {
		v.textFilter = &TextFilter{Pattern: pattern, CaseSensitive: caseSensitive}
	}
	v.rebuildVisibleRows()
	v.bump()
}

// ApplyFuzzyFilter rebuilds visible_rows keeping rows where at least
// one cell fuzzy-matches pattern via longest-common-subsequence scoring
// (see fuzzy.go). An empty pattern clears the filter.
func (v *DataView) ApplyFuzzyFilter(pattern string, caseInsensitive bool) {
	if pattern == "" {
		v.fuzzyFilter = nil
	} else {
		v.fuzzyFilter = &FuzzyFilter{Pattern: pattern, CaseInsensitive: caseInsensitive}
	}
	v.rebuildVisibleRows()
	v.bump()
}

// ClearFilters resets visible_rows to base_rows.
func (v *DataView) ClearFilters() {
	v.textFilter = nil
	v.fuzzyFilter = nil
	v.rebuildVisibleRows()
	v.bump()
}

// SortBy stable-sorts visible_rows by the given source column.
func (v *DataView) SortBy(sourceColIdx int, ascending bool) {
	v.sort = &Sort{ColIndex: sourceColIdx, Ascending: ascending}
	v.applySort()
	v.bump()
}

// ClearSort removes the active sort and restores filter order.
func (v *DataView) ClearSort() {
	v.sort = nil
	v.rebuildVisibleRows()
	v.bump()
}

func (v *DataView) rebuildVisibleRows() {
	rows := make([]int, 0, len(v.baseRows))
	for _, r := range v.baseRows {
		if v.passesFilters(r) {
			rows = append(rows, r)
		}
	}
	v.visibleRows = rows
	if v.sort != nil {
		v.applySort()
	}
}

func (v *DataView) passesFilters(sourceRow int) bool {
	if v.textFilter == nil && v.fuzzyFilter == nil {
		return true
	}
	row := v.source.Row(sourceRow)

	if v.textFilter != nil && !rowContainsText(row, v.textFilter.Pattern, v.textFilter.CaseSensitive) {
		return false
	}
	if v.fuzzyFilter != nil && !rowFuzzyMatches(row, v.fuzzyFilter.Pattern, v.fuzzyFilter.CaseInsensitive) {
		return false
	}
	return true
}

// LimitTo truncates base_rows (and therefore visible_rows) to the first
// n rows of the view's current order. Intended for the query driver to
// apply LIMIT once ORDER BY has already been applied; a no-op if n
// covers every row already.
func (v *DataView) LimitTo(n int) {
	if n < 0 || n >= len(v.visibleRows) {
		return
	}
	limited := append([]int(nil), v.visibleRows[:n]...)
	v.baseRows = limited
	v.visibleRows = limited
	v.bump()
}

// SetColumnOrder restricts and reorders visible_columns to exactly
// cols, clearing any pin/hide state. Intended for the query driver to
// apply an explicit projection once, before the view is handed to a
// buffer.
func (v *DataView) SetColumnOrder(cols []int) {
	v.baseOrder = append([]int(nil), cols...)
	v.pinnedOrder = nil
	v.hidden = make(map[int]bool)
	v.bump()
}

func (v *DataView) applySort() {
	s := v.sort
	rows := v.visibleRows
	sort.SliceStable(rows, func(i, j int) bool {
		a := v.source.Cell(rows[i], s.ColIndex)
		b := v.source.Cell(rows[j], s.ColIndex)
		cmp := datavalue.Compare(a, b)
		if s.Ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

func rowContainsText(row []datavalue.DataValue, pattern string, caseSensitive bool) bool {
	needle := pattern
	if !caseSensitive {
		needle = caseFolder.String(needle)
	}
	for _, cell := range row {
		s := cell.String()
		if !caseSensitive {
			s = caseFolder.String(s)
		}
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
