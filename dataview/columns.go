package dataview

import "github.com/TimelordUK/sql-cli-go/datavalue"

// visibleColumns computes the current display order: pinned columns
// first (in pin order), then the remaining non-hidden columns from
// baseOrder.
func (v *DataView) visibleColumns() []int {
	cols := make([]int, 0, len(v.baseOrder))
	cols = append(cols, v.pinnedOrder...)
	for _, c := range v.baseOrder {
		if v.hidden[c] || v.isPinned(c) {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// PinnedCount returns how many of visible_columns are currently pinned.
func (v *DataView) PinnedCount() int {
	return len(v.pinnedOrder)
}

// NumVisibleColumns returns len(visible_columns).
func (v *DataView) NumVisibleColumns() int {
	return len(v.visibleColumns())
}

func (v *DataView) isPinned(col int) bool {
	for _, c := range v.pinnedOrder {
		if c == col {
			return true
		}
	}
	return false
}

func (v *DataView) indexInBaseOrder(col int) int {
	for i, c := range v.baseOrder {
		if c == col {
			return i
		}
	}
	return -1
}

// PinColumn moves the column at the given display index to the end of
// the pinned prefix.
func (v *DataView) PinColumn(displayIdx int) Result {
	cols := v.visibleColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return NoChange
	}
	col := cols[displayIdx]
	if v.isPinned(col) {
		return NoChange
	}
	v.pinnedOrder = append(v.pinnedOrder, col)
	v.bump()
	return Applied
}

// UnpinColumn moves the column at the given display index back into
// the non-pinned region, restoring its previous unpinned position
// (preserved the whole time in baseOrder).
func (v *DataView) UnpinColumn(displayIdx int) Result {
	cols := v.visibleColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return NoChange
	}
	col := cols[displayIdx]
	if !v.isPinned(col) {
		return NoChange
	}
	for i, c := range v.pinnedOrder {
		if c == col {
			v.pinnedOrder = append(v.pinnedOrder[:i], v.pinnedOrder[i+1:]...)
			break
		}
	}
	v.bump()
	return Applied
}

// HideColumn removes the column at the given display index from
// visible_columns. A hidden column cannot stay pinned.
func (v *DataView) HideColumn(displayIdx int) Result {
	cols := v.visibleColumns()
	if displayIdx < 0 || displayIdx >= len(cols) {
		return NoChange
	}
	col := cols[displayIdx]
	v.hidden[col] = true
	for i, c := range v.pinnedOrder {
		if c == col {
			v.pinnedOrder = append(v.pinnedOrder[:i], v.pinnedOrder[i+1:]...)
			break
		}
	}
	v.bump()
	return Applied
}

// UnhideAll clears every hidden column.
func (v *DataView) UnhideAll() {
	if len(v.hidden) == 0 {
		return
	}
	v.hidden = make(map[int]bool)
	v.bump()
}

// MoveColumn swaps the column at displayIdx with its neighbor delta
// positions away (delta is ±1). A move that would cross the
// pinned/unpinned boundary is rejected as a no-op.
func (v *DataView) MoveColumn(displayIdx, delta int) Result {
	cols := v.visibleColumns()
	newIdx := displayIdx + delta
	if displayIdx < 0 || displayIdx >= len(cols) || newIdx < 0 || newIdx >= len(cols) {
		return NoChange
	}

	pinnedCount := len(v.pinnedOrder)
	aPinned := displayIdx < pinnedCount
	bPinned := newIdx < pinnedCount
	if aPinned != bPinned {
		return NoChange
	}

	if aPinned {
		v.pinnedOrder[displayIdx], v.pinnedOrder[newIdx] = v.pinnedOrder[newIdx], v.pinnedOrder[displayIdx]
	} else {
		ia := v.indexInBaseOrder(cols[displayIdx])
		ib := v.indexInBaseOrder(cols[newIdx])
		v.baseOrder[ia], v.baseOrder[ib] = v.baseOrder[ib], v.baseOrder[ia]
	}
	v.bump()
	return Applied
}

// ColumnNames returns the names of visible_columns in display order.
func (v *DataView) ColumnNames() []string {
	cols := v.visibleColumns()
	defs := v.source.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = defs[c].Name
	}
	return names
}

// RowCount returns len(visible_rows).
func (v *DataView) RowCount() int {
	return len(v.visibleRows)
}

// GetRow returns every visible cell of the given visual row, in
// display-column order.
func (v *DataView) GetRow(visualRow int) ([]datavalue.DataValue, bool) {
	if visualRow < 0 || visualRow >= len(v.visibleRows) {
		return nil, false
	}
	sourceRow := v.visibleRows[visualRow]
	cols := v.visibleColumns()
	row := v.source.Row(sourceRow)
	out := make([]datavalue.DataValue, len(cols))
	for i, c := range cols {
		out[i] = row[c]
	}
	return out, true
}

// GetCell resolves a (visual row, visual column) pair through the
// view's two-stage mapping to the underlying cell.
func (v *DataView) GetCell(visualRow, visualCol int) (datavalue.DataValue, bool) {
	if visualRow < 0 || visualRow >= len(v.visibleRows) {
		return datavalue.Null, false
	}
	cols := v.visibleColumns()
	if visualCol < 0 || visualCol >= len(cols) {
		return datavalue.Null, false
	}
	sourceRow := v.visibleRows[visualRow]
	return v.source.Cell(sourceRow, cols[visualCol]), true
}
