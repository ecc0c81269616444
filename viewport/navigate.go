package viewport

import "github.com/TimelordUK/sql-cli-go/dataview"

// CellCoord is a (row, col) pair in some coordinate space; callers keep
// track of which space (visual, source, or screen) a given CellCoord
// belongs to per spec.md §4.4.1.
type CellCoord struct {
	Row int
	Col int
}

// Locks independently gate whether navigation moves the scroll offset
// (ViewportLock) or keeps the crosshair fixed on screen (CursorLock).
type Locks struct {
	ViewportLock bool
	CursorLock   bool
}

// NavState is the navigation-relevant slice of a buffer's ViewState:
// crosshair and scroll offset in visual coordinates, plus the active
// locks. The buffer package holds this in its larger ViewState's Nav
// field.
type NavState struct {
	Crosshair CellCoord
	Scroll    CellCoord
	Locks     Locks
}

// NavigationResult reports the outcome of a navigation call: the
// resulting crosshair/scroll, and whether anything actually moved.
type NavigationResult struct {
	Crosshair       CellCoord
	Scroll          CellCoord
	ViewportChanged bool
	Changed         bool
}

func noChange(s *NavState) NavigationResult {
	return NavigationResult{Crosshair: s.Crosshair, Scroll: s.Scroll}
}

func result(s *NavState, viewportChanged bool) NavigationResult {
	return NavigationResult{Crosshair: s.Crosshair, Scroll: s.Scroll, ViewportChanged: viewportChanged, Changed: true}
}

// clampAxis adjusts a scroll offset by the minimum amount required to
// keep the crosshair within [scroll, scroll+extent).
func clampAxis(crosshair, scroll, extent int) (newScroll int, changed bool) {
	switch {
	case crosshair < scroll:
		return crosshair, true
	case crosshair >= scroll+extent:
		return crosshair - extent + 1, true
	default:
		return scroll, false
	}
}

// NavigateColumnLeft moves the crosshair one visual column to the
// left, stopping at the bound (no wrap). termWidth/opts drive the same
// ComputeColumnLayout the rendering host uses, so the resulting scroll
// adjustment (if any) keeps pinned columns fixed per spec.md §4.4.2.
func NavigateColumnLeft(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return moveColumn(view, s, -1, screenRows, termWidth, opts)
}

// NavigateColumnRight moves the crosshair one visual column to the right.
func NavigateColumnRight(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return moveColumn(view, s, 1, screenRows, termWidth, opts)
}

func moveColumn(view *dataview.DataView, s *NavState, delta, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	cols := view.NumVisibleColumns()
	if cols == 0 || view.RowCount() == 0 {
		return noChange(s)
	}
	next := s.Crosshair.Col + delta
	if next < 0 || next >= cols {
		return noChange(s)
	}
	s.Crosshair.Col = next
	return adjustAfterMove(view, s, screenRows, termWidth, opts)
}

// NavigateRowUp moves the crosshair one visual row up.
func NavigateRowUp(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return moveRow(view, s, -1, screenRows, termWidth, opts)
}

// NavigateRowDown moves the crosshair one visual row down.
func NavigateRowDown(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return moveRow(view, s, 1, screenRows, termWidth, opts)
}

func moveRow(view *dataview.DataView, s *NavState, delta, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	rows := view.RowCount()
	if rows == 0 {
		return noChange(s)
	}
	next := s.Crosshair.Row + delta
	if next < 0 || next >= rows {
		return noChange(s)
	}
	s.Crosshair.Row = next
	return adjustAfterMove(view, s, screenRows, termWidth, opts)
}

// PageUp/PageDown move the crosshair a full screen of rows.
func PageUp(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return pageRow(view, s, -screenRows, screenRows, termWidth, opts)
}

func PageDown(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return pageRow(view, s, screenRows, screenRows, termWidth, opts)
}

func pageRow(view *dataview.DataView, s *NavState, delta, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	rows := view.RowCount()
	if rows == 0 {
		return noChange(s)
	}
	next := clampInt(s.Crosshair.Row+delta, 0, rows-1)
	if next == s.Crosshair.Row {
		return noChange(s)
	}
	s.Crosshair.Row = next
	return adjustAfterMove(view, s, screenRows, termWidth, opts)
}

// GotoFirstRow/GotoLastRow jump the crosshair to the first/last visual row.
func GotoFirstRow(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return gotoRow(view, s, 0, screenRows, termWidth, opts)
}

func GotoLastRow(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	rows := view.RowCount()
	if rows == 0 {
		return noChange(s)
	}
	return gotoRow(view, s, rows-1, screenRows, termWidth, opts)
}

// GotoLine clamps n to [0, row_count) and jumps the crosshair there.
func GotoLine(view *dataview.DataView, s *NavState, n, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	rows := view.RowCount()
	if rows == 0 {
		return noChange(s)
	}
	return gotoRow(view, s, clampInt(n, 0, rows-1), screenRows, termWidth, opts)
}

func gotoRow(view *dataview.DataView, s *NavState, row, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	if row == s.Crosshair.Row {
		return noChange(s)
	}
	s.Crosshair.Row = row
	return adjustAfterMove(view, s, screenRows, termWidth, opts)
}

// GotoFirstColumn/GotoLastColumn jump the crosshair to the first/last
// visual column.
func GotoFirstColumn(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	return gotoColumn(view, s, 0, screenRows, termWidth, opts)
}

func GotoLastColumn(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	cols := view.NumVisibleColumns()
	if cols == 0 {
		return noChange(s)
	}
	return gotoColumn(view, s, cols-1, screenRows, termWidth, opts)
}

func gotoColumn(view *dataview.DataView, s *NavState, col, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	if col == s.Crosshair.Col || view.RowCount() == 0 {
		return noChange(s)
	}
	s.Crosshair.Col = col
	return adjustAfterMove(view, s, screenRows, termWidth, opts)
}

// adjustAfterMove applies the active locks' scroll consequences after
// the crosshair has already been updated by the caller, and reports
// the resulting NavigationResult. screenRows is the number of rows the
// viewport can show at once; termWidth/opts are handed to
// ComputeColumnLayout so column scrolling respects the same
// pinned/scrollable split the rendering host lays out (spec.md
// §4.4.2).
func adjustAfterMove(view *dataview.DataView, s *NavState, screenRows, termWidth int, opts LayoutOptions) NavigationResult {
	viewportChanged := false
	haveCols := view.NumVisibleColumns() > 0

	if s.Locks.CursorLock {
		// Crosshair stays at the same screen position: scroll tracks it 1:1.
		s.Scroll = s.Crosshair
		viewportChanged = true
	} else if !s.Locks.ViewportLock {
		// Default behavior: scroll by the minimum amount to keep the
		// crosshair visible.
		if newRow, changed := clampAxis(s.Crosshair.Row, s.Scroll.Row, screenRows); changed {
			s.Scroll.Row = newRow
			viewportChanged = true
		}
		if haveCols {
			if newCol, changed := EnsureVisible(view, s.Crosshair.Col, s.Scroll.Col, termWidth, opts); changed {
				s.Scroll.Col = newCol
				viewportChanged = true
			}
		}
	} else {
		// Viewport lock: scroll holds still; crosshair is clamped to the
		// currently visible range instead.
		s.Crosshair.Row = clampInt(s.Crosshair.Row, s.Scroll.Row, s.Scroll.Row+screenRows-1)
		if haveCols {
			layout := ComputeColumnLayout(view, termWidth, s.Scroll.Col, opts)
			s.Crosshair.Col = clampColumnToLayout(layout, s.Crosshair.Col)
		}
	}

	return result(s, viewportChanged)
}

// EnsureVisible adjusts scrollCol by the minimum amount required so
// that crosshairCol lies within ComputeColumnLayout's pinned_range ∪
// scrollable_range, ties crosshair navigation to the exact layout the
// rendering host computes for termWidth (spec.md §4.4.2's invariant
// and §8.1 property 7). Pinned columns occupy a fixed leftmost region
// that never scrolls, so a crosshair in the pinned prefix never moves
// scroll. Single-step navigation only ever needs one column of scroll
// adjustment, but GotoLine/GotoLastColumn-style jumps may need several;
// this loops until the crosshair is visible or every column has been
// tried.
func EnsureVisible(view *dataview.DataView, crosshairCol, scrollCol, termWidth int, opts LayoutOptions) (int, bool) {
	total := view.NumVisibleColumns()
	if termWidth <= 0 || total == 0 || crosshairCol < view.PinnedCount() {
		return scrollCol, false
	}

	original := scrollCol
	for i := 0; i <= total; i++ {
		layout := ComputeColumnLayout(view, termWidth, scrollCol, opts)
		if crosshairCol >= layout.ScrollableRange[0] && crosshairCol < layout.ScrollableRange[1] {
			break
		}
		if crosshairCol < layout.ScrollableRange[0] {
			scrollCol--
		} else {
			scrollCol++
		}
		if scrollCol < 0 {
			scrollCol = 0
		}
	}
	return scrollCol, scrollCol != original
}

// clampColumnToLayout clamps col into layout's pinned_range ∪
// scrollable_range, used when viewport lock holds scroll fixed and the
// crosshair must give way instead. A column that falls in the gap
// between the two ranges (scrolled past but not yet reached) snaps to
// the nearest visible column.
func clampColumnToLayout(layout ColumnLayout, col int) int {
	switch {
	case col < layout.PinnedRange[0]:
		return layout.PinnedRange[0]
	case col < layout.PinnedRange[1]:
		return col
	case col < layout.ScrollableRange[0]:
		if layout.ScrollableRange[1] > layout.ScrollableRange[0] {
			return layout.ScrollableRange[0]
		}
		return layout.PinnedRange[1] - 1
	case col < layout.ScrollableRange[1]:
		return col
	default:
		if layout.ScrollableRange[1] > layout.ScrollableRange[0] {
			return layout.ScrollableRange[1] - 1
		}
		return layout.PinnedRange[1] - 1
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
