package viewport

import "github.com/TimelordUK/sql-cli-go/dataview"

// LayoutOptions bounds the column-width calculation described in
// spec.md §4.4.2.
type LayoutOptions struct {
	MaxColumnWidth     int // cap applied to every column's optimal width
	MinScrollableWidth int // space that must remain for the scrollable region
	SampleRows         int // how many rows near the viewport to sample for data width
	SampleRowOffset    int // first row (visual space) to start sampling from

	// CompactMode implements display.compact_mode (spec.md §6.3): every
	// column's width shrinks to its header length plus one, skipping
	// the data-sampling pass entirely.
	CompactMode bool
}

// DefaultLayoutOptions mirrors the values the teacher's Sizer hard-codes
// as reasonable interactive defaults.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{MaxColumnWidth: 40, MinScrollableWidth: 10, SampleRows: 200}
}

// ColumnLayout is the result of a width calculation: which visual
// columns are shown (split into a pinned prefix and a scrollable
// range) and how wide each shown column is.
type ColumnLayout struct {
	PinnedRange     [2]int // [start, end) visual column indices
	ScrollableRange [2]int // [start, end) visual column indices
	Widths          map[int]int // visual column index -> width in cells
}

// ComputeColumnLayout lays out view's visible columns within terminal
// width termWidth, given a horizontal scroll offset (an index into the
// unpinned portion of visible_columns). A zero or negative termWidth
// returns an empty layout, per spec.md §4.4.5.
func ComputeColumnLayout(view *dataview.DataView, termWidth int, scrollOffsetCol int, opts LayoutOptions) ColumnLayout {
	layout := ColumnLayout{Widths: make(map[int]int)}
	if termWidth <= 0 {
		return layout
	}

	names := view.ColumnNames()
	total := len(names)
	if total == 0 {
		return layout
	}

	widths := make([]int, total)
	for i, name := range names {
		widths[i] = optimalWidth(view, i, name, opts)
	}

	pinnedCount := view.PinnedCount()
	budget := termWidth - opts.MinScrollableWidth

	// Pinned columns occupy the leftmost region. When they don't all
	// fit, the most recently pinned columns win: walk the pinned
	// prefix from the end (newest) and keep whichever fit the budget,
	// then restore their original left-to-right order.
	firstKeptPinned := pinnedCount
	usedByPinned := 0
	for i := pinnedCount - 1; i >= 0; i-- {
		if usedByPinned+widths[i] > budget && usedByPinned > 0 {
			break
		}
		layout.Widths[i] = widths[i]
		usedByPinned += widths[i]
		firstKeptPinned = i
	}
	layout.PinnedRange = [2]int{firstKeptPinned, pinnedCount}

	remaining := termWidth - usedByPinned
	start := pinnedCount + scrollOffsetCol
	if start > total {
		start = total
	}
	end := start
	for end < total && remaining >= widths[end] {
		layout.Widths[end] = widths[end]
		remaining -= widths[end]
		end++
	}
	layout.ScrollableRange = [2]int{start, end}

	return layout
}

func optimalWidth(view *dataview.DataView, visualCol int, name string, opts LayoutOptions) int {
	w := cellWidth(name)

	if opts.CompactMode {
		w++
	} else {
		start := opts.SampleRowOffset
		n := opts.SampleRows
		if n <= 0 {
			n = view.RowCount()
		}
		end := start + n
		if end > view.RowCount() {
			end = view.RowCount()
		}
		for r := start; r < end; r++ {
			cell, ok := view.GetCell(r, visualCol)
			if !ok {
				continue
			}
			if cw := cellWidth(cell.String()); cw > w {
				w = cw
			}
		}
	}

	if opts.MaxColumnWidth > 0 && w > opts.MaxColumnWidth {
		w = opts.MaxColumnWidth
	}
	return w
}
