package buffer

import "github.com/TimelordUK/sql-cli-go/viewport"

// FilterState is a saved text-or-fuzzy filter invocation: the pattern
// and policy a user typed, independent of whether it is currently
// applied to the buffer's DataView (a buffer can have a saved filter
// pattern in its ViewState while ClearFilters has reset the view, e.g.
// while the user is mid-edit of a new pattern).
type FilterState struct {
	Pattern         string
	Fuzzy           bool
	CaseSensitive   bool // text filter's policy
	CaseInsensitive bool // fuzzy filter's policy
}

// ColumnSearchState tracks an incremental search over display column
// names, the column-header analogue of viewport.SearchState's
// cell-content search.
type ColumnSearchState struct {
	Pattern string
	Matches []int // visual column indices, in display order
	current int
}

// HasMatches reports whether the current column search found anything.
func (s *ColumnSearchState) HasMatches() bool {
	return len(s.Matches) > 0
}

// Current returns the currently selected matching column, if any.
func (s *ColumnSearchState) Current() (int, bool) {
	if s.current < 0 || s.current >= len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.current], true
}

// NextMatch advances to the next matching column, wrapping around.
func (s *ColumnSearchState) NextMatch() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.current = (s.current + 1) % len(s.Matches)
	return s.Matches[s.current], true
}

func (s *ColumnSearchState) clone() ColumnSearchState {
	out := *s
	out.Matches = append([]int(nil), s.Matches...)
	return out
}

// ViewState is the complete set of presentation-layer state described
// in spec.md §3.1: mode, crosshair/scroll/locks (embedded from
// viewport.NavState), sparse cell selection, cell and column searches,
// the saved filter pattern, and a history cursor. A Buffer stores one
// ViewState as its saved snapshot; the coordinator (coordinator.go)
// computes one from live subsystems on save and applies one back on
// restore.
type ViewState struct {
	Mode Mode
	Nav  viewport.NavState

	// Selection is a set of individually marked visual cells (spec.md
	// §4.4 intro "sparse selections"): unlike the teacher's
	// selection.Selector, which tracks one contiguous charwise/linewise
	// region, a grid selection has no "everything between two points"
	// notion, so membership is tracked explicitly per cell.
	Selection map[viewport.CellCoord]struct{}

	Search       *viewport.SearchState
	ColumnSearch ColumnSearchState
	Filter       FilterState

	HistoryPosition int

	// viewVersion is the DataView.Version() observed when this
	// ViewState was last saved by the coordinator; see coordinator.go.
	viewVersion uint64
}

// DefaultViewState returns the state a freshly opened buffer starts
// with: mode=Results, crosshair=(0,0), scroll=(0,0), locks off, all
// searches and filters cleared, per spec.md §4.5.
func DefaultViewState() ViewState {
	return ViewState{
		Mode:      ModeResults,
		Selection: make(map[viewport.CellCoord]struct{}),
	}
}

// ToggleCellSelected flips whether coord is in the sparse selection.
func (vs *ViewState) ToggleCellSelected(coord viewport.CellCoord) {
	if vs.Selection == nil {
		vs.Selection = make(map[viewport.CellCoord]struct{})
	}
	if _, ok := vs.Selection[coord]; ok {
		delete(vs.Selection, coord)
	} else {
		vs.Selection[coord] = struct{}{}
	}
}

// ClearSelection empties the sparse selection.
func (vs *ViewState) ClearSelection() {
	vs.Selection = make(map[viewport.CellCoord]struct{})
}

// SelectedCells returns every selected cell; order is unspecified.
func (vs *ViewState) SelectedCells() []viewport.CellCoord {
	out := make([]viewport.CellCoord, 0, len(vs.Selection))
	for c := range vs.Selection {
		out = append(out, c)
	}
	return out
}

// clone deep-copies vs so a saved snapshot and the live state that
// produced it never alias each other's maps/slices/pointers.
func (vs ViewState) clone() ViewState {
	out := vs

	out.Selection = make(map[viewport.CellCoord]struct{}, len(vs.Selection))
	for c := range vs.Selection {
		out.Selection[c] = struct{}{}
	}

	if vs.Search != nil {
		s := *vs.Search
		s.Matches = append([]viewport.CellCoord(nil), vs.Search.Matches...)
		out.Search = &s
	}

	out.ColumnSearch = vs.ColumnSearch.clone()

	return out
}
