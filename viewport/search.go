package viewport

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/TimelordUK/sql-cli-go/dataview"
)

var searchCaseFolder = cases.Fold()

// SearchState tracks a vim-style incremental search: the pattern, the
// ordered matches found for it, and which match is currently selected.
// Grounded on the teacher's state/search.go, minus the text-buffer
// search direction flags that don't apply to a grid of cells.
type SearchState struct {
	Pattern       string
	CaseSensitive bool
	Matches       []CellCoord
	current       int
}

// StartSearch scans every visible cell of view for pattern (matched
// case-insensitively unless caseSensitive is set) and returns the
// resulting SearchState, with the first match (if any) selected.
func StartSearch(view *dataview.DataView, pattern string, caseSensitive bool) *SearchState {
	s := &SearchState{Pattern: pattern, CaseSensitive: caseSensitive, current: -1}
	if pattern == "" {
		return s
	}

	needle := pattern
	if !caseSensitive {
		needle = searchCaseFolder.String(pattern)
	}

	rows := view.RowCount()
	cols := view.NumVisibleColumns()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, ok := view.GetCell(r, c)
			if !ok {
				continue
			}
			text := cell.String()
			if !caseSensitive {
				text = searchCaseFolder.String(text)
			}
			if strings.Contains(text, needle) {
				s.Matches = append(s.Matches, CellCoord{Row: r, Col: c})
			}
		}
	}

	if len(s.Matches) > 0 {
		s.current = 0
	}
	return s
}

// ClearSearch resets search state to empty, as if no search were active.
func ClearSearch() *SearchState {
	return &SearchState{current: -1}
}

// HasMatches reports whether the current search found anything.
func (s *SearchState) HasMatches() bool {
	return len(s.Matches) > 0
}

// Current returns the currently selected match, if any.
func (s *SearchState) Current() (CellCoord, bool) {
	if s.current < 0 || s.current >= len(s.Matches) {
		return CellCoord{}, false
	}
	return s.Matches[s.current], true
}

// NextMatch advances to the next match, wrapping around to the first
// after the last.
func (s *SearchState) NextMatch() (CellCoord, bool) {
	if len(s.Matches) == 0 {
		return CellCoord{}, false
	}
	s.current = (s.current + 1) % len(s.Matches)
	return s.Matches[s.current], true
}

// PrevMatch moves to the previous match, wrapping around to the last
// after the first.
func (s *SearchState) PrevMatch() (CellCoord, bool) {
	if len(s.Matches) == 0 {
		return CellCoord{}, false
	}
	s.current = (s.current - 1 + len(s.Matches)) % len(s.Matches)
	return s.Matches[s.current], true
}
