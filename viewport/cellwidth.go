// Package viewport implements the navigation engine described in
// spec.md §4.4: coordinate mapping between visual and source space,
// column width/visible-range calculation, and crosshair movement with
// viewport/cursor locks.
package viewport

import "github.com/mattn/go-runewidth"

// cellWidth returns the terminal display width of s, the same measure
// the host uses to lay out table cells. Grounded on cellwidth.Sizer's
// role in the teacher, but backed directly by go-runewidth instead of
// rivo/uniseg + a tab/escape-sequence Sizer: a table cell is a plain
// string with no tabs, combining-character escaping, or line-wrap to
// account for.
func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}
