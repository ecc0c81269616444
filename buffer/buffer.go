// Package buffer implements the per-buffer view-state coordinator
// described in spec.md §3.1, §4.5: a Buffer owns its query text,
// DataTable, DataView, and a ViewState snapshot; a BufferManager
// switches between buffers; SaveToBuffer/RestoreFromBuffer move state
// between a buffer's snapshot and whatever live subsystems the host is
// currently driving.
package buffer

import (
	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/dataview"
)

// Buffer is an opened dataset: its query, source table, current
// result view, and saved presentation state. Grounded on the
// teacher's EditorState/BufferState split in state/state.go, minus
// the text-editing fields (textTree, undoLog, selector) that have no
// analogue over tabular data.
type Buffer struct {
	Name        string
	QueryText   string
	QueryCursor int

	Table *datatable.DataTable
	View  *dataview.DataView

	// snapshot is the last ViewState saved by the coordinator, or nil
	// for a buffer that has never been switched away from.
	snapshot *ViewState

	// CreatedAt/ModifiedAt are monotonic sequence numbers stamped by
	// the owning BufferManager, not wall-clock time (spec.md §3.3): a
	// "recent buffers"
	// listing only needs relative order, and a sequence counter keeps
	// buffer behavior deterministic and testable.
	CreatedAt  uint64
	ModifiedAt uint64
}

// NewBuffer constructs an empty buffer (no table loaded yet) with the
// given display name.
func NewBuffer(name string) *Buffer {
	return &Buffer{Name: name}
}

// HasSnapshot reports whether this buffer has ever had its view state
// saved by the coordinator.
func (b *Buffer) HasSnapshot() bool {
	return b.snapshot != nil
}

// dataViewVersion returns the current DataView's version, or 0 if the
// buffer has no view yet (a freshly opened buffer before its first
// query executes).
func (b *Buffer) dataViewVersion() uint64 {
	if b.View == nil {
		return 0
	}
	return b.View.Version()
}
