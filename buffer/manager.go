package buffer

// BufferManager holds an ordered sequence of buffers plus the index of
// the current and previous buffer (for quick-swap), per spec.md §3.1.
// Grounded on the teacher's single EditorState.documentBuffer ownership
// model, generalized to a slice since aretext edits exactly one
// document while this tool's host can have several tables open at
// once (spec.md §3.1 "ordered sequence of buffers, index of current,
// index of previous").
type BufferManager struct {
	buffers  []*Buffer
	current  int
	previous int
	clock    uint64
}

// NewBufferManager returns an empty manager.
func NewBufferManager() *BufferManager {
	return &BufferManager{current: -1, previous: -1}
}

// nextSeq returns the manager's monotonic sequence counter, incremented.
func (m *BufferManager) nextSeq() uint64 {
	m.clock++
	return m.clock
}

// NewBuffer appends b, stamps its Created/ModifiedAt, makes it the
// current buffer (the prior current, if any, becomes previous), and
// returns its index.
func (m *BufferManager) NewBuffer(b *Buffer) int {
	seq := m.nextSeq()
	b.CreatedAt = seq
	b.ModifiedAt = seq

	m.buffers = append(m.buffers, b)
	idx := len(m.buffers) - 1
	if m.current >= 0 {
		m.previous = m.current
	}
	m.current = idx
	return idx
}

// Len returns the number of open buffers.
func (m *BufferManager) Len() int {
	return len(m.buffers)
}

// At returns the buffer at index i, or nil if out of range.
func (m *BufferManager) At(i int) *Buffer {
	if i < 0 || i >= len(m.buffers) {
		return nil
	}
	return m.buffers[i]
}

// Current returns the current buffer, or nil if the manager is empty.
func (m *BufferManager) Current() *Buffer {
	return m.At(m.current)
}

// CurrentIndex returns the current buffer's index, or -1 if empty.
func (m *BufferManager) CurrentIndex() int {
	return m.current
}

// PreviousIndex returns the previous buffer's index, or -1 if there
// isn't one.
func (m *BufferManager) PreviousIndex() int {
	return m.previous
}

// SwitchTo makes the buffer at idx current, recording the prior
// current as previous. Returns false (no-op) for an out-of-range or
// already-current index.
func (m *BufferManager) SwitchTo(idx int) bool {
	if idx < 0 || idx >= len(m.buffers) || idx == m.current {
		return false
	}
	m.previous = m.current
	m.current = idx
	return true
}

// QuickSwap swaps current and previous, mirroring vim's Ctrl-^.
// Returns false if there is no previous buffer to swap to.
func (m *BufferManager) QuickSwap() bool {
	if m.previous < 0 || m.previous >= len(m.buffers) {
		return false
	}
	return m.SwitchTo(m.previous)
}

// CloseBuffer removes the buffer at idx. If it was the current buffer,
// the previous buffer (if one still exists) becomes current; failing
// that, index 0; failing that (the manager is now empty), there is no
// current buffer. Returns false for an out-of-range index.
func (m *BufferManager) CloseBuffer(idx int) bool {
	if idx < 0 || idx >= len(m.buffers) {
		return false
	}
	closingCurrent := idx == m.current

	m.buffers = append(m.buffers[:idx], m.buffers[idx+1:]...)
	m.current = reindexAfterRemoval(m.current, idx)
	m.previous = reindexAfterRemoval(m.previous, idx)

	if closingCurrent {
		switch {
		case m.previous >= 0 && m.previous < len(m.buffers):
			m.current, m.previous = m.previous, -1
		case len(m.buffers) > 0:
			m.current = 0
		default:
			m.current = -1
		}
	}
	return true
}

// reindexAfterRemoval adjusts an index after the buffer at removedIdx
// is deleted: indices past it shift down by one, and the removed index
// itself becomes invalid (-1).
func reindexAfterRemoval(i, removedIdx int) int {
	switch {
	case i == removedIdx:
		return -1
	case i > removedIdx:
		return i - 1
	default:
		return i
	}
}
