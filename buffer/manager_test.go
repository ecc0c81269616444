package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBufferManagerIsEmpty(t *testing.T) {
	m := NewBufferManager()
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Current())
	assert.Equal(t, -1, m.CurrentIndex())
	assert.Equal(t, -1, m.PreviousIndex())
}

func TestNewBufferBecomesCurrent(t *testing.T) {
	m := NewBufferManager()
	idxA := m.NewBuffer(NewBuffer("a"))
	assert.Equal(t, 0, idxA)
	assert.Equal(t, "a", m.Current().Name)
	assert.Equal(t, -1, m.PreviousIndex())

	idxB := m.NewBuffer(NewBuffer("b"))
	assert.Equal(t, 1, idxB)
	assert.Equal(t, "b", m.Current().Name)
	assert.Equal(t, 0, m.PreviousIndex())
}

func TestSwitchToAndQuickSwap(t *testing.T) {
	m := NewBufferManager()
	m.NewBuffer(NewBuffer("a"))
	m.NewBuffer(NewBuffer("b"))
	m.NewBuffer(NewBuffer("c"))

	assert.True(t, m.SwitchTo(0))
	assert.Equal(t, "a", m.Current().Name)
	assert.Equal(t, 2, m.PreviousIndex())

	assert.True(t, m.QuickSwap())
	assert.Equal(t, "c", m.Current().Name)
	assert.Equal(t, 0, m.PreviousIndex())

	assert.False(t, m.SwitchTo(99))
	assert.False(t, m.SwitchTo(m.CurrentIndex()))
}

func TestCloseCurrentBufferFallsBackToPrevious(t *testing.T) {
	m := NewBufferManager()
	m.NewBuffer(NewBuffer("a"))
	m.NewBuffer(NewBuffer("b"))
	m.SwitchTo(0) // current=a, previous=b

	assert.True(t, m.CloseBuffer(0))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "b", m.Current().Name)
	assert.Equal(t, -1, m.PreviousIndex())
}

func TestCloseCurrentBufferFallsBackToFirstWhenNoPrevious(t *testing.T) {
	m := NewBufferManager()
	m.NewBuffer(NewBuffer("a"))
	m.NewBuffer(NewBuffer("b"))
	m.NewBuffer(NewBuffer("c"))
	// current=c, previous=b; close b (not current) to strand previous,
	// then close the new current (c) with no valid previous left.
	bIdx := 1
	assert.True(t, m.CloseBuffer(bIdx))
	assert.Equal(t, -1, m.PreviousIndex())

	assert.True(t, m.CloseBuffer(m.CurrentIndex()))
	assert.Equal(t, "a", m.Current().Name)
}

func TestCloseLastBufferLeavesManagerEmpty(t *testing.T) {
	m := NewBufferManager()
	m.NewBuffer(NewBuffer("a"))
	assert.True(t, m.CloseBuffer(0))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Current())
	assert.Equal(t, -1, m.CurrentIndex())
}

func TestCloseNonCurrentBufferKeepsCurrent(t *testing.T) {
	m := NewBufferManager()
	m.NewBuffer(NewBuffer("a"))
	m.NewBuffer(NewBuffer("b"))
	// current=b (idx 1), close a (idx 0).
	assert.True(t, m.CloseBuffer(0))
	assert.Equal(t, "b", m.Current().Name)
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestCreatedAtIsMonotonic(t *testing.T) {
	m := NewBufferManager()
	a := NewBuffer("a")
	b := NewBuffer("b")
	m.NewBuffer(a)
	m.NewBuffer(b)
	assert.Less(t, a.CreatedAt, b.CreatedAt)
}
