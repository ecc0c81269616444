package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartSearchFindsMatchesCaseInsensitiveByDefault(t *testing.T) {
	view := mustView(t, 3)
	s := StartSearch(view, "ldn", false)
	assert.True(t, s.HasMatches())

	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, s.Matches[0], cur)
}

func TestStartSearchCaseSensitiveFindsNothingOnMismatch(t *testing.T) {
	view := mustView(t, 3)
	s := StartSearch(view, "LDN", true)
	// Data uses "LDN-EQ" so an exact-case search for "LDN" does match.
	assert.True(t, s.HasMatches())

	s2 := StartSearch(view, "ldn", true)
	assert.False(t, s2.HasMatches())
}

func TestStartSearchEmptyPatternHasNoMatches(t *testing.T) {
	view := mustView(t, 3)
	s := StartSearch(view, "", false)
	assert.False(t, s.HasMatches())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestNextMatchWrapsAround(t *testing.T) {
	view := mustView(t, 5)
	s := StartSearch(view, "LDN-EQ", true)
	n := len(s.Matches)
	if n < 2 {
		t.Skip("needs at least two matches to exercise wraparound")
	}

	first, _ := s.Current()
	for i := 0; i < n-1; i++ {
		s.NextMatch()
	}
	last, ok := s.NextMatch()
	assert.True(t, ok)
	assert.Equal(t, first, last)
}

func TestPrevMatchWrapsAround(t *testing.T) {
	view := mustView(t, 5)
	s := StartSearch(view, "LDN-EQ", true)
	n := len(s.Matches)
	if n < 2 {
		t.Skip("needs at least two matches to exercise wraparound")
	}

	first, _ := s.Current()
	prev, ok := s.PrevMatch()
	assert.True(t, ok)
	assert.NotEqual(t, first, prev)

	last, _ := s.Current()
	back, _ := s.NextMatch()
	assert.NotEqual(t, last, back)
}

func TestClearSearchResetsState(t *testing.T) {
	s := ClearSearch()
	assert.False(t, s.HasMatches())
	_, ok := s.Current()
	assert.False(t, ok)
}
