package dataview

import (
	"github.com/TimelordUK/sql-cli-go/datavalue"
)

// rowFuzzyMatches reports whether any cell in row fuzzy-matches pattern:
// a cell matches if its longest-common-subsequence score against
// pattern meets or exceeds fuzzyThreshold(pattern). Scoring is adapted
// from the LCS dynamic-programming table used to rank menu entries by
// relevance (see menu/fuzzy in the reference pack); here it gates
// inclusion per-cell rather than ranking a result list.
func rowFuzzyMatches(row []datavalue.DataValue, pattern string, caseInsensitive bool) bool {
	needle := pattern
	if caseInsensitive {
		needle = caseFolder.String(needle)
	}
	threshold := fuzzyThreshold(needle)

	for _, cell := range row {
		s := cell.String()
		if caseInsensitive {
			s = caseFolder.String(s)
		}
		if lcsScore(s, needle) >= threshold {
			return true
		}
	}
	return false
}

// fuzzyThreshold is the minimum LCS score a cell must reach to count as
// a fuzzy match: at least half the pattern's length, and never zero for
// a non-empty pattern.
func fuzzyThreshold(pattern string) int {
	if len(pattern) == 0 {
		return 0
	}
	if t := len(pattern) / 2; t > 1 {
		return t
	}
	return 1
}

// lcsScore computes the length of the longest common subsequence
// between s and pattern, keeping only the previous DP row in memory.
func lcsScore(s, pattern string) int {
	if len(pattern) == 0 {
		return 0
	}

	numCols := len(pattern) + 1
	prevRow := make([]int, numCols)
	currentRow := make([]int, numCols)

	best := 0
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(pattern); j++ {
			col := j + 1
			var score int
			if s[i] == pattern[j] {
				score = prevRow[col-1] + 1
			} else {
				score = maxInt(currentRow[col-1], prevRow[col])
			}
			currentRow[col] = score
			if score > best {
				best = score
			}
		}
		prevRow, currentRow = currentRow, prevRow
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
