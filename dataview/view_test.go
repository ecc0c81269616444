package dataview

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/datatable"
)

func mustTable(t *testing.T) *datatable.DataTable {
	t.Helper()
	csvData := "name,age,desk\n" +
		"Alice,30,LDN-EQ\n" +
		"Bob,25,NYK-FX\n" +
		"Charlie,35,LDN-FX\n" +
		"Dana,,TKY-EQ\n"
	table, err := datatable.LoadCSV(strings.NewReader(csvData), datatable.CSVOptions{HasHeader: true, TableName: "people"})
	require.NoError(t, err)
	return table
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestApplyTextFilterAndClear(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	v.ApplyTextFilter("LDN", true)
	assert.Equal(t, 2, v.RowCount())

	v.ApplyTextFilter("", true)
	assert.Equal(t, 4, v.RowCount())
}

func TestApplyTextFilterCaseSensitivity(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	v.ApplyTextFilter("ldn", true)
	assert.Equal(t, 0, v.RowCount())

	v.ApplyTextFilter("ldn", false)
	assert.Equal(t, 2, v.RowCount())
}

func TestSortByIsStableAndVersioned(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))
	v0 := v.Version()

	ageCol := table.ColumnIndex("age")
	v.SortBy(ageCol, true)
	assert.Greater(t, v.Version(), v0)

	row, ok := v.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Dana", row[0].String()) // Null sorts first ascending
}

func TestClearSortRestoresFilterOrder(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))
	ageCol := table.ColumnIndex("age")
	v.SortBy(ageCol, false)
	v.ClearSort()

	row, ok := v.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Alice", row[0].String())
}

func TestPinHideAndMoveColumns(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	assert.Equal(t, []string{"name", "age", "desk"}, v.ColumnNames())

	res := v.PinColumn(2) // pin "desk"
	assert.Equal(t, Applied, res)
	assert.Equal(t, []string{"desk", "name", "age"}, v.ColumnNames())

	res = v.HideColumn(2) // hide "age" (now at display idx 2)
	assert.Equal(t, Applied, res)
	assert.Equal(t, []string{"desk", "name"}, v.ColumnNames())

	v.UnhideAll()
	assert.Equal(t, []string{"desk", "name", "age"}, v.ColumnNames())

	res = v.UnpinColumn(0)
	assert.Equal(t, Applied, res)
	assert.Equal(t, []string{"name", "age", "desk"}, v.ColumnNames())
}

func TestMoveColumnRejectsCrossingPinnedBoundary(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))
	v.PinColumn(0) // pin "name"

	res := v.MoveColumn(0, 1) // would move pinned "name" into unpinned region
	assert.Equal(t, NoChange, res)
	assert.Equal(t, []string{"name", "age", "desk"}, v.ColumnNames())
}

func TestMoveColumnSwapsWithinUnpinnedRegion(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	res := v.MoveColumn(1, 1) // swap "age" and "desk"
	assert.Equal(t, Applied, res)
	assert.Equal(t, []string{"name", "desk", "age"}, v.ColumnNames())
}

func TestFuzzyFilterMatchesSubsequence(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	v.ApplyFuzzyFilter("ace", true)
	assert.GreaterOrEqual(t, v.RowCount(), 1)

	v.ApplyFuzzyFilter("", true)
	assert.Equal(t, 4, v.RowCount())
}

func TestCloneIsIndependent(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))
	v.PinColumn(1)

	clone := v.Clone()
	clone.UnpinColumn(0)

	assert.Equal(t, []string{"age", "name", "desk"}, v.ColumnNames())
	assert.Equal(t, []string{"name", "age", "desk"}, clone.ColumnNames())
}

func TestExportCSVPreservesSortOrder(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))
	ageCol := table.ColumnIndex("age")
	v.SortBy(ageCol, true)

	out, err := v.ExportCSV()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "name,age,desk", lines[0])
	assert.Equal(t, "Dana,,TKY-EQ", lines[1])
}

func TestExportJSONEmitsNullAsJSONNull(t *testing.T) {
	table := mustTable(t)
	v := New(table, allRows(table.NumRows()))

	out, err := v.ExportJSON()
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 4)
	assert.Nil(t, rows[3]["age"])
}
