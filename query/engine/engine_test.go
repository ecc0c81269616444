package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/gridqlerr"
)

type fakeTables map[string]*datatable.DataTable

func (f fakeTables) Table(name string) (*datatable.DataTable, bool) {
	t, ok := f[name]
	return t, ok
}

func newTestDriver(t *testing.T) (*Driver, fakeTables) {
	t.Helper()
	csvData := "name,age,desk\n" +
		"Alice,30,LDN-EQ\n" +
		"Bob,25,NYK-FX\n" +
		"Charlie,35,LDN-FX\n"
	table, err := datatable.LoadCSV(strings.NewReader(csvData), datatable.CSVOptions{HasHeader: true, TableName: "trades"})
	require.NoError(t, err)

	tables := fakeTables{"trades": table}
	return New(tables, true, 0), tables
}

func TestExecuteAppliesWhereOrderAndLimit(t *testing.T) {
	driver, _ := newTestDriver(t)
	view, err := driver.Execute("SELECT * FROM trades WHERE desk.Contains('LDN') ORDER BY age DESC LIMIT 1")
	require.NoError(t, err)
	assert.Equal(t, 1, view.RowCount())
	row, ok := view.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Charlie", row[0].String())
}

func TestExecuteProjectionRestrictsColumns(t *testing.T) {
	driver, _ := newTestDriver(t)
	view, err := driver.Execute("SELECT name, desk FROM trades")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "desk"}, view.ColumnNames())
}

func TestExecuteUnknownTable(t *testing.T) {
	driver, _ := newTestDriver(t)
	_, err := driver.Execute("SELECT * FROM bogus")
	require.Error(t, err)
	var ute *gridqlerr.UnknownTableError
	require.ErrorAs(t, err, &ute)
}

func TestExecuteUnknownColumnInWhere(t *testing.T) {
	driver, _ := newTestDriver(t)
	_, err := driver.Execute("SELECT * FROM trades WHERE bogus = 1")
	require.Error(t, err)
	var uce *gridqlerr.UnknownColumnError
	require.ErrorAs(t, err, &uce)
}

func TestExecuteParseError(t *testing.T) {
	driver, _ := newTestDriver(t)
	_, err := driver.Execute("SELECT FROM trades")
	require.Error(t, err)
	var pe *gridqlerr.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestExecuteCachesByFingerprintAndReturnsIndependentClones(t *testing.T) {
	driver, _ := newTestDriver(t)
	v1, err := driver.Execute("SELECT * FROM trades")
	require.NoError(t, err)
	v2, err := driver.Execute("SELECT * FROM trades")
	require.NoError(t, err)

	v1.PinColumn(1)
	assert.NotEqual(t, v1.ColumnNames(), v2.ColumnNames())
}

func TestFingerprintChangesWithTableVersion(t *testing.T) {
	a := Fingerprint("SELECT * FROM t", "t", 1)
	b := Fingerprint("SELECT * FROM t", "t", 2)
	assert.NotEqual(t, a, b)
}

func TestFingerprintStableForIdenticalInput(t *testing.T) {
	a := Fingerprint("SELECT * FROM t WHERE a = 1", "t", 1)
	b := Fingerprint("SELECT * FROM t WHERE a = 1", "t", 1)
	assert.Equal(t, a, b)
}

func TestExecuteCapsBaseRowsAtMaxDisplayRows(t *testing.T) {
	csvData := "name,age,desk\n" +
		"Alice,30,LDN-EQ\n" +
		"Bob,25,NYK-FX\n" +
		"Charlie,35,LDN-FX\n"
	table, err := datatable.LoadCSV(strings.NewReader(csvData), datatable.CSVOptions{HasHeader: true, TableName: "trades"})
	require.NoError(t, err)
	tables := fakeTables{"trades": table}

	driver := New(tables, true, 2)
	view, err := driver.Execute("SELECT * FROM trades")
	require.NoError(t, err)
	assert.Equal(t, 2, view.RowCount())
}
