package datatable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/datavalue"
)

func TestLoadCSVInfersTypesAndNulls(t *testing.T) {
	csvData := "name,age,score,joined\n" +
		"Alice,30,9.5,2024-01-02\n" +
		"Bob,25,8.25,2024-02-03\n" +
		"Charlie,,,\n"

	table, err := LoadCSV(strings.NewReader(csvData), CSVOptions{HasHeader: true, TableName: "t"})
	require.NoError(t, err)

	require.Equal(t, 4, table.NumColumns())
	require.Equal(t, 3, table.NumRows())

	cols := table.Columns()
	assert.Equal(t, "name", cols[0].Name)
	assert.Equal(t, TypeString, cols[0].DataType)
	assert.Equal(t, TypeInteger, cols[1].DataType)
	assert.Equal(t, TypeFloat, cols[2].DataType)
	assert.Equal(t, TypeDate, cols[3].DataType)

	assert.Equal(t, datavalue.Integer(30), table.Cell(0, 1))
	assert.True(t, table.Cell(2, 1).IsNull())
	assert.True(t, table.Cell(2, 2).IsNull())
}

func TestLoadCSVWithoutHeaderUsesColumnLetters(t *testing.T) {
	csvData := "1,a\n2,b\n"
	table, err := LoadCSV(strings.NewReader(csvData), CSVOptions{HasHeader: false, TableName: "t"})
	require.NoError(t, err)

	assert.Equal(t, "A", table.Columns()[0].Name)
	assert.Equal(t, "B", table.Columns()[1].Name)
}

func TestLoadCSVEmptyInput(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(""), DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRows())
}
