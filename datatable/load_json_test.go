package datatable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONUnionsKeysAndInfersTypes(t *testing.T) {
	jsonData := `[
		{"name": "Alice", "age": 30, "active": true},
		{"name": "Bob", "age": 25, "nickname": "bobby"}
	]`

	table, err := LoadJSON(strings.NewReader(jsonData), "t")
	require.NoError(t, err)

	require.Equal(t, 4, table.NumColumns())
	names := make([]string, table.NumColumns())
	for i, c := range table.Columns() {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"name", "age", "active", "nickname"}, names)

	assert.True(t, table.Cell(0, 3).IsNull())  // Alice has no nickname
	assert.True(t, table.Cell(1, 2).IsNull())  // Bob has no active flag
}

func TestLoadSnapshot(t *testing.T) {
	jsonData := `{
		"columns": ["id", "label"],
		"rows": [[1, "a"], [2, "b"], [3, null]]
	}`
	table, err := LoadSnapshot(strings.NewReader(jsonData), "snap")
	require.NoError(t, err)

	assert.Equal(t, TypeInteger, table.Columns()[0].DataType)
	assert.Equal(t, TypeString, table.Columns()[1].DataType)
	assert.True(t, table.Cell(2, 1).IsNull())
}
