package viewport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/datatable"
	"github.com/TimelordUK/sql-cli-go/dataview"
)

func mustView(t *testing.T, rows int) *dataview.DataView {
	t.Helper()
	var b strings.Builder
	b.WriteString("name,age,desk,notes\n")
	for i := 0; i < rows; i++ {
		b.WriteString("Trader")
		b.WriteString(strings.Repeat("X", i%3))
		b.WriteString(",30,LDN-EQ,a reasonably long note field for width testing\n")
	}
	table, err := datatable.LoadCSV(strings.NewReader(b.String()), datatable.CSVOptions{HasHeader: true, TableName: "people"})
	require.NoError(t, err)
	allRows := make([]int, table.NumRows())
	for i := range allRows {
		allRows[i] = i
	}
	return dataview.New(table, allRows)
}
