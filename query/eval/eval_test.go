package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/datavalue"
	"github.com/TimelordUK/sql-cli-go/query/ast"
	"github.com/TimelordUK/sql-cli-go/query/parser"
)

func rowFor(colIndex map[string]int, values map[string]datavalue.DataValue) []datavalue.DataValue {
	row := make([]datavalue.DataValue, len(colIndex))
	for name, idx := range colIndex {
		if v, ok := values[name]; ok {
			row[idx] = v
		} else {
			row[idx] = datavalue.Null
		}
	}
	return row
}

func mustParseWhere(t *testing.T, query string) ast.WhereExpr {
	t.Helper()
	stmt, err := parser.Parse(query)
	require.NoError(t, err)
	require.NotNil(t, stmt.Where)
	return stmt.Where
}

func TestEvaluateNumericComparators(t *testing.T) {
	colIndex := map[string]int{"qty": 0}
	testCases := []struct {
		name  string
		query string
		qty   datavalue.DataValue
		want  bool
	}{
		{"eq true", "SELECT * FROM t WHERE qty = 10", datavalue.Integer(10), true},
		{"eq false", "SELECT * FROM t WHERE qty = 10", datavalue.Integer(11), false},
		{"gt int vs float coercion", "SELECT * FROM t WHERE qty > 9.5", datavalue.Integer(10), true},
		{"lte", "SELECT * FROM t WHERE qty <= 10", datavalue.Integer(10), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator(true)
			where := mustParseWhere(t, tc.query)
			row := rowFor(colIndex, map[string]datavalue.DataValue{"qty": tc.qty})
			got, err := e.Evaluate(where, row, colIndex)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateNullSemantics(t *testing.T) {
	colIndex := map[string]int{"note": 0}
	e := NewEvaluator(true)

	eqWhere := mustParseWhere(t, "SELECT * FROM t WHERE note = 'x'")
	row := rowFor(colIndex, map[string]datavalue.DataValue{})
	got, err := e.Evaluate(eqWhere, row, colIndex)
	require.NoError(t, err)
	assert.False(t, got)

	isNullWhere := mustParseWhere(t, "SELECT * FROM t WHERE note IS NULL")
	got, err = e.Evaluate(isNullWhere, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)

	isNotNullWhere := mustParseWhere(t, "SELECT * FROM t WHERE note IS NOT NULL")
	got, err = e.Evaluate(isNotNullWhere, row, colIndex)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluateAndOrShortCircuit(t *testing.T) {
	colIndex := map[string]int{"a": 0, "b": 1}
	e := NewEvaluator(true)

	andWhere := mustParseWhere(t, "SELECT * FROM t WHERE a = 1 AND b = 2")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"a": datavalue.Integer(1), "b": datavalue.Integer(3)})
	got, err := e.Evaluate(andWhere, row, colIndex)
	require.NoError(t, err)
	assert.False(t, got)

	orWhere := mustParseWhere(t, "SELECT * FROM t WHERE a = 1 OR b = 2")
	got, err = e.Evaluate(orWhere, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateUnknownColumnAbortsWithError(t *testing.T) {
	colIndex := map[string]int{"a": 0}
	e := NewEvaluator(true)
	where := mustParseWhere(t, "SELECT * FROM t WHERE missing = 1")
	row := rowFor(colIndex, nil)
	_, err := e.Evaluate(where, row, colIndex)
	require.Error(t, err)
}

func TestEvaluateLikeWildcards(t *testing.T) {
	colIndex := map[string]int{"name": 0}
	testCases := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{"percent prefix", "A%", "Alice", true},
		{"percent no match", "Z%", "Alice", false},
		{"underscore exact length", "A_ice", "Alice", true},
		{"underscore wrong length", "A_e", "Alice", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator(true)
			where := mustParseWhere(t, "SELECT * FROM t WHERE name LIKE '"+tc.pattern+"'")
			row := rowFor(colIndex, map[string]datavalue.DataValue{"name": datavalue.String(tc.value)})
			got, err := e.Evaluate(where, row, colIndex)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateLikeCaseInsensitive(t *testing.T) {
	colIndex := map[string]int{"name": 0}
	e := NewEvaluator(false)
	where := mustParseWhere(t, "SELECT * FROM t WHERE name LIKE 'a%'")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"name": datavalue.String("Alice")})
	got, err := e.Evaluate(where, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateMethodContains(t *testing.T) {
	colIndex := map[string]int{"desk": 0}
	e := NewEvaluator(true)
	where := mustParseWhere(t, "SELECT * FROM t WHERE desk.Contains('LDN')")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"desk": datavalue.String("LDN-EQ")})
	got, err := e.Evaluate(where, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateMethodNonMatchRecordsNoTypeError(t *testing.T) {
	colIndex := map[string]int{"desk": 0}
	e := NewEvaluator(true)
	where := mustParseWhere(t, "SELECT * FROM t WHERE desk.Contains('LDN')")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"desk": datavalue.String("NYK")})
	_, err := e.Evaluate(where, row, colIndex)
	require.NoError(t, err)
	assert.Nil(t, e.Warning())
}

func TestEvaluateInAndBetween(t *testing.T) {
	colIndex := map[string]int{"ccy": 0, "qty": 1}
	e := NewEvaluator(true)

	inWhere := mustParseWhere(t, "SELECT * FROM t WHERE ccy IN ('GBP', 'USD')")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"ccy": datavalue.String("GBP")})
	got, err := e.Evaluate(inWhere, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)

	betweenWhere := mustParseWhere(t, "SELECT * FROM t WHERE qty BETWEEN 10 AND 100")
	row = rowFor(colIndex, map[string]datavalue.DataValue{"qty": datavalue.Integer(50)})
	got, err = e.Evaluate(betweenWhere, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateDateTimeLiteralComparison(t *testing.T) {
	colIndex := map[string]int{"traded": 0}
	e := NewEvaluator(true)
	where := mustParseWhere(t, "SELECT * FROM t WHERE traded >= DateTime(2024, 1, 2)")
	row := rowFor(colIndex, map[string]datavalue.DataValue{"traded": datavalue.DateTime(2024, 1, 2, 9, 0, 0)})
	got, err := e.Evaluate(where, row, colIndex)
	require.NoError(t, err)
	assert.True(t, got)
}
