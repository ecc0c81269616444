// Package eval implements the WHERE evaluator described in spec.md
// §4.2: a pure function of (WhereExpr, row, column index map) that
// walks the AST once per candidate row.
package eval

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/TimelordUK/sql-cli-go/datavalue"
	"github.com/TimelordUK/sql-cli-go/gridqlerr"
	"github.com/TimelordUK/sql-cli-go/query/ast"
)

// Evaluator evaluates WhereExpr trees against rows. It is reusable
// across rows within one query execution so that per-row type errors
// can be deduplicated into a single warning, per spec.md §7's
// "TypeError ... records a one-time warning" contract.
type Evaluator struct {
	// CaseSensitive governs LIKE and string-method comparisons; callers
	// pass the negation of behavior.case_insensitive_default.
	CaseSensitive bool

	warnedOnce sync.Once
	warning    *gridqlerr.TypeError

	folder cases.Caser
}

// NewEvaluator creates an Evaluator. caseSensitive is used by LIKE and
// the string methods.
func NewEvaluator(caseSensitive bool) *Evaluator {
	return &Evaluator{CaseSensitive: caseSensitive, folder: cases.Fold()}
}

// Warning returns the first TypeError recorded during evaluation, or
// nil if none occurred.
func (e *Evaluator) Warning() *gridqlerr.TypeError {
	return e.warning
}

func (e *Evaluator) recordTypeError(column, method, reason string) {
	e.warnedOnce.Do(func() {
		e.warning = &gridqlerr.TypeError{Column: column, Method: method, Reason: reason}
	})
}

// foldCase case-folds s for caseless comparison via golang.org/x/text's
// Unicode case folding (language-neutral; correct for more than ASCII
// and simple strings.ToLower, e.g. German sharp-s expansion).
func (e *Evaluator) foldCase(s string) string {
	return e.folder.String(s)
}

// Evaluate walks expr against row, resolving column references via
// colIndex. An unknown column aborts the whole evaluation with
// *gridqlerr.UnknownColumnError; every other failure is absorbed as a
// false result plus a recorded TypeError.
func (e *Evaluator) Evaluate(expr ast.WhereExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	switch n := expr.(type) {
	case *ast.OrExpr:
		for _, operand := range n.Operands {
			ok, err := e.Evaluate(operand, row, colIndex)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case *ast.AndExpr:
		for _, operand := range n.Operands {
			ok, err := e.Evaluate(operand, row, colIndex)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case *ast.NotExpr:
		ok, err := e.Evaluate(n.Operand, row, colIndex)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case *ast.CompareExpr:
		return e.evalCompare(n, row, colIndex)

	case *ast.MethodCallExpr:
		return e.evalMethodCall(n, row, colIndex)

	case *ast.InExpr:
		return e.evalIn(n, row, colIndex)

	case *ast.BetweenExpr:
		return e.evalBetween(n, row, colIndex)

	case *ast.IsNullExpr:
		return e.evalIsNull(n, row, colIndex)

	case *ast.LikeExpr:
		return e.evalLike(n, row, colIndex)

	default:
		return false, nil
	}
}

func (e *Evaluator) cell(colName string, row []datavalue.DataValue, colIndex map[string]int) (datavalue.DataValue, error) {
	idx, ok := colIndex[colName]
	if !ok || idx >= len(row) {
		return datavalue.Null, &gridqlerr.UnknownColumnError{Column: colName}
	}
	return row[idx], nil
}

func literalToValue(lit ast.Literal) datavalue.DataValue {
	switch lit.Kind {
	case ast.LiteralNumber:
		return datavalue.Float(lit.Num)
	case ast.LiteralString:
		return datavalue.String(lit.Str)
	case ast.LiteralBool:
		return datavalue.Boolean(lit.Num != 0)
	case ast.LiteralNull:
		return datavalue.Null
	case ast.LiteralDateTime:
		a := lit.DateTimeArgs
		return datavalue.DateTime(a[0], a[1], a[2], a[3], a[4], a[5])
	default:
		return datavalue.Null
	}
}

func (e *Evaluator) evalCompare(n *ast.CompareExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}

	if cell.IsNull() || n.Value.Kind == ast.LiteralNull {
		// Any comparator against NULL is false; IS NULL is a separate node.
		return false, nil
	}

	lit := literalToValue(n.Value)
	cmp := datavalue.Compare(cell, lit)
	switch n.Comparator {
	case ast.Eq:
		return cmp == 0, nil
	case ast.Neq:
		return cmp != 0, nil
	case ast.Lt:
		return cmp < 0, nil
	case ast.Lte:
		return cmp <= 0, nil
	case ast.Gt:
		return cmp > 0, nil
	case ast.Gte:
		return cmp >= 0, nil
	default:
		return false, nil
	}
}

func (e *Evaluator) evalIn(n *ast.InExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}
	if cell.IsNull() {
		return false, nil
	}
	for _, v := range n.Values {
		if v.Kind == ast.LiteralNull {
			continue
		}
		if datavalue.Equal(cell, literalToValue(v)) {
			return true, nil
		}
	}
	return false, nil
}

func (e *Evaluator) evalBetween(n *ast.BetweenExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}
	if cell.IsNull() {
		return false, nil
	}
	low := literalToValue(n.Low)
	high := literalToValue(n.High)
	return datavalue.Compare(cell, low) >= 0 && datavalue.Compare(cell, high) <= 0, nil
}

func (e *Evaluator) evalIsNull(n *ast.IsNullExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}
	isNull := cell.IsNull()
	if n.Negate {
		return !isNull, nil
	}
	return isNull, nil
}

func (e *Evaluator) evalLike(n *ast.LikeExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}
	if cell.IsNull() {
		return false, nil
	}
	s, pattern := cell.String(), n.Pattern
	if !e.CaseSensitive {
		s, pattern = e.foldCase(s), e.foldCase(pattern)
	}
	return likeMatch(s, pattern), nil
}

// likeMatch implements SQL LIKE with '%' matching any run of characters
// and '_' matching exactly one, via a small dynamic-programming table
// (no regexp compilation on the per-row hot path). Case folding, if
// any, is the caller's responsibility.
func likeMatch(s, pattern string) bool {
	sr := []rune(s)
	pr := []rune(pattern)

	dp := make([][]bool, len(sr)+1)
	for i := range dp {
		dp[i] = make([]bool, len(pr)+1)
	}
	dp[0][0] = true
	for j := 1; j <= len(pr); j++ {
		if pr[j-1] == '%' {
			dp[0][j] = dp[0][j-1]
		}
	}
	for i := 1; i <= len(sr); i++ {
		for j := 1; j <= len(pr); j++ {
			switch pr[j-1] {
			case '%':
				dp[i][j] = dp[i-1][j] || dp[i][j-1]
			case '_':
				dp[i][j] = dp[i-1][j-1]
			default:
				dp[i][j] = dp[i-1][j-1] && sr[i-1] == pr[j-1]
			}
		}
	}
	return dp[len(sr)][len(pr)]
}

// evalMethodCall implements the fixed method set named in spec.md §4.1.
// Contains/StartsWith/EndsWith are substring predicates over a single
// string argument. Length/ToLower/ToUpper/Trim take no arguments; since
// the grammar gives no comparator-after-method production, they stand
// alone as predicates and evaluate to true iff their transformed string
// is non-empty (an emptiness/whitespace test). Every method applies to
// String cells only: any other non-null cell records a TypeError and
// evaluates to false.
func (e *Evaluator) evalMethodCall(n *ast.MethodCallExpr, row []datavalue.DataValue, colIndex map[string]int) (bool, error) {
	cell, err := e.cell(n.Column.Name, row, colIndex)
	if err != nil {
		return false, err
	}
	if cell.IsNull() {
		return false, nil
	}

	if cell.Kind != datavalue.KindString {
		e.recordTypeError(n.Column.Name, n.Method, "method requires a string cell, got "+cell.Kind.String())
		return false, nil
	}
	s := cell.String()
	method := strings.ToUpper(n.Method)

	switch method {
	case "CONTAINS", "STARTSWITH", "ENDSWITH":
		if len(n.Args) != 1 || n.Args[0].Kind != ast.LiteralString {
			e.recordTypeError(n.Column.Name, n.Method, "expected a single string argument")
			return false, nil
		}
		target, needle := s, n.Args[0].Str
		if !e.CaseSensitive {
			target, needle = e.foldCase(target), e.foldCase(needle)
		}
		switch method {
		case "CONTAINS":
			return strings.Contains(target, needle), nil
		case "STARTSWITH":
			return strings.HasPrefix(target, needle), nil
		default:
			return strings.HasSuffix(target, needle), nil
		}

	case "LENGTH":
		if len(n.Args) != 0 {
			e.recordTypeError(n.Column.Name, n.Method, "expected no arguments")
			return false, nil
		}
		return len(s) > 0, nil

	case "TOLOWER":
		return e.transformNonEmpty(n, strings.ToLower(s)), nil
	case "TOUPPER":
		return e.transformNonEmpty(n, strings.ToUpper(s)), nil
	case "TRIM":
		return e.transformNonEmpty(n, strings.TrimSpace(s)), nil

	default:
		e.recordTypeError(n.Column.Name, n.Method, "unsupported method")
		return false, nil
	}
}

func (e *Evaluator) transformNonEmpty(n *ast.MethodCallExpr, transformed string) bool {
	if len(n.Args) != 0 {
		e.recordTypeError(n.Column.Name, n.Method, "expected no arguments")
		return false
	}
	return len(transformed) > 0
}
