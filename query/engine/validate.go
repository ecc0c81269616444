package engine

import (
	"github.com/TimelordUK/sql-cli-go/gridqlerr"
	"github.com/TimelordUK/sql-cli-go/query/ast"
)

// validateColumns walks a WhereExpr checking every column reference
// against colIndex, so an unknown column aborts the query up front
// instead of surfacing only once row-by-row evaluation reaches it.
func validateColumns(expr ast.WhereExpr, colIndex map[string]int) error {
	check := func(name string) error {
		if _, ok := colIndex[name]; !ok {
			return &gridqlerr.UnknownColumnError{Column: name}
		}
		return nil
	}

	switch n := expr.(type) {
	case *ast.OrExpr:
		return validateAll(n.Operands, colIndex)
	case *ast.AndExpr:
		return validateAll(n.Operands, colIndex)
	case *ast.NotExpr:
		return validateColumns(n.Operand, colIndex)
	case *ast.CompareExpr:
		return check(n.Column.Name)
	case *ast.MethodCallExpr:
		return check(n.Column.Name)
	case *ast.InExpr:
		return check(n.Column.Name)
	case *ast.BetweenExpr:
		return check(n.Column.Name)
	case *ast.IsNullExpr:
		return check(n.Column.Name)
	case *ast.LikeExpr:
		return check(n.Column.Name)
	default:
		return nil
	}
}

func validateAll(operands []ast.WhereExpr, colIndex map[string]int) error {
	for _, op := range operands {
		if err := validateColumns(op, colIndex); err != nil {
			return err
		}
	}
	return nil
}
