// Package parser implements a recursive-descent parser for the
// SELECT/WHERE/ORDER BY/LIMIT grammar in spec.md §4.1. Each grammar rule
// is one method; precedence is expressed by call order (or_expr calls
// and_expr calls not_expr calls primary) rather than a generic
// precedence table, since the grammar has exactly one operator per
// level.
package parser

import (
	"strconv"
	"strings"

	"github.com/TimelordUK/sql-cli-go/gridqlerr"
	"github.com/TimelordUK/sql-cli-go/query/ast"
	"github.com/TimelordUK/sql-cli-go/query/lexer"
	"github.com/TimelordUK/sql-cli-go/query/token"
)

// methodNames is the closed set of column methods the WHERE evaluator
// understands.
var methodNames = map[string]bool{
	"CONTAINS":   true,
	"STARTSWITH": true,
	"ENDSWITH":   true,
	"LENGTH":     true,
	"TOLOWER":    true,
	"TOUPPER":    true,
	"TRIM":       true,
}

// Parser turns query text into an *ast.SelectStatement.
type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
}

// New creates a Parser over the given query text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Parse parses one query and returns its SelectStatement, or a
// *gridqlerr.ParseError on malformed input.
func Parse(input string) (*ast.SelectStatement, error) {
	p := New(input)
	return p.parseSelect()
}

func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	if err := p.expect(token.SELECT); err != nil {
		return nil, err
	}

	projection, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.FROM); err != nil {
		return nil, err
	}

	table, err := p.parseIdentLike()
	if err != nil {
		return nil, err
	}

	stmt := &ast.SelectStatement{
		Projection: projection,
		Table:      table,
		Limit:      -1,
	}

	if p.curToken.Type == token.WHERE {
		p.next()
		where, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if p.curToken.Type == token.ORDER {
		p.next()
		if err := p.expect(token.BY); err != nil {
			return nil, err
		}
		col, err := p.parseIdentLike()
		if err != nil {
			return nil, err
		}
		asc := true
		switch p.curToken.Type {
		case token.ASC:
			p.next()
		case token.DESC:
			asc = false
			p.next()
		}
		stmt.Order = &ast.OrderBy{Column: col, Ascending: asc}
	}

	if p.curToken.Type == token.LIMIT {
		p.next()
		if p.curToken.Type != token.INT {
			return nil, p.errorf("integer", p.curToken)
		}
		n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("integer", p.curToken)
		}
		stmt.Limit = n
		p.next()
	}

	if p.curToken.Type != token.EOF {
		return nil, p.errorf("end of query", p.curToken)
	}

	return stmt, nil
}

func (p *Parser) parseSelectList() ([]string, error) {
	if p.curToken.Type == token.STAR {
		p.next()
		return nil, nil
	}

	var cols []string
	col, err := p.parseIdentLike()
	if err != nil {
		return nil, err
	}
	cols = append(cols, col)

	for p.curToken.Type == token.COMMA {
		p.next()
		col, err := p.parseIdentLike()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// parseIdentLike accepts an IDENT or BACKTICK_IDENT as a name (table or
// column reference).
func (p *Parser) parseIdentLike() (string, error) {
	if p.curToken.Type != token.IDENT && p.curToken.Type != token.BACKTICK_IDENT {
		return "", p.errorf("identifier", p.curToken)
	}
	lit := p.curToken.Literal
	p.next()
	return lit, nil
}

func (p *Parser) parseOrExpr() (ast.WhereExpr, error) {
	first, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	operands := []ast.WhereExpr{first}
	for p.curToken.Type == token.OR {
		p.next()
		next, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.OrExpr{Operands: operands}, nil
}

func (p *Parser) parseAndExpr() (ast.WhereExpr, error) {
	first, err := p.parseNotExpr()
	if err != nil {
		return nil, err
	}
	operands := []ast.WhereExpr{first}
	for p.curToken.Type == token.AND {
		p.next()
		next, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.AndExpr{Operands: operands}, nil
}

func (p *Parser) parseNotExpr() (ast.WhereExpr, error) {
	if p.curToken.Type == token.NOT {
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.WhereExpr, error) {
	if p.curToken.Type == token.LPAREN {
		p.next()
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}

	col, err := p.parseIdentLike()
	if err != nil {
		return nil, err
	}
	colRef := ast.ColumnRef{Name: col}

	switch p.curToken.Type {
	case token.DOT:
		return p.parseMethodCall(colRef)
	case token.IN:
		return p.parseIn(colRef)
	case token.BETWEEN:
		return p.parseBetween(colRef)
	case token.IS:
		return p.parseIsNull(colRef)
	case token.LIKE:
		return p.parseLike(colRef)
	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		return p.parseCompare(colRef)
	default:
		return nil, p.errorf("comparator, IN, BETWEEN, IS, LIKE, or '.'", p.curToken)
	}
}

func (p *Parser) parseCompare(col ast.ColumnRef) (ast.WhereExpr, error) {
	cmp := comparatorFor(p.curToken.Type)
	p.next()
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &ast.CompareExpr{Column: col, Comparator: cmp, Value: lit}, nil
}

// comparatorFor maps a comparator token to its ast.Comparator. Callers
// only invoke this after switching on the same token set in parsePrimary;
// token.EQ is handled by the default case.
func comparatorFor(t token.Type) ast.Comparator {
	switch t {
	case token.NEQ:
		return ast.Neq
	case token.LT:
		return ast.Lt
	case token.LTE:
		return ast.Lte
	case token.GT:
		return ast.Gt
	case token.GTE:
		return ast.Gte
	default:
		return ast.Eq
	}
}

func (p *Parser) parseMethodCall(col ast.ColumnRef) (ast.WhereExpr, error) {
	p.next() // consume '.'
	if p.curToken.Type != token.IDENT {
		return nil, p.errorf("method name", p.curToken)
	}
	methodUpper := strings.ToUpper(p.curToken.Literal)
	if !methodNames[methodUpper] {
		return nil, p.errorf("one of Contains/StartsWith/EndsWith/Length/ToLower/ToUpper/Trim", p.curToken)
	}
	method := p.curToken.Literal
	p.next()

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Literal
	if p.curToken.Type != token.RPAREN {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		args = append(args, lit)
		for p.curToken.Type == token.COMMA {
			p.next()
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			args = append(args, lit)
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return &ast.MethodCallExpr{Column: col, Method: method, Args: args}, nil
}

func (p *Parser) parseIn(col ast.ColumnRef) (ast.WhereExpr, error) {
	p.next() // consume IN
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var values []ast.Literal
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	values = append(values, lit)
	for p.curToken.Type == token.COMMA {
		p.next()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.InExpr{Column: col, Values: values}, nil
}

func (p *Parser) parseBetween(col ast.ColumnRef) (ast.WhereExpr, error) {
	p.next() // consume BETWEEN
	low, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.AND); err != nil {
		return nil, err
	}
	high, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Column: col, Low: low, High: high}, nil
}

func (p *Parser) parseIsNull(col ast.ColumnRef) (ast.WhereExpr, error) {
	p.next() // consume IS
	negate := false
	if p.curToken.Type == token.NOT {
		negate = true
		p.next()
	}
	if err := p.expect(token.NULL); err != nil {
		return nil, err
	}
	return &ast.IsNullExpr{Column: col, Negate: negate}, nil
}

func (p *Parser) parseLike(col ast.ColumnRef) (ast.WhereExpr, error) {
	p.next() // consume LIKE
	if p.curToken.Type != token.STRING {
		return nil, p.errorf("string literal", p.curToken)
	}
	pattern := p.curToken.Literal
	p.next()
	return &ast.LikeExpr{Column: col, Pattern: pattern}, nil
}

func (p *Parser) parseLiteral() (ast.Literal, error) {
	switch p.curToken.Type {
	case token.INT:
		n, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			return ast.Literal{}, p.errorf("number", p.curToken)
		}
		p.next()
		return ast.Literal{Kind: ast.LiteralNumber, Num: n}, nil
	case token.FLOAT:
		n, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			return ast.Literal{}, p.errorf("number", p.curToken)
		}
		p.next()
		return ast.Literal{Kind: ast.LiteralNumber, Num: n}, nil
	case token.STRING:
		s := p.curToken.Literal
		p.next()
		return ast.Literal{Kind: ast.LiteralString, Str: s}, nil
	case token.TRUE:
		p.next()
		return ast.Literal{Kind: ast.LiteralBool, Num: 1}, nil
	case token.FALSE:
		p.next()
		return ast.Literal{Kind: ast.LiteralBool, Num: 0}, nil
	case token.NULL:
		p.next()
		return ast.Literal{Kind: ast.LiteralNull}, nil
	case token.DATETIME:
		return p.parseDateTimeLiteral()
	default:
		return ast.Literal{}, p.errorf("literal", p.curToken)
	}
}

func (p *Parser) parseDateTimeLiteral() (ast.Literal, error) {
	p.next() // consume DATETIME
	if err := p.expect(token.LPAREN); err != nil {
		return ast.Literal{}, err
	}

	var args [6]int
	n := 0
	for {
		if p.curToken.Type != token.INT {
			return ast.Literal{}, p.errorf("integer", p.curToken)
		}
		v, err := strconv.Atoi(p.curToken.Literal)
		if err != nil || n >= 6 {
			return ast.Literal{}, p.errorf("integer", p.curToken)
		}
		args[n] = v
		n++
		p.next()
		if p.curToken.Type != token.COMMA {
			break
		}
		p.next()
	}
	if n < 3 {
		return ast.Literal{}, p.errorf("at least year, month, day", p.curToken)
	}
	if err := p.expect(token.RPAREN); err != nil {
		return ast.Literal{}, err
	}
	return ast.Literal{Kind: ast.LiteralDateTime, DateTimeArgs: args}, nil
}

func (p *Parser) expect(t token.Type) error {
	if p.curToken.Type != t {
		return p.errorf(t.String(), p.curToken)
	}
	p.next()
	return nil
}

func (p *Parser) errorf(expected string, found token.Token) error {
	foundDesc := found.Literal
	if foundDesc == "" {
		foundDesc = found.Type.String()
	}
	return &gridqlerr.ParseError{
		Position: found.Position,
		Expected: expected,
		Found:    foundDesc,
	}
}
