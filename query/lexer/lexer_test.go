package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/sql-cli-go/query/token"
)

func TestNextTokenCoversGrammar(t *testing.T) {
	input := "SELECT * FROM trades WHERE price >= 100.5 AND `desk name` != 'LDN' LIMIT 10"

	expected := []token.Type{
		token.SELECT, token.STAR, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.GTE, token.FLOAT,
		token.AND, token.BACKTICK_IDENT, token.NEQ, token.STRING,
		token.LIMIT, token.INT, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equalf(t, want, tok.Type, "token %d: literal=%q", i, tok.Literal)
	}
}

func TestNextTokenComparators(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want token.Type
	}{
		{"eq", "=", token.EQ},
		{"neq bang", "!=", token.NEQ},
		{"neq angle", "<>", token.NEQ},
		{"lt", "<", token.LT},
		{"lte", "<=", token.LTE},
		{"gt", ">", token.GT},
		{"gte", ">=", token.GTE},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.in)
			tok := l.NextToken()
			assert.Equal(t, tc.want, tok.Type)
			assert.Equal(t, 0, tok.Position)
		})
	}
}

func TestNextTokenStringLiteralEscapedQuote(t *testing.T) {
	l := New(`'it''s here'`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "it's here", tok.Literal)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`'oops`)
	tok := l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
}

func TestNextTokenKeywordsCaseInsensitive(t *testing.T) {
	l := New("select Price from Trades where Qty is not null")
	var types []token.Type
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{
		token.SELECT, token.IDENT, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.IS, token.NOT, token.NULL,
	}, types)
}

func TestNextTokenNumberLiterals(t *testing.T) {
	l := New("42 3.14 0")
	tok := l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, "42", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.FLOAT, tok.Type)
	assert.Equal(t, "3.14", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, "0", tok.Literal)
}

func TestNextTokenPositionsTrackByteOffset(t *testing.T) {
	l := New("price > 10")
	tok := l.NextToken()
	assert.Equal(t, 0, tok.Position)
	tok = l.NextToken()
	assert.Equal(t, 6, tok.Position)
	tok = l.NextToken()
	assert.Equal(t, 8, tok.Position)
}
