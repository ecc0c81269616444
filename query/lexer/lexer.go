// Package lexer implements a single-pass scanner for the SELECT/WHERE
// grammar in spec.md §4.1.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TimelordUK/sql-cli-go/query/token"
)

// Lexer scans an input string into a sequence of tokens.
type Lexer struct {
	input        string
	position     int // start of the current rune
	readPosition int // position after the current rune
	ch           rune
}

// New creates a Lexer for the given query text.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token in the input, and an EOF token
// repeatedly once the input is exhausted.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.position
	var tok token.Token

	switch {
	case l.ch == 0:
		tok = token.Token{Type: token.EOF, Literal: "", Position: pos}
	case l.ch == '=':
		tok = l.simple(token.EQ)
	case l.ch == '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NEQ, Literal: "!=", Position: pos}
			l.readChar()
			return tok
		}
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Position: pos}
		l.readChar()
	case l.ch == '<':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NEQ, Literal: "<>", Position: pos}
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LTE, Literal: "<=", Position: pos}
		default:
			tok = token.Token{Type: token.LT, Literal: "<", Position: pos}
		}
		l.readChar()
		return tok
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Literal: ">=", Position: pos}
			l.readChar()
			return tok
		}
		tok = l.simple(token.GT)
	case l.ch == ',':
		tok = l.simple(token.COMMA)
	case l.ch == '(':
		tok = l.simple(token.LPAREN)
	case l.ch == ')':
		tok = l.simple(token.RPAREN)
	case l.ch == '.':
		tok = l.simple(token.DOT)
	case l.ch == '*':
		tok = l.simple(token.STAR)
	case l.ch == '\'':
		lit, ok := l.readStringLiteral('\'')
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: lit, Position: pos}
		}
		return token.Token{Type: token.STRING, Literal: lit, Position: pos}
	case l.ch == '`':
		lit, ok := l.readStringLiteral('`')
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: lit, Position: pos}
		}
		return token.Token{Type: token.BACKTICK_IDENT, Literal: lit, Position: pos}
	case unicode.IsDigit(l.ch):
		return l.readNumber(pos)
	case isIdentStart(l.ch):
		return l.readIdentOrKeyword(pos)
	default:
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Position: pos}
		l.readChar()
	}

	return tok
}

func (l *Lexer) simple(t token.Type) token.Token {
	tok := token.Token{Type: t, Literal: string(l.ch), Position: l.position}
	l.readChar()
	return tok
}

func (l *Lexer) readStringLiteral(quote rune) (string, bool) {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return sb.String(), false // unterminated
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				// Doubled quote is an escaped quote character.
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // consume closing quote
			return sb.String(), true
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
}

func (l *Lexer) readNumber(startPos int) token.Token {
	start := l.position
	isFloat := false
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[start:l.position]
	if isFloat {
		return token.Token{Type: token.FLOAT, Literal: lit, Position: startPos}
	}
	return token.Token{Type: token.INT, Literal: lit, Position: startPos}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *Lexer) readIdentOrKeyword(startPos int) token.Token {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	upper := strings.ToUpper(lit)
	if kw := token.LookupIdent(upper); kw != token.IDENT {
		return token.Token{Type: kw, Literal: lit, Position: startPos}
	}
	return token.Token{Type: token.IDENT, Literal: lit, Position: startPos}
}
