package expr

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lexer produces tokens on demand so that the parser can switch to raw
// literal scanning after a '<' in operand position.
type lexer struct {
	src string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, offset: start}, nil
	}
	c := l.src[l.pos]
	switch {
	case isDigit(c):
		return l.number()
	case isLetter(c):
		for l.pos < len(l.src) && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], offset: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", offset: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", offset: start}, nil
	case strings.IndexByte("+-*/", c) >= 0:
		l.pos++
		return token{kind: tokOp, text: string(c), offset: start}, nil
	case strings.IndexByte("<>=!", c) >= 0:
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
		}
		text := l.src[start:l.pos]
		if text == "=" || text == "!" {
			return token{}, &SyntaxError{Offset: start, Msg: "unexpected " + quote(text)}
		}
		return token{kind: tokOp, text: text, offset: start}, nil
	}
	return token{}, &SyntaxError{Offset: start, Msg: "unexpected character " + quote(string(c))}
}

func (l *lexer) number() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		fracStart := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == fracStart {
			return token{}, &SyntaxError{Offset: start, Msg: "missing digits after decimal point"}
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], offset: start}, nil
}

// rawLiteral reads everything up to the next '>' and consumes it.
func (l *lexer) rawLiteral(open int) (string, error) {
	end := strings.IndexByte(l.src[l.pos:], '>')
	if end < 0 {
		return "", &SyntaxError{Offset: open, Msg: "unterminated rational literal"}
	}
	text := l.src[l.pos : l.pos+end]
	l.pos += end + 1
	return text, nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') }

func quote(s string) string { return "'" + s + "'" }
