package formula

import (
	"strconv"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokImag // number immediately followed by 'i'
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokPow // "**"
	tokLParen
	tokRParen
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokNumber, tokImag:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return `"+"`
	case tokMinus:
		return `"-"`
	case tokStar:
		return `"*"`
	case tokPow:
		return `"**"`
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

type token struct {
	typ  tokenType
	pos  int // byte offset in the source
	text string
}

type lexer struct {
	src string
	pos int
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
			continue
		}
		break
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, pos: start}, nil
	}

	b := l.src[l.pos]
	switch {
	case b == '+':
		l.pos++
		return token{typ: tokPlus, pos: start, text: "+"}, nil
	case b == '-':
		l.pos++
		return token{typ: tokMinus, pos: start, text: "-"}, nil
	case b == '*':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
			l.pos += 2
			return token{typ: tokPow, pos: start, text: "**"}, nil
		}
		l.pos++
		return token{typ: tokStar, pos: start, text: "*"}, nil
	case b == '(':
		l.pos++
		return token{typ: tokLParen, pos: start, text: "("}, nil
	case b == ')':
		l.pos++
		return token{typ: tokRParen, pos: start, text: ")"}, nil
	case isDigit(b) || b == '.':
		return l.number()
	case isLetter(b):
		for l.pos < len(l.src) && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
			l.pos++
		}
		return token{typ: tokIdent, pos: start, text: l.src[start:l.pos]}, nil
	}
	return token{}, &SyntaxError{Pos: start, Msg: "unexpected character " + strconv.QuoteRune(rune(b))}
}

// number scans a decimal literal with optional fraction and exponent, and an
// optional trailing 'i' marking it imaginary.
func (l *lexer) number() (token, error) {
	start := l.pos
	digits := 0
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
		digits++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
			digits++
		}
	}
	if digits == 0 {
		return token{}, &SyntaxError{Pos: start, Msg: "malformed number"}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		expStart := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == expStart {
			return token{}, &SyntaxError{Pos: start, Msg: "malformed exponent in number"}
		}
	}
	text := l.src[start:l.pos]
	typ := tokNumber
	if l.pos < len(l.src) && l.src[l.pos] == 'i' {
		l.pos++
		typ = tokImag
	}
	// "2iz" or "3z" are not implicit products
	if l.pos < len(l.src) && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
		return token{}, &SyntaxError{Pos: l.pos, Msg: "unexpected character after number"}
	}
	return token{typ: typ, pos: start, text: text}, nil
}
