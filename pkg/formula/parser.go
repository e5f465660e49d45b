package formula

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrExponent        = errors.New("invalid exponent")
)

// SyntaxError reports a malformed expression. Pos is a byte offset into the
// source.
type SyntaxError struct {
	Pos int
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula: offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse builds an expression tree from src.
//
//	expr  = term { ("+" | "-") term }
//	term  = unary { "*" unary }
//	unary = "-" unary | power
//	power = atom [ "**" exp ]
//	exp   = integer [ "**" exp ]
//	atom  = number | number "i" | "z" | "c" | "(" expr ")"
func Parse(src string) (Expr, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokEOF {
		return nil, p.unexpected()
	}
	return e, nil
}

func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.typ == tokEOF {
		return &SyntaxError{Pos: p.tok.pos, Msg: "unexpected end of input"}
	}
	return &SyntaxError{Pos: p.tok.pos, Msg: "unexpected " + p.tok.typ.String() + " " + strconv.Quote(p.tok.text)}
}

var minusOne = Const{Value: types.Complexf64{Re: -1}}

func (p *parser) expr() (Expr, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.tok.typ == tokPlus || p.tok.typ == tokMinus {
		neg := p.tok.typ == tokMinus
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if neg {
			t = Mul{Factors: []Expr{minusOne, t}}
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Add{Terms: terms}, nil
}

func (p *parser) term() (Expr, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{first}
	for p.tok.typ == tokStar {
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.unary()
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	if len(factors) == 1 {
		return first, nil
	}
	return Mul{Factors: factors}, nil
}

func (p *parser) unary() (Expr, error) {
	if p.tok.typ != tokMinus {
		return p.power()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.unary()
	if err != nil {
		return nil, err
	}
	return Mul{Factors: []Expr{minusOne, e}}, nil
}

func (p *parser) power() (Expr, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokPow {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.exponent()
	if err != nil {
		return nil, err
	}
	return Pow{Base: base, N: n}, nil
}

// exponent reads an integer literal, or a right-associative chain of them
// ("2 ** 3" is 8), and folds it to a value in [0, MaxExponent].
func (p *parser) exponent() (int, error) {
	t := p.tok
	if t.typ != tokNumber {
		return 0, &SyntaxError{Pos: t.pos, Msg: "exponent must be a non-negative integer literal", Err: ErrExponent}
	}
	outOfRange := &SyntaxError{
		Pos: t.pos,
		Msg: fmt.Sprintf("exponent %s is not an integer in [0, %d]", t.text, MaxExponent),
		Err: ErrExponent,
	}
	n, err := strconv.Atoi(t.text)
	if err != nil || n > MaxExponent {
		return 0, outOfRange
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	if p.tok.typ != tokPow {
		return n, nil
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	e, err := p.exponent()
	if err != nil {
		return 0, err
	}
	// n ** e, stopping as soon as it leaves the allowed range
	r := 1
	for i := 0; i < e; i++ {
		r *= n
		if r > MaxExponent {
			outOfRange.Msg = fmt.Sprintf("exponent %d ** %d is larger than %d", n, e, MaxExponent)
			return 0, outOfRange
		}
		if r == 0 || r == 1 {
			break
		}
	}
	return r, nil
}

func (p *parser) atom() (Expr, error) {
	t := p.tok
	switch t.typ {
	case tokNumber, tokImag:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: "number out of range " + strconv.Quote(t.text), Err: err}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if t.typ == tokImag {
			return Const{Value: types.Complexf64{Im: f}}, nil
		}
		return Const{Value: types.Complexf64{Re: f}}, nil
	case tokIdent:
		var v Var
		switch t.text {
		case "z":
			v = VarZ
		case "c":
			v = VarC
		default:
			return nil, &SyntaxError{Pos: t.pos, Msg: "unknown variable " + strconv.Quote(t.text), Err: ErrUnknownVariable}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.typ != tokRParen {
			if p.tok.typ == tokEOF {
				return nil, &SyntaxError{Pos: p.tok.pos, Msg: `missing ")"`}
			}
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.unexpected()
}
