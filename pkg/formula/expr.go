// Package formula is a closed expression language for the update step of an
// escape-time iteration.
//
// An expression combines complex number literals and the two variables z (the
// current orbit value) and c (the fixed parameter) with +, -, * and ** (raised
// to a non-negative integer literal). There are no functions, no other names
// and no way to run anything but this arithmetic, so evaluating an Expr is
// pure and always terminates.
package formula

import (
	"strconv"
	"strings"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

// Default is the Mandelbrot update z = z^2 + c.
const Default = "z ** 2 + c"

// MaxExponent bounds the literal after "**".
const MaxExponent = 64

type Expr interface {
	Eval(z, c types.Complexf64) types.Complexf64
	String() string
}

type Const struct {
	Value types.Complexf64
}

func (e Const) Eval(_, _ types.Complexf64) types.Complexf64 { return e.Value }

func (e Const) String() string {
	v := e.Value
	switch {
	case v.Im == 0:
		return strconv.FormatFloat(v.Re, 'g', -1, 64)
	case v.Re == 0:
		return strconv.FormatFloat(v.Im, 'g', -1, 64) + "i"
	}
	return v.String()
}

type Var byte

const (
	VarZ Var = 'z'
	VarC Var = 'c'
)

func (e Var) Eval(z, c types.Complexf64) types.Complexf64 {
	if e == VarC {
		return c
	}
	return z
}

func (e Var) String() string { return string(rune(e)) }

type Add struct {
	Terms []Expr
}

func (e Add) Eval(z, c types.Complexf64) types.Complexf64 {
	var sum types.Complexf64
	for _, t := range e.Terms {
		sum = sum.Add(t.Eval(z, c))
	}
	return sum
}

func (e Add) String() string {
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

type Mul struct {
	Factors []Expr
}

func (e Mul) Eval(z, c types.Complexf64) types.Complexf64 {
	prod := types.Complexf64{Re: 1}
	for _, f := range e.Factors {
		prod = prod.Mul(f.Eval(z, c))
	}
	return prod
}

func (e Mul) String() string {
	parts := make([]string, len(e.Factors))
	for i, f := range e.Factors {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " * ") + ")"
}

// Pow is Base multiplied by itself N times; N == 0 yields 1.
type Pow struct {
	Base Expr
	N    int
}

func (e Pow) Eval(z, c types.Complexf64) types.Complexf64 {
	b := e.Base.Eval(z, c)
	r := types.Complexf64{Re: 1}
	for i := 0; i < e.N; i++ {
		r = r.Mul(b)
	}
	return r
}

func (e Pow) String() string {
	return e.Base.String() + " ** " + strconv.Itoa(e.N)
}
