// Package escape decides whether the orbit of z = z^2 + c leaves a disc of
// fixed radius within a fixed number of steps.
//
// The orbit starts at z = c. At every step |z| is compared against the
// threshold before z is advanced, and only a magnitude strictly greater than
// the threshold counts as escaped. Results for NaN or infinite inputs are
// undefined.
package escape

import (
	"errors"
	"fmt"
	"math"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/formula"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

const (
	DefaultMaxIterations = 64
	DefaultThreshold     = 2.0
)

var ErrInvalidParams = errors.New("invalid escape params")

type Params struct {
	MaxIterations int
	Threshold     float64
}

func DefaultParams() Params {
	return Params{MaxIterations: DefaultMaxIterations, Threshold: DefaultThreshold}
}

func (p Params) Validate() error {
	if p.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidParams, p.MaxIterations)
	}
	if !(p.Threshold > 0) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("%w: threshold %v must be positive and finite", ErrInvalidParams, p.Threshold)
	}
	return nil
}

// Result is the escape time of one orbit.
// Iterations is the 0-indexed step at which |z| exceeded the threshold, or
// MaxIterations when the orbit stayed bounded.
type Result struct {
	Escaped    bool
	Iterations int
}

// Escape reports whether c escapes under the default params.
func Escape(c types.Complexf64) bool {
	return DefaultParams().Escape(c)
}

func (p Params) Escape(c types.Complexf64) bool {
	return p.Iterate(c).Escaped
}

func (p Params) Iterate(c types.Complexf64) Result {
	z := c
	for it := 0; it < p.MaxIterations; it += 1 {
		if z.Abs() > p.Threshold {
			return Result{Escaped: true, Iterations: it}
		}
		// z = z ^ 2 + c
		z = z.Mul(z).Add(c)
	}
	return Result{Iterations: p.MaxIterations}
}

func (p Params) EscapeExpr(c types.Complexf64, e formula.Expr) bool {
	return p.IterateExpr(c, e).Escaped
}

// IterateExpr runs the same loop as Iterate with e as the update step.
func (p Params) IterateExpr(c types.Complexf64, e formula.Expr) Result {
	z := c
	for it := 0; it < p.MaxIterations; it += 1 {
		if z.Abs() > p.Threshold {
			return Result{Escaped: true, Iterations: it}
		}
		z = e.Eval(z, c)
	}
	return Result{Iterations: p.MaxIterations}
}
