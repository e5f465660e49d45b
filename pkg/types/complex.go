package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("not a finite complex number")

// Complexf64 is a complex number kept as its (real, imaginary) pair.
// Values are never mutated in place, every operation returns a new one.
type Complexf64 struct {
	Re float64
	Im float64
}

func FromComplex128(c complex128) Complexf64 {
	return Complexf64{Re: real(c), Im: imag(c)}
}

func (c Complexf64) Complex128() complex128 {
	return complex(c.Re, c.Im)
}

func (c Complexf64) Add(o Complexf64) Complexf64 {
	return Complexf64{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

func (c Complexf64) Mul(o Complexf64) Complexf64 {
	return Complexf64{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Abs is the euclidean norm of the pair.
func (c Complexf64) Abs() float64 {
	return math.Hypot(c.Re, c.Im)
}

func (c Complexf64) IsFinite() bool {
	return !math.IsNaN(c.Re) && !math.IsInf(c.Re, 0) &&
		!math.IsNaN(c.Im) && !math.IsInf(c.Im, 0)
}

// String formats like Go's %v for complex128, e.g. "(1+0.01i)".
func (c Complexf64) String() string {
	return strconv.FormatComplex(c.Complex128(), 'g', -1, 128)
}

// ParseComplexf64 accepts Go complex literals ("1+0.01i", "-1", "2i", "(0+1i)").
// NaN and infinities are rejected.
func ParseComplexf64(s string) (Complexf64, error) {
	v, err := strconv.ParseComplex(strings.TrimSpace(s), 128)
	if err != nil {
		return Complexf64{}, fmt.Errorf("parse %q: %w", s, err)
	}
	c := FromComplex128(v)
	if !c.IsFinite() {
		return Complexf64{}, fmt.Errorf("parse %q: %w", s, ErrNotFinite)
	}
	return c, nil
}
