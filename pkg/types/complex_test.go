package types

import (
	"errors"
	"testing"
)

func TestComplexArithmetic(t *testing.T) {
	a := Complexf64{Re: 3, Im: 4}
	b := Complexf64{Re: 1, Im: 2}

	if got := a.Add(b); got != (Complexf64{Re: 4, Im: 6}) {
		t.Errorf("Add = %v", got)
	}
	// (3+4i)(1+2i) = -5+10i
	if got := a.Mul(b); got != (Complexf64{Re: -5, Im: 10}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Abs(); got != 5 {
		t.Errorf("Abs = %v, want 5", got)
	}
	if got := a.Mul(b).Complex128(); got != complex(3, 4)*complex(1, 2) {
		t.Errorf("Mul disagrees with complex128: %v", got)
	}
}

func TestParseComplexf64(t *testing.T) {
	tests := []struct {
		in   string
		want Complexf64
	}{
		{"1+0.01i", Complexf64{Re: 1, Im: 0.01}},
		{"-1", Complexf64{Re: -1}},
		{"2i", Complexf64{Im: 2}},
		{" (0.5-0.25i) ", Complexf64{Re: 0.5, Im: -0.25}},
	}
	for _, tt := range tests {
		got, err := ParseComplexf64(tt.in)
		if err != nil {
			t.Errorf("ParseComplexf64(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseComplexf64(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseComplexf64Errors(t *testing.T) {
	if _, err := ParseComplexf64("z"); err == nil {
		t.Error("expected error for non-number")
	}
	for _, in := range []string{"NaN", "Inf", "-Inf"} {
		_, err := ParseComplexf64(in)
		if !errors.Is(err, ErrNotFinite) {
			t.Errorf("ParseComplexf64(%q) err = %v, want ErrNotFinite", in, err)
		}
	}
}

func TestComplexString(t *testing.T) {
	if got := (Complexf64{Re: 1, Im: 0.01}).String(); got != "(1+0.01i)" {
		t.Errorf("String = %q", got)
	}
}
