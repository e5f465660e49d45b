package formula

import (
	"errors"
	"testing"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

func TestParseEval(t *testing.T) {
	z := types.Complexf64{Re: 1, Im: 2}
	c := types.Complexf64{Re: 0.5, Im: -1}

	tests := []struct {
		src  string
		want complex128
	}{
		{Default, complex(1, 2)*complex(1, 2) + complex(0.5, -1)},
		{"z*z+c", complex(1, 2)*complex(1, 2) + complex(0.5, -1)},
		{"z", complex(1, 2)},
		{"c", complex(0.5, -1)},
		{"2", 2},
		{"2i", complex(0, 2)},
		{"1.5e1", 15},
		{"z ** 0", 1},
		{"z ** 3 + c", complex(1, 2)*complex(1, 2)*complex(1, 2) + complex(0.5, -1)},
		{"0.5 * z ** 2 + c", 0.5*complex(1, 2)*complex(1, 2) + complex(0.5, -1)},
		{"(z + c) * 2", (complex(1, 2) + complex(0.5, -1)) * 2},
		{"z - c", complex(1, 2) - complex(0.5, -1)},
		{"-z", -complex(1, 2)},
		{"--z", complex(1, 2)},
		{"-z ** 2", -(complex(1, 2) * complex(1, 2))},
		{"z ** 2 ** 2", complex(1, 2) * complex(1, 2) * complex(1, 2) * complex(1, 2)},
		{"z ** 1 ** 5", complex(1, 2)},
		{"z ** 0 ** 0", complex(1, 2)},
		{"  z\t**2\n+ c ", complex(1, 2)*complex(1, 2) + complex(0.5, -1)},
	}
	for _, tt := range tests {
		e, err := Parse(tt.src)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.src, err)
			continue
		}
		if got := e.Eval(z, c).Complex128(); got != tt.want {
			t.Errorf("Parse(%q).Eval = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src     string
		pos     int
		wrapped error
	}{
		{"", 0, nil},
		{"z +", 3, nil},
		{"z ** 2 + x", 9, ErrUnknownVariable},
		{"sin(z)", 0, ErrUnknownVariable},
		{"z ** c", 5, ErrExponent},
		{"z ** 2.5", 5, ErrExponent},
		{"z ** 65", 5, ErrExponent},
		{"z ** -1", 5, ErrExponent},
		{"z ** 2 ** 7", 5, ErrExponent},
		{"z ** 2 ** c", 10, ErrExponent},
		{"(z + c", 6, nil},
		{"z c", 2, nil},
		{"3z", 1, nil},
		{"z / 2", 2, nil},
		{"1e", 0, nil},
		{"z)", 1, nil},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) err = %v, want *SyntaxError", tt.src, err)
			continue
		}
		if se.Pos != tt.pos {
			t.Errorf("Parse(%q) pos = %d, want %d (%v)", tt.src, se.Pos, tt.pos, err)
		}
		if tt.wrapped != nil && !errors.Is(err, tt.wrapped) {
			t.Errorf("Parse(%q) err = %v, want wrapping %v", tt.src, err, tt.wrapped)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on malformed input")
		}
	}()
	MustParse("z **")
}

func TestString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{Default, "(z ** 2 + c)"},
		{"2i * z", "(2i * z)"},
		{"z - 1", "(z + (-1 * 1))"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.src).String(); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
