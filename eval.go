package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/config"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/formula"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

var builtinFormula = formula.MustParse(formula.Default).String()

type evaluator struct {
	params  escape.Params
	expr    formula.Expr // nil runs the built-in z^2 + c loop
	formula string
}

func newEvaluator(cfg config.Config) (*evaluator, error) {
	if err := cfg.Params().Validate(); err != nil {
		return nil, err
	}
	e, err := formula.Parse(cfg.Formula)
	if err != nil {
		return nil, err
	}
	ev := &evaluator{params: cfg.Params(), formula: cfg.Formula}
	if e.String() != builtinFormula {
		ev.expr = e
	}
	return ev, nil
}

func (ev *evaluator) iterate(c types.Complexf64) escape.Result {
	if ev.expr == nil {
		return ev.params.Iterate(c)
	}
	return ev.params.IterateExpr(c, ev.expr)
}

func parseInputs(args []string) ([]types.Complexf64, error) {
	inputs := make([]types.Complexf64, 0, len(args))
	for i, a := range args {
		c, err := types.ParseComplexf64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		inputs = append(inputs, c)
	}
	return inputs, nil
}

// readInputs reads one value per line. Blank lines and lines starting with
// '#' are skipped.
func readInputs(r io.Reader) ([]types.Complexf64, error) {
	var inputs []types.Complexf64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		c, err := types.ParseComplexf64(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		inputs = append(inputs, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return inputs, nil
}

func writeResult(w io.Writer, c types.Complexf64, r escape.Result, verbose bool) {
	if verbose {
		fmt.Fprintf(w, "%v escaped=%t iterations=%d\n", c, r.Escaped, r.Iterations)
		return
	}
	fmt.Fprintf(w, "%v escaped=%t\n", c, r.Escaped)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
