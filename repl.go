package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

const (
	historyFile = ".escape_history"
	promptMain  = "c> "
	banner      = "escape: enter a complex value (e.g. 1+0.01i), :help for commands"
)

type repl struct {
	ev  *evaluator
	rec *recorder
	out io.Writer
	log *slog.Logger
}

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintln(r.out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := r.historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for ctx.Err() == nil {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := r.handle(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if s := strings.TrimSpace(line); s != "" {
			ln.AppendHistory(s)
		}
	}
	return nil
}

// historyPath is the history file in the user's home directory. Without a
// home directory the session keeps no history.
func (r *repl) historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		r.log.Debug("repl history disabled", "error", err)
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// handle evaluates one line of input. Bad values are reported to the user and
// do not end the session; only a failing store does.
func (r *repl) handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false, nil
	case ":quit", ":q":
		return true, nil
	case ":params":
		fmt.Fprintf(r.out, "max_iterations=%d threshold=%v formula=%q\n",
			r.ev.params.MaxIterations, r.ev.params.Threshold, r.ev.formula)
		return false, nil
	case ":help":
		fmt.Fprintln(r.out, "  <c>      evaluate a complex value, e.g. -0.75+0.1i")
		fmt.Fprintln(r.out, "  :params  show iteration budget, threshold and formula")
		fmt.Fprintln(r.out, "  :quit    exit")
		return false, nil
	}
	if strings.HasPrefix(line, ":") {
		fmt.Fprintf(r.out, "unknown command %s, type :help\n", line)
		return false, nil
	}

	c, perr := types.ParseComplexf64(line)
	if perr != nil {
		fmt.Fprintln(r.out, "error:", perr)
		return false, nil
	}
	res := r.ev.iterate(c)
	writeResult(r.out, c, res, true)

	if err := r.rec.record(ctx, []types.Complexf64{c}, []escape.Result{res}); err != nil {
		return false, err
	}
	r.log.Debug("evaluated", "c", c, "escaped", res.Escaped, "iterations", res.Iterations)
	return false, nil
}
