// Command escape reports whether complex parameters escape under z = z^2 + c.
//
//	escape [flags] [c ...]
//
// Each c is a Go complex literal such as 1+0.01i, -1 or 2i. Without arguments
// the value 1+0.01i is evaluated. One line per input is written to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/config"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/store"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const referenceValue = "1+0.01i"

type options struct {
	cfg     config.Config
	stdin   bool
	repl    bool
	verbose bool
	debug   bool
	history int
	inputs  []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("escape", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: escape [flags] [c ...]\n\nflags:\n")
		fs.PrintDefaults()
	}

	def := config.Default()
	configPath := fs.String("config", "", "YAML config `file`")
	maxIt := fs.Int("n", def.MaxIterations, "iteration budget")
	threshold := fs.Float64("threshold", def.Threshold, "escape radius, |z| must exceed it")
	expr := fs.String("formula", def.Formula, "update `expression` over z and c")
	workers := fs.Int("workers", def.Workers, "evaluation goroutines")
	dbPath := fs.String("db", def.DB, "record evaluations in this SQLite `file`")

	var o options
	fs.BoolVar(&o.stdin, "stdin", false, "read one value per line from stdin")
	fs.BoolVar(&o.repl, "repl", false, "interactive prompt")
	fs.BoolVar(&o.verbose, "v", false, "print escape iteration counts")
	fs.BoolVar(&o.debug, "debug", false, "debug logging")
	fs.IntVar(&o.history, "history", 0, "print the last `N` recorded evaluations and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o.cfg = def
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return options{}, err
		}
		o.cfg = cfg
	}

	// flags given on the command line win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			o.cfg.MaxIterations = *maxIt
		case "threshold":
			o.cfg.Threshold = *threshold
		case "formula":
			o.cfg.Formula = *expr
		case "workers":
			o.cfg.Workers = *workers
		case "db":
			o.cfg.DB = *dbPath
		}
	})
	if err := o.cfg.Validate(); err != nil {
		return options{}, err
	}

	o.inputs = fs.Args()
	switch {
	case o.stdin && o.repl:
		return options{}, errors.New("-stdin and -repl are exclusive")
	case (o.stdin || o.repl) && len(o.inputs) > 0:
		return options{}, errors.New("positional values cannot be combined with -stdin or -repl")
	case o.history < 0:
		return options{}, errors.New("-history must not be negative")
	case o.history > 0 && o.cfg.DB == "":
		return options{}, errors.New("-history needs -db")
	}
	return o, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "escape:", err)
		return exitUsage
	}
	log := newLogger(stderr, o.debug)

	ev, err := newEvaluator(o.cfg)
	if err != nil {
		fmt.Fprintln(stderr, "escape:", err)
		return exitUsage
	}
	log.Debug("params",
		"max_iterations", o.cfg.MaxIterations,
		"threshold", o.cfg.Threshold,
		"formula", ev.formula,
		"workers", o.cfg.Workers,
	)

	var db *store.DB
	if o.cfg.DB != "" {
		db, err = store.Open(o.cfg.DB)
		if err != nil {
			log.Error("failed to open database", "path", o.cfg.DB, "error", err)
			return exitError
		}
		defer db.Close()
		log.Debug("database opened", "path", o.cfg.DB)
	}

	if o.history > 0 {
		if err := printHistory(ctx, db, o.history, stdout); err != nil {
			log.Error("failed to read history", "error", err)
			return exitError
		}
		return exitOK
	}

	if o.repl {
		if !isTerminal(stdin) {
			fmt.Fprintln(stderr, "escape: -repl needs a terminal on stdin")
			return exitUsage
		}
		r := &repl{ev: ev, rec: newRecorder(db, ev), out: stdout, log: log}
		if err := r.run(ctx); err != nil {
			log.Error("repl failed", "error", err)
			return exitError
		}
		return exitOK
	}

	var inputs []types.Complexf64
	if o.stdin {
		if isTerminal(stdin) {
			log.Info("reading values from terminal, one per line, end with Ctrl-D")
		}
		inputs, err = readInputs(stdin)
	} else {
		if len(o.inputs) == 0 {
			o.inputs = []string{referenceValue}
		}
		inputs, err = parseInputs(o.inputs)
	}
	if err != nil {
		fmt.Fprintln(stderr, "escape:", err)
		return exitUsage
	}

	b := &batch{ev: ev, workers: o.cfg.Workers, log: log}
	results, err := b.evaluate(ctx, inputs)
	if err != nil {
		log.Error("evaluation stopped", "error", err)
		return exitError
	}
	for i, c := range inputs {
		writeResult(stdout, c, results[i], o.verbose)
	}

	if db != nil {
		rec := newRecorder(db, ev)
		if err := rec.record(ctx, inputs, results); err != nil {
			log.Error("failed to record run", "error", err)
			return exitError
		}
		log.Info("run recorded", "run", rec.run.ID, "path", o.cfg.DB)
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
