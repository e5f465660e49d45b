package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/store"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

// recorder appends evaluations to a single run, the run header is written on
// the first call. A recorder without a database does nothing.
type recorder struct {
	db  *store.DB
	ev  *evaluator
	run store.Run
	seq int
}

func newRecorder(db *store.DB, ev *evaluator) *recorder {
	return &recorder{db: db, ev: ev}
}

func (r *recorder) record(ctx context.Context, inputs []types.Complexf64, results []escape.Result) error {
	if r.db == nil || len(inputs) == 0 {
		return nil
	}
	if r.run.ID == "" {
		run, err := r.db.BeginRun(ctx, store.Run{
			Formula:       r.ev.formula,
			MaxIterations: r.ev.params.MaxIterations,
			Threshold:     r.ev.params.Threshold,
		})
		if err != nil {
			return err
		}
		r.run = run
	}

	evals := make([]store.Evaluation, len(inputs))
	for i, c := range inputs {
		evals[i] = store.Evaluation{Seq: r.seq + i, C: c, Result: results[i]}
	}
	if err := r.db.Record(ctx, r.run.ID, evals); err != nil {
		return err
	}
	r.seq += len(inputs)
	return nil
}

func printHistory(ctx context.Context, db *store.DB, n int, w io.Writer) error {
	if db == nil {
		return errors.New("no database")
	}
	recs, err := db.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s %d %v escaped=%t iterations=%d formula=%q\n",
			r.RunID, r.Seq, r.C(), r.Escaped, r.Iterations, r.Formula)
	}
	return nil
}
