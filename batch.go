package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

type iterateWork struct {
	seq int
	c   types.Complexf64
}

// batch evaluates independent inputs on a fixed set of workers fed from one
// queue. Every worker writes only to results[seq] of the work it took.
type batch struct {
	ev      *evaluator
	workers int
	log     *slog.Logger
}

func (b *batch) evaluate(ctx context.Context, inputs []types.Complexf64) ([]escape.Result, error) {
	start := time.Now()
	results := make([]escape.Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	workers := max(1, min(b.workers, len(inputs)))
	iq := types.NewControlledQueue[iterateWork]()
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for i := 0; i < workers; i += 1 {
		go b.processIterationWork(ctx, iq, results, wg)
	}

	for seq, c := range inputs {
		if ctx.Err() != nil {
			break
		}
		iq.Send(iterateWork{seq: seq, c: c})
	}
	iq.Close()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	escaped := 0
	for _, r := range results {
		if r.Escaped {
			escaped++
		}
	}
	b.log.Debug("batch done",
		"inputs", humanize.Comma(int64(len(inputs))),
		"escaped", humanize.Comma(int64(escaped)),
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return results, nil
}

func (b *batch) processIterationWork(ctx context.Context, iq *types.ControlledQueue[iterateWork], results []escape.Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		iw, ok := iq.Recv()
		if !ok {
			return
		}
		if ctx.Err() != nil {
			return
		}
		results[iw.seq] = b.ev.iterate(iw.c)
	}
}
