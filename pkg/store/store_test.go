package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "escape.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBeginRunFillsDefaults(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	run, err := db.BeginRun(ctx, Run{Formula: "z ** 2 + c", MaxIterations: 64, Threshold: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", run.ID, err)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got, err := db.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != run.ID || got.Formula != run.Formula || got.MaxIterations != 64 || got.Threshold != 2 {
		t.Errorf("GetRun = %+v, want %+v", got, run)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	run, err := db.BeginRun(ctx, Run{
		ID:            "run-1",
		Formula:       "z ** 2 + c",
		MaxIterations: 64,
		Threshold:     2,
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}

	inputs := []types.Complexf64{{}, {Re: 2}, {Re: 1, Im: 0.01}}
	var evals []Evaluation
	for i, c := range inputs {
		evals = append(evals, Evaluation{Seq: i, C: c, Result: escape.DefaultParams().Iterate(c)})
	}
	if err := db.Record(ctx, run.ID, evals); err != nil {
		t.Fatal(err)
	}
	if err := db.Record(ctx, run.ID, nil); err != nil {
		t.Errorf("Record(nil) = %v", err)
	}

	recs, err := db.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("Recent(2) returned %d records", len(recs))
	}
	// newest first
	for i, want := range []Evaluation{evals[2], evals[1]} {
		r := recs[i]
		if r.RunID != "run-1" || r.Formula != "z ** 2 + c" || r.Seq != want.Seq {
			t.Errorf("record %d = %+v", i, r)
		}
		if r.C() != want.C || r.Escaped != want.Result.Escaped || r.Iterations != want.Result.Iterations {
			t.Errorf("record %d = %+v, want %+v", i, r, want)
		}
	}
}

func TestRecordDuplicateSeqRollsBack(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	run, err := db.BeginRun(ctx, Run{Formula: "c", MaxIterations: 1, Threshold: 2})
	if err != nil {
		t.Fatal(err)
	}
	evals := []Evaluation{{Seq: 0}, {Seq: 0}}
	if err := db.Record(ctx, run.ID, evals); err == nil {
		t.Fatal("expected duplicate seq error")
	}
	recs, err := db.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("failed transaction left %d records", len(recs))
	}
}

func TestGetRunMissing(t *testing.T) {
	db := openTemp(t)
	if _, err := db.GetRun(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
