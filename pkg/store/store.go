// Package store keeps a SQLite log of escape evaluations grouped into runs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/types"
)

// DB wraps a SQLite connection holding recorded runs.
type DB struct {
	conn *sqlx.DB
}

// Run is one invocation of the evaluator with fixed params and formula.
type Run struct {
	ID            string    `db:"id"`
	Formula       string    `db:"formula"`
	MaxIterations int       `db:"max_iterations"`
	Threshold     float64   `db:"threshold"`
	CreatedAt     time.Time `db:"created_at"`
}

// Evaluation is a single input and its escape result, Seq is its position in
// the run's input.
type Evaluation struct {
	Seq    int
	C      types.Complexf64
	Result escape.Result
}

// Record is an evaluation joined with the run it belongs to.
type Record struct {
	RunID      string  `db:"run_id"`
	Formula    string  `db:"formula"`
	Seq        int     `db:"seq"`
	Re         float64 `db:"re"`
	Im         float64 `db:"im"`
	Escaped    bool    `db:"escaped"`
	Iterations int     `db:"iterations"`
}

func (r Record) C() types.Complexf64 {
	return types.Complexf64{Re: r.Re, Im: r.Im}
}

// NewRunID returns a fresh random run id.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		formula TEXT NOT NULL,
		max_iterations INTEGER NOT NULL,
		threshold REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS evaluations (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq INTEGER NOT NULL,
		re REAL NOT NULL,
		im REAL NOT NULL,
		escaped INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun stores the run header. An empty ID is replaced by NewRunID and a
// zero CreatedAt by the current time; the stored run is returned.
func (db *DB) BeginRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.NamedExecContext(ctx, `INSERT INTO runs
		(id, formula, max_iterations, threshold, created_at)
		VALUES (:id, :formula, :max_iterations, :threshold, :created_at)`, run)
	if err != nil {
		return Run{}, fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return run, nil
}

// Record appends evaluations to a run in one transaction.
func (db *DB) Record(ctx context.Context, runID string, evals []Evaluation) error {
	if len(evals) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO evaluations
		(run_id, seq, re, im, escaped, iterations)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range evals {
		_, err := stmt.ExecContext(ctx,
			runID, e.Seq, e.C.Re, e.C.Im, e.Result.Escaped, e.Result.Iterations,
		)
		if err != nil {
			return fmt.Errorf("insert evaluation %s/%d: %w", runID, e.Seq, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run header by id.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	var run Run
	err := db.conn.GetContext(ctx, &run,
		"SELECT id, formula, max_iterations, threshold, created_at FROM runs WHERE id = ?", id)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: %w", id, err)
	}
	return run, nil
}

// Recent returns the most recent N evaluations, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]Record, error) {
	var records []Record
	err := db.conn.SelectContext(ctx, &records, `
		SELECT e.run_id, r.formula, e.seq, e.re, e.im, e.escaped, e.iterations
		FROM evaluations e JOIN runs r ON r.id = e.run_id
		ORDER BY e.rowid DESC LIMIT ?`,
		limit,
	)
	return records, err
}
