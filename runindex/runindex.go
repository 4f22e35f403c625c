// Package runindex is a SQLite catalogue of finished generation runs.
//
// Only terminal runs are recorded: completed maps and runs that failed with a
// configuration error or a contradiction. Partial waves are never stored.
// Each run is one row in runs plus one row per state in run_states.
package runindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wfc"
)

// Sentinel errors.
var (
	// ErrEmptyPath indicates Open was called without a database path.
	ErrEmptyPath = errors.New("runindex: empty db path")
	// ErrNotFound indicates an unknown run id.
	ErrNotFound = errors.New("runindex: run not found")
	// ErrClosed indicates use of a closed index.
	ErrClosed = errors.New("runindex: index closed")
)

const timeLayout = time.RFC3339Nano

// Run is the catalogue record of one finished run.
type Run struct {
	ID            string
	CreatedAt     time.Time
	Preset        string
	Dimensions    lattice.Dimensions
	MaxDistance   int
	Seed          int64 // seed of the final attempt
	Attempts      int
	Contradiction string
	Phase         string
	Error         string
	Stats         wfc.Stats
	Duration      time.Duration
	Output        string
	// Counts maps state names to collapsed cell counts.
	Counts map[string]int
}

// Index is an open catalogue. It is safe for concurrent use.
type Index struct {
	db     *sql.DB
	once   sync.Once
	closed atomic.Bool
}

// Open opens or creates the catalogue at path.
func Open(path string) (*Index, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("runindex: %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			preset TEXT NOT NULL,
			width INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			height INTEGER NOT NULL,
			max_distance INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			contradiction TEXT NOT NULL,
			phase TEXT NOT NULL,
			error TEXT NOT NULL,
			cells INTEGER NOT NULL,
			observed INTEGER NOT NULL,
			forced_initial INTEGER NOT NULL,
			forced_propagated INTEGER NOT NULL,
			sampled INTEGER NOT NULL,
			updates INTEGER NOT NULL,
			latent INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			output TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE TABLE IF NOT EXISTS run_states (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			state TEXT NOT NULL,
			cells INTEGER NOT NULL,
			PRIMARY KEY (run_id, state)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database. Further calls return nil.
func (x *Index) Close() error {
	var err error
	x.once.Do(func() {
		x.closed.Store(true)
		err = x.db.Close()
	})
	return err
}

// Record stores r and returns its id. A missing id is generated; a zero
// CreatedAt is set to the current time.
func (x *Index) Record(ctx context.Context, r Run) (string, error) {
	if x.closed.Load() {
		return "", ErrClosed
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	s := r.Stats
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (
			id, created_at, preset, width, depth, height, max_distance, seed, attempts,
			contradiction, phase, error, cells, observed, forced_initial, forced_propagated,
			sampled, updates, latent, duration_ns, output
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Preset,
		r.Dimensions.Width, r.Dimensions.Depth, r.Dimensions.Height,
		r.MaxDistance, r.Seed, r.Attempts, r.Contradiction, r.Phase, r.Error,
		s.Cells, s.Observed, s.ForcedInitial, s.ForcedPropagated, s.Sampled, s.Updates, s.Latent,
		int64(r.Duration), r.Output)
	if err != nil {
		return "", fmt.Errorf("runindex: insert run: %w", err)
	}

	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_states (run_id, state, cells) VALUES (?,?,?)`,
			r.ID, name, r.Counts[name]); err != nil {
			return "", fmt.Errorf("runindex: insert state %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return r.ID, nil
}

const selectRuns = `SELECT
	id, created_at, preset, width, depth, height, max_distance, seed, attempts,
	contradiction, phase, error, cells, observed, forced_initial, forced_propagated,
	sampled, updates, latent, duration_ns, output
FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r       Run
		created string
		dur     int64
	)
	s := &r.Stats
	err := row.Scan(&r.ID, &created, &r.Preset,
		&r.Dimensions.Width, &r.Dimensions.Depth, &r.Dimensions.Height,
		&r.MaxDistance, &r.Seed, &r.Attempts, &r.Contradiction, &r.Phase, &r.Error,
		&s.Cells, &s.Observed, &s.ForcedInitial, &s.ForcedPropagated, &s.Sampled, &s.Updates, &s.Latent,
		&dur, &r.Output)
	if err != nil {
		return r, err
	}
	r.Duration = time.Duration(dur)
	r.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return r, fmt.Errorf("runindex: run %s: created_at: %w", r.ID, err)
	}
	return r, nil
}

// Get returns the run with the given id, or ErrNotFound.
func (x *Index) Get(ctx context.Context, id string) (Run, error) {
	if x.closed.Load() {
		return Run{}, ErrClosed
	}
	r, err := scanRun(x.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	if r.Counts, err = x.counts(ctx, id); err != nil {
		return Run{}, err
	}
	return r, nil
}

// List returns the most recent runs first; limit ≤ 0 returns all of them.
func (x *Index) List(ctx context.Context, limit int) ([]Run, error) {
	if x.closed.Load() {
		return nil, ErrClosed
	}
	q := selectRuns + ` ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Counts, err = x.counts(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (x *Index) counts(ctx context.Context, id string) (map[string]int, error) {
	rows, err := x.db.QueryContext(ctx, `SELECT state, cells FROM run_states WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, rows.Err()
}
