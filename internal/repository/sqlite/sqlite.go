// Package sqlite implements the run-history repository on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vocabgraph/internal/domain"
	"vocabgraph/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		glossary_path TEXT NOT NULL,
		report_path TEXT NOT NULL,
		term_count INTEGER NOT NULL,
		total_hits INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_terms (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		term TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_run_terms_run ON run_terms(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// RecordRun persists a run and its full frequency record in one transaction
func (r *Repository) RecordRun(ctx context.Context, run *repository.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, glossary_path, report_path, term_count, total_hits)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt.UnixNano(), run.GlossaryPath, run.ReportPath, run.TermCount, run.TotalHits)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if run.Record != nil {
		for i, tc := range run.Record.Counts {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO run_terms (run_id, position, term, count)
				VALUES (?, ?, ?, ?)
			`, run.ID, i, tc.Term, tc.Count)
			if err != nil {
				return fmt.Errorf("failed to insert term %q: %w", tc.Term, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads a run with its record, term rows in catalog order
func (r *Repository) GetRun(ctx context.Context, id string) (*repository.Run, error) {
	run, err := r.scanRun(r.db.QueryRowContext(ctx, `
		SELECT id, created_at, glossary_path, report_path, term_count, total_hits
		FROM runs WHERE id = ?
	`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT term, count FROM run_terms
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run terms: %w", err)
	}
	defer rows.Close()

	rec := &domain.FrequencyRecord{Counts: make([]domain.TermCount, 0, run.TermCount)}
	for rows.Next() {
		var tc domain.TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run term: %w", err)
		}
		rec.Counts = append(rec.Counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run terms: %w", err)
	}

	run.Record = rec
	return run, nil
}

// ListRuns returns the most recent runs, newest first, without records
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]*repository.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, glossary_path, report_path, term_count, total_hits
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*repository.Run, 0, limit)
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanRun(row scanner) (*repository.Run, error) {
	var run repository.Run
	var createdAt int64

	if err := row.Scan(&run.ID, &createdAt, &run.GlossaryPath, &run.ReportPath, &run.TermCount, &run.TotalHits); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %w", err)
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()

	return &run, nil
}
