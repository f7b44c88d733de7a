// Package store writes analysis results to SQLite.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/pwscope/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for exported runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			corpus_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS corpus_results (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			path TEXT NOT NULL,
			total INTEGER NOT NULL,
			count INTEGER NOT NULL,
			mean REAL NOT NULL,
			median REAL NOT NULL,
			variance REAL NOT NULL,
			stdev REAL NOT NULL,
			score_0 INTEGER NOT NULL,
			score_1 INTEGER NOT NULL,
			score_2 INTEGER NOT NULL,
			score_3 INTEGER NOT NULL,
			score_4 INTEGER NOT NULL,
			unique_count INTEGER NOT NULL,
			duplicate_count INTEGER NOT NULL,
			digit_count INTEGER NOT NULL,
			upper_count INTEGER NOT NULL,
			special_count INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_corpus_results_label ON corpus_results(label);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores one run and its per-corpus results in input order.
func (s *Store) InsertRun(ctx context.Context, runID string, createdAt time.Time, reports []model.CorpusReport) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, corpus_count) VALUES (?, ?, ?)`,
		runID, createdAt.Format(time.RFC3339Nano), len(reports),
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO corpus_results (run_id, position, label, path, total, count, mean, median, variance, stdev,
			score_0, score_1, score_2, score_3, score_4, unique_count, duplicate_count, digit_count, upper_count, special_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, r := range reports {
		if _, err = stmt.ExecContext(ctx,
			runID, i, r.Corpus.Label, r.Corpus.Path, r.Total,
			r.Summary.Count, r.Summary.Mean, r.Summary.Median, r.Summary.Variance, r.Summary.StdDev,
			r.Frequency[0], r.Frequency[1], r.Frequency[2], r.Frequency[3], r.Frequency[4],
			r.Uniqueness.Unique, r.Uniqueness.Duplicate,
			r.Classes.Digit, r.Classes.Upper, r.Classes.Special,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListCorpusResults returns the stored results of a run in input order.
// The CLI only writes; this read-back serves export verification in tests.
func (s *Store) ListCorpusResults(ctx context.Context, runID string) ([]model.CorpusReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, path, total, count, mean, median, variance, stdev,
			score_0, score_1, score_2, score_3, score_4, unique_count, duplicate_count, digit_count, upper_count, special_count
		FROM corpus_results
		WHERE run_id = ?
		ORDER BY position ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CorpusReport
	for rows.Next() {
		var r model.CorpusReport
		if err := rows.Scan(
			&r.Corpus.Label, &r.Corpus.Path, &r.Total,
			&r.Summary.Count, &r.Summary.Mean, &r.Summary.Median, &r.Summary.Variance, &r.Summary.StdDev,
			&r.Frequency[0], &r.Frequency[1], &r.Frequency[2], &r.Frequency[3], &r.Frequency[4],
			&r.Uniqueness.Unique, &r.Uniqueness.Duplicate,
			&r.Classes.Digit, &r.Classes.Upper, &r.Classes.Special,
		); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountRuns returns the number of stored runs. Used by tests to check that
// each export appends exactly one run.
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
