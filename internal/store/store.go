// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists batch runs and their structured records in a
// SQLite database so results can be listed and re-rendered later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ocr-actions/pkg/types"
)

const (
	dbFile           = "ocr-actions.db"
	defaultListLimit = 20
	// Fixed width so timestamps sort lexically in time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNoRuns is returned when the latest run is requested from an empty store.
var ErrNoRuns = errors.New("no runs stored")

// Run summarizes one stored batch run.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Engine     string    `json:"engine" yaml:"engine"`
	Images     int       `json:"images" yaml:"images"`
	Failed     int       `json:"failed" yaml:"failed"`
	Records    int       `json:"records" yaml:"records"`
}

// Store manages the record database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.DataDir/ocr-actions.db and
// creates the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			engine TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			path TEXT NOT NULL,
			error TEXT,
			dropped INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id TEXT NOT NULL,
			image_seq INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			fields TEXT NOT NULL,
			PRIMARY KEY (run_id, image_seq, seq),
			FOREIGN KEY (run_id, image_seq) REFERENCES images(run_id, seq) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores results as one run in a single transaction. A missing
// run ID is filled with a new UUID; the ID used is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, results []types.ImageResult) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, engine) VALUES (?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout), run.Engine,
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, r := range results {
		errText := r.Error
		if r.Err != nil {
			errText = r.Err.Error()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO images (run_id, seq, path, error, dropped) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, r.Path, nullString(errText), r.Dropped,
		); err != nil {
			return "", fmt.Errorf("inserting image %s: %w", r.Path, err)
		}
		for j, rec := range r.Records {
			fields, err := json.Marshal([]string(rec))
			if err != nil {
				return "", fmt.Errorf("encoding record %d of %s: %w", j, r.Path, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO records (run_id, image_seq, seq, fields) VALUES (?, ?, ?, ?)`,
				run.ID, i, j, string(fields),
			); err != nil {
				return "", fmt.Errorf("inserting record %d of %s: %w", j, r.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs first. A non-positive limit
// selects the default of 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.finished_at, COALESCE(r.engine, ''),
			(SELECT count(*) FROM images i WHERE i.run_id = r.id),
			(SELECT count(*) FROM images i WHERE i.run_id = r.id AND i.error IS NOT NULL),
			(SELECT count(*) FROM records c WHERE c.run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run             Run
			started, finish string
		)
		if err := rows.Scan(&run.ID, &started, &finish, &run.Engine, &run.Images, &run.Failed, &run.Records); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing start time of run %s: %w", run.ID, err)
		}
		if run.FinishedAt, err = time.Parse(timeLayout, finish); err != nil {
			return nil, fmt.Errorf("parsing finish time of run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRunID returns the ID of the most recently started run.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRuns
	}
	if err != nil {
		return "", fmt.Errorf("querying latest run: %w", err)
	}
	return id, nil
}

// Results loads a run's per-image results in their original order. An
// empty runID selects the latest run. When contains is non-empty only
// records with a field containing it (case-insensitively) are returned;
// images are kept even if none of their records match.
func (s *Store) Results(ctx context.Context, runID, contains string) ([]types.ImageResult, error) {
	if runID == "" {
		latest, err := s.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		runID = latest
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, path, COALESCE(error, ''), dropped FROM images WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	var results []types.ImageResult
	for rows.Next() {
		var (
			seq int
			r   types.ImageResult
		)
		if err := rows.Scan(&seq, &r.Path, &r.Error, &r.Dropped); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recRows, err := s.db.QueryContext(ctx,
		`SELECT image_seq, fields FROM records WHERE run_id = ? ORDER BY image_seq, seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer recRows.Close()

	needle := strings.ToLower(contains)
	for recRows.Next() {
		var (
			imageSeq int
			raw      string
		)
		if err := recRows.Scan(&imageSeq, &raw); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var rec types.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding record of image %d: %w", imageSeq, err)
		}
		if needle != "" && !matches(rec, needle) {
			continue
		}
		if imageSeq < 0 || imageSeq >= len(results) {
			return nil, fmt.Errorf("record references unknown image %d", imageSeq)
		}
		results[imageSeq].Records = append(results[imageSeq].Records, rec)
	}
	return results, recRows.Err()
}

func matches(rec types.Record, needle string) bool {
	for _, f := range rec {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
