package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/voicesync/internal/artifact"
)

// Run is one recorded sync.
type Run struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	Source         string    `json:"source"`
	DatabaseDigest string    `json:"database_digest"`
	SoundID        string    `json:"sound_id,omitempty"`
	Files          []RunFile `json:"files"`
}

// RunFile is the recorded outcome for one artifact.
type RunFile struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Outcome  string `json:"outcome"`
	Digest   string `json:"digest"`
	Error    string `json:"error,omitempty"`
}

// Changed counts files written by the run.
func (r Run) Changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == string(artifact.OutcomeChanged) {
			n++
		}
	}
	return n
}

// Failed counts files the run could not write.
func (r Run) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == string(artifact.OutcomeFailed) {
			n++
		}
	}
	return n
}

// NewRun converts a sync result into a journal entry. ID and StartedAt are
// assigned by RecordRun.
func NewRun(source, digest string, res *artifact.Result) Run {
	run := Run{Source: source, DatabaseDigest: digest, SoundID: res.SoundID}
	for _, f := range res.Files {
		run.Files = append(run.Files, RunFile{
			Artifact: string(f.Artifact),
			Path:     f.Path,
			Outcome:  string(f.Outcome),
			Digest:   f.Digest,
			Error:    f.Error,
		})
	}
	return run
}

// RecordRun stores a run and its file outcomes in one transaction. Missing
// ID and StartedAt are filled from the store's generators; the stored run
// is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.clock.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, source, database_digest, sound_id)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339Nano), run.Source, run.DatabaseDigest, run.SoundID)
	if err != nil {
		return Run{}, fmt.Errorf("record run %s: %w", run.ID, err)
	}

	for i, f := range run.Files {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_files (run_id, position, artifact, path, outcome, digest, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, f.Artifact, f.Path, f.Outcome, f.Digest, f.Error)
		if err != nil {
			return Run{}, fmt.Errorf("record run %s file %s: %w", run.ID, f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run %s: commit: %w", run.ID, err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, source, database_digest, sound_id
		FROM runs
		ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var started string
		if err := rows.Scan(&run.ID, &started, &run.Source, &run.DatabaseDigest, &run.SoundID); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("list runs: run %s: bad timestamp %q: %w", run.ID, started, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	// Release the single connection before querying files.
	rows.Close()

	for i := range runs {
		files, err := s.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (s *Store) runFiles(ctx context.Context, runID string) ([]RunFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT artifact, path, outcome, digest, error
		FROM run_files
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run files %s: %w", runID, err)
	}
	defer rows.Close()

	files := []RunFile{}
	for rows.Next() {
		var f RunFile
		if err := rows.Scan(&f.Artifact, &f.Path, &f.Outcome, &f.Digest, &f.Error); err != nil {
			return nil, fmt.Errorf("list run files %s: scan: %w", runID, err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
