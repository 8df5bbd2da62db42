package artifact

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/voicesync/internal/render"
	"github.com/roach88/voicesync/internal/voicedb"
)

// Targets are the destination paths of the three artifacts.
type Targets struct {
	Lookup   string
	Registry string
	Mapping  string
}

// Path returns the destination of a.
func (t Targets) Path(a render.Artifact) string {
	switch a {
	case render.ArtifactLookup:
		return t.Lookup
	case render.ArtifactRegistry:
		return t.Registry
	case render.ArtifactMapping:
		return t.Mapping
	}
	return ""
}

// Options control a sync run.
type Options struct {
	Render render.Options

	// DryRun reports what would change without touching the filesystem.
	DryRun bool

	// SoundID, when set, must be defined by the database. The result
	// reports whether the existing sound mapping already referenced it.
	SoundID string

	Logger *zap.Logger
}

// Outcome is what happened to one target.
type Outcome string

const (
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeChanged     Outcome = "changed"
	OutcomeWouldChange Outcome = "would-change"
	OutcomeFailed      Outcome = "failed"
)

// FileResult is the outcome for one artifact.
type FileResult struct {
	Artifact render.Artifact `json:"artifact"`
	Path     string          `json:"path"`
	Outcome  Outcome         `json:"outcome"`
	Created  bool            `json:"created,omitempty"`
	Digest   string          `json:"digest"`
	Error    string          `json:"error,omitempty"`

	err error
}

// Err returns the failure for this target, if any.
func (f FileResult) Err() error {
	return f.err
}

// Result summarizes a sync run.
type Result struct {
	DryRun  bool         `json:"dry_run"`
	Files   []FileResult `json:"files"`
	SoundID string       `json:"sound_id,omitempty"`

	// SoundIDWasPresent is set when the sound mapping on disk before the
	// run already had a key for SoundID.
	SoundIDWasPresent bool `json:"sound_id_was_present,omitempty"`
}

// Changed returns the paths that were written, or in a dry run, the paths
// that would be.
func (r *Result) Changed() []string {
	var paths []string
	for _, f := range r.Files {
		if f.Outcome == OutcomeChanged || f.Outcome == OutcomeWouldChange {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Failed returns the targets that could not be written.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Outcome == OutcomeFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// Err joins the per-path failures; nil when every target succeeded.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Failed() {
		errs = append(errs, f.Err())
	}
	return errors.Join(errs...)
}

// NewlyWired reports whether the run added SoundID to the sound mapping:
// the previous mapping did not reference it and the new one was written
// (or would be, in a dry run). Changes to unrelated lines do not count.
func (r *Result) NewlyWired() bool {
	if r.SoundID == "" || r.SoundIDWasPresent {
		return false
	}
	for _, f := range r.Files {
		if f.Artifact == render.ArtifactMapping {
			return f.Outcome == OutcomeChanged || f.Outcome == OutcomeWouldChange
		}
	}
	return false
}

// Sync regenerates every artifact from db and brings the targets up to
// date. Targets whose content already matches are not written. A failure
// on one path is recorded in the result and the remaining paths are still
// attempted; the returned error is reserved for problems that stop the run
// before any file is touched (nil database, unknown sound id, render
// failure).
func Sync(ctx context.Context, db *voicedb.Database, targets Targets, opts Options) (*Result, error) {
	if db == nil {
		return nil, errors.New("sync: nil database")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if opts.SoundID != "" {
		if _, _, ok := db.Find(opts.SoundID); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSoundID, opts.SoundID)
		}
	}

	rendered := make(map[render.Artifact][]byte, len(render.Artifacts))
	for _, a := range render.Artifacts {
		if targets.Path(a) == "" {
			return nil, fmt.Errorf("sync: no target path for %s", a)
		}
		out, err := render.Render(a, db, opts.Render)
		if err != nil {
			return nil, err
		}
		rendered[a] = out
	}

	res := &Result{DryRun: opts.DryRun, SoundID: opts.SoundID}
	for _, a := range render.Artifacts {
		fr, previous := syncOne(ctx, a, targets.Path(a), rendered[a], opts.DryRun)
		if a == render.ArtifactMapping && opts.SoundID != "" {
			res.SoundIDWasPresent = mappingDefines(previous, opts.SoundID)
		}
		log.Debug("artifact synced",
			zap.String("artifact", string(a)),
			zap.String("path", fr.Path),
			zap.String("outcome", string(fr.Outcome)),
			zap.String("digest", fr.Digest),
		)
		if fr.err != nil {
			log.Warn("artifact write failed", zap.String("path", fr.Path), zap.Error(fr.err))
		}
		res.Files = append(res.Files, fr)
	}
	return res, nil
}

// syncOne brings one target up to date and also returns the content the
// target held before the run (nil when it did not exist or was unreadable).
func syncOne(ctx context.Context, a render.Artifact, path string, content []byte, dryRun bool) (FileResult, []byte) {
	fr := FileResult{Artifact: a, Path: path, Digest: Digest(content)}
	fail := func(err error) FileResult {
		fr.Outcome = OutcomeFailed
		fr.err = err
		fr.Error = err.Error()
		return fr
	}

	current, perm, exists, err := readCurrent(path)
	if err != nil {
		return fail(err), nil
	}
	fr.Created = !exists
	if exists && bytes.Equal(current, content) {
		fr.Outcome = OutcomeUnchanged
		return fr, current
	}
	if dryRun {
		fr.Outcome = OutcomeWouldChange
		return fr, current
	}
	if err := ctx.Err(); err != nil {
		return fail(&WriteError{Path: path, Op: "cancel", Err: err}), current
	}
	if err := writeAtomic(path, content, perm); err != nil {
		return fail(err), current
	}
	fr.Outcome = OutcomeChanged
	return fr, current
}

// mappingDefines reports whether sound-mapping content has a top-level key
// equal to id. Content that is not a JSON object defines nothing.
func mappingDefines(content []byte, id string) bool {
	if len(content) == 0 {
		return false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(content, &keys); err != nil {
		return false
	}
	_, ok := keys[id]
	return ok
}

// Digest returns the hex SHA-256 of rendered artifact content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
