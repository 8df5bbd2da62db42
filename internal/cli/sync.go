package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/voicesync/internal/artifact"
	"github.com/roach88/voicesync/internal/store"
	"github.com/roach88/voicesync/internal/voicedb"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	DryRun  bool
	SoundID string
}

type syncOutput struct {
	*artifact.Result
	DatabaseDigest string              `json:"database_digest"`
	Wired          string              `json:"wired,omitempty"` // "new", "existing" or "failed" with --sound-id
	RunID          string              `json:"run_id,omitempty"`
	Warnings       []voicedb.Violation `json:"warnings"`
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	syncOpts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Validate the database and regenerate changed artifacts",
		Long: `Validate the voiceline database, render all three artifacts and write
those whose content changed.

Nothing is written when the database is invalid. Each changed file is
replaced atomically; a failure on one file does not stop the others.
With --dry-run the files that would change are listed and nothing is
touched. With --sound-id the run also confirms that id is defined and
reports whether it was newly wired into the artifacts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), rootOpts, syncOpts, cmd)
		},
	}

	cmd.Flags().BoolVar(&syncOpts.DryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().StringVar(&syncOpts.SoundID, "sound-id", "", "sound id that must be defined (e.g. climp_idle_5)")

	return cmd
}

func runSync(ctx context.Context, opts *RootOptions, syncOpts *SyncOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	db, report, err := s.loadValid()
	if err != nil {
		s.out.VerboseLog("No files written")
		return err
	}

	res, err := artifact.Sync(ctx, db, s.cfg.Targets(), artifact.Options{
		Render:  s.cfg.RenderOptions(),
		DryRun:  syncOpts.DryRun,
		SoundID: syncOpts.SoundID,
		Logger:  s.log,
	})
	if err != nil {
		if errors.Is(err, artifact.ErrUnknownSoundID) {
			_ = s.out.Error(ErrCodeUnknownSound, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeUnknownSound, err)
		}
		_ = s.out.Error(ErrCodeRender, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeRender, err)
	}

	output := syncOutput{Result: res, DatabaseDigest: db.Digest(), Warnings: report.Warnings}
	if syncOpts.SoundID != "" {
		switch {
		case res.SoundIDWasPresent:
			output.Wired = "existing"
		case res.NewlyWired():
			output.Wired = "new"
		default:
			output.Wired = "failed"
		}
	}

	if !syncOpts.DryRun {
		output.RunID = s.recordRun(ctx, db, res)
	}

	writeErr := res.Err()
	if s.out.Format == "json" {
		if writeErr != nil {
			msg := fmt.Sprintf("%d artifact(s) failed", len(res.Failed()))
			if err := s.out.Failure(ErrCodeWrite, msg, output); err != nil {
				return err
			}
			return WrapExitError(ExitFailure, msg, writeErr)
		}
		return s.out.Success(output)
	}

	printSyncText(s.out, output)
	if writeErr != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%d artifact(s) failed", len(res.Failed())), writeErr)
	}
	return nil
}

// recordRun appends the run to the journal when one is configured. Journal
// problems are logged and never fail a sync whose files were written.
func (s *session) recordRun(ctx context.Context, db *voicedb.Database, res *artifact.Result) string {
	path := s.cfg.JournalPath()
	if path == "" {
		return ""
	}
	j, err := store.Open(path)
	if err != nil {
		s.log.Warn("journal unavailable", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer j.Close()

	run, err := j.RecordRun(ctx, store.NewRun(s.cfg.Paths.Database, db.Digest(), res))
	if err != nil {
		s.log.Warn("journal write failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	s.log.Debug("run recorded", zap.String("run_id", run.ID))
	return run.ID
}

func printSyncText(out *OutputFormatter, o syncOutput) {
	printWarnings(out, o.Warnings)

	counts := map[artifact.Outcome]int{}
	for _, f := range o.Files {
		counts[f.Outcome]++
		label := string(f.Outcome)
		switch f.Outcome {
		case artifact.OutcomeChanged, artifact.OutcomeWouldChange:
			if f.Created {
				label += " (new)"
			}
			label = out.paint(colorGreen, label)
		case artifact.OutcomeFailed:
			label = out.paint(colorRed, label)
		}
		out.Printf("  %-20s %s\n", label, f.Path)
		if f.Error != "" {
			out.Printf("  %-20s %s\n", "", f.Error)
		}
	}

	switch o.Wired {
	case "new":
		out.Printf("Sound id %s: newly wired\n", o.SoundID)
	case "existing":
		out.Printf("Sound id %s: already present\n", o.SoundID)
	case "failed":
		out.Printf("Sound id %s: not wired, sound mapping was not written\n", o.SoundID)
	}

	if o.DryRun {
		out.OK("Dry run: %d would change, %d unchanged", counts[artifact.OutcomeWouldChange], counts[artifact.OutcomeUnchanged])
		return
	}
	if n := counts[artifact.OutcomeFailed]; n > 0 {
		_ = out.Failure(ErrCodeWrite, fmt.Sprintf("%d changed, %d unchanged, %d failed",
			counts[artifact.OutcomeChanged], counts[artifact.OutcomeUnchanged], n), nil)
		return
	}
	out.OK("%d changed, %d unchanged", counts[artifact.OutcomeChanged], counts[artifact.OutcomeUnchanged])
}
