package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	histOpts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sync runs, newest first",
		Args:  cobra.NoArgs,
		Long: `List the sync runs recorded in the journal (paths.journal). Dry runs are
never recorded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), rootOpts, histOpts, cmd)
		},
	}

	cmd.Flags().IntVar(&histOpts.Limit, "limit", 10, "maximum number of runs (0 for all)")

	return cmd
}

func runHistory(ctx context.Context, opts *RootOptions, histOpts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	if histOpts.Limit < 0 {
		return s.usageError(fmt.Sprintf("invalid limit %d", histOpts.Limit))
	}

	path := s.cfg.JournalPath()
	if path == "" {
		msg := "journal disabled: set paths.journal"
		_ = s.out.Error(ErrCodeJournal, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	j, err := store.Open(path)
	if err != nil {
		_ = s.out.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}
	defer j.Close()

	runs, err := j.ListRuns(ctx, histOpts.Limit)
	if err != nil {
		_ = s.out.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	if s.out.Format == "json" {
		return s.out.Success(runs)
	}
	if len(runs) == 0 {
		s.out.Printf("No runs recorded\n")
		return nil
	}
	for _, r := range runs {
		s.out.Printf("%s  %s  changed=%d failed=%d  db=%s\n",
			r.StartedAt.Format(time.RFC3339), r.ID, r.Changed(), r.Failed(), shortDigest(r.DatabaseDigest))
		if r.SoundID != "" {
			s.out.Printf("    sound id %s\n", r.SoundID)
		}
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
