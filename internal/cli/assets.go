package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/assets"
)

// NewCheckAssetsCommand creates the check-assets command.
func NewCheckAssetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-assets",
		Short: "Report voicelines without a sound file and sound files without a voiceline",
		Args:  cobra.NoArgs,
		Long: fmt.Sprintf(`Compare the database ids with the %s files in the sounds directory.
Findings are warnings (%s missing, %s orphan) and never change the exit code.`,
			assets.Ext, assets.WarnMissingAsset, assets.WarnOrphanAsset),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckAssets(rootOpts, cmd)
		},
	}

	return cmd
}

func runCheckAssets(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	db, report, err := s.loadValid()
	if err != nil {
		return err
	}
	s.logWarnings(report)

	rep, err := assets.Check(db, s.cfg.SoundsDir())
	if err != nil {
		_ = s.out.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}

	if s.out.Format == "json" {
		return s.out.Success(rep)
	}
	for _, w := range rep.Warnings {
		s.out.Warn("%s", w.Error())
	}
	s.out.OK("%d/%d sound files present in %s", rep.Present, rep.Checked, rep.Dir)
	return nil
}
