package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/voicedb"
)

// validateOutput is the JSON payload of validate (and of failed syncs).
type validateOutput struct {
	Valid      bool                `json:"valid"`
	Lines      int                 `json:"lines"`
	Violations []voicedb.Violation `json:"violations"`
	Warnings   []voicedb.Violation `json:"warnings"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the voiceline database without generating anything",
		Long: `Validate the voiceline database against the category table.

Every violation is reported, not just the first: missing or blank fields,
ids that do not match their category prefix, and duplicate ids. Unknown
top-level keys are reported as warnings.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	db, report, err := s.loadValid()
	if err != nil {
		return err
	}

	if s.out.Format == "json" {
		return s.out.Success(validateOutput{
			Valid:      true,
			Lines:      db.Len(),
			Violations: report.Violations,
			Warnings:   report.Warnings,
		})
	}

	printWarnings(s.out, report.Warnings)
	s.out.OK("Database valid (%d lines)", db.Len())
	return nil
}
