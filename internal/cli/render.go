package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/render"
)

type renderOutput struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Content  string `json:"content"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "render <lookup|registry|mapping>",
		Short:     "Print one generated artifact to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(render.ArtifactLookup), string(render.ArtifactRegistry), string(render.ArtifactMapping)},
		Long: `Render one artifact from the validated database and print it instead of
writing it. Useful to diff against the checked-in file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRender(opts *RootOptions, name string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	a, err := render.ParseArtifact(name)
	if err != nil {
		return s.usageError(err.Error())
	}

	db, report, err := s.loadValid()
	if err != nil {
		return err
	}
	s.logWarnings(report)

	content, err := render.Render(a, db, s.cfg.RenderOptions())
	if err != nil {
		_ = s.out.Error(ErrCodeRender, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeRender, err)
	}

	if s.out.Format == "json" {
		return s.out.Success(renderOutput{
			Artifact: string(a),
			Path:     s.cfg.Targets().Path(a),
			Content:  string(content),
		})
	}
	if _, err := s.out.Writer.Write(content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
