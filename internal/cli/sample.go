package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/category"
	"github.com/roach88/voicesync/internal/render"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	Exclude string
	Seed    uint64
}

type sampleOutput struct {
	Category string      `json:"category"`
	Line     render.Line `json:"line"`
	Fallback bool        `json:"fallback"`
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	sampleOpts := &SampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample <category>",
		Short: "Pick a line the way the generated lookup module does",
		Args:  cobra.ExactArgs(1),
		Long: `Pick a random line from a category using the same rules as the generated
lookup module: the excluded sound id is never picked when another line
exists, and an empty category yields the fallback line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded := cmd.Flags().Changed("seed")
			return runSample(rootOpts, sampleOpts, args[0], seeded, cmd)
		},
	}

	cmd.Flags().StringVar(&sampleOpts.Exclude, "exclude", "", "sound id to avoid (the previously played line)")
	cmd.Flags().Uint64Var(&sampleOpts.Seed, "seed", 0, "seed for a reproducible pick")

	return cmd
}

func runSample(opts *RootOptions, sampleOpts *SampleOptions, key string, seeded bool, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	if _, ok := category.Lookup(key); !ok {
		return s.usageError(fmt.Sprintf("unknown category %q: must be one of %v", key, category.Keys()))
	}

	db, report, err := s.loadValid()
	if err != nil {
		return err
	}
	s.logWarnings(report)

	seed := sampleOpts.Seed
	if !seeded {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	lib := render.NewLibrary(db)
	line := lib.Pick(key, rnd, sampleOpts.Exclude)
	fallback := len(lib.Lines(key)) == 0

	if s.out.Format == "json" {
		return s.out.Success(sampleOutput{Category: key, Line: line, Fallback: fallback})
	}
	if fallback {
		s.out.Warn("%s has no lines, using fallback", key)
	}
	s.out.Printf("%s\t%s\n", line.SoundID, line.Text)
	return nil
}
