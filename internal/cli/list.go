package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/voicesync/internal/category"
	"github.com/roach88/voicesync/internal/voicedb"
)

type categorySummary struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	EnumTag string `json:"enum_tag"`
	Prefix  string `json:"prefix"`
	Lines   int    `json:"lines"`
}

type categoryLines struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Lines []voicedb.Entry `json:"lines"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List categories with line counts, or the lines of one category",
		Args:  cobra.MaximumNArgs(1),
		Long: `Without arguments, list every category in canonical order with its label,
id prefix and number of lines. With a category key, list that category's
lines in database order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runList(rootOpts, key, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, key string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	var cat category.Category
	if key != "" {
		var ok bool
		if cat, ok = category.Lookup(key); !ok {
			return s.usageError(fmt.Sprintf("unknown category %q: must be one of %v", key, category.Keys()))
		}
	}

	db, report, err := s.loadValid()
	if err != nil {
		return err
	}
	s.logWarnings(report)

	if key != "" {
		return listLines(s.out, cat, db.Lines(key))
	}
	return listCategories(s.out, db)
}

func listCategories(out *OutputFormatter, db *voicedb.Database) error {
	var rows []categorySummary
	for _, sec := range db.Sections() {
		rows = append(rows, categorySummary{
			Key:     sec.Category.Key,
			Label:   sec.Category.Label,
			EnumTag: sec.Category.EnumTag,
			Prefix:  sec.Category.IDPrefix(),
			Lines:   len(sec.Entries),
		})
	}

	if out.Format == "json" {
		return out.Success(rows)
	}

	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tPREFIX\tLINES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Key, r.Label, r.Prefix, r.Lines)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	out.Printf("%d lines total\n", db.Len())
	return nil
}

func listLines(out *OutputFormatter, cat category.Category, entries []voicedb.Entry) error {
	if out.Format == "json" {
		if entries == nil {
			entries = []voicedb.Entry{}
		}
		return out.Success(categoryLines{Key: cat.Key, Label: cat.Label, Lines: entries})
	}

	if len(entries) == 0 {
		out.Printf("No %s lines\n", cat.Label)
		return nil
	}
	tw := tabwriter.NewWriter(out.Writer, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Textline)
	}
	return tw.Flush()
}
