package render

import (
	"github.com/roach88/voicesync/internal/voicedb"
)

// Fallback line returned by the lookup module for a category with no lines.
const (
	FallbackText    = "..."
	FallbackSoundID = "climp_idle_1"
)

type lookupView struct {
	Source     string
	Package    string
	Class      string
	SpeechType string
	Fallback   lookupLine
	Sections   []lookupSection
}

type lookupSection struct {
	EnumTag string
	Lines   []lookupLine
	Sep     string
}

type lookupLine struct {
	Text string
	ID   string
	Sep  string
}

// RenderLookup renders the line-lookup module. Every category appears, in
// canonical order, with its (caption, id) pairs in list order; a category
// without lines is emitted as an empty list rather than omitted.
func RenderLookup(db *voicedb.Database, opts Options) ([]byte, error) {
	sections := db.Sections()
	view := lookupView{
		Source:     opts.Source,
		Package:    opts.LookupPackage,
		Class:      opts.LookupClass,
		SpeechType: opts.SpeechTypeClass,
		Fallback:   lookupLine{Text: javaString(FallbackText), ID: javaString(FallbackSoundID)},
		Sections:   make([]lookupSection, len(sections)),
	}
	for i, s := range sections {
		ls := lookupSection{EnumTag: s.Category.EnumTag, Sep: sep(i, len(sections))}
		for j, e := range s.Entries {
			ls.Lines = append(ls.Lines, lookupLine{
				Text: javaString(e.Textline),
				ID:   javaString(e.ID),
				Sep:  sep(j, len(s.Entries)),
			})
		}
		view.Sections[i] = ls
	}
	return execute("lookup.java.tmpl", view)
}
