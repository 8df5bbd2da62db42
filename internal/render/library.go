package render

import (
	"github.com/roach88/voicesync/internal/voicedb"
)

// Line is one selectable caption and the sound it plays.
type Line struct {
	Text    string `json:"text"`
	SoundID string `json:"sound_id"`
}

// Fallback is returned by Pick for a category with no lines.
var Fallback = Line{Text: FallbackText, SoundID: FallbackSoundID}

// Source supplies uniform random integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Library mirrors the generated line-lookup module so that selection
// behavior can be exercised without a Java runtime.
type Library struct {
	lines map[string][]Line
}

// NewLibrary indexes the lines of db by category.
func NewLibrary(db *voicedb.Database) *Library {
	lib := &Library{lines: make(map[string][]Line)}
	for _, s := range db.Sections() {
		ls := make([]Line, len(s.Entries))
		for i, e := range s.Entries {
			ls[i] = Line{Text: e.Textline, SoundID: e.ID}
		}
		lib.lines[s.Category.Key] = ls
	}
	return lib
}

// Lines returns the lines of a category in database order.
func (l *Library) Lines(key string) []Line {
	return append([]Line(nil), l.lines[key]...)
}

// Pick returns a uniformly random line of the category. When the category
// has more than one line, the line whose sound id equals exclude is never
// chosen; an empty exclude excludes nothing. Categories without lines,
// including unknown keys, yield Fallback.
func (l *Library) Pick(key string, rnd Source, exclude string) Line {
	lines := l.lines[key]
	if len(lines) == 0 {
		return Fallback
	}
	candidates := lines
	if exclude != "" && len(lines) > 1 {
		candidates = make([]Line, 0, len(lines))
		for _, ln := range lines {
			if ln.SoundID != exclude {
				candidates = append(candidates, ln)
			}
		}
		if len(candidates) == 0 {
			candidates = lines
		}
	}
	return candidates[rnd.IntN(len(candidates))]
}
