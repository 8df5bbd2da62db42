// Package assets checks that every voiceline has a sound file and that no
// sound file is left without a voiceline. Findings are warnings; they
// never block a sync.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/voicesync/internal/voicedb"
)

// Warning codes.
const (
	WarnMissingAsset = "W301" // no <id>.ogg for a database id
	WarnOrphanAsset  = "W302" // .ogg file with no matching id
)

// Ext is the extension of sound assets.
const Ext = ".ogg"

// Report is the result of an asset check.
type Report struct {
	Dir      string              `json:"dir"`
	Checked  int                 `json:"checked"`
	Present  int                 `json:"present"`
	Warnings []voicedb.Violation `json:"warnings"`
}

// Check compares the ids of db with the .ogg files directly inside dir.
// A missing dir counts as empty, so every id is reported missing.
func Check(db *voicedb.Database, dir string) (Report, error) {
	rep := Report{Dir: dir, Warnings: []voicedb.Violation{}}

	files := make(map[string]bool) // id -> referenced
	var names []string
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return rep, fmt.Errorf("read sounds dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		files[id] = false
		names = append(names, e.Name())
	}

	for _, s := range db.Sections() {
		for i, e := range s.Entries {
			rep.Checked++
			if _, ok := files[e.ID]; ok {
				files[e.ID] = true
				rep.Present++
				continue
			}
			rep.Warnings = append(rep.Warnings, voicedb.Violation{
				Code:     WarnMissingAsset,
				Category: s.Category.Key,
				Index:    i,
				ID:       e.ID,
				Message:  fmt.Sprintf("no sound file %s%s", e.ID, Ext),
			})
		}
	}

	// ReadDir returns entries sorted by name.
	for _, name := range names {
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if files[id] {
			continue
		}
		rep.Warnings = append(rep.Warnings, voicedb.Violation{
			Code:    WarnOrphanAsset,
			Index:   -1,
			Message: fmt.Sprintf("sound file %s has no voiceline", name),
		})
	}
	return rep, nil
}
