package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/voicesync/internal/voicedb"
)

// SampleJSON is a small valid database. Two categories are left empty and
// two are omitted entirely.
const SampleJSON = `{
  "idlelines": [
    {"id": "climp_idle_1", "textline": "Hello there.", "voiceline": "Hello there!"},
    {"id": "climp_idle_2", "textline": "Say \"hi\" \\ now", "voiceline": "Say hi now."}
  ],
  "hitlines": [
    {"id": "climp_hit_1", "textline": "Ouch!", "voiceline": "Ow!"}
  ],
  "taskstartlines": [],
  "taskcompletelines": [
    {"id": "climp_task_complete_1", "textline": "Fertig, ça marche.", "voiceline": "Fertig."}
  ],
  "taskfailedunreachable": []
}
`

// InvalidJSON parses but fails validation (prefix mismatch).
const InvalidJSON = `{
  "idlelines": [
    {"id": "climp_hit_9", "textline": "Wrong bucket.", "voiceline": "Oops."}
  ]
}
`

// SampleDatabase returns the validated form of SampleJSON.
func SampleDatabase(t testing.TB) *voicedb.Database {
	t.Helper()
	raw, err := voicedb.Parse("voicelines.json", []byte(SampleJSON))
	require.NoError(t, err)
	db, report := voicedb.Build(raw)
	require.True(t, report.Valid(), "sample database must be valid: %v", report.Violations)
	return db
}

// WriteFile writes content to dir/rel, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
