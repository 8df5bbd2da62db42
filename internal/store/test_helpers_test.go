package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/voicesync/internal/testutil"
)

// createTestStore opens a journal in a temp dir with a step clock and
// sequential ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path, WithClock(testutil.NewStepClock()), WithIDGenerator(&testutil.SequentialIDs{}))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
