package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/voicesync/internal/testutil"
)

const (
	dbRel       = "docs/va/voicelines.json"
	lookupRel   = "src/main/java/com/asbjborg/climp/speech/ClimpSpeechLibrary.java"
	registryRel = "src/main/java/com/asbjborg/climp/sound/ClimpSoundEvents.java"
	mappingRel  = "src/main/resources/assets/climp/sounds.json"
	soundsRel   = "src/main/resources/assets/climp/sounds"
)

// newProject lays out a project root with the given database and the
// directories the artifacts live in.
func newProject(t *testing.T, db string) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFile(t, root, dbRel, db)
	for _, rel := range []string{lookupRel, registryRel, mappingRel} {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(root, rel)), 0o755))
	}
	return root
}

func projectPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// execute runs a subcommand in-process and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func textOpts(root string) *RootOptions {
	return &RootOptions{Format: "text", Root: root}
}

func jsonOpts(root string) *RootOptions {
	return &RootOptions{Format: "json", Root: root}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
