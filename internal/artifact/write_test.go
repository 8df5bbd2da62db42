package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeAtomic(path, []byte("new"), 0o640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_RenameOntoDirectoryCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "occupied")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := writeAtomic(target, []byte("x"), 0o644)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "rename", we.Op)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadCurrent(t *testing.T) {
	dir := t.TempDir()

	_, perm, exists, err := readCurrent(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, defaultPerm, perm)

	_, _, _, err = readCurrent(dir)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "stat", we.Op)
}
