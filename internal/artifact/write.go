package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultPerm fs.FileMode = 0o644

var errIsDir = errors.New("is a directory")

// writeAtomic replaces path with data. The content goes to a temporary
// sibling that is synced to disk and renamed over the target, so readers
// see either the old file or the new one. The temporary file is removed on
// every failure path and the target is left as it was.
func writeAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &WriteError{Path: path, Op: "sync", Err: err}
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return &WriteError{Path: path, Op: "chmod", Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &WriteError{Path: path, Op: "rename", Err: err}
	}
	return nil
}

// readCurrent returns the current content and permissions of path. A
// missing file is reported with exists == false and no error.
func readCurrent(path string) (data []byte, perm fs.FileMode, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, defaultPerm, false, nil
		}
		return nil, 0, false, &WriteError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, 0, false, &WriteError{Path: path, Op: "stat", Err: errIsDir}
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, 0, false, &WriteError{Path: path, Op: "read", Err: err}
	}
	return data, info.Mode().Perm(), true, nil
}
