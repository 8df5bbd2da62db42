package artifact

import (
	"errors"
	"fmt"
)

// ErrUnknownSoundID is returned by Sync when Options.SoundID names an id the
// database does not define. No file is touched in that case.
var ErrUnknownSoundID = errors.New("sound id not defined in database")

// WriteError records a filesystem failure for one target path.
type WriteError struct {
	Path string
	Op   string // read, stat, create, write, sync, close, chmod, rename, cancel
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
