package render

import (
	"bytes"
	"fmt"

	"github.com/roach88/voicesync/internal/voicedb"
)

// RenderMapping renders the sound-mapping resource: a JSON object with one
// key per line id, in canonical order, each naming the single asset
// "<namespace>:<id>". Output uses two-space indentation and ends with a
// newline. A database with no lines renders as "{}".
//
// Key order is part of the contract, so the object is written by hand
// rather than through a map.
func RenderMapping(db *voicedb.Database, opts Options) ([]byte, error) {
	entries := db.Entries()
	if len(entries) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		key, err := jsonString(e.ID)
		if err != nil {
			return nil, fmt.Errorf("render mapping: id %q: %w", e.ID, err)
		}
		ref, err := jsonString(opts.Namespace + ":" + e.ID)
		if err != nil {
			return nil, fmt.Errorf("render mapping: id %q: %w", e.ID, err)
		}
		fmt.Fprintf(&buf, "  %s: {\n    \"sounds\": [\n      %s\n    ]\n  }%s\n", key, ref, sep(i, len(entries)))
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
