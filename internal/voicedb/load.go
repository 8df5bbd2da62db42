package voicedb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for database files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported database format")

// Load error codes.
const (
	ErrCodeUnsupported = "E003" // Unknown file extension
	ErrCodeLoadFailed  = "E004" // Parse error or unusable document root
	ErrCodeNotFound    = "E005" // Database file missing or unreadable
)

// cueFields lists every field of a struct. Keys such as "#note" or "_x"
// in a JSON document become definition or hidden labels when extracted,
// and must still reach the validator.
var cueFields = []cue.Option{cue.Definitions(true), cue.Hidden(true), cue.Optional(true)}

// LoadError reports a database file that could not be turned into a
// RawDatabase at all. Shape problems inside the document are not load
// errors; they are reported by Validate.
type LoadError struct {
	Code    string
	Path    string
	Line    int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a voiceline database from disk. The format follows the file
// extension: .json and .cue are compiled with CUE, .yaml and .yml are
// decoded with yaml.v3.
func Load(path string) (*RawDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := fmt.Sprintf("reading database: %v", err)
		if errors.Is(err, fs.ErrNotExist) {
			msg = "database file not found"
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: msg, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes database content. name selects the format and is used
// as the source name in positions.
func Parse(name string, data []byte) (*RawDatabase, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		expr, err := cuejson.Extract(name, data)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Message: fmt.Sprintf("parsing JSON: %v", err), Err: err}
		}
		return fromCUE(name, cuecontext.New().BuildExpr(expr))
	case ".cue":
		return fromCUE(name, cuecontext.New().CompileBytes(data, cue.Filename(name)))
	case ".yaml", ".yml":
		return fromYAML(name, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Path:    name,
			Message: fmt.Sprintf("unsupported extension %q (want .json, .cue, .yaml or .yml)", filepath.Ext(name)),
			Err:     ErrUnsupportedFormat,
		}
	}
}

func fromCUE(name string, v cue.Value) (*RawDatabase, error) {
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Message: fmt.Sprintf("building document: %v", err), Err: err}
	}
	if v.Kind() != cue.StructKind {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Line: cueLine(v.Pos()), Message: "database root must be a record keyed by category"}
	}

	iter, err := v.Fields(cueFields...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Message: fmt.Sprintf("iterating categories: %v", err), Err: err}
	}

	raw := &RawDatabase{Source: name}
	for iter.Next() {
		val := iter.Value()
		rc := RawCategory{Key: cueLabel(iter.Selector()), Kind: cueKind(val), Line: cueLine(val.Pos())}
		if rc.Kind == KindList {
			list, err := val.List()
			if err != nil {
				return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Line: rc.Line, Message: fmt.Sprintf("iterating %s: %v", rc.Key, err), Err: err}
			}
			for list.Next() {
				rc.Entries = append(rc.Entries, cueEntry(list.Value()))
			}
		}
		raw.Categories = append(raw.Categories, rc)
	}
	return raw, nil
}

func cueEntry(v cue.Value) RawEntry {
	entry := RawEntry{Kind: cueKind(v), Line: cueLine(v.Pos())}
	if entry.Kind != KindRecord {
		return entry
	}
	entry.Fields = make(map[string]RawField)
	iter, err := v.Fields(cueFields...)
	if err != nil {
		entry.Kind = KindOther
		return entry
	}
	for iter.Next() {
		fv := iter.Value()
		field := RawField{Kind: cueKind(fv), Line: cueLine(fv.Pos())}
		if field.Kind == KindString {
			field.Value, _ = fv.String()
		}
		entry.Fields[cueLabel(iter.Selector())] = field
	}
	return entry
}

func cueKind(v cue.Value) Kind {
	switch v.Kind() {
	case cue.StringKind:
		return KindString
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		return KindNumber
	case cue.BoolKind:
		return KindBool
	case cue.NullKind:
		return KindNull
	case cue.ListKind:
		return KindList
	case cue.StructKind:
		return KindRecord
	default:
		return KindOther
	}
}

// cueLabel returns a field name without CUE quoting, so JSON keys such as
// "task-lines" compare equal to their YAML spelling.
func cueLabel(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

func cueLine(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

func fromYAML(name string, data []byte) (*RawDatabase, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Message: fmt.Sprintf("parsing YAML: %v", err), Err: err}
	}

	raw := &RawDatabase{Source: name}
	if doc.Kind == 0 {
		// Empty file.
		return raw, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: name, Line: root.Line, Message: "database root must be a record keyed by category"}
	}

	seen := make(map[string]int)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], resolveAlias(root.Content[i+1])
		if first, dup := seen[key.Value]; dup {
			return nil, &LoadError{
				Code:    ErrCodeLoadFailed,
				Path:    name,
				Line:    key.Line,
				Message: fmt.Sprintf("category %q defined twice (first on line %d)", key.Value, first),
			}
		}
		seen[key.Value] = key.Line

		rc := RawCategory{Key: key.Value, Kind: yamlKind(val), Line: key.Line}
		if rc.Kind == KindList {
			for _, item := range val.Content {
				entry, err := yamlEntry(name, resolveAlias(item))
				if err != nil {
					return nil, err
				}
				rc.Entries = append(rc.Entries, entry)
			}
		}
		raw.Categories = append(raw.Categories, rc)
	}
	return raw, nil
}

// yamlEntry converts one list item. A key repeated within the item is a
// load error, matching what CUE reports for the same JSON input.
func yamlEntry(name string, n *yaml.Node) (RawEntry, error) {
	entry := RawEntry{Kind: yamlKind(n), Line: n.Line}
	if entry.Kind != KindRecord {
		return entry, nil
	}
	entry.Fields = make(map[string]RawField)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolveAlias(n.Content[i+1])
		if first, dup := entry.Fields[key.Value]; dup {
			return RawEntry{}, &LoadError{
				Code:    ErrCodeLoadFailed,
				Path:    name,
				Line:    key.Line,
				Message: fmt.Sprintf("field %q defined twice (first on line %d)", key.Value, first.Line),
			}
		}
		field := RawField{Kind: yamlKind(val), Line: key.Line}
		if field.Kind == KindString {
			field.Value = val.Value
		}
		entry.Fields[key.Value] = field
	}
	return entry, nil
}

func yamlKind(n *yaml.Node) Kind {
	switch n.Kind {
	case yaml.SequenceNode:
		return KindList
	case yaml.MappingNode:
		return KindRecord
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return KindString
		case "!!int", "!!float":
			return KindNumber
		case "!!bool":
			return KindBool
		case "!!null":
			return KindNull
		}
	}
	return KindOther
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
