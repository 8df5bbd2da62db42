package voicedb

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/roach88/voicesync/internal/category"
)

// Kind classifies a raw document node.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindNull   Kind = "null"
	KindList   Kind = "list"
	KindRecord Kind = "record"
	KindOther  Kind = "other"
)

// Required entry fields, in the order they are checked.
const (
	FieldID        = "id"
	FieldTextline  = "textline"
	FieldVoiceline = "voiceline"
)

var requiredFields = []string{FieldID, FieldTextline, FieldVoiceline}

// RawDatabase is a loaded but unvalidated voiceline document.
// Categories keep document order; malformed shapes are representable so
// that the validator can report them instead of the loader failing.
type RawDatabase struct {
	Source     string
	Categories []RawCategory
}

// RawCategory is one top-level key of the document.
type RawCategory struct {
	Key     string
	Kind    Kind
	Line    int
	Entries []RawEntry // set when Kind == KindList
}

// RawEntry is one element of a category list.
type RawEntry struct {
	Kind   Kind
	Line   int
	Fields map[string]RawField // set when Kind == KindRecord
}

// RawField is a scalar (or not) value under an entry key.
type RawField struct {
	Kind  Kind
	Value string // set when Kind == KindString
	Line  int
}

// Category returns the first top-level key with the given name.
func (r *RawDatabase) Category(key string) (RawCategory, bool) {
	for _, c := range r.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return RawCategory{}, false
}

// Entry is one validated voiceline.
type Entry struct {
	ID        string `json:"id" yaml:"id"`
	Textline  string `json:"textline" yaml:"textline"`
	Voiceline string `json:"voiceline" yaml:"voiceline"`
}

// Section pairs a category with its entries in list order.
type Section struct {
	Category category.Category
	Entries  []Entry
}

// Database is a validated voiceline database. It is immutable once built;
// accessors return copies.
type Database struct {
	lines map[string][]Entry
}

// New builds a Database from category key to entries. Unknown keys are
// dropped and entries are copied. New does not validate; use Build for
// documents loaded from disk.
func New(lines map[string][]Entry) *Database {
	db := &Database{lines: make(map[string][]Entry, len(lines))}
	for _, c := range category.All() {
		entries := lines[c.Key]
		cp := make([]Entry, len(entries))
		copy(cp, entries)
		db.lines[c.Key] = cp
	}
	return db
}

// Lines returns the entries of one category in list order.
func (d *Database) Lines(key string) []Entry {
	entries := d.lines[key]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Sections returns every known category, in canonical order, with its
// entries. Empty categories are included.
func (d *Database) Sections() []Section {
	cats := category.All()
	out := make([]Section, len(cats))
	for i, c := range cats {
		out[i] = Section{Category: c, Entries: d.Lines(c.Key)}
	}
	return out
}

// Entries returns all entries in canonical order.
func (d *Database) Entries() []Entry {
	var out []Entry
	for _, c := range category.All() {
		out = append(out, d.lines[c.Key]...)
	}
	return out
}

// Len returns the total number of entries.
func (d *Database) Len() int {
	n := 0
	for _, entries := range d.lines {
		n += len(entries)
	}
	return n
}

// Find returns the entry with the given id and the category holding it.
func (d *Database) Find(id string) (Entry, category.Category, bool) {
	for _, c := range category.All() {
		for _, e := range d.lines[c.Key] {
			if e.ID == id {
				return e, c, true
			}
		}
	}
	return Entry{}, category.Category{}, false
}

// digestDomain separates database digests from any other sha256 use.
const digestDomain = "voicesync/database/v1"

// Digest returns a content hash of the database in canonical order.
// Equal databases have equal digests regardless of source field order.
func (d *Database) Digest() string {
	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	for _, c := range category.All() {
		h.Write([]byte(c.Key))
		h.Write([]byte{0x00})
		for _, e := range d.lines[c.Key] {
			for _, s := range []string{e.ID, e.Textline, e.Voiceline} {
				h.Write([]byte(s))
				h.Write([]byte{0x00})
			}
		}
		h.Write([]byte{0x01})
	}
	return hex.EncodeToString(h.Sum(nil))
}
