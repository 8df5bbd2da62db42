package voicedb

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/roach88/voicesync/internal/category"
)

// Violation codes. E1xx block generation, W2xx are reported only.
const (
	ErrCategoryNotList  = "E101" // category value is not a list
	ErrEntryNotRecord   = "E102" // entry is not a record
	ErrFieldMissing     = "E103" // required field missing
	ErrFieldEmpty       = "E104" // required field blank after trimming
	ErrFieldNotString   = "E105" // required field is not a string
	ErrIDPattern        = "E106" // id does not look like <name>_<n>
	ErrIDPrefix         = "E107" // id does not use the category prefix
	ErrDuplicateID      = "E108" // id already used earlier in canonical order
	WarnUnknownCategory = "W201" // top-level key not in the category table
)

// ErrInvalidDatabase is returned by Build when the report has violations.
var ErrInvalidDatabase = errors.New("voiceline database is invalid")

var idPattern = regexp.MustCompile(`^[a-z0-9_]+_[0-9]+$`)

// Violation is one schema problem (or warning) found in a raw database.
type Violation struct {
	Code     string `json:"code"`
	Category string `json:"category,omitempty"`
	Index    int    `json:"index"` // entry index within the category, -1 for category-level findings
	Field    string `json:"field,omitempty"`
	ID       string `json:"id,omitempty"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (v Violation) Error() string {
	loc := v.Category
	if v.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", v.Category, v.Index)
	}
	if v.Field != "" {
		loc += "." + v.Field
	}
	if v.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", v.Code, v.Line, loc, v.Message)
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s", v.Code, v.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Code, loc, v.Message)
}

// Report is the outcome of validating a raw database.
type Report struct {
	Violations []Violation `json:"violations"`
	Warnings   []Violation `json:"warnings"`
}

// Valid reports whether no blocking violation was found.
func (r Report) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns ErrInvalidDatabase wrapped with a count, or nil when valid.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %d violation(s)", ErrInvalidDatabase, len(r.Violations))
}

// Validate checks a raw database and returns every problem found.
// It never stops at the first violation: categories are checked in
// canonical order, entries in list order, and duplicate ids are detected
// across the whole database with the first occurrence winning.
func Validate(raw *RawDatabase) Report {
	r := Report{Violations: []Violation{}, Warnings: []Violation{}}
	if raw == nil {
		return r
	}

	seen := make(map[string]string) // id -> "category[index]" of first use
	for _, c := range category.All() {
		rc, ok := raw.Category(c.Key)
		if !ok {
			continue
		}
		if rc.Kind != KindList {
			r.Violations = append(r.Violations, Violation{
				Code:     ErrCategoryNotList,
				Category: c.Key,
				Index:    -1,
				Message:  fmt.Sprintf("category must be a list of lines, got %s", rc.Kind),
				Line:     rc.Line,
			})
			continue
		}
		for i, entry := range rc.Entries {
			r.Violations = append(r.Violations, validateEntry(c, i, entry, seen)...)
		}
	}

	known := category.Keys()
	for _, rc := range raw.Categories {
		if _, ok := category.Lookup(rc.Key); ok {
			continue
		}
		msg := "unknown category key; it is ignored for generation"
		if s := suggest(rc.Key, known); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		r.Warnings = append(r.Warnings, Violation{
			Code:     WarnUnknownCategory,
			Category: rc.Key,
			Index:    -1,
			Message:  msg,
			Line:     rc.Line,
		})
	}

	return r
}

func validateEntry(c category.Category, i int, entry RawEntry, seen map[string]string) []Violation {
	var errs []Violation

	if entry.Kind != KindRecord {
		return []Violation{{
			Code:     ErrEntryNotRecord,
			Category: c.Key,
			Index:    i,
			Message:  fmt.Sprintf("line entry must be a record with id, textline and voiceline, got %s", entry.Kind),
			Line:     entry.Line,
		}}
	}

	idOK := false
	for _, name := range requiredFields {
		f, present := entry.Fields[name]
		switch {
		case !present:
			errs = append(errs, Violation{
				Code:     ErrFieldMissing,
				Category: c.Key,
				Index:    i,
				Field:    name,
				Message:  fmt.Sprintf("%s is required", name),
				Line:     entry.Line,
			})
		case f.Kind != KindString:
			errs = append(errs, Violation{
				Code:     ErrFieldNotString,
				Category: c.Key,
				Index:    i,
				Field:    name,
				Message:  fmt.Sprintf("%s must be a string, got %s", name, f.Kind),
				Line:     f.Line,
			})
		case strings.TrimSpace(f.Value) == "":
			errs = append(errs, Violation{
				Code:     ErrFieldEmpty,
				Category: c.Key,
				Index:    i,
				Field:    name,
				Message:  fmt.Sprintf("%s must be non-empty", name),
				Line:     f.Line,
			})
		default:
			if name == FieldID {
				idOK = true
			}
		}
	}
	if !idOK {
		return errs
	}

	idField := entry.Fields[FieldID]
	id := idField.Value
	switch {
	case !idPattern.MatchString(id):
		errs = append(errs, Violation{
			Code:     ErrIDPattern,
			Category: c.Key,
			Index:    i,
			Field:    FieldID,
			ID:       id,
			Message:  fmt.Sprintf("id %q must be lowercase letters, digits and underscores ending in _<number>", id),
			Line:     idField.Line,
		})
	case !hasCategoryPrefix(c, id):
		errs = append(errs, Violation{
			Code:     ErrIDPrefix,
			Category: c.Key,
			Index:    i,
			Field:    FieldID,
			ID:       id,
			Message:  fmt.Sprintf("id %q must have the form %s<number> in category %s", id, c.IDPrefix(), c.Key),
			Line:     idField.Line,
		})
	}

	loc := fmt.Sprintf("%s[%d]", c.Key, i)
	if first, dup := seen[id]; dup {
		errs = append(errs, Violation{
			Code:     ErrDuplicateID,
			Category: c.Key,
			Index:    i,
			Field:    FieldID,
			ID:       id,
			Message:  fmt.Sprintf("duplicate id %q (first used at %s)", id, first),
			Line:     idField.Line,
		})
	} else {
		seen[id] = loc
	}

	return errs
}

// hasCategoryPrefix reports whether id is exactly <prefix>_<digits>.
func hasCategoryPrefix(c category.Category, id string) bool {
	rest, ok := strings.CutPrefix(id, c.IDPrefix())
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// suggest returns the closest known key when it is a plausible typo.
func suggest(key string, known []string) string {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.Distance(strings.ToLower(key), k, nil)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	limit := len(best) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

// Build validates raw and converts it into a Database. The database is
// nil when the report has violations; warnings never block.
func Build(raw *RawDatabase) (*Database, Report) {
	report := Validate(raw)
	if !report.Valid() {
		return nil, report
	}

	lines := make(map[string][]Entry)
	for _, c := range category.All() {
		rc, ok := raw.Category(c.Key)
		if !ok {
			continue
		}
		entries := make([]Entry, 0, len(rc.Entries))
		for _, e := range rc.Entries {
			entries = append(entries, Entry{
				ID:        e.Fields[FieldID].Value,
				Textline:  e.Fields[FieldTextline].Value,
				Voiceline: e.Fields[FieldVoiceline].Value,
			})
		}
		lines[c.Key] = entries
	}
	return New(lines), report
}
