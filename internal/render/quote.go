package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// jsonString quotes s as a JSON string without HTML escaping, so that
// "<" and "&" stay readable in the generated resource.
func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return "", err
	}
	// Encode appends a newline.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// javaString quotes s as a Java string literal. Text is NFC normalized so
// that visually equal captions produce identical source.
//
// Backslashes are always doubled, which also keeps a literal "\u" in the
// text from being read as a Java unicode escape.
func javaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// BindingName converts a sound id to a Java constant name: letters are
// uppercased, digits kept, and every run of other characters collapses
// to a single underscore.
func BindingName(id string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range id {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		pendingSep = true
	}
	if pendingSep {
		b.WriteByte('_')
	}

	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "S_" + name
	}
	return name
}
