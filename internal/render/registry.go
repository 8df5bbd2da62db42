package render

import (
	"fmt"

	"github.com/roach88/voicesync/internal/voicedb"
)

type registryView struct {
	Source   string
	Package  string
	Class    string
	ModClass string
	Mod      string
	Sections []registrySection
	Bindings []binding
	Fallback *binding
}

type registrySection struct {
	EnumTag  string
	Bindings []binding
}

type binding struct {
	Name string // Java constant
	ID   string // quoted sound id
	Sep  string
}

// RenderRegistry renders the event-registry module: one binding per line
// in canonical order, a reverse map from id to binding, and a get method
// that falls back to the first declared binding.
//
// Declaration order is significant: the fallback is defined as the first
// binding, so reordering entries changes behavior, not just layout.
func RenderRegistry(db *voicedb.Database, opts Options) ([]byte, error) {
	view := registryView{
		Source:   opts.Source,
		Package:  opts.RegistryPackage,
		Class:    opts.RegistryClass,
		ModClass: opts.ModClass,
		Mod:      opts.modSimpleName(),
	}

	owner := make(map[string]string) // binding name -> id
	for _, s := range db.Sections() {
		if len(s.Entries) == 0 {
			continue
		}
		rs := registrySection{EnumTag: s.Category.EnumTag}
		for _, e := range s.Entries {
			name := BindingName(e.ID)
			if prev, taken := owner[name]; taken {
				return nil, fmt.Errorf("render registry: ids %q and %q both map to %s", prev, e.ID, name)
			}
			owner[name] = e.ID
			b := binding{Name: name, ID: javaString(e.ID)}
			rs.Bindings = append(rs.Bindings, b)
			view.Bindings = append(view.Bindings, b)
		}
		view.Sections = append(view.Sections, rs)
	}

	for i := range view.Bindings {
		view.Bindings[i].Sep = sep(i, len(view.Bindings))
	}
	if len(view.Bindings) > 0 {
		first := view.Bindings[0]
		view.Fallback = &first
	}

	return execute("registry.java.tmpl", view)
}
