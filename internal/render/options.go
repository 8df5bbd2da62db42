package render

import (
	"fmt"
	"strings"

	"github.com/roach88/voicesync/internal/voicedb"
)

// Options names the things the generated artifacts refer to. None of them
// change which lines are emitted or in what order.
type Options struct {
	// Source is the database path written into the generated header.
	Source string

	// Namespace prefixes asset references ("<namespace>:<id>").
	Namespace string

	// LookupPackage and LookupClass locate the line-lookup module.
	LookupPackage string
	LookupClass   string

	// SpeechTypeClass is the enum in LookupPackage whose constants are the
	// category enum tags.
	SpeechTypeClass string

	// RegistryPackage and RegistryClass locate the event-registry module.
	RegistryPackage string
	RegistryClass   string

	// ModClass is the fully qualified class exposing the MODID constant.
	ModClass string
}

// DefaultOptions returns the names used by the Climp mod.
func DefaultOptions() Options {
	return Options{
		Source:          "docs/va/voicelines.json",
		Namespace:       "climp",
		LookupPackage:   "com.asbjborg.climp.speech",
		LookupClass:     "ClimpSpeechLibrary",
		SpeechTypeClass: "ClimpSpeechType",
		RegistryPackage: "com.asbjborg.climp.sound",
		RegistryClass:   "ClimpSoundEvents",
		ModClass:        "com.asbjborg.climp.ClimpMod",
	}
}

// modSimpleName returns the unqualified ModClass name.
func (o Options) modSimpleName() string {
	if i := strings.LastIndex(o.ModClass, "."); i >= 0 {
		return o.ModClass[i+1:]
	}
	return o.ModClass
}

// Artifact identifies one generated file.
type Artifact string

const (
	ArtifactLookup   Artifact = "lookup"
	ArtifactRegistry Artifact = "registry"
	ArtifactMapping  Artifact = "mapping"
)

// Artifacts lists every artifact in the order they are synced.
var Artifacts = []Artifact{ArtifactLookup, ArtifactRegistry, ArtifactMapping}

// ParseArtifact converts a name such as "registry" to an Artifact.
func ParseArtifact(name string) (Artifact, error) {
	for _, a := range Artifacts {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown artifact %q: must be one of %v", name, Artifacts)
}

// Render produces the content of one artifact.
func Render(a Artifact, db *voicedb.Database, opts Options) ([]byte, error) {
	switch a {
	case ArtifactLookup:
		return RenderLookup(db, opts)
	case ArtifactRegistry:
		return RenderRegistry(db, opts)
	case ArtifactMapping:
		return RenderMapping(db, opts)
	default:
		return nil, fmt.Errorf("unknown artifact %q", a)
	}
}
