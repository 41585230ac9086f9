// Package manifest implements the Manifest Store (spec §4.1): layered
// effect declarations for foreign types the compiler does not own,
// merged by source priority and served through a single lookup surface.
package manifest

// SchemaVersion is the only manifest version this store accepts.
const SchemaVersion = "1.0"

// Source identifies which layer a mapping or resolution came from.
// Priority increases left to right: BuiltIn < UserLevel < SolutionLevel
// < ProjectLocal.
type Source string

const (
	SourceBuiltIn      Source = "built-in"
	SourceUserLevel    Source = "user"
	SourceSolutionLevel Source = "solution"
	SourceProjectLocal Source = "project"
)

// sourcePriority gives each Source its rank for override resolution;
// higher wins.
var sourcePriority = map[Source]int{
	SourceBuiltIn:       0,
	SourceUserLevel:     1,
	SourceSolutionLevel: 2,
	SourceProjectLocal:  3,
}

// Document is the on-disk shape of one manifest file, in either JSON or
// YAML (spec §4.1 "File format (JSON-equivalent)").
type Document struct {
	Version           string            `json:"version" yaml:"version"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty"`
	Mappings          []Mapping         `json:"mappings,omitempty" yaml:"mappings,omitempty"`
	NamespaceDefaults map[string][]string `json:"namespaceDefaults,omitempty" yaml:"namespaceDefaults,omitempty"`
}

// Mapping declares effects for one fully-qualified type.
type Mapping struct {
	Type           string              `json:"type" yaml:"type"`
	DefaultEffects []string            `json:"defaultEffects,omitempty" yaml:"defaultEffects,omitempty"`
	Methods        map[string][]string `json:"methods,omitempty" yaml:"methods,omitempty"`
	Getters        map[string][]string `json:"getters,omitempty" yaml:"getters,omitempty"`
	Setters        map[string][]string `json:"setters,omitempty" yaml:"setters,omitempty"`
	Constructors   map[string][]string `json:"constructors,omitempty" yaml:"constructors,omitempty"`
}

// MemberKind distinguishes the four lookup shapes a Mapping can answer.
type MemberKind string

const (
	MemberMethod      MemberKind = "method"
	MemberGetter      MemberKind = "getter"
	MemberSetter      MemberKind = "setter"
	MemberConstructor MemberKind = "constructor"
)

// wildcard is the catch-all method-name key spec §4.1 reserves.
const wildcard = "*"
