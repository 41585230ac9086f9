// Package effects implements the Calor effect data model: the closed
// surface-code catalog (spec §4.1), the effect kind taxonomy and
// subtyping lattice (spec §3), and the three-state effect set used by
// the Binder and Effect Engine.
package effects

import "fmt"

// Kind is the effect category spec §3 enumerates.
type Kind string

const (
	KindIO              Kind = "IO"
	KindNondeterminism  Kind = "Nondeterminism"
	KindMemory          Kind = "Memory"
	KindMutation        Kind = "Mutation"
	KindException       Kind = "Exception"
)

// Effect is a single (kind, canonical value) pair, e.g. (IO, console_write).
type Effect struct {
	Kind  Kind
	Value string
}

func (e Effect) String() string {
	return fmt.Sprintf("%s", e.Value)
}

// codeEntry describes one row of the spec §4.1 surface-code table.
type codeEntry struct {
	canonical string
	kind      Kind
}

// codeTable maps every accepted surface code to its canonical value and
// category. Surface codes not present here are rejected by the Manifest
// Store's validate() as an unknown effect code.
var codeTable = map[string]codeEntry{
	"cw":     {"console_write", KindIO},
	"cr":     {"console_read", KindIO},
	"fr":     {"filesystem_read", KindIO},
	"fs:r":   {"filesystem_read", KindIO},
	"fw":     {"filesystem_write", KindIO},
	"fs:w":   {"filesystem_write", KindIO},
	"fd":     {"file_delete", KindIO},
	"fs:rw":  {"filesystem_readwrite", KindIO},
	"net:r":  {"network_read", KindIO},
	"net:w":  {"network_write", KindIO},
	"net:rw": {"network_readwrite", KindIO},
	"net":    {"network_readwrite", KindIO},
	"db:r":   {"database_read", KindIO},
	"dbr":    {"database_read", KindIO},
	"db:w":   {"database_write", KindIO},
	"dbw":    {"database_write", KindIO},
	"db:rw":  {"database_readwrite", KindIO},
	"db":     {"database_readwrite", KindIO},
	"env:r":  {"environment_read", KindIO},
	"env:w":  {"environment_write", KindIO},
	"env":    {"environment_readwrite", KindIO},
	"env:rw": {"environment_readwrite", KindIO},
	"http":   {"http", KindIO},
	"proc":   {"process", KindIO},
	"alloc":  {"allocation", KindMemory},
	"unsafe": {"unsafe", KindMemory},
	"time":   {"time", KindNondeterminism},
	"rand":   {"random", KindNondeterminism},
	"rng":    {"random", KindNondeterminism},
	"mut":    {"mutation", KindMutation},
	"throw":  {"exception", KindException},
}

// ResolveCode translates a surface effect code (as written in a manifest
// or intrinsic-effect table) into its canonical Effect. ok is false for
// unrecognized codes — the caller (Manifest Store validate(), Binder
// resolution of a function's declared effect codes) turns that into a
// validation error.
func ResolveCode(surface string) (Effect, bool) {
	entry, ok := codeTable[surface]
	if !ok {
		return Effect{}, false
	}
	return Effect{Kind: entry.kind, Value: entry.canonical}, true
}

// Intrinsics maps a built-in bare-call name to the effect the Binder
// assigns it directly (spec §4.3 duty 3), bypassing the Effect Resolver
// entirely since these are language-level operations, not manifest
// members.
var Intrinsics = map[string]Effect{
	"print":     ConsoleWrite,
	"println":   ConsoleWrite,
	"readLine":  ConsoleRead,
	"readInput": ConsoleRead,
	"now":       Time,
	"random":    Random,
	"rand":      Random,
}

// KnownSurfaceCodes returns every accepted surface code, for diagnostics
// and manifest-validation error messages.
func KnownSurfaceCodes() []string {
	out := make([]string, 0, len(codeTable))
	for k := range codeTable {
		out = append(out, k)
	}
	return out
}

// Builtin well-known canonical effects, referenced directly by the
// Binder when assigning intrinsic effects to built-in operations
// (spec §4.3 (3)).
var (
	ConsoleWrite   = Effect{KindIO, "console_write"}
	ConsoleRead    = Effect{KindIO, "console_read"}
	Allocation     = Effect{KindMemory, "allocation"}
	Unsafe         = Effect{KindMemory, "unsafe"}
	Time           = Effect{KindNondeterminism, "time"}
	Random         = Effect{KindNondeterminism, "random"}
	Mutation       = Effect{KindMutation, "mutation"}
	ExceptionEff   = Effect{KindException, "exception"}
)
