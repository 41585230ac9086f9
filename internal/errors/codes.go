// Package errors provides centralized diagnostic code definitions for the
// Calor core. All codes follow a consistent taxonomy so the catalog in
// spec §6 can be rendered, queried, and grepped by phase.
package errors

// Diagnostic code constants. The catalog is closed: spec §6 names exactly
// these nine codes, plus the internal failure codes (manifest parse and
// validation, binding, tooling) the Manifest Store, Binder and tooling
// need.
const (
	// ForbiddenEffect: declared effects insufficient to cover inferred (§4.4).
	ForbiddenEffect = "ForbiddenEffect"

	// UnknownExternalCall: foreign call with no manifest coverage (§4.1/§4.2).
	UnknownExternalCall = "UnknownExternalCall"

	// ContractNotPure: contract expression used an impure construct (§4.3 (5)).
	ContractNotPure = "ContractNotPure"

	// ContractUnsupported: contract used a sort/operator outside the SMT fragment (§4.5).
	ContractUnsupported = "ContractUnsupported"

	// InvariantSynthesized: a loop invariant was discovered and proven (§4.5).
	InvariantSynthesized = "InvariantSynthesized"

	// InvariantUnknown: synthesis/verification gave up within K_max (§4.5).
	InvariantUnknown = "InvariantUnknown"

	// DuplicateIdentifier: two declarations share a stable id within a module (I6).
	DuplicateIdentifier = "DuplicateIdentifier"

	// MigrationUnsupportedConstruct: source construct not convertible (§4.6).
	MigrationUnsupportedConstruct = "MigrationUnsupportedConstruct"

	// MigrationAmbiguousRewrite: converter had to guess (issued as Warning) (§4.6).
	MigrationAmbiguousRewrite = "MigrationAmbiguousRewrite"

	// ManifestParseError: a manifest file failed to parse (§4.1 error model).
	ManifestParseError = "ManifestParseError"

	// ManifestValidationError: a manifest failed structural validation (§4.1).
	ManifestValidationError = "ManifestValidationError"

	// BindError: a generic binding/semantic error not covered by a more
	// specific code above (§4.3, malformed programs).
	BindError = "BindError"

	// ToolingFailure: a tooling error (I/O, unexpected panic) reported
	// as a separate record without corrupting the analysis (§7 kind 4).
	ToolingFailure = "ToolingFailure"
)

// Phase names used consistently across diagnostics, ordered per spec §5's
// "Binder → Effect Engine → Verifier" global phase order.
const (
	PhaseManifest  = "manifest"
	PhaseResolver  = "resolver"
	PhaseBinder    = "binder"
	PhaseEffects   = "effects"
	PhaseVerifier  = "verifier"
	PhaseMigration = "migration"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Info provides structured metadata about a diagnostic code.
type Info struct {
	Code        string
	Phase       string
	Severity    Severity
	Description string
}

// Registry maps every closed diagnostic code to its metadata.
var Registry = map[string]Info{
	ForbiddenEffect:                {ForbiddenEffect, PhaseEffects, SeverityError, "declared effects do not cover inferred effects"},
	UnknownExternalCall:            {UnknownExternalCall, PhaseResolver, SeverityError, "foreign call has no manifest coverage"},
	ContractNotPure:                {ContractNotPure, PhaseBinder, SeverityError, "contract expression used an impure construct"},
	ContractUnsupported:            {ContractUnsupported, PhaseVerifier, SeverityWarning, "contract used a sort or operator outside the SMT fragment"},
	InvariantSynthesized:           {InvariantSynthesized, PhaseVerifier, SeverityInfo, "loop invariant discovered and proven by k-induction"},
	InvariantUnknown:               {InvariantUnknown, PhaseVerifier, SeverityWarning, "invariant synthesis/verification gave up within K_max"},
	DuplicateIdentifier:            {DuplicateIdentifier, PhaseBinder, SeverityError, "two declarations share a stable identifier within a module"},
	MigrationUnsupportedConstruct:  {MigrationUnsupportedConstruct, PhaseMigration, SeverityError, "source construct is not convertible"},
	MigrationAmbiguousRewrite:      {MigrationAmbiguousRewrite, PhaseMigration, SeverityWarning, "converter had to guess a rewrite"},
	ManifestParseError:             {ManifestParseError, PhaseManifest, SeverityError, "manifest file failed to parse"},
	ManifestValidationError:        {ManifestValidationError, PhaseManifest, SeverityError, "manifest failed structural validation"},
	BindError:                      {BindError, PhaseBinder, SeverityError, "generic binding error"},
	ToolingFailure:                 {ToolingFailure, PhaseManifest, SeverityError, "tooling failure (I/O or unexpected error)"},
}

// Lookup returns metadata for a diagnostic code.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IsError reports whether code is registered at error severity.
func IsError(code string) bool {
	info, ok := Lookup(code)
	return ok && info.Severity == SeverityError
}
