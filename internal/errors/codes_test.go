package errors

import "testing"

func TestDiagnosticTaxonomy(t *testing.T) {
	tests := []struct {
		code     string
		phase    string
		severity Severity
	}{
		{ForbiddenEffect, PhaseEffects, SeverityError},
		{UnknownExternalCall, PhaseResolver, SeverityError},
		{ContractNotPure, PhaseBinder, SeverityError},
		{ContractUnsupported, PhaseVerifier, SeverityWarning},
		{InvariantSynthesized, PhaseVerifier, SeverityInfo},
		{InvariantUnknown, PhaseVerifier, SeverityWarning},
		{DuplicateIdentifier, PhaseBinder, SeverityError},
		{MigrationUnsupportedConstruct, PhaseMigration, SeverityError},
		{MigrationAmbiguousRewrite, PhaseMigration, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			info, ok := Lookup(tt.code)
			if !ok {
				t.Fatalf("code %s not found in registry", tt.code)
			}
			if info.Phase != tt.phase {
				t.Errorf("Phase mismatch for %s: got %s, want %s", tt.code, info.Phase, tt.phase)
			}
			if info.Severity != tt.severity {
				t.Errorf("Severity mismatch for %s: got %s, want %s", tt.code, info.Severity, tt.severity)
			}
		})
	}
}

func TestIsError(t *testing.T) {
	if !IsError(ForbiddenEffect) {
		t.Error("ForbiddenEffect should be an error")
	}
	if IsError(InvariantSynthesized) {
		t.Error("InvariantSynthesized is informational, not an error")
	}
	if IsError("NoSuchCode") {
		t.Error("unknown code should not be an error")
	}
}

func TestRegistryConsistency(t *testing.T) {
	for code, info := range Registry {
		if info.Code != code {
			t.Errorf("code mismatch in registry: key=%s, info.Code=%s", code, info.Code)
		}
		if info.Description == "" {
			t.Errorf("empty description for %s", code)
		}
	}
}
