package errors

import (
	"testing"
)

func TestReportWrapAndExtract(t *testing.T) {
	rep := New(ForbiddenEffect, PhaseEffects, SeverityError, "declared effects too narrow", nil)
	err := WrapReport(rep)

	got, ok := AsReport(err)
	if !ok {
		t.Fatal("expected AsReport to recover the wrapped report")
	}
	if got.Code != ForbiddenEffect {
		t.Errorf("Code = %s, want %s", got.Code, ForbiddenEffect)
	}
}

func TestWrapReportNil(t *testing.T) {
	if err := WrapReport(nil); err != nil {
		t.Errorf("WrapReport(nil) = %v, want nil", err)
	}
}

func TestBagHasErrors(t *testing.T) {
	var bag Bag
	bag.Add(New(InvariantSynthesized, PhaseVerifier, SeverityInfo, "proven", nil))
	if bag.HasErrors() {
		t.Error("bag with only info diagnostics should not HasErrors")
	}

	bag.Add(New(ForbiddenEffect, PhaseEffects, SeverityError, "boom", nil))
	if !bag.HasErrors() {
		t.Error("bag with an error diagnostic should HasErrors")
	}
	if len(bag.Errors()) != 1 {
		t.Errorf("Errors() returned %d reports, want 1", len(bag.Errors()))
	}
	if len(bag.All()) != 2 {
		t.Errorf("All() returned %d reports, want 2", len(bag.All()))
	}
}

func TestReportToJSON(t *testing.T) {
	rep := New(DuplicateIdentifier, PhaseBinder, SeverityError, "dup id", nil)
	s, err := rep.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	if s == "" {
		t.Error("expected non-empty JSON")
	}
}
