package effects

import "testing"

func TestSetEmptyIdentity(t *testing.T) {
	e := Empty()
	if !e.IsEmpty() {
		t.Fatal("Empty() should be empty")
	}
	if e.Format() != "" {
		t.Errorf("Format() = %q, want empty string", e.Format())
	}
	s := FromEffects(ConsoleWrite)
	if got := Union(e, s); got.IsEmpty() || got.IsUnknown() {
		t.Fatal("Union(Empty, s) should equal s")
	}
}

func TestSetUnionUnknownAbsorbs(t *testing.T) {
	u := UnknownSet()
	s := FromEffects(ConsoleWrite, Time)
	got := Union(u, s)
	if !got.IsUnknown() {
		t.Error("Union with Unknown should be Unknown")
	}
}

func TestSetUnionMerge(t *testing.T) {
	a := FromEffects(ConsoleWrite)
	b := FromEffects(Time)
	got := Union(a, b)
	elems := got.Elements()
	if len(elems) != 2 {
		t.Fatalf("Union(a, b) has %d elements, want 2", len(elems))
	}
}

func TestSubsumedByLatticeCover(t *testing.T) {
	declared := FromEffects(Effect{KindIO, "filesystem_readwrite"})
	inferred := FromEffects(Effect{KindIO, "filesystem_read"}, Effect{KindIO, "file_delete"})
	if !SubsumedBy(inferred, declared) {
		t.Error("filesystem_readwrite should subsume filesystem_read and file_delete")
	}
}

func TestSubsumedByEmptyAlwaysHolds(t *testing.T) {
	if !SubsumedBy(Empty(), Empty()) {
		t.Error("Empty should be subsumed by Empty")
	}
	if !SubsumedBy(Empty(), FromEffects(ConsoleWrite)) {
		t.Error("Empty should be subsumed by any set")
	}
}

func TestSubsumedByUnknownDeclaredTrue(t *testing.T) {
	inferred := FromEffects(ConsoleWrite)
	if !SubsumedBy(inferred, UnknownSet()) {
		t.Error("any explicit set should be subsumed by Unknown")
	}
}

func TestSubsumedByUnknownInferredFalse(t *testing.T) {
	if SubsumedBy(UnknownSet(), FromEffects(ConsoleWrite)) {
		t.Error("Unknown inferred should not be subsumed by an explicit declared set")
	}
	if !SubsumedBy(UnknownSet(), UnknownSet()) {
		t.Error("Unknown should be subsumed by Unknown")
	}
}

func TestDifferenceForbidden(t *testing.T) {
	inferred := FromEffects(ConsoleWrite, Time)
	declared := FromEffects(ConsoleWrite)
	diff := Difference(inferred, declared)
	if len(diff) != 1 || diff[0].Value != "time" {
		t.Errorf("Difference = %v, want [time]", diff)
	}
}

func TestDifferenceNoneWhenCovered(t *testing.T) {
	inferred := FromEffects(Effect{KindIO, "filesystem_read"})
	declared := FromEffects(Effect{KindIO, "filesystem_readwrite"})
	if diff := Difference(inferred, declared); diff != nil {
		t.Errorf("Difference = %v, want nil", diff)
	}
}

func TestDifferenceUnknownInferredAgainstExplicitDeclared(t *testing.T) {
	diff := Difference(UnknownSet(), FromEffects(ConsoleWrite))
	if len(diff) != 1 || diff[0].Value != "unknown" {
		t.Errorf("Difference(Unknown, explicit) = %v, want [unknown]", diff)
	}
}

func TestDifferenceUnknownInferredAgainstUnknownDeclared(t *testing.T) {
	if diff := Difference(UnknownSet(), UnknownSet()); diff != nil {
		t.Errorf("Difference(Unknown, Unknown) = %v, want nil", diff)
	}
}

func TestFormatUnknown(t *testing.T) {
	if got := UnknownSet().Format(); got != "unknown" {
		t.Errorf("Format() = %q, want %q", got, "unknown")
	}
}

func TestResolveCodeKnownAndUnknown(t *testing.T) {
	eff, ok := ResolveCode("cw")
	if !ok || eff != ConsoleWrite {
		t.Errorf("ResolveCode(cw) = %v, %v, want ConsoleWrite, true", eff, ok)
	}
	if _, ok := ResolveCode("nope"); ok {
		t.Error("ResolveCode(nope) should be unresolved")
	}
}

func TestEncompassesReflexiveAndCategoryMismatch(t *testing.T) {
	if !Encompasses(ConsoleWrite, ConsoleWrite) {
		t.Error("Encompasses should be reflexive")
	}
	if Encompasses(ConsoleWrite, Time) {
		t.Error("different kinds should never encompass")
	}
}
