package resolver

import (
	"testing"

	"github.com/juanmicrosoft/calor/internal/effects"
	"github.com/juanmicrosoft/calor/internal/manifest"
)

func TestResolveBuiltinBeforeManifest(t *testing.T) {
	store := manifest.New()
	r := New(store, PolicyLenient)
	r.RegisterBuiltin("Console.Write", effects.FromEffects(effects.ConsoleWrite))

	res := r.Resolve("Console", "Write")
	if res.Status != StatusResolved || res.Source != manifest.SourceBuiltIn {
		t.Errorf("Resolve = %+v, want resolved from built-in", res)
	}
}

func TestResolveUnknownLenientIsEmptyWithWarningPolicy(t *testing.T) {
	store := manifest.New()
	r := New(store, PolicyLenient)

	res := r.Resolve("ThirdParty", "Mystery")
	if res.Status != StatusUnknown {
		t.Errorf("Status = %s, want unknown", res.Status)
	}
	if !res.Set.IsEmpty() {
		t.Error("lenient unknown resolution should carry an empty set")
	}
}

func TestResolveUnknownStrictIsTop(t *testing.T) {
	store := manifest.New()
	r := New(store, PolicyStrict)

	res := r.Resolve("ThirdParty", "Mystery")
	if !res.Set.IsUnknown() {
		t.Error("strict unknown resolution should carry the top effect set")
	}
}

func TestResolveCachesRepeatedLookups(t *testing.T) {
	store := manifest.New()
	r := New(store, PolicyLenient)

	r.Resolve("A", "B")
	r.Resolve("A", "B")
	r.Resolve("A", "C")

	stats := r.Stats()
	if stats.Misses != 2 {
		t.Errorf("Misses = %d, want 2", stats.Misses)
	}
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
}

func TestClassifyPureVsResolvedVsUnknown(t *testing.T) {
	if classify(effects.Empty()) != StatusPureExplicit {
		t.Error("empty set should classify as pure")
	}
	if classify(effects.FromEffects(effects.ConsoleWrite)) != StatusResolved {
		t.Error("non-empty set should classify as resolved")
	}
	if classify(effects.UnknownSet()) != StatusUnknown {
		t.Error("unknown set should classify as unknown")
	}
}
