package effects

import (
	"fmt"
	"sort"
	"strings"
)

// State is the three-state effect set spec §3 defines: empty (pure),
// non-empty (explicit finite set), or unknown (top element).
type State int

const (
	StateEmpty State = iota
	StateExplicit
	StateUnknown
)

// Set is a function's (declared or inferred) effect set.
type Set struct {
	state State
	elems map[Effect]struct{}
}

// Empty returns the pure (bottom) effect set.
func Empty() *Set { return &Set{state: StateEmpty} }

// UnknownSet returns the top effect set: it dominates everything.
func UnknownSet() *Set { return &Set{state: StateUnknown} }

// FromEffects builds an explicit effect set from the given effects,
// collapsing to Empty() if none are given.
func FromEffects(effs ...Effect) *Set {
	if len(effs) == 0 {
		return Empty()
	}
	s := &Set{state: StateExplicit, elems: make(map[Effect]struct{}, len(effs))}
	for _, e := range effs {
		s.elems[e] = struct{}{}
	}
	return s
}

// IsEmpty reports whether the set is the pure bottom element.
func (s *Set) IsEmpty() bool { return s == nil || s.state == StateEmpty }

// IsUnknown reports whether the set is the unknown top element.
func (s *Set) IsUnknown() bool { return s != nil && s.state == StateUnknown }

// Elements returns the explicit effects in the set. Empty for the
// pure and unknown states.
func (s *Set) Elements() []Effect {
	if s == nil || s.state != StateExplicit {
		return nil
	}
	out := make([]Effect, 0, len(s.elems))
	for e := range s.elems {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Union computes a ∪ b. unknown is absorbing; empty is the identity.
func Union(a, b *Set) *Set {
	if a.IsUnknown() || b.IsUnknown() {
		return UnknownSet()
	}
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	merged := make(map[Effect]struct{}, len(a.elems)+len(b.elems))
	for e := range a.elems {
		merged[e] = struct{}{}
	}
	for e := range b.elems {
		merged[e] = struct{}{}
	}
	return &Set{state: StateExplicit, elems: merged}
}

// Add returns a ∪ {e}.
func (s *Set) Add(e Effect) *Set {
	return Union(s, FromEffects(e))
}

// SubsumedBy reports whether a is covered by b under the subtyping
// lattice — spec §3: "subset test under the subtyping lattice". Pure is
// subsumed by anything; unknown is subsumed only by unknown (top
// dominates, so nothing non-unknown can cover it).
func SubsumedBy(a, b *Set) bool {
	if a.IsEmpty() {
		return true
	}
	if b.IsUnknown() {
		return true
	}
	if a.IsUnknown() {
		return false
	}
	for ae := range a.elems {
		covered := false
		for be := range b.elems {
			if Encompasses(be, ae) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// unknownSentinel is used only to report "unknown" as a pseudo-element
// in Difference when a is unknown and b is not — there is no single
// canonical effect value that accounts for an unresolved call, but the
// Effect Engine still needs something to name in the ForbiddenEffect
// diagnostic.
var unknownSentinel = Effect{Kind: "Unknown", Value: "unknown"}

// Difference returns the effects in a not covered by b (spec §4.4:
// forbidden = inferred \ declared), sorted for determinism.
func Difference(a, b *Set) []Effect {
	if a.IsEmpty() {
		return nil
	}
	if a.IsUnknown() {
		if b.IsUnknown() {
			return nil
		}
		return []Effect{unknownSentinel}
	}
	var diff []Effect
	for ae := range a.elems {
		covered := false
		if !b.IsEmpty() && !b.IsUnknown() {
			for be := range b.elems {
				if Encompasses(be, ae) {
					covered = true
					break
				}
			}
		} else if b.IsUnknown() {
			covered = true
		}
		if !covered {
			diff = append(diff, ae)
		}
	}
	sort.Slice(diff, func(i, j int) bool { return diff[i].Value < diff[j].Value })
	return diff
}

// Format renders the set for diagnostics: "" for pure, "unknown" for
// top, "{console_write, time}" otherwise.
func (s *Set) Format() string {
	if s.IsEmpty() {
		return ""
	}
	if s.IsUnknown() {
		return "unknown"
	}
	elems := s.Elements()
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.Value
	}
	return fmt.Sprintf("{%s}", strings.Join(names, ", "))
}

func (s *Set) String() string { return s.Format() }
