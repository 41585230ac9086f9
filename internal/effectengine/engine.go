// Package effectengine implements the Effect Engine (spec §4.4): a
// fixpoint worklist over the bound call graph that computes each
// function's inferred effect set and enforces it against the
// function's declared set.
package effectengine

import (
	"fmt"
	"strings"

	"github.com/juanmicrosoft/calor/internal/core"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/effects"
	"github.com/juanmicrosoft/calor/internal/resolver"
)

// hop is one outgoing call edge from a function: either to another
// bound Function (Target non-nil, participates in the fixpoint) or to
// a foreign leaf whose effect was resolved once up front (Target nil).
type hop struct {
	label         string
	target        *core.Function
	foreignEffect *effects.Set
}

// Engine runs the fixpoint and enforcement passes over one bound module.
type Engine struct {
	resolver *resolver.Resolver
	enforce  bool
}

// New constructs an Engine. enforce controls whether a ForbiddenEffect
// violation is reported as an error (true) or downgraded to a warning
// while still being computed (false) — spec §4.4 "Policy surface".
func New(r *resolver.Resolver, enforce bool) *Engine {
	return &Engine{resolver: r, enforce: enforce}
}

// Run computes every function's Inferred effect set in place and
// returns the diagnostics the enforcement pass produced.
func (e *Engine) Run(mod *core.Module) *calerrors.Bag {
	bag := &calerrors.Bag{}
	fns := allFunctions(mod)

	adjacency := make(map[*core.Function][]hop, len(fns))
	inferred := make(map[*core.Function]*effects.Set, len(fns))

	for _, fn := range fns {
		hops := e.buildHops(fn, bag)
		adjacency[fn] = hops

		seed := fn.DirectEffects
		if seed == nil {
			seed = effects.Empty()
		}
		for _, h := range hops {
			if h.target == nil {
				seed = effects.Union(seed, h.foreignEffect)
			}
		}
		inferred[fn] = seed
	}

	// Fixpoint: propagate callee effects into every caller until no
	// function's inferred set changes. Bounded by the number of
	// functions — the lattice has finite height and the update is
	// monotone (spec §4.4 "Algorithm").
	for changed := true; changed; {
		changed = false
		for _, fn := range fns {
			for _, h := range adjacency[fn] {
				if h.target == nil {
					continue
				}
				merged := effects.Union(inferred[fn], inferred[h.target])
				if !setsEqual(merged, inferred[fn]) {
					inferred[fn] = merged
					changed = true
				}
			}
		}
	}

	for _, fn := range fns {
		fn.Inferred = inferred[fn]
		e.enforce1(fn, inferred[fn], adjacency, bag)
	}

	return bag
}

// buildHops resolves every call site in fn's body into an adjacency
// hop: an intra-module/unambiguous-cross-class call becomes a graph
// edge; an ambiguous cross-class call becomes an unknown foreign leaf;
// a foreign call with a "Type.Member" qualifier is resolved once against
// the Effect Resolver and folded in as a foreign leaf; a bare foreign
// name with no qualifier is not looked up and gets the policy's unknown
// treatment (empty under lenient, unknown under strict).
func (e *Engine) buildHops(fn *core.Function, bag *calerrors.Bag) []hop {
	var hops []hop
	for _, call := range collectCalls(fn.Body) {
		switch call.Kind {
		case core.CallIntraModule, core.CallCrossClass:
			if call.Target != nil {
				hops = append(hops, hop{label: functionLabel(call.Target), target: call.Target})
				continue
			}
			// Ambiguous cross-class dispatch with no single candidate:
			// spec §4.4 "Cross-class ambiguous edges contribute unknown".
			hops = append(hops, hop{label: call.Callee, foreignEffect: effects.UnknownSet()})

		case core.CallForeign:
			if _, isIntrinsic := effects.Intrinsics[call.Callee]; isIntrinsic {
				// Already folded into DirectEffects by the binder; no
				// separate resolver lookup, else it would double-count.
				continue
			}
			typ, member, qualified := splitQualifier(call.ResolvedQualifier)
			if !qualified {
				e.reportUnknownExternalCall(fn, call, call.Callee, bag)
				unresolved := effects.Empty()
				if e.resolver.Policy() == resolver.PolicyStrict {
					unresolved = effects.UnknownSet()
				}
				hops = append(hops, hop{label: call.Callee, foreignEffect: unresolved})
				continue
			}
			res := e.resolver.Resolve(typ, member)
			if res.Status == resolver.StatusUnknown {
				e.reportUnknownExternalCall(fn, call, call.ResolvedQualifier, bag)
			}
			hops = append(hops, hop{label: call.ResolvedQualifier, foreignEffect: res.Set})
		}
	}
	return hops
}

// reportUnknownExternalCall records the closed-catalog UnknownExternalCall
// diagnostic (spec §6/§8 scenario S5) for a foreign call the resolver
// could not cover from any manifest or builtin: an error under
// PolicyStrict, a warning under PolicyLenient (spec §4.2 "Policy:
// unknown resolutions are treated as empty with a warning").
func (e *Engine) reportUnknownExternalCall(fn *core.Function, call *core.Call, qualifier string, bag *calerrors.Bag) {
	severity := calerrors.SeverityWarning
	if e.resolver.Policy() == resolver.PolicyStrict {
		severity = calerrors.SeverityError
	}
	msg := fmt.Sprintf("%s calls %s, which no manifest, builtin, or intrinsic covers",
		functionLabel(fn), qualifier)
	r := calerrors.New(calerrors.UnknownExternalCall, calerrors.PhaseResolver, severity, msg, nil)
	sp := call.Span
	r.Span = &sp
	r.CallChain = []string{functionLabel(fn)}
	bag.Add(r)
}

// splitQualifier splits a "Type.Member" resolved qualifier into its
// parts. A qualifier with no dot (a bare, unresolved name) is not
// actionable against the manifest store.
func splitQualifier(q string) (typ, member string, ok bool) {
	idx := strings.LastIndex(q, ".")
	if idx < 0 {
		return "", "", false
	}
	return q[:idx], q[idx+1:], true
}

func setsEqual(a, b *effects.Set) bool {
	if a.IsUnknown() != b.IsUnknown() {
		return false
	}
	if a.IsUnknown() {
		return true
	}
	if a.IsEmpty() != b.IsEmpty() {
		return false
	}
	ae, be := a.Elements(), b.Elements()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}
	return true
}
