// Package resolver implements the Effect Resolver (spec §4.2): it wraps
// the Manifest Store with a built-in catalog and a resolution cache, and
// normalizes call-site lookups to effect sets under a configurable
// unknown-call policy.
package resolver

import (
	"fmt"
	"sync"

	"github.com/juanmicrosoft/calor/internal/effects"
	"github.com/juanmicrosoft/calor/internal/manifest"
)

// Status is the outcome of resolving a call site, per spec §3 "Effect
// resolution".
type Status string

const (
	StatusResolved     Status = "resolved"
	StatusPureExplicit Status = "pure"
	StatusUnknown      Status = "unknown"
	StatusUnsupported  Status = "unsupported"
)

// Policy controls how an unresolved foreign call is treated.
type Policy string

const (
	// PolicyLenient treats an unknown resolution as empty, with a
	// warning left to the caller to surface.
	PolicyLenient Policy = "lenient"
	// PolicyStrict treats an unknown resolution as the top effect,
	// which propagates and fails enforcement.
	PolicyStrict Policy = "strict"
)

// Resolution is the cached answer to one (type, memberKind, member,
// signatureKey) lookup.
type Resolution struct {
	Status Status
	Set    *effects.Set
	Source manifest.Source
}

// cacheKey is exactly the tuple spec §4.2 names for caching.
type cacheKey struct {
	typ          string
	kind         manifest.MemberKind
	member       string
	signatureKey string
}

// Stats counts cache hits and misses for diagnostics and benchmarking.
type Stats struct {
	Hits   int
	Misses int
}

// Resolver wraps a manifest.Store, a built-in catalog, and a cache.
type Resolver struct {
	store   *manifest.Store
	policy  Policy
	mu      sync.Mutex
	cache   map[cacheKey]Resolution
	stats   Stats
	builtin map[string]*effects.Set
}

// New constructs a Resolver over the given merged manifest store.
func New(store *manifest.Store, policy Policy) *Resolver {
	return &Resolver{
		store:   store,
		policy:  policy,
		cache:   make(map[cacheKey]Resolution),
		builtin: make(map[string]*effects.Set),
	}
}

// RegisterBuiltin records a known-pure or known-effectful built-in
// operation under its qualified "Type.Member" name (e.g.
// "Console.WriteLine"), consulted before the manifest store on every
// lookup — spec §4.1 resolution order step (1).
func (r *Resolver) RegisterBuiltin(name string, set *effects.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtin[name] = set
}

// Resolve answers resolve(type, member) for a method call site.
func (r *Resolver) Resolve(typ, member string) Resolution {
	return r.lookup(typ, manifest.MemberMethod, member, "")
}

// ResolveGetter answers resolve_getter(type, member).
func (r *Resolver) ResolveGetter(typ, member string) Resolution {
	return r.lookup(typ, manifest.MemberGetter, member, "")
}

// ResolveSetter answers resolve_setter(type, member).
func (r *Resolver) ResolveSetter(typ, member string) Resolution {
	return r.lookup(typ, manifest.MemberSetter, member, "")
}

// ResolveConstructor answers resolve_constructor(type, signatureKey).
func (r *Resolver) ResolveConstructor(typ, signatureKey string) Resolution {
	return r.lookup(typ, manifest.MemberConstructor, "", signatureKey)
}

func (r *Resolver) lookup(typ string, kind manifest.MemberKind, member, signatureKey string) Resolution {
	key := cacheKey{typ: typ, kind: kind, member: member, signatureKey: signatureKey}

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.stats.Hits++
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	res := r.resolveUncached(typ, kind, member, signatureKey)

	r.mu.Lock()
	r.cache[key] = res
	r.stats.Misses++
	r.mu.Unlock()
	return res
}

func (r *Resolver) resolveUncached(typ string, kind manifest.MemberKind, member, signatureKey string) Resolution {
	builtinKey := fmt.Sprintf("%s.%s", typ, member)
	if set, ok := r.builtin[builtinKey]; ok {
		return Resolution{Status: classify(set), Set: set, Source: manifest.SourceBuiltIn}
	}

	mres := r.store.Lookup(typ, member, kind, signatureKey)
	if mres.Found {
		return Resolution{Status: classify(mres.Set), Set: mres.Set, Source: mres.Source}
	}

	switch r.policy {
	case PolicyStrict:
		return Resolution{Status: StatusUnknown, Set: effects.UnknownSet()}
	default:
		return Resolution{Status: StatusUnknown, Set: effects.Empty()}
	}
}

func classify(set *effects.Set) Status {
	if set.IsUnknown() {
		return StatusUnknown
	}
	if set.IsEmpty() {
		return StatusPureExplicit
	}
	return StatusResolved
}

// Stats returns a snapshot of the resolver's cache hit/miss counters.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Policy reports the resolution policy this resolver was built with,
// so callers that need to grade a StatusUnknown resolution's severity
// (error under strict, warning under lenient — spec §4.2) don't have
// to re-derive it from the returned Set.
func (r *Resolver) Policy() Policy {
	return r.policy
}
