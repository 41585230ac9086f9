package effectengine

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/core"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/effects"
)

// enforce1 checks one function's inferred set against its declared set
// and emits a ForbiddenEffect diagnostic per uncovered element (spec
// §4.4 "Enforcement").
func (e *Engine) enforce1(fn *core.Function, inferred *effects.Set, adjacency map[*core.Function][]hop, bag *calerrors.Bag) {
	declared := fn.DeclaredEffects
	if declared == nil {
		declared = effects.Empty()
	}
	forbidden := effects.Difference(inferred, declared)
	if len(forbidden) == 0 {
		return
	}

	severity := calerrors.SeverityError
	if !e.enforce {
		severity = calerrors.SeverityWarning
	}

	for _, eff := range forbidden {
		chain := shortestChain(fn, eff, adjacency)
		msg := fmt.Sprintf("%s may perform %s, which its declared effect set %s does not cover",
			functionLabel(fn), eff.Value, declared.Format())
		r := calerrors.New(calerrors.ForbiddenEffect, calerrors.PhaseEffects, severity, msg, nil)
		r.CallChain = chain
		bag.Add(r)
	}
}

// shortestChain performs a breadth-first search over the call graph
// from fn, grounded on the teacher's DFS cycle-path reconstruction in
// internal/link/topo.go (visited set plus accumulated path), returning
// the shortest function-name chain from fn to the call site that
// directly introduces target.
func shortestChain(fn *core.Function, target effects.Effect, adjacency map[*core.Function][]hop) []string {
	type item struct {
		fn   *core.Function
		path []string
	}

	if contributes(fn.DirectEffects, target) {
		return []string{functionLabel(fn)}
	}

	visited := map[*core.Function]bool{fn: true}
	queue := []item{{fn: fn, path: []string{functionLabel(fn)}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, h := range adjacency[cur.fn] {
			if h.target == nil {
				if contributes(h.foreignEffect, target) {
					return append(append([]string{}, cur.path...), h.label)
				}
				continue
			}
			if visited[h.target] {
				continue
			}
			visited[h.target] = true
			path := append(append([]string{}, cur.path...), functionLabel(h.target))
			if contributes(h.target.DirectEffects, target) {
				return path
			}
			queue = append(queue, item{fn: h.target, path: path})
		}
	}

	return []string{functionLabel(fn)}
}

func contributes(set *effects.Set, target effects.Effect) bool {
	if set == nil {
		return false
	}
	if set.IsUnknown() {
		return true
	}
	for _, e := range set.Elements() {
		if effects.Encompasses(e, target) {
			return true
		}
	}
	return false
}
