package verify

import (
	"context"
	"fmt"

	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/smt"
)

// Verifier discharges every function's contracts against a Solver.
// Verification is opt-in per compilation (spec §4.5 "Modes"): when
// disabled, Run returns Skipped for every contract without invoking
// the solver at all.
type Verifier struct {
	solver  smt.Solver
	enabled bool
	kMax    int
}

// New constructs a Verifier. A nil solver is treated the same as
// enabled=false — the environment has no usable SMT backend, so
// verification is globally Skipped and the emitter falls back to
// runtime guards for every contract (spec §4.5 "Environment").
func New(solver smt.Solver, enabled bool) *Verifier {
	if solver == nil {
		enabled = false
	}
	return &Verifier{solver: solver, enabled: enabled, kMax: KMax}
}

// Run verifies every function and method in mod.
func (v *Verifier) Run(mod *core.Module) *ModuleReport {
	report := &ModuleReport{}
	for _, fn := range allFunctions(mod) {
		report.Functions = append(report.Functions, v.verifyFunction(fn))
	}
	return report
}

func allFunctions(mod *core.Module) []*core.Function {
	out := append([]*core.Function(nil), mod.Functions...)
	for _, cls := range mod.Classes {
		out = append(out, cls.Methods...)
	}
	return out
}

func functionLabel(fn *core.Function) string {
	if fn.ClassName != "" {
		return fn.ClassName + "." + fn.Name
	}
	return fn.Name
}

func (v *Verifier) verifyFunction(fn *core.Function) FunctionReport {
	report := FunctionReport{FunctionName: functionLabel(fn)}
	ctx := context.Background()

	if !v.enabled {
		n := len(fn.Requires) + len(fn.Ensures) + len(collectLoops(fn.Body))
		for i := 0; i < n; i++ {
			report.Results = append(report.Results, ContractResult{Status: Skipped})
		}
		return report
	}

	t := newTranslator(fn.Params)
	t.sorts["result"] = sortOf(fn.ReturnType)

	var preTerms []smt.Term
	for i, req := range fn.Requires {
		term := t.translate(req)
		res := v.dischargePrecondition(ctx, term, preTerms)
		res.Kind, res.Index = Precondition, i
		report.Results = append(report.Results, res)
		preTerms = append(preTerms, term)
	}

	pre := conjoin(preTerms...)
	for i, ens := range fn.Ensures {
		term := t.translate(ens)
		res := v.dischargePostcondition(ctx, pre, nil, term)
		res.Kind, res.Index = Postcondition, i
		report.Results = append(report.Results, res)
	}

	for i, loop := range collectLoops(fn.Body) {
		res := v.verifyLoop(ctx, t, loop)
		res.Kind, res.Index = LoopInvariant, i
		report.Results = append(report.Results, res)
	}

	return report
}

// verifyLoop attempts k-induction on a counted-for loop with concrete
// integer bounds, either on the author-provided invariant or, absent
// one, on each synthesized candidate in heuristic order (spec §4.5
// "Loop handling: k-induction" / "Invariant synthesis").
func (v *Verifier) verifyLoop(ctx context.Context, t *translator, loop *core.Loop) ContractResult {
	if loop.Kind != core.CountedFor {
		return ContractResult{Status: Unsupported, Message: "k-induction targets counted-for loops; while-loops need a characterized condition and transition"}
	}
	lowLit, ok1 := loop.Low.(*core.Literal)
	highLit, ok2 := loop.High.(*core.Literal)
	if !ok1 || !ok2 {
		return ContractResult{Status: Unsupported, Message: "loop bounds are not concrete literals"}
	}
	low, ok1 := asInt(lowLit.Value)
	high, ok2 := asInt(highLit.Value)
	if !ok1 || !ok2 {
		return ContractResult{Status: Unsupported, Message: "loop bounds are not integers"}
	}

	step := loop.Step
	if step == 0 {
		step = 1
	}
	t.sorts[loop.CounterName] = smt.SortI32

	var candidates []smt.Term
	if loop.Invariant != nil {
		candidates = []smt.Term{t.translate(loop.Invariant)}
	} else {
		candidates = synthesize(loop, loop.CounterName, low, high)
	}

	for _, inv := range candidates {
		if hasUnsupported(inv) {
			continue
		}
		if k, ok := v.kInduct(ctx, inv, loop.CounterName, low, high, step, v.kMax); ok {
			return ContractResult{Status: Proven, Message: fmt.Sprintf("invariant proven by %d-induction", k)}
		}
	}
	return ContractResult{Status: Unproven}
}

// collectLoops walks a function body and returns every Loop it
// contains, including loops nested inside branches/switches/try
// blocks and other loops.
func collectLoops(body []core.Stmt) []*core.Loop {
	var out []*core.Loop
	var walk func([]core.Stmt)
	walk = func(stmts []core.Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *core.Loop:
				out = append(out, n)
				walk(n.Body)
			case *core.Branch:
				walk(n.Then)
				walk(n.Else)
			case *core.Switch:
				for _, c := range n.Cases {
					walk(c.Body)
				}
				walk(n.Default)
			case *core.TryCatch:
				walk(n.Try)
				for _, c := range n.Catches {
					walk(c.Body)
				}
				walk(n.Finally)
			}
		}
	}
	walk(body)
	return out
}
