package verify

import (
	"context"

	"github.com/juanmicrosoft/calor/internal/smt"
)

// conjoin folds terms into one boolean "and" chain, BoolConst(true) for
// an empty list — the neutral element a missing assumption set needs.
func conjoin(terms ...smt.Term) smt.Term {
	var out smt.Term = smt.BoolConst(true)
	first := true
	for _, t := range terms {
		if t == nil {
			continue
		}
		if first {
			out = t
			first = false
			continue
		}
		out = smt.BinOp{Op: "and", Left: out, Right: t, Sort_: smt.SortBool}
	}
	return out
}

func negate(t smt.Term) smt.Term {
	return smt.UnOp{Op: "not", Operand: t, Sort_: smt.SortBool}
}

func hasUnsupported(t smt.Term) bool {
	_, ok := t.(smt.Unsupported)
	return ok
}

// dischargePrecondition checks `not Q and assumptions` for
// satisfiability; satisfiable means Q can be violated under the
// assumptions the caller has established, i.e. disproven with a
// counterexample (spec §4.5 "Discharge").
func (v *Verifier) dischargePrecondition(ctx context.Context, q smt.Term, assumptions []smt.Term) ContractResult {
	if hasUnsupported(q) {
		return ContractResult{Status: Unsupported}
	}
	formula := conjoin(negate(q), conjoin(assumptions...))
	res, err := v.solver.Check(ctx, formula)
	if err != nil {
		return ContractResult{Status: Unproven, Message: err.Error()}
	}
	switch res.Result {
	case smt.Unsat:
		return ContractResult{Status: Proven}
	case smt.Sat:
		var model *smt.Model
		if res.Model != nil {
			model = res.Model
		}
		return ContractResult{Status: Disproven, Counterexample: model}
	default:
		return ContractResult{Status: Unproven}
	}
}

// dischargePostcondition checks `pre and path and not S` for
// satisfiability; unsatisfiable means no execution reaching the return
// under pre and path can violate S, i.e. proven (spec §4.5 "Discharge").
func (v *Verifier) dischargePostcondition(ctx context.Context, pre smt.Term, path []smt.Term, s smt.Term) ContractResult {
	if hasUnsupported(s) || hasUnsupported(pre) {
		return ContractResult{Status: Unsupported}
	}
	formula := conjoin(pre, conjoin(path...), negate(s))
	res, err := v.solver.Check(ctx, formula)
	if err != nil {
		return ContractResult{Status: Unproven, Message: err.Error()}
	}
	switch res.Result {
	case smt.Unsat:
		return ContractResult{Status: Proven}
	case smt.Sat:
		var model *smt.Model
		if res.Model != nil {
			model = res.Model
		}
		return ContractResult{Status: Disproven, Counterexample: model}
	default:
		return ContractResult{Status: Unproven}
	}
}
