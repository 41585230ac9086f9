package verify

import (
	"context"
	"fmt"

	"github.com/juanmicrosoft/calor/internal/smt"
)

// KMax is the default maximum induction order spec §4.5 "Loop handling:
// k-induction" names.
const KMax = 10

// kInduct attempts to prove invariant (a term free in counterVar) holds
// for every value the counted-for loop's counter takes, by k-induction
// at orders 1..kMax (spec §4.5). Returns the order at which the proof
// succeeded, or false if no order up to kMax worked.
func (v *Verifier) kInduct(ctx context.Context, invariant smt.Term, counterVar string, low, high, step int64, kMax int) (int, bool) {
	baseName := fmt.Sprintf("%s$base", counterVar)
	base := substitute(invariant, counterVar, baseName)
	baseEnv := smt.BinOp{Op: "=", Left: smt.Var{Name: baseName, Sort_: smt.SortI32}, Right: smt.IntConst{Value: low, Sort_: smt.SortI32}, Sort_: smt.SortBool}

	baseCheck := v.dischargePrecondition(ctx, base, []smt.Term{baseEnv})
	if baseCheck.Status != Proven {
		return 0, false
	}

	for k := 1; k <= kMax; k++ {
		if v.inductiveStep(ctx, invariant, counterVar, high, step, k) {
			return k, true
		}
	}
	return 0, false
}

// inductiveStep checks one order-k inductive step: does
// I(i0) ∧ I(i1) ∧ … ∧ I(i_{k-1}) ∧ (i_{j+1} = i_j + step for j<k) ∧
// (i_j ≤ upper for j<k) imply I(i_k)? (spec §4.5 "Inductive step of
// order k"). Implemented as: is the negation of that implication
// unsatisfiable.
func (v *Verifier) inductiveStep(ctx context.Context, invariant smt.Term, counterVar string, upper, step int64, k int) bool {
	names := make([]string, k+1)
	for j := 0; j <= k; j++ {
		names[j] = fmt.Sprintf("%s$%d", counterVar, j)
	}

	var premises []smt.Term
	for j := 0; j < k; j++ {
		premises = append(premises, substitute(invariant, counterVar, names[j]))
		premises = append(premises, smt.BinOp{
			Op:    "=",
			Left:  smt.Var{Name: names[j+1], Sort_: smt.SortI32},
			Right: smt.BinOp{Op: "+", Left: smt.Var{Name: names[j], Sort_: smt.SortI32}, Right: smt.IntConst{Value: step, Sort_: smt.SortI32}, Sort_: smt.SortI32},
			Sort_: smt.SortBool,
		})
		premises = append(premises, smt.BinOp{
			Op: "<=", Left: smt.Var{Name: names[j], Sort_: smt.SortI32}, Right: smt.IntConst{Value: upper, Sort_: smt.SortI32}, Sort_: smt.SortBool,
		})
	}

	conclusion := substitute(invariant, counterVar, names[k])
	formula := conjoin(conjoin(premises...), negate(conclusion))

	res, err := v.solver.Check(ctx, formula)
	if err != nil {
		return false
	}
	return res.Result == smt.Unsat
}
