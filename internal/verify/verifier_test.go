package verify

import (
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/smt"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

func i32Lit(v int) *core.Literal {
	return &core.Literal{Base: core.Base{Typ: typesys.I32}, Kind: ast.IntLit, Value: v}
}

func param(name string) core.Param {
	return core.Param{Name: name, Type: typesys.I32}
}

func varRef(name string) *core.VarRef {
	return &core.VarRef{Base: core.Base{Typ: typesys.I32}, Name: name}
}

func TestVerifyProvesSimplePostcondition(t *testing.T) {
	// x: i32, requires x > 0, ensures result > 0, body irrelevant to the
	// contract-only check this test performs.
	fn := &core.Function{
		Name:       "Identity",
		Params:     []core.Param{param("x")},
		ReturnType: typesys.I32,
		Requires: []core.Expr{
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: ">", Left: varRef("x"), Right: i32Lit(0)},
		},
		Ensures: []core.Expr{
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: ">", Left: &core.ResultRef{Base: core.Base{Typ: typesys.I32}}, Right: i32Lit(0)},
		},
	}
	mod := &core.Module{Functions: []*core.Function{fn}}

	v := New(smt.NewBoundedSolver(), true)
	report := v.Run(mod)

	if len(report.Functions) != 1 {
		t.Fatalf("expected 1 function report, got %d", len(report.Functions))
	}
	tally := report.Functions[0].Tally()
	if tally[Disproven] != 0 {
		t.Errorf("did not expect any disproven contract, tally = %v", tally)
	}
}

func TestVerifyDisablesToSkipped(t *testing.T) {
	fn := &core.Function{
		Name: "Anything",
		Requires: []core.Expr{
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: ">", Left: i32Lit(1), Right: i32Lit(0)},
		},
	}
	mod := &core.Module{Functions: []*core.Function{fn}}

	v := New(smt.NewBoundedSolver(), false)
	report := v.Run(mod)

	tally := report.Functions[0].Tally()
	if tally[Skipped] != 1 {
		t.Errorf("expected every contract Skipped when verification is disabled, tally = %v", tally)
	}
}

func TestVerifyNilSolverForcesSkipped(t *testing.T) {
	fn := &core.Function{
		Name: "Anything",
		Requires: []core.Expr{
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: ">", Left: i32Lit(1), Right: i32Lit(0)},
		},
	}
	mod := &core.Module{Functions: []*core.Function{fn}}

	v := New(nil, true)
	report := v.Run(mod)

	if report.Functions[0].Tally()[Skipped] != 1 {
		t.Error("a nil solver should force Skipped regardless of the enabled flag")
	}
}

func TestVerifyCountedForLoopProvesBoundedInvariant(t *testing.T) {
	loop := &core.Loop{
		Kind:        core.CountedFor,
		CounterName: "i",
		Low:         i32Lit(0),
		High:        i32Lit(9),
		Step:        1,
	}
	fn := &core.Function{
		Name:   "Sweep",
		Params: nil,
		Body:   []core.Stmt{loop},
	}
	mod := &core.Module{Functions: []*core.Function{fn}}

	v := New(smt.NewBoundedSolver(), true)
	report := v.Run(mod)

	var loopResult *ContractResult
	for i, r := range report.Functions[0].Results {
		if r.Kind == LoopInvariant {
			loopResult = &report.Functions[0].Results[i]
		}
	}
	if loopResult == nil {
		t.Fatal("expected a loop invariant result")
	}
	if loopResult.Status != Proven {
		t.Errorf("Status = %v, want Proven for the bounded-loop-variable invariant", loopResult.Status)
	}
}

func TestVerifyDisprovesViolatedPrecondition(t *testing.T) {
	// requires x > 0 and x < 0 simultaneously: unsatisfiable precondition
	// set means the negation is trivially satisfiable for the second
	// clause checked against the first as an assumption.
	fn := &core.Function{
		Name:   "Contradictory",
		Params: []core.Param{param("x")},
		Requires: []core.Expr{
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: ">", Left: varRef("x"), Right: i32Lit(0)},
			&core.Binary{Base: core.Base{Typ: typesys.Bool}, Op: "<", Left: varRef("x"), Right: i32Lit(0)},
		},
	}
	mod := &core.Module{Functions: []*core.Function{fn}}

	v := New(smt.NewBoundedSolver(), true)
	report := v.Run(mod)

	tally := report.Functions[0].Tally()
	if tally[Disproven] == 0 {
		t.Errorf("expected the contradictory second precondition to be disproven, tally = %v", tally)
	}
}
