package core

import (
	"strings"
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

func TestNodeIDAndPosition(t *testing.T) {
	b := Base{NodeID: 42, Span: ast.Span{Start: ast.Pos{Line: 10, Column: 5, File: "a.calor"}}}
	if b.ID() != 42 {
		t.Errorf("ID() = %v, want 42", b.ID())
	}
	if b.Position().Start.Line != 10 {
		t.Errorf("Position().Start.Line = %v, want 10", b.Position().Start.Line)
	}
}

func TestLiteralString(t *testing.T) {
	lit := &Literal{Base: Base{Typ: typesys.I32}, Kind: ast.IntLit, Value: int64(42)}
	if got := lit.String(); got != "42" {
		t.Errorf("Literal.String() = %q, want %q", got, "42")
	}
	if !typesys.Equals(lit.Type(), typesys.I32) {
		t.Error("Literal.Type() should be I32")
	}
}

func TestVarRefImplementsExpr(t *testing.T) {
	v := &VarRef{Base: Base{Typ: typesys.String}, Name: "x"}
	var _ Expr = v
	if v.String() != "x" {
		t.Errorf("VarRef.String() = %q, want x", v.String())
	}
}

func TestBinaryString(t *testing.T) {
	left := &Literal{Base: Base{Typ: typesys.I32}, Value: int64(1)}
	right := &Literal{Base: Base{Typ: typesys.I32}, Value: int64(2)}
	b := &Binary{Base: Base{Typ: typesys.Bool}, Op: "+", Left: left, Right: right}
	if got := b.String(); got != "(1 + 2)" {
		t.Errorf("Binary.String() = %q, want (1 + 2)", got)
	}
}

func TestBindStmt(t *testing.T) {
	bind := &Bind{Name: "x", Type: typesys.I32, Value: &Literal{Base: Base{Typ: typesys.I32}, Value: int64(5)}}
	var _ Stmt = bind
	if got := bind.String(); got != "let x: i32 = 5" {
		t.Errorf("Bind.String() = %q, want %q", got, "let x: i32 = 5")
	}
}

func TestLoopCountedForString(t *testing.T) {
	low := &Literal{Base: Base{Typ: typesys.I32}, Value: int64(1)}
	high := &Literal{Base: Base{Typ: typesys.I32}, Value: int64(100)}
	loop := &Loop{Kind: CountedFor, CounterName: "i", Low: low, High: high}
	if got := loop.String(); !strings.Contains(got, "for i in 1..100") {
		t.Errorf("Loop.String() = %q, missing counted-for shape", got)
	}
}

func TestCallKindString(t *testing.T) {
	cases := map[CallKind]string{
		CallUnresolved:  "unresolved",
		CallIntraModule: "intra-module",
		CallCrossClass:  "cross-class",
		CallForeign:     "foreign",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("CallKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestCallStmtImplementsStmt(t *testing.T) {
	call := &Call{Kind: CallForeign, Callee: "ThirdParty.Mystery"}
	stmt := &CallStmt{Call: call}
	var _ Stmt = stmt
	if !strings.Contains(stmt.String(), "ThirdParty.Mystery") {
		t.Errorf("CallStmt.String() = %q, missing callee", stmt.String())
	}
}

func TestReturnVoidVsValue(t *testing.T) {
	voidReturn := &Return{}
	if got := voidReturn.String(); got != "return" {
		t.Errorf("void Return.String() = %q, want return", got)
	}
	valueReturn := &Return{Value: &Literal{Base: Base{Typ: typesys.Bool}, Value: true}}
	if got := valueReturn.String(); got != "return true" {
		t.Errorf("Return.String() = %q, want %q", got, "return true")
	}
}

func TestQuantifierAndImplies(t *testing.T) {
	q := &Quantifier{
		Kind:  ast.Forall,
		Bound: []BoundVar{{Name: "i", Type: typesys.I32}},
		Body:  &Literal{Base: Base{Typ: typesys.Bool}, Value: true},
	}
	var _ Expr = q

	impl := &Implies{Left: q, Right: &ResultRef{}}
	if got := impl.String(); !strings.Contains(got, "=>") {
		t.Errorf("Implies.String() = %q, missing =>", got)
	}
}

func TestFunctionCarriesEffectSets(t *testing.T) {
	fn := &Function{Name: "DoWork", ReturnType: typesys.Void}
	if fn.DeclaredEffects != nil {
		t.Error("a fresh Function should have no declared effects yet")
	}
	if fn.Inferred != nil {
		t.Error("a fresh Function should have no inferred effects yet")
	}
}
