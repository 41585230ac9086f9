package binder

import (
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/manifest"
	"github.com/juanmicrosoft/calor/internal/resolver"
)

func newTestBinder() *Binder {
	return New(resolver.New(manifest.New(), resolver.PolicyLenient))
}

func i32Ref() *ast.TypeRef { return &ast.TypeRef{Name: "i32"} }

func TestBindIntraModuleCall(t *testing.T) {
	square := &ast.FuncDecl{
		StableID:   "fn-square",
		Name:       "Square",
		Params:     []*ast.ParamDecl{{Name: "x", Type: i32Ref()}},
		ReturnType: i32Ref(),
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Left: &ast.VarRef{Name: "x"}, Op: "*", Right: &ast.VarRef{Name: "x"}}},
		},
	}
	caller := &ast.FuncDecl{
		StableID:   "fn-quad",
		Name:       "Quad",
		Params:     []*ast.ParamDecl{{Name: "x", Type: i32Ref()}},
		ReturnType: i32Ref(),
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.CallExpr{Name: "Square", Args: []ast.Expr{&ast.VarRef{Name: "x"}}}},
		},
	}
	file := &ast.File{Functions: []*ast.FuncDecl{square, caller}}

	mod, bag := newTestBinder().Bind(file)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.All())
	}

	quad := mod.Functions[1]
	ret, ok := quad.Body[0].(*core.Return)
	if !ok {
		t.Fatalf("Quad body[0] = %T, want *core.Return", quad.Body[0])
	}
	call, ok := ret.Value.(*core.Call)
	if !ok {
		t.Fatalf("return value = %T, want *core.Call", ret.Value)
	}
	if call.Kind != core.CallIntraModule {
		t.Errorf("Kind = %v, want intra-module", call.Kind)
	}
	if call.Target == nil || call.Target.Name != "Square" {
		t.Errorf("Target = %v, want a resolved pointer to Square", call.Target)
	}
}

func TestBindForeignCallResolvesViaQualifier(t *testing.T) {
	logLine := &ast.FuncDecl{
		StableID:   "fn-log",
		Name:       "LogLine",
		ReturnType: &ast.TypeRef{Name: "void"},
		Body: []ast.Stmt{
			&ast.CallStmt{Call: &ast.CallExpr{
				Receiver: &ast.VarRef{Name: "Console"},
				Name:     "WriteLine",
				Args:     []ast.Expr{&ast.Literal{Kind: ast.StringLit, Value: "hi"}},
			}},
		},
	}
	file := &ast.File{Functions: []*ast.FuncDecl{logLine}}

	mod, bag := newTestBinder().Bind(file)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.All())
	}

	stmt, ok := mod.Functions[0].Body[0].(*core.CallStmt)
	if !ok {
		t.Fatalf("body[0] = %T, want *core.CallStmt", mod.Functions[0].Body[0])
	}
	if stmt.Call.Kind != core.CallForeign {
		t.Errorf("Kind = %v, want foreign", stmt.Call.Kind)
	}
	if stmt.Call.ResolvedQualifier != "Console.WriteLine" {
		t.Errorf("ResolvedQualifier = %q, want Console.WriteLine", stmt.Call.ResolvedQualifier)
	}
}

func TestBindCrossClassMethodCall(t *testing.T) {
	widget := &ast.ClassDecl{
		Name: "Widget",
		Methods: []*ast.FuncDecl{
			{StableID: "m-spin", Name: "Spin", OwnerClass: "Widget", ReturnType: &ast.TypeRef{Name: "void"}},
		},
	}
	caller := &ast.FuncDecl{
		StableID:   "fn-spinall",
		Name:       "SpinAll",
		Params:     []*ast.ParamDecl{{Name: "w", Type: &ast.TypeRef{Name: "Widget"}}},
		ReturnType: &ast.TypeRef{Name: "void"},
		Body: []ast.Stmt{
			&ast.CallStmt{Call: &ast.CallExpr{Receiver: &ast.VarRef{Name: "w"}, Name: "Spin"}},
		},
	}
	file := &ast.File{Classes: []*ast.ClassDecl{widget}, Functions: []*ast.FuncDecl{caller}}

	mod, bag := newTestBinder().Bind(file)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.All())
	}

	stmt := mod.Functions[0].Body[0].(*core.CallStmt)
	if stmt.Call.Kind != core.CallCrossClass {
		t.Errorf("Kind = %v, want cross-class", stmt.Call.Kind)
	}
	if stmt.Call.Target == nil || stmt.Call.Target.Name != "Spin" {
		t.Errorf("Target = %v, want Widget.Spin", stmt.Call.Target)
	}
}

func TestBindDuplicateStableIDReported(t *testing.T) {
	a := &ast.FuncDecl{StableID: "dup", Name: "A", ReturnType: &ast.TypeRef{Name: "void"}}
	b := &ast.FuncDecl{StableID: "dup", Name: "B", ReturnType: &ast.TypeRef{Name: "void"}}
	file := &ast.File{Functions: []*ast.FuncDecl{a, b}}

	_, bag := newTestBinder().Bind(file)
	found := false
	for _, r := range bag.All() {
		if r.Code == "DuplicateIdentifier" {
			found = true
		}
	}
	if !found {
		t.Error("expected a DuplicateIdentifier diagnostic")
	}
}

func TestBindUnknownDeclaredEffectCodeReported(t *testing.T) {
	fn := &ast.FuncDecl{
		StableID:        "fn-bad",
		Name:            "Bad",
		ReturnType:      &ast.TypeRef{Name: "void"},
		DeclaredEffects: []string{"not-a-real-code"},
	}
	file := &ast.File{Functions: []*ast.FuncDecl{fn}}

	_, bag := newTestBinder().Bind(file)
	if !bag.HasErrors() {
		t.Error("expected a BindError diagnostic for the unknown effect code")
	}
}

func TestBindThrowInBodyIsNotAContractFault(t *testing.T) {
	fn := &ast.FuncDecl{
		StableID:   "fn-badcontract",
		Name:       "BadContract",
		ReturnType: &ast.TypeRef{Name: "void"},
		Requires:   []ast.Expr{&ast.Literal{Kind: ast.BoolLit, Value: true}},
		Body: []ast.Stmt{
			&ast.ThrowStmt{Value: &ast.Literal{Kind: ast.StringLit, Value: "boom"}},
		},
	}
	file := &ast.File{Functions: []*ast.FuncDecl{fn}}

	_, bag := newTestBinder().Bind(file)
	for _, r := range bag.All() {
		if r.Code == "ContractNotPure" {
			t.Fatal("throw is a statement, not inside the Requires contract, and must not fault")
		}
	}
}

func TestBindCallInsideContractIsRejected(t *testing.T) {
	fn := &ast.FuncDecl{
		StableID:   "fn-badcontract-call",
		Name:       "BadContractCall",
		ReturnType: &ast.TypeRef{Name: "void"},
		Requires:   []ast.Expr{&ast.CallExpr{Name: "print", Args: []ast.Expr{&ast.Literal{Kind: ast.StringLit, Value: "x"}}}},
	}
	file := &ast.File{Functions: []*ast.FuncDecl{fn}}

	_, bag := newTestBinder().Bind(file)
	found := false
	for _, r := range bag.All() {
		if r.Code == "ContractNotPure" {
			found = true
		}
	}
	if !found {
		t.Error("expected a ContractNotPure diagnostic for a call inside Requires")
	}
}

func TestBindConstructorAssignExemptFromMutation(t *testing.T) {
	point := &ast.ClassDecl{
		Name:   "Point",
		Fields: []*ast.FieldDecl{{Name: "X", Type: i32Ref()}},
		Methods: []*ast.FuncDecl{
			{
				StableID:      "ctor-point",
				Name:          "New",
				OwnerClass:    "Point",
				IsConstructor: true,
				Params:        []*ast.ParamDecl{{Name: "x", Type: i32Ref()}},
				ReturnType:    &ast.TypeRef{Name: "void"},
				Body: []ast.Stmt{
					&ast.AssignStmt{Target: &ast.VarRef{Name: "X"}, Value: &ast.VarRef{Name: "x"}},
				},
			},
		},
	}
	file := &ast.File{Classes: []*ast.ClassDecl{point}}

	mod, bag := newTestBinder().Bind(file)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.All())
	}

	ctor := mod.Classes[0].Methods[0]
	if ctor.DirectEffects != nil && !ctor.DirectEffects.IsEmpty() {
		t.Errorf("constructor field assignment should not record a mutation effect, got %v", ctor.DirectEffects)
	}
}
