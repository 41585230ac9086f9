package pipeline

import (
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/manifest"
	"github.com/juanmicrosoft/calor/internal/resolver"
)

func i32Ref() *ast.TypeRef { return &ast.TypeRef{Name: "i32"} }

func TestRunFileBindsInfersAndVerifiesCleanFunction(t *testing.T) {
	square := &ast.FuncDecl{
		StableID:   "fn-square",
		Name:       "Square",
		Params:     []*ast.ParamDecl{{Name: "x", Type: i32Ref()}},
		ReturnType: i32Ref(),
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Left: &ast.VarRef{Name: "x"}, Op: "*", Right: &ast.VarRef{Name: "x"}}},
		},
	}
	file := &ast.File{Path: "square.cal", Functions: []*ast.FuncDecl{square}}
	r := resolver.New(manifest.New(), resolver.PolicyLenient)

	result := RunFile(file, r, Options{Enforce: true, Verify: true})

	if result.Module == nil {
		t.Fatal("expected a bound module")
	}
	if result.Verification == nil {
		t.Fatal("expected a verification report even for a function with no contracts")
	}
	for _, d := range result.Diagnostics {
		if d.Severity == calerrors.SeverityError {
			t.Errorf("unexpected error diagnostic: %s: %s", d.Code, d.Message)
		}
	}
}

func TestRunFileSkipsVerificationWhenDisabled(t *testing.T) {
	fn := &ast.FuncDecl{StableID: "fn-noop", Name: "Noop", ReturnType: &ast.TypeRef{Name: "void"}}
	file := &ast.File{Functions: []*ast.FuncDecl{fn}}
	r := resolver.New(manifest.New(), resolver.PolicyLenient)

	result := RunFile(file, r, Options{})

	if result.Verification == nil {
		t.Fatal("expected a verification report, all Skipped, when Verify is false")
	}
}

func TestAggregateProjectSortsBySourcePath(t *testing.T) {
	results := []FileResult{
		{Path: "z.cal", Diagnostics: []*calerrors.Report{calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError, "z", nil)}},
		{Path: "a.cal", Diagnostics: []*calerrors.Report{calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError, "a", nil)}},
	}

	merged := AggregateProject(results)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged diagnostics, got %d", len(merged))
	}
	if merged[0].Message != "a" || merged[1].Message != "z" {
		t.Errorf("diagnostics not sorted by source path: %v", merged)
	}
}

func TestExitCodeReflectsErrorSeverity(t *testing.T) {
	clean := []*calerrors.Report{calerrors.New(calerrors.InvariantSynthesized, calerrors.PhaseVerifier, calerrors.SeverityInfo, "ok", nil)}
	if ExitCode(clean) != 0 {
		t.Error("expected exit code 0 when no diagnostic is an error")
	}

	dirty := append(clean, calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError, "bad", nil))
	if ExitCode(dirty) != 1 {
		t.Error("expected exit code 1 when at least one diagnostic is an error")
	}
}
