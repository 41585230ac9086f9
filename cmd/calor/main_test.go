package main

import (
	"bytes"
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
)

type fakeFrontend struct {
	file *ast.File
	err  error
}

func (f fakeFrontend) Parse(path string) (*ast.File, error) {
	return f.file, f.err
}

func newFixtureFile() *ast.File {
	i32 := &ast.TypeRef{Name: "i32"}
	square := &ast.FuncDecl{
		StableID:   "fn-square",
		Name:       "Square",
		Params:     []*ast.ParamDecl{{Name: "x", Type: i32}},
		ReturnType: i32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Left: &ast.VarRef{Name: "x"}, Op: "*", Right: &ast.VarRef{Name: "x"}}},
		},
	}
	return &ast.File{Path: "square.cal", Functions: []*ast.FuncDecl{square}}
}

func TestCheckCommandRunsPipelineOverAnInjectedFrontend(t *testing.T) {
	root := newRootCmd(fakeFrontend{file: newFixtureFile()})
	root.SetArgs([]string{"check", "square.cal"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatalf("check command failed: %v", err)
	}
}

func TestVerifyCommandRunsWithoutContracts(t *testing.T) {
	root := newRootCmd(fakeFrontend{file: newFixtureFile()})
	root.SetArgs([]string{"verify", "square.cal"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatalf("verify command failed: %v", err)
	}
}

func TestCheckCommandSurfacesFrontendError(t *testing.T) {
	root := newRootCmd(unimplementedFrontend{})
	root.SetArgs([]string{"check", "square.cal"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatal("expected the unimplemented frontend to surface an error")
	}
}
