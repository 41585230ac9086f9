package typesys

import (
	"testing"

	"github.com/juanmicrosoft/calor/internal/ast"
)

func TestResolvePrimitivesAndOption(t *testing.T) {
	table := NewTable()
	ref := &ast.TypeRef{Name: "i32"}
	if sym := table.Resolve(ref); !Equals(sym, I32) {
		t.Errorf("Resolve(i32) = %v, want I32", sym)
	}

	nullable := &ast.TypeRef{Name: "string", Nullable: true}
	sym := table.Resolve(nullable)
	opt, ok := sym.(Option)
	if !ok || !Equals(opt.Elem, String) {
		t.Errorf("Resolve(string?) = %v, want Option<string>", sym)
	}
}

func TestResolveResultGeneric(t *testing.T) {
	table := NewTable()
	ref := &ast.TypeRef{Name: "Result", Args: []*ast.TypeRef{{Name: "i32"}, {Name: "string"}}}
	sym := table.Resolve(ref)
	res, ok := sym.(Result)
	if !ok || !Equals(res.Ok, I32) || !Equals(res.Err, String) {
		t.Errorf("Resolve(Result<i32,string>) = %v", sym)
	}
}

func TestResolveDeclaredClass(t *testing.T) {
	table := NewTable()
	table.DeclareClass(&ast.ClassDecl{Name: "Widget"})

	sym := table.Resolve(&ast.TypeRef{Name: "Widget"})
	cls, ok := sym.(*Class)
	if !ok || cls.Name != "Widget" {
		t.Errorf("Resolve(Widget) = %v, want *Class{Widget}", sym)
	}
}

func TestResolveUnknownName(t *testing.T) {
	table := NewTable()
	sym := table.Resolve(&ast.TypeRef{Name: "Nope"})
	if _, ok := sym.(Unknown); !ok {
		t.Errorf("Resolve(Nope) = %v, want Unknown", sym)
	}
}

func TestAssignableToNullableWrapsNonOption(t *testing.T) {
	if !AssignableTo(I32, Option{Elem: I32}) {
		t.Error("i32 should be assignable to Option<i32>")
	}
	if AssignableTo(String, Option{Elem: I32}) {
		t.Error("string should not be assignable to Option<i32>")
	}
}

func TestAssignableToUnknownSuppressesCascade(t *testing.T) {
	if !AssignableTo(Unknown{}, I32) || !AssignableTo(I32, Unknown{}) {
		t.Error("Unknown should be assignable both ways")
	}
}
