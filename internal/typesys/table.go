package typesys

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/ast"
)

var primitives = map[string]Primitive{
	"i32": I32, "i64": I64, "f32": F32, "f64": F64, "bool": Bool, "string": String, "void": Void,
}

// Table is the per-module type-symbol table the binder builds before
// resolving any expression's TypeRef.
type Table struct {
	named map[string]Symbol
}

// NewTable builds an empty table. The primitives are not stored in it;
// Resolve recognizes them without consulting the table.
func NewTable() *Table {
	return &Table{named: make(map[string]Symbol)}
}

// DeclareClass registers a class's symbol ahead of resolving its
// members, so self-referential and mutually-referential fields resolve.
func (t *Table) DeclareClass(decl *ast.ClassDecl) *Class {
	c := &Class{Name: decl.Name, Fields: make(map[string]Symbol)}
	t.named[decl.Name] = c
	return c
}

// DeclareEnum registers an enum's symbol.
func (t *Table) DeclareEnum(decl *ast.EnumDecl) *Enum {
	e := &Enum{Name: decl.Name, Members: append([]string(nil), decl.Members...)}
	t.named[decl.Name] = e
	return e
}

// DeclareDelegate registers a delegate's symbol; Params/ReturnType are
// filled in by the caller once their TypeRefs have been resolved.
func (t *Table) DeclareDelegate(name string) *Delegate {
	d := &Delegate{Name: name}
	t.named[name] = d
	return d
}

// Lookup finds a previously declared named type by its bare name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.named[name]
	return s, ok
}

// Resolve converts a parsed TypeRef into a Symbol. Unresolvable names
// (foreign types the manifest store, not the type table, accounts for)
// resolve to Unknown rather than erroring — the binder decides whether
// that is itself a diagnostic.
func (t *Table) Resolve(ref *ast.TypeRef) Symbol {
	if ref == nil {
		return Void
	}
	base := t.resolveBase(ref)
	if ref.Nullable {
		if _, ok := base.(Option); ok {
			return base
		}
		return Option{Elem: base}
	}
	return base
}

func (t *Table) resolveBase(ref *ast.TypeRef) Symbol {
	switch ref.Name {
	case "Option":
		if len(ref.Args) != 1 {
			return Unknown{}
		}
		return Option{Elem: t.Resolve(ref.Args[0])}
	case "Result":
		if len(ref.Args) != 2 {
			return Unknown{}
		}
		return Result{Ok: t.Resolve(ref.Args[0]), Err: t.Resolve(ref.Args[1])}
	}
	if prim, ok := primitives[ref.Name]; ok {
		return prim
	}
	if len(ref.Args) == 1 && ref.Name == "Array" {
		return Array{Elem: t.Resolve(ref.Args[0])}
	}
	if sym, ok := t.named[ref.Name]; ok {
		return sym
	}
	return Unknown{}
}

// FormatMismatch renders a standard "expected X, got Y" message for
// binder type-error diagnostics.
func FormatMismatch(expected, got Symbol) string {
	return fmt.Sprintf("expected %s, got %s", expected.TypeName(), got.TypeName())
}
