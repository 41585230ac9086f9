// Package binder turns a parsed ast.File into Calor's bound IR
// (internal/core): it populates the module symbol table, resolves
// names, determines each call's kind, type-checks against
// internal/typesys, checks contract purity, and enforces I6 (unique
// stable identifiers within a module).
package binder

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/effects"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/resolver"
	"github.com/juanmicrosoft/calor/internal/sid"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

// symbolTable is the module-local name resolution surface the Binder
// builds up-front, before translating any function body (spec §4.3
// duty 1: "populate the module symbol table... Duplicate identifiers
// are a binding error").
type symbolTable struct {
	functions map[string]*ast.FuncDecl
	classes   map[string]*ast.ClassDecl
	// methods maps a bare method name to every declaration sharing that
	// name across every class — the cross-class multi-map spec §4.3
	// duty 4 and §9 describe for virtual-dispatch-style resolution.
	methods map[string][]*ast.FuncDecl
	enums   map[string]*ast.EnumDecl
}

// Binder holds the dependencies shared across one compilation's binding
// pass: the manifest-backed effect resolver and a fresh type table.
type Binder struct {
	resolver *resolver.Resolver
	types    *typesys.Table
	sids     *sid.Registry
	bag      calerrors.Bag

	// funcsByName and methodsByClass hold every bound Function by name
	// ahead of body translation, so a call site anywhere in the module
	// can link its Target regardless of declaration order.
	funcsByName    map[string]*core.Function
	methodsByClass map[string]*core.Function
}

// New constructs a Binder. Calls to the intrinsics in effects.Intrinsics
// (print, readLine, now, random and the like) are always mapped to their
// intrinsic effects; a throw statement contributes the exception effect.
func New(r *resolver.Resolver) *Binder {
	return &Binder{
		resolver:       r,
		types:          typesys.NewTable(),
		sids:           sid.NewRegistry(),
		funcsByName:    make(map[string]*core.Function),
		methodsByClass: make(map[string]*core.Function),
	}
}

// Bind translates one parsed file into a bound module. Diagnostics
// accumulate in the returned bag; the binder continues after
// recoverable errors to surface as many as possible in a single pass
// (spec §4.3 "Failure model").
func (b *Binder) Bind(file *ast.File) (*core.Module, *calerrors.Bag) {
	table := b.buildSymbolTable(file)

	moduleName := ""
	if file.Module != nil {
		moduleName = file.Module.Path
	}
	mod := &core.Module{Name: moduleName}

	for _, decl := range file.Delegates {
		d := b.types.DeclareDelegate(decl.Name)
		d.ReturnType = b.types.Resolve(decl.ReturnType)
		for _, p := range decl.Params {
			d.Params = append(d.Params, b.types.Resolve(p.Type))
		}
		mod.Delegates = append(mod.Delegates, d)
	}
	for _, decl := range file.Enums {
		mod.Enums = append(mod.Enums, b.types.DeclareEnum(decl))
	}
	for _, decl := range file.Classes {
		cls := b.bindClassSkeleton(decl)
		mod.Classes = append(mod.Classes, cls)
	}

	// Two passes: declare every stable id first (so forward/mutual
	// references and duplicate detection both see the whole module),
	// then translate bodies.
	for _, fn := range file.Functions {
		b.checkStableID(fn.StableID, fn.Name)
	}
	for _, cls := range file.Classes {
		for _, m := range cls.Methods {
			b.checkStableID(m.StableID, cls.Name+"."+m.Name)
		}
	}

	// Declare a Function stub for every free function and method before
	// translating any body, so a call anywhere in the module can link
	// its Target to the real bound Function regardless of the order
	// functions appear in source.
	for _, fn := range file.Functions {
		stub := b.declareStub(fn, nil)
		b.funcsByName[fn.Name] = stub
		mod.Functions = append(mod.Functions, stub)
	}
	for i, cls := range file.Classes {
		boundCls := mod.Classes[i]
		for _, m := range cls.Methods {
			stub := b.declareStub(m, boundCls.Symbol)
			stub.ClassName = boundCls.Name
			b.methodsByClass[boundCls.Name+"."+m.Name] = stub
			boundCls.Methods = append(boundCls.Methods, stub)
		}
	}

	for i, fn := range file.Functions {
		b.bindFunctionBody(fn, table, nil, mod.Functions[i])
	}
	for i, cls := range file.Classes {
		boundCls := mod.Classes[i]
		for j, m := range cls.Methods {
			b.bindFunctionBody(m, table, boundCls.Symbol, boundCls.Methods[j])
		}
	}

	return mod, &b.bag
}

// declareStub resolves a function's signature (params, return type) and
// its declared effect set without yet translating its body, so the
// Function pointer exists for other call sites to link against.
func (b *Binder) declareStub(fn *ast.FuncDecl, owner *typesys.Class) *core.Function {
	params := make([]core.Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, core.Param{
			Name:     p.Name,
			Type:     b.types.Resolve(p.Type),
			Nullable: p.Type != nil && p.Type.Nullable,
		})
	}
	bound := &core.Function{
		StableID:   fn.StableID,
		Name:       fn.Name,
		ReturnType: b.types.Resolve(fn.ReturnType),
		Params:     params,
		Span:       fn.Span,
	}
	if owner != nil {
		bound.ClassName = owner.Name
	}

	declared := make([]effects.Effect, 0, len(fn.DeclaredEffects))
	for _, code := range fn.DeclaredEffects {
		eff, ok := effects.ResolveCode(code)
		if !ok {
			b.bag.Add(calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError,
				fmt.Sprintf("%s declares unknown effect code %q", fn.Name, code), nil))
			continue
		}
		declared = append(declared, eff)
	}
	bound.DeclaredEffects = effects.FromEffects(declared...)
	return bound
}

func (b *Binder) checkStableID(id, owner string) {
	if id == "" {
		b.bag.Add(calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError,
			fmt.Sprintf("%s has no stable identifier", owner), nil))
		return
	}
	if !sid.SID(id).Valid() {
		b.bag.Add(calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError,
			fmt.Sprintf("%s has a malformed stable identifier %q", owner, id), nil))
		return
	}
	if err := b.sids.Register(sid.SID(id), owner); err != nil {
		b.bag.Add(calerrors.New(calerrors.DuplicateIdentifier, calerrors.PhaseBinder, calerrors.SeverityError,
			err.Error(), nil))
	}
}

func (b *Binder) buildSymbolTable(file *ast.File) *symbolTable {
	t := &symbolTable{
		functions: make(map[string]*ast.FuncDecl),
		classes:   make(map[string]*ast.ClassDecl),
		methods:   make(map[string][]*ast.FuncDecl),
		enums:     make(map[string]*ast.EnumDecl),
	}
	for _, fn := range file.Functions {
		t.functions[fn.Name] = fn
	}
	for _, cls := range file.Classes {
		t.classes[cls.Name] = cls
		for _, m := range cls.Methods {
			t.methods[m.Name] = append(t.methods[m.Name], m)
		}
	}
	for _, e := range file.Enums {
		t.enums[e.Name] = e
	}
	return t
}

func (b *Binder) bindClassSkeleton(decl *ast.ClassDecl) *core.Class {
	sym := b.types.DeclareClass(decl)
	cls := &core.Class{Name: decl.Name, Symbol: sym}
	for _, f := range decl.Fields {
		ftype := b.types.Resolve(f.Type)
		sym.Fields[f.Name] = ftype
		cls.Fields = append(cls.Fields, core.Param{Name: f.Name, Type: ftype})
	}
	return cls
}
