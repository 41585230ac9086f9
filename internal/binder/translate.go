package binder

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/effects"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

// funcScope carries the per-function state the translation pass needs:
// local variable types, whether we're inside a contract (pure-only)
// expression, and the accumulated intrinsic effects of the body so far.
type funcScope struct {
	locals      map[string]typesys.Symbol
	owner       *typesys.Class // non-nil inside a method/constructor body
	isCtor      bool
	inContract  bool
	intrinsics  []effects.Effect
	purityFault bool
}

func newFuncScope(owner *typesys.Class, isCtor bool) *funcScope {
	return &funcScope{locals: make(map[string]typesys.Symbol), owner: owner, isCtor: isCtor}
}

func (s *funcScope) addIntrinsic(e effects.Effect) {
	if !s.inContract {
		s.intrinsics = append(s.intrinsics, e)
	}
}

// bindFunctionBody translates a function's contracts and body into an
// already-declared stub (see Binder.declareStub), so every Target
// pointer in the module was already resolvable before any body ran.
func (b *Binder) bindFunctionBody(fn *ast.FuncDecl, table *symbolTable, owner *typesys.Class, bound *core.Function) {
	scope := newFuncScope(owner, fn.IsConstructor)
	for _, p := range bound.Params {
		scope.locals[p.Name] = p.Type
	}

	scope.inContract = true
	for _, req := range fn.Requires {
		bound.Requires = append(bound.Requires, b.bindExpr(req, table, scope))
	}
	for _, ens := range fn.Ensures {
		bound.Ensures = append(bound.Ensures, b.bindExpr(ens, table, scope))
	}
	scope.inContract = false

	bound.Body = b.bindStmts(fn.Body, table, scope)
	bound.DirectEffects = effects.FromEffects(scope.intrinsics...)
}

func (b *Binder) bindStmts(stmts []ast.Stmt, table *symbolTable, scope *funcScope) []core.Stmt {
	out := make([]core.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, b.bindStmt(s, table, scope))
	}
	return out
}

func (b *Binder) bindStmt(s ast.Stmt, table *symbolTable, scope *funcScope) core.Stmt {
	switch n := s.(type) {
	case *ast.BindStmt:
		value := b.bindExpr(n.Value, table, scope)
		typ := value.Type()
		if n.Type != nil {
			typ = b.types.Resolve(n.Type)
		}
		scope.locals[n.Name] = typ
		return &core.Bind{Name: n.Name, Type: typ, Value: value}

	case *ast.AssignStmt:
		target := b.bindExpr(n.Target, table, scope)
		value := b.bindExpr(n.Value, table, scope)
		if !isLocalAssignTarget(n.Target, scope) {
			scope.addIntrinsic(effects.Mutation)
		}
		return &core.Assign{Target: target, Value: value}

	case *ast.BranchStmt:
		return &core.Branch{
			Cond: b.bindExpr(n.Cond, table, scope),
			Then: b.bindStmts(n.Then, table, scope),
			Else: b.bindStmts(n.Else, table, scope),
		}

	case *ast.LoopStmt:
		loop := &core.Loop{Step: 1}
		switch n.Kind {
		case ast.CountedFor:
			loop.Kind = core.CountedFor
		case ast.While:
			loop.Kind = core.While
		}
		loop.CounterName = n.Var
		if n.Var != "" {
			scope.locals[n.Var] = typesys.I32
		}
		if n.Lower != nil {
			loop.Low = b.bindExpr(n.Lower, table, scope)
		}
		if n.Upper != nil {
			loop.High = b.bindExpr(n.Upper, table, scope)
		}
		if n.Cond != nil {
			loop.Cond = b.bindExpr(n.Cond, table, scope)
		}
		if n.Invariant != nil {
			scope.inContract = true
			loop.Invariant = b.bindExpr(n.Invariant, table, scope)
			scope.inContract = false
		}
		loop.Body = b.bindStmts(n.Body, table, scope)
		return loop

	case *ast.SwitchStmt:
		sw := &core.Switch{Subject: b.bindExpr(n.Subject, table, scope)}
		for _, c := range n.Cases {
			cc := core.SwitchCase{Body: b.bindStmts(c.Body, table, scope)}
			for _, v := range c.Values {
				cc.Values = append(cc.Values, b.bindExpr(v, table, scope))
			}
			if c.Values == nil {
				sw.Default = cc.Body
				continue
			}
			sw.Cases = append(sw.Cases, cc)
		}
		return sw

	case *ast.CallStmt:
		call := b.bindCall(n.Call, table, scope)
		return &core.CallStmt{Call: call}

	case *ast.ReturnStmt:
		var val core.Expr
		if n.Value != nil {
			val = b.bindExpr(n.Value, table, scope)
		}
		return &core.Return{Value: val}

	case *ast.ThrowStmt:
		scope.addIntrinsic(effects.ExceptionEff)
		if scope.inContract {
			b.reportContractFault(scope, "throw is not permitted in a contract expression")
		}
		return &core.Throw{Value: b.bindExpr(n.Value, table, scope)}

	case *ast.TryCatchStmt:
		tc := &core.TryCatch{Try: b.bindStmts(n.Try, table, scope)}
		for _, c := range n.Catches {
			tc.Catches = append(tc.Catches, core.Catch{
				ExceptionType: b.types.Resolve(c.ExceptionType),
				VarName:       c.BindingName,
				Body:          b.bindStmts(c.Body, table, scope),
			})
		}
		tc.Finally = b.bindStmts(n.Finally, table, scope)
		return tc

	default:
		b.bag.Add(calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError,
			fmt.Sprintf("unsupported statement kind %T", s), nil))
		return &core.Return{}
	}
}

// isLocalAssignTarget reports whether an assignment target is a plain
// local variable already in scope — reassigning a local is not itself
// an effect; anything else (a field, an array slot) is treated as
// mutation, except inside a constructor, which is exempt (spec §4.4
// "Special cases").
func isLocalAssignTarget(target ast.Expr, scope *funcScope) bool {
	if scope.isCtor {
		return true
	}
	v, ok := target.(*ast.VarRef)
	if !ok {
		return false
	}
	_, local := scope.locals[v.Name]
	return local
}

func (b *Binder) reportContractFault(scope *funcScope, msg string) {
	scope.purityFault = true
	b.bag.Add(calerrors.New(calerrors.ContractNotPure, calerrors.PhaseBinder, calerrors.SeverityError, msg, nil))
}

var builtinIntrinsics = effects.Intrinsics

func (b *Binder) bindExpr(e ast.Expr, table *symbolTable, scope *funcScope) core.Expr {
	switch n := e.(type) {
	case *ast.Literal:
		return &core.Literal{Kind: n.Kind, Value: n.Value, Base: core.Base{Typ: literalType(n.Kind)}}

	case *ast.VarRef:
		typ := typesys.Symbol(typesys.Unknown{})
		if t, ok := scope.locals[n.Name]; ok {
			typ = t
		} else if scope.owner != nil {
			if t, ok := scope.owner.Fields[n.Name]; ok {
				typ = t
			}
		}
		return &core.VarRef{Name: n.Name, Base: core.Base{Typ: typ}}

	case *ast.BinaryExpr:
		left := b.bindExpr(n.Left, table, scope)
		right := b.bindExpr(n.Right, table, scope)
		return &core.Binary{Op: n.Op, Left: left, Right: right, Base: core.Base{Typ: binaryResultType(n.Op, left, right)}}

	case *ast.UnaryExpr:
		operand := b.bindExpr(n.Operand, table, scope)
		return &core.Unary{Op: n.Op, Operand: operand, Base: core.Base{Typ: operand.Type()}}

	case *ast.ConditionalExpr:
		then := b.bindExpr(n.Then, table, scope)
		return &core.Conditional{
			Cond: b.bindExpr(n.Cond, table, scope), Then: then, Else: b.bindExpr(n.Else, table, scope),
			Base: core.Base{Typ: then.Type()},
		}

	case *ast.ArrayAccessExpr:
		arr := b.bindExpr(n.Array, table, scope)
		elemType := typesys.Symbol(typesys.Unknown{})
		if a, ok := arr.Type().(typesys.Array); ok {
			elemType = a.Elem
		}
		return &core.ArrayAccess{Array: arr, Index: b.bindExpr(n.Index, table, scope), Base: core.Base{Typ: elemType}}

	case *ast.CallExpr:
		return b.bindCall(n, table, scope)

	case *ast.QuantifierExpr:
		qs := newFuncScope(scope.owner, scope.isCtor)
		for k, v := range scope.locals {
			qs.locals[k] = v
		}
		qs.inContract = true
		var bound []core.BoundVar
		for _, v := range n.Vars {
			typ := b.types.Resolve(v.Type)
			qs.locals[v.Name] = typ
			bound = append(bound, core.BoundVar{Name: v.Name, Type: typ})
		}
		kind := ast.Forall
		if n.Kind == ast.Exists {
			kind = ast.Exists
		}
		return &core.Quantifier{Kind: kind, Bound: bound, Body: b.bindExpr(n.Body, table, qs), Base: core.Base{Typ: typesys.Bool}}

	case *ast.ImpliesExpr:
		return &core.Implies{
			Left: b.bindExpr(n.Antecedent, table, scope), Right: b.bindExpr(n.Consequent, table, scope),
			Base: core.Base{Typ: typesys.Bool},
		}

	case *ast.ResultRef:
		return &core.ResultRef{Base: core.Base{Typ: typesys.Unknown{}}}

	default:
		b.bag.Add(calerrors.New(calerrors.BindError, calerrors.PhaseBinder, calerrors.SeverityError,
			fmt.Sprintf("unsupported expression kind %T", e), nil))
		return &core.Literal{Value: nil, Base: core.Base{Typ: typesys.Unknown{}}}
	}
}

func literalType(kind ast.LiteralKind) typesys.Symbol {
	switch kind {
	case ast.IntLit:
		return typesys.I32
	case ast.FloatLit:
		return typesys.F64
	case ast.BoolLit:
		return typesys.Bool
	case ast.StringLit:
		return typesys.String
	default:
		return typesys.Unknown{}
	}
}

func binaryResultType(op string, left, right core.Expr) typesys.Symbol {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return typesys.Bool
	default:
		return left.Type()
	}
}
