package binder

import (
	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

// bindCall determines a call site's kind (spec §4.3 duty 4): a name
// resolvable within the module's free functions is intra-module; a
// name resolving to exactly one method declaration, reached either
// through a typed receiver or as a bare name with a single candidate
// across every class, is cross-class; everything else — an unresolved
// qualifier, an ambiguous bare method name, or a call the type table
// can't attach to a declared class — is foreign, left for the Effect
// Resolver to answer from the manifest store.
func (b *Binder) bindCall(n *ast.CallExpr, table *symbolTable, scope *funcScope) *core.Call {
	if scope.inContract {
		b.reportContractFault(scope, "call expressions are not permitted in a contract expression")
	}

	args := make([]core.Expr, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, b.bindExpr(a, table, scope))
	}

	if n.Receiver == nil {
		return b.bindBareCall(n, table, scope, args)
	}
	return b.bindReceiverCall(n, table, scope, args)
}

func (b *Binder) bindBareCall(n *ast.CallExpr, table *symbolTable, scope *funcScope, args []core.Expr) *core.Call {
	if eff, ok := builtinIntrinsics[n.Name]; ok {
		scope.addIntrinsic(eff)
		return &core.Call{Kind: core.CallForeign, Callee: n.Name, ResolvedQualifier: n.Name, Args: args}
	}

	if _, ok := table.functions[n.Name]; ok {
		return &core.Call{
			Kind:   core.CallIntraModule,
			Callee: n.Name,
			Target: b.funcsByName[n.Name],
			Args:   args,
		}
	}

	switch candidates := table.methods[n.Name]; len(candidates) {
	case 1:
		owner := candidates[0].OwnerClass
		key := owner + "." + n.Name
		return &core.Call{
			Kind:              core.CallCrossClass,
			Callee:            n.Name,
			ResolvedQualifier: key,
			Target:            b.methodsByClass[key],
			Args:              args,
		}
	default:
		// Zero candidates (genuinely foreign) or more than one (ambiguous
		// without a receiver to disambiguate) both resolve as foreign.
		return &core.Call{Kind: core.CallForeign, Callee: n.Name, ResolvedQualifier: n.Name, Args: args}
	}
}

func (b *Binder) bindReceiverCall(n *ast.CallExpr, table *symbolTable, scope *funcScope, args []core.Expr) *core.Call {
	// A receiver written as a bare name that isn't a local, parameter,
	// or field is a namespace/static-type qualifier (Console.WriteLine,
	// Math.Sqrt), never a value — bind it as a qualifier, not an
	// expression.
	if recv, ok := n.Receiver.(*ast.VarRef); ok && !isBoundName(recv.Name, scope) {
		qualifier := recv.Name + "." + n.Name
		return &core.Call{Kind: core.CallForeign, Callee: n.Name, ResolvedQualifier: qualifier, Args: args}
	}

	receiver := b.bindExpr(n.Receiver, table, scope)

	if cls, ok := receiver.Type().(*typesys.Class); ok {
		if decl, ok := table.classes[cls.Name]; ok {
			for _, m := range decl.Methods {
				if m.Name == n.Name {
					key := cls.Name + "." + n.Name
					return &core.Call{
						Kind:              core.CallCrossClass,
						Callee:            n.Name,
						ResolvedQualifier: key,
						Target:            b.methodsByClass[key],
						Args:              args,
					}
				}
			}
		}
		return &core.Call{Kind: core.CallForeign, Callee: n.Name, ResolvedQualifier: cls.Name + "." + n.Name, Args: args}
	}

	qualifier := n.Name
	if _, unknown := receiver.Type().(typesys.Unknown); !unknown {
		qualifier = receiver.Type().TypeName() + "." + n.Name
	}
	return &core.Call{Kind: core.CallForeign, Callee: n.Name, ResolvedQualifier: qualifier, Args: args}
}

func isBoundName(name string, scope *funcScope) bool {
	if _, ok := scope.locals[name]; ok {
		return true
	}
	if scope.owner == nil {
		return false
	}
	_, ok := scope.owner.Fields[name]
	return ok
}
