package effectengine

import "github.com/juanmicrosoft/calor/internal/core"

// collectCalls walks every statement and expression reachable from a
// function's body and returns every call site it contains, in source
// order. A call nested inside another call's arguments, a contract
// expression, or a loop/branch/switch/try body is still collected —
// the Effect Engine needs every edge the function's body can reach.
func collectCalls(body []core.Stmt) []*core.Call {
	var out []*core.Call
	var walkStmts func([]core.Stmt)
	var walkExpr func(core.Expr)

	walkExpr = func(e core.Expr) {
		switch n := e.(type) {
		case nil:
			return
		case *core.Call:
			out = append(out, n)
			for _, a := range n.Args {
				walkExpr(a)
			}
		case *core.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *core.Unary:
			walkExpr(n.Operand)
		case *core.Conditional:
			walkExpr(n.Cond)
			walkExpr(n.Then)
			walkExpr(n.Else)
		case *core.ArrayAccess:
			walkExpr(n.Array)
			walkExpr(n.Index)
		case *core.Quantifier:
			walkExpr(n.Body)
		case *core.Implies:
			walkExpr(n.Left)
			walkExpr(n.Right)
		}
	}

	walkStmts = func(stmts []core.Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *core.Bind:
				walkExpr(n.Value)
			case *core.Assign:
				walkExpr(n.Target)
				walkExpr(n.Value)
			case *core.Branch:
				walkExpr(n.Cond)
				walkStmts(n.Then)
				walkStmts(n.Else)
			case *core.Loop:
				walkExpr(n.Low)
				walkExpr(n.High)
				walkExpr(n.Cond)
				walkStmts(n.Body)
			case *core.Switch:
				walkExpr(n.Subject)
				for _, c := range n.Cases {
					for _, v := range c.Values {
						walkExpr(v)
					}
					walkStmts(c.Body)
				}
				walkStmts(n.Default)
			case *core.CallStmt:
				walkExpr(n.Call)
			case *core.Return:
				walkExpr(n.Value)
			case *core.Throw:
				walkExpr(n.Value)
			case *core.TryCatch:
				walkStmts(n.Try)
				for _, c := range n.Catches {
					walkStmts(c.Body)
				}
				walkStmts(n.Finally)
			}
		}
	}

	walkStmts(body)
	return out
}

// functionLabel renders a function's call-chain display name: bare for
// a free function, Class.Method for a method.
func functionLabel(fn *core.Function) string {
	if fn.ClassName != "" {
		return fn.ClassName + "." + fn.Name
	}
	return fn.Name
}

// allFunctions flattens a module's free functions and every class's
// methods into one slice, the unit the fixpoint iterates over.
func allFunctions(mod *core.Module) []*core.Function {
	out := append([]*core.Function(nil), mod.Functions...)
	for _, cls := range mod.Classes {
		out = append(out, cls.Methods...)
	}
	return out
}
