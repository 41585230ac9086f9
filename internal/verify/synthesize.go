package verify

import (
	"strings"

	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/smt"
)

// template builds one candidate invariant for counterVar given the
// loop's static bounds, or false if this template does not apply to
// this loop shape.
type template func(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool)

// candidateTemplates is the closed family spec §4.5 "Invariant
// synthesis" names, tried in the order the heuristics below select.
var candidateTemplates = map[string]template{
	"bounded":     boundedTemplate,
	"monotonic":   monotonicTemplate,
	"accumulator": accumulatorTemplate,
	"arrayIndex":  arrayIndexTemplate,
	"termination": terminationTemplate,
}

func boundedTemplate(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool) {
	v := smt.Var{Name: counterVar, Sort_: smt.SortI32}
	return smt.BinOp{
		Op:    "and",
		Left:  smt.BinOp{Op: "<=", Left: smt.IntConst{Value: low, Sort_: smt.SortI32}, Right: v, Sort_: smt.SortBool},
		Right: smt.BinOp{Op: "<=", Left: v, Right: smt.IntConst{Value: high, Sort_: smt.SortI32}, Sort_: smt.SortBool},
		Sort_: smt.SortBool,
	}, true
}

func monotonicTemplate(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool) {
	if loop.Step <= 0 {
		return nil, false
	}
	return smt.BinOp{Op: ">=", Left: smt.Var{Name: counterVar, Sort_: smt.SortI32}, Right: smt.IntConst{Value: low, Sort_: smt.SortI32}, Sort_: smt.SortBool}, true
}

// accumulatorTemplate applies when the loop body assigns to a variable
// whose name suggests it accumulates (sum/total/count/acc), asserting
// it stays non-negative — a common loop-contract shape the heuristics
// below detect by scanning assignment targets.
func accumulatorTemplate(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool) {
	acc := findAccumulator(loop.Body)
	if acc == "" {
		return nil, false
	}
	return smt.BinOp{Op: ">=", Left: smt.Var{Name: acc, Sort_: smt.SortI32}, Right: smt.IntConst{Sort_: smt.SortI32}, Sort_: smt.SortBool}, true
}

func arrayIndexTemplate(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool) {
	if !hasArrayAccess(loop.Body) {
		return nil, false
	}
	v := smt.Var{Name: counterVar, Sort_: smt.SortI32}
	return smt.BinOp{
		Op:    "and",
		Left:  smt.BinOp{Op: ">=", Left: v, Right: smt.IntConst{Sort_: smt.SortI32}, Sort_: smt.SortBool},
		Right: smt.BinOp{Op: "<", Left: v, Right: smt.IntConst{Value: high + 1, Sort_: smt.SortI32}, Sort_: smt.SortBool},
		Sort_: smt.SortBool,
	}, true
}

func terminationTemplate(loop *core.Loop, counterVar string, low, high int64) (smt.Term, bool) {
	v := smt.Var{Name: counterVar, Sort_: smt.SortI32}
	return smt.BinOp{Op: "<=", Left: v, Right: smt.IntConst{Value: high, Sort_: smt.SortI32}, Sort_: smt.SortBool}, true
}

// synthesize tries each template in the heuristic order chosen by
// detectHeuristics, returning candidates in the order to attempt them.
func synthesize(loop *core.Loop, counterVar string, low, high int64) []smt.Term {
	order := detectHeuristics(loop)
	var out []smt.Term
	for _, name := range order {
		tmpl, ok := candidateTemplates[name]
		if !ok {
			continue
		}
		if term, applies := tmpl(loop, counterVar, low, high); applies {
			out = append(out, term)
		}
	}
	// "strongest" conjoined fallback, attempted once if no single
	// template above succeeded on its own (spec §4.5 "If no single
	// template succeeds, a conjoined strongest invariant is attempted once").
	if len(out) > 1 {
		out = append(out, conjoin(out...))
	}
	return out
}

// detectHeuristics orders the template family by which structural
// signals the loop body exhibits: bound presence, array access
// presence, accumulator-named variables (spec §4.5 "Invariant
// synthesis").
func detectHeuristics(loop *core.Loop) []string {
	order := []string{"bounded"}
	if hasArrayAccess(loop.Body) {
		order = append(order, "arrayIndex")
	}
	if findAccumulator(loop.Body) != "" {
		order = append(order, "accumulator")
	}
	order = append(order, "monotonic", "termination")
	return order
}

func hasArrayAccess(body []core.Stmt) bool {
	found := false
	var walkExpr func(core.Expr)
	walkExpr = func(e core.Expr) {
		if found || e == nil {
			return
		}
		switch n := e.(type) {
		case *core.ArrayAccess:
			found = true
		case *core.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *core.Unary:
			walkExpr(n.Operand)
		case *core.Conditional:
			walkExpr(n.Cond)
			walkExpr(n.Then)
			walkExpr(n.Else)
		}
	}
	var walkStmts func([]core.Stmt)
	walkStmts = func(stmts []core.Stmt) {
		for _, s := range stmts {
			if found {
				return
			}
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
				walkStmts(n.Body)
			}
		}
	}
	walkStmts(body)
	return found
}

var accumulatorNames = []string{"sum", "total", "count", "acc", "accumulator"}

func findAccumulator(body []core.Stmt) string {
	for _, s := range body {
		a, ok := s.(*core.Assign)
		if !ok {
			continue
		}
		ref, ok := a.Target.(*core.VarRef)
		if !ok {
			continue
		}
		lower := strings.ToLower(ref.Name)
		for _, n := range accumulatorNames {
			if strings.Contains(lower, n) {
				return ref.Name
			}
		}
	}
	return ""
}
