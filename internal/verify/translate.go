// Package verify implements the Verifier (spec §4.5): translates
// preconditions, postconditions, and loop invariants to SMT terms,
// discharges them against an smt.Solver, and runs a k-induction loop
// verifier with a template-driven invariant synthesizer when no
// invariant was authored.
package verify

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/ast"
	"github.com/juanmicrosoft/calor/internal/core"
	"github.com/juanmicrosoft/calor/internal/smt"
	"github.com/juanmicrosoft/calor/internal/typesys"
)

// translator converts one function's contract and body expressions
// into smt.Term, tracking each in-scope name's sort so repeated
// VarRefs translate consistently (spec §4.5 "Translation": each
// parameter and each in-scope let-bound variable is declared as a
// constant of its sort").
type translator struct {
	sorts map[string]smt.Sort
}

func newTranslator(params []core.Param) *translator {
	t := &translator{sorts: make(map[string]smt.Sort)}
	for _, p := range params {
		t.sorts[p.Name] = sortOf(p.Type)
	}
	return t
}

// sortOf maps a resolved Calor type to its SMT sort, or SortBool as a
// placeholder for anything the fragment cannot represent — translate
// always checks supported() before trusting this for a non-bool type.
func sortOf(typ typesys.Symbol) smt.Sort {
	switch typ {
	case typesys.I32:
		return smt.SortI32
	case typesys.I64:
		return smt.SortI64
	case typesys.Bool:
		return smt.SortBool
	}
	if _, ok := typ.(typesys.Array); ok {
		return smt.SortArrayIntInt
	}
	return smt.SortBool
}

// supported reports whether typ is in the fragment spec §4.5 names.
// Strings, floats, classes, enums, and options/results are not.
func supported(typ typesys.Symbol) bool {
	switch typ {
	case typesys.I32, typesys.I64, typesys.Bool:
		return true
	}
	if _, ok := typ.(typesys.Array); ok {
		return true
	}
	return false
}

// translate converts a bound contract expression to an smt.Term. On
// encountering a sort or operator outside the fragment it returns an
// smt.Unsupported term rather than an error — the caller marks the
// owning contract ContractUnsupported and moves on (spec §4.5
// "Unsupported sorts ... cause the contract to be marked Unsupported").
func (t *translator) translate(e core.Expr) smt.Term {
	if e == nil {
		return smt.BoolConst(true)
	}

	switch n := e.(type) {
	case *core.Literal:
		return t.translateLiteral(n)

	case *core.VarRef:
		sort, ok := t.sorts[n.Name]
		if !ok {
			sort = sortOf(n.Type())
			t.sorts[n.Name] = sort
		}
		if !supported(n.Type()) {
			return smt.Unsupported{Reason: fmt.Sprintf("variable %s has unsupported sort %s", n.Name, n.Type().TypeName())}
		}
		return smt.Var{Name: n.Name, Sort_: sort}

	case *core.Binary:
		return t.translateBinary(n)

	case *core.Unary:
		operand := t.translate(n.Operand)
		op := "-"
		if n.Op == "!" {
			op = "not"
		}
		return smt.UnOp{Op: op, Operand: operand, Sort_: sortOf(n.Type())}

	case *core.Conditional:
		return smt.Ite{Cond: t.translate(n.Cond), Then: t.translate(n.Then), Else: t.translate(n.Else)}

	case *core.ArrayAccess:
		return smt.Select{Array: t.translate(n.Array), Index: t.translate(n.Index)}

	case *core.Implies:
		return smt.Implies{Left: t.translate(n.Left), Right: t.translate(n.Right)}

	case *core.Quantifier:
		return t.translateQuantifier(n)

	case *core.ResultRef:
		sort, ok := t.sorts["result"]
		if !ok {
			sort = smt.SortI32
		}
		return smt.Var{Name: "result", Sort_: sort}

	case *core.Call:
		// A call inside a contract is impure by construction (spec §4.4
		// rejects it at bind time via ContractNotPure), so it should never
		// reach translation; guard anyway rather than panic.
		return smt.Unsupported{Reason: fmt.Sprintf("call to %s inside contract", n.Callee)}

	default:
		return smt.Unsupported{Reason: fmt.Sprintf("expression kind %T outside the SMT fragment", e)}
	}
}

func (t *translator) translateLiteral(n *core.Literal) smt.Term {
	switch n.Kind {
	case ast.BoolLit:
		b, _ := n.Value.(bool)
		return smt.BoolConst(b)
	case ast.IntLit:
		switch v := n.Value.(type) {
		case int:
			return smt.IntConst{Value: int64(v), Sort_: smt.SortI32}
		case int64:
			return smt.IntConst{Value: v, Sort_: smt.SortI32}
		}
		return smt.Unsupported{Reason: "malformed integer literal"}
	default:
		return smt.Unsupported{Reason: fmt.Sprintf("literal kind %v outside the SMT fragment", n.Kind)}
	}
}

func (t *translator) translateBinary(n *core.Binary) smt.Term {
	left, right := t.translate(n.Left), t.translate(n.Right)
	if _, ok := left.(smt.Unsupported); ok {
		return left
	}
	if _, ok := right.(smt.Unsupported); ok {
		return right
	}

	op := n.Op
	switch op {
	case "%":
		op = "mod"
	case "&&":
		op = "and"
	case "||":
		op = "or"
	}

	resultSort := sortOf(n.Type())
	switch op {
	case "=", "!=", "<", "<=", ">", ">=", "and", "or":
		resultSort = smt.SortBool
	}

	if op == "/" || op == "mod" {
		// Integer division by zero within a contract is a precondition on
		// the divisor (spec §4.5): the divisor being nonzero is folded in
		// as an implicit guard via Ite, leaving the contract well-defined
		// wherever it is actually evaluated.
		return smt.Ite{
			Cond: smt.BinOp{Op: "!=", Left: right, Right: smt.IntConst{Sort_: right.Sort()}, Sort_: smt.SortBool},
			Then: smt.BinOp{Op: op, Left: left, Right: right, Sort_: resultSort},
			Else: smt.IntConst{Sort_: resultSort},
		}
	}

	eqOp := op
	if op == "==" {
		eqOp = "="
	}
	return smt.BinOp{Op: eqOp, Left: left, Right: right, Sort_: resultSort}
}

func (t *translator) translateQuantifier(n *core.Quantifier) smt.Term {
	if len(n.Bound) != 1 {
		return smt.Unsupported{Reason: "quantifier must bind exactly one bounded variable in this fragment"}
	}
	bv := n.Bound[0]
	lower, upper, ok := t.quantifierRange(n)
	if !ok {
		return smt.Unsupported{Reason: "quantifier bound variable has no derivable finite range"}
	}

	t.sorts[bv.Name] = sortOf(bv.Type)
	body := t.translate(n.Body)
	if _, unsupported := body.(smt.Unsupported); unsupported {
		return body
	}

	return smt.Quantifier{
		Forall: n.Kind == ast.Forall,
		Var:    smt.BoundVar{Name: bv.Name, Sort_: sortOf(bv.Type)},
		Lower:  lower, Upper: upper,
		Body: body,
	}
}

// quantifierRange looks for an immediately-enclosing range-shaped guard
// of the form `lower <= v && v <= upper` inside the quantifier body
// itself (the common `forall i: lower <= i && i <= upper => P(i)`
// pattern). Without one, the fragment has no way to bound enumeration,
// so the quantifier is unsupported (spec §4.5 requires "bounded
// quantifiers").
func (t *translator) quantifierRange(n *core.Quantifier) (int64, int64, bool) {
	implies, ok := n.Body.(*core.Implies)
	if !ok {
		return 0, 0, false
	}
	and, ok := implies.Left.(*core.Binary)
	if !ok || and.Op != "&&" {
		return 0, 0, false
	}
	lowBin, ok1 := and.Left.(*core.Binary)
	highBin, ok2 := and.Right.(*core.Binary)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	lowLit, ok1 := lowBin.Left.(*core.Literal)
	highLit, ok2 := highBin.Right.(*core.Literal)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	low, ok1 := asInt(lowLit.Value)
	high, ok2 := asInt(highLit.Value)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return low, high, true
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
