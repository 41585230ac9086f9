package verify

import "github.com/juanmicrosoft/calor/internal/smt"

// substitute returns a copy of t with every free occurrence of the Var
// named from renamed to to, keeping its sort. Used to instantiate a
// loop invariant at the distinct fresh names a k-induction step needs
// for each unrolled copy of the loop counter.
func substitute(t smt.Term, from, to string) smt.Term {
	switch n := t.(type) {
	case smt.Var:
		if n.Name == from {
			return smt.Var{Name: to, Sort_: n.Sort_}
		}
		return n
	case smt.BinOp:
		return smt.BinOp{Op: n.Op, Left: substitute(n.Left, from, to), Right: substitute(n.Right, from, to), Sort_: n.Sort_}
	case smt.UnOp:
		return smt.UnOp{Op: n.Op, Operand: substitute(n.Operand, from, to), Sort_: n.Sort_}
	case smt.Ite:
		return smt.Ite{Cond: substitute(n.Cond, from, to), Then: substitute(n.Then, from, to), Else: substitute(n.Else, from, to)}
	case smt.Implies:
		return smt.Implies{Left: substitute(n.Left, from, to), Right: substitute(n.Right, from, to)}
	case smt.Select:
		return smt.Select{Array: substitute(n.Array, from, to), Index: substitute(n.Index, from, to)}
	case smt.Quantifier:
		if n.Var.Name == from {
			return n // shadowed, the bound occurrence is not free
		}
		return smt.Quantifier{Forall: n.Forall, Var: n.Var, Lower: n.Lower, Upper: n.Upper, Body: substitute(n.Body, from, to)}
	default:
		return t
	}
}
