// Package smt implements the one hand-rolled decision procedure in the
// repository: a quantifier-free (plus bounded-quantifier) solver over
// exactly the fragment the Verifier needs (spec §4.5 "Translation") —
// 32/64-bit bit-vectors, unbounded integers, booleans, and int-to-int
// arrays. No Go SMT binding exists anywhere in the retrieval pack, so
// this package stands in for one behind the Solver interface; a real
// backend could implement Solver without internal/verify noticing.
//
// Its term/evaluator shape is grounded on the teacher's tree-walking
// Core evaluator (internal/eval/eval_core.go): a tagged-variant node
// type, an environment passed down by pointer, and one recursive eval
// entrypoint switching on concrete node type.
package smt

import "fmt"

// Sort is the SMT sort of a term, one of the fragment spec §4.5 names.
type Sort int

const (
	SortBool Sort = iota
	SortI32
	SortI64
	SortInt
	SortArrayIntInt
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "bool"
	case SortI32:
		return "i32"
	case SortI64:
		return "i64"
	case SortInt:
		return "int"
	case SortArrayIntInt:
		return "int[]"
	default:
		return "?"
	}
}

// Term is a node in an SMT formula. Every constructor below implements
// it; Sort reports the term's own sort so the evaluator and the
// bounded enumerator never need a side table.
type Term interface {
	Sort() Sort
	String() string
	term()
}

// BoolConst is a literal boolean.
type BoolConst bool

func (BoolConst) term()      {}
func (BoolConst) Sort() Sort { return SortBool }
func (b BoolConst) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IntConst is a literal integer, bit-vector, or plain int depending on
// the sort it was constructed with.
type IntConst struct {
	Value int64
	Sort_ Sort
}

func (IntConst) term()        {}
func (c IntConst) Sort() Sort { return c.Sort_ }
func (c IntConst) String() string { return fmt.Sprintf("%d", c.Value) }

// Var is a free constant: a function parameter or in-scope let-bound
// variable, declared once per query (spec §4.5 "Translation").
type Var struct {
	Name  string
	Sort_ Sort
}

func (Var) term()        {}
func (v Var) Sort() Sort { return v.Sort_ }
func (v Var) String() string { return v.Name }

// BinOp is one of the arithmetic, comparison, or boolean binary
// operators spec §4.5 "Operators supported in translation" lists.
type BinOp struct {
	Op          string // + - * / mod = != < <= > >= and or
	Left, Right Term
	Sort_       Sort
}

func (BinOp) term()        {}
func (b BinOp) Sort() Sort { return b.Sort_ }
func (b BinOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

// UnOp is negation or boolean not.
type UnOp struct {
	Op      string // - not
	Operand Term
	Sort_   Sort
}

func (UnOp) term()        {}
func (u UnOp) Sort() Sort { return u.Sort_ }
func (u UnOp) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Operand) }

// Ite is if-then-else.
type Ite struct {
	Cond, Then, Else Term
}

func (Ite) term()        {}
func (i Ite) Sort() Sort { return i.Then.Sort() }
func (i Ite) String() string { return fmt.Sprintf("(ite %s %s %s)", i.Cond, i.Then, i.Else) }

// Select is array read, the only array operator the fragment supports.
type Select struct {
	Array, Index Term
}

func (Select) term()        {}
func (Select) Sort() Sort   { return SortInt }
func (s Select) String() string { return fmt.Sprintf("%s[%s]", s.Array, s.Index) }

// Implies is logical implication, kept distinct from BinOp "or"/"not"
// composition so the bounded solver can short-circuit it directly.
type Implies struct {
	Left, Right Term
}

func (Implies) term()        {}
func (Implies) Sort() Sort   { return SortBool }
func (i Implies) String() string { return fmt.Sprintf("(%s => %s)", i.Left, i.Right) }

// BoundVar is one sorted variable of a Quantifier.
type BoundVar struct {
	Name  string
	Sort_ Sort
}

// Quantifier is a bounded universal or existential quantifier. Unbounded
// quantification is outside the fragment; the translator only ever
// produces one with an explicit Lower/Upper range over which the
// bounded solver enumerates (spec §4.5 "universal and existential
// quantifiers over sorted bound variables").
type Quantifier struct {
	Forall      bool
	Var         BoundVar
	Lower, Upper int64
	Body        Term
}

func (Quantifier) term()        {}
func (Quantifier) Sort() Sort   { return SortBool }
func (q Quantifier) String() string {
	kind := "forall"
	if !q.Forall {
		kind = "exists"
	}
	return fmt.Sprintf("(%s %s in [%d,%d] %s)", kind, q.Var.Name, q.Lower, q.Upper, q.Body)
}

// Unsupported marks a contract fragment the translator could not
// express in this fragment (spec §4.5 "Unsupported sorts ... cause the
// contract to be marked Unsupported"). Evaluating one is always an error.
type Unsupported struct {
	Reason string
}

func (Unsupported) term()        {}
func (Unsupported) Sort() Sort   { return SortBool }
func (u Unsupported) String() string { return fmt.Sprintf("<unsupported: %s>", u.Reason) }
