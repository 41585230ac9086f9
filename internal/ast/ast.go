// Package ast defines the parsed-syntax representation of a Calor source
// file. The lexer and surface parser that produce this tree live outside
// the core (see spec §1); this package is the contract between that
// external front end and the Binder.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset, used for stable-identifier calculation
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Pos
	End   Pos
}

// File is a complete parsed Calor source file.
type File struct {
	Module    *ModuleDecl
	Imports   []*ImportDecl
	Classes   []*ClassDecl
	Functions []*FuncDecl
	Enums     []*EnumDecl
	Delegates []*DelegateDecl
	Path      string
	Pos       Pos
}

func (f *File) String() string {
	var parts []string
	if f.Module != nil {
		parts = append(parts, f.Module.String())
	}
	for _, d := range f.Delegates {
		parts = append(parts, d.String())
	}
	for _, e := range f.Enums {
		parts = append(parts, e.String())
	}
	for _, c := range f.Classes {
		parts = append(parts, c.String())
	}
	for _, fn := range f.Functions {
		parts = append(parts, fn.String())
	}
	return strings.Join(parts, "\n")
}
func (f *File) Position() Pos { return f.Pos }

// ModuleDecl names the module a file belongs to.
type ModuleDecl struct {
	Path string
	Pos  Pos
	Span Span
}

func (m *ModuleDecl) String() string { return fmt.Sprintf("module %s", m.Path) }
func (m *ModuleDecl) Position() Pos  { return m.Pos }

// ImportDecl references another module, possibly a foreign one.
type ImportDecl struct {
	Path    string
	Foreign bool // true if this import names a host-language namespace
	Pos     Pos
	Span    Span
}

func (i *ImportDecl) String() string { return fmt.Sprintf("import %s", i.Path) }
func (i *ImportDecl) Position() Pos  { return i.Pos }

// TypeRef is a reference to a type symbol, resolved by the binder.
type TypeRef struct {
	Name     string     // e.g. "i32", "string", "Option", "MyApp.Service"
	Args     []*TypeRef // generic type arguments, e.g. Option<i32>
	Nullable bool
	Pos      Pos
}

func (t *TypeRef) String() string {
	s := t.Name
	if len(t.Args) > 0 {
		var args []string
		for _, a := range t.Args {
			args = append(args, a.String())
		}
		s = fmt.Sprintf("%s<%s>", s, strings.Join(args, ", "))
	}
	if t.Nullable {
		s += "?"
	}
	return s
}
func (t *TypeRef) Position() Pos { return t.Pos }

// ParamDecl is one function parameter.
type ParamDecl struct {
	Name string
	Type *TypeRef
	Pos  Pos
}

func (p *ParamDecl) String() string { return fmt.Sprintf("%s: %s", p.Name, p.Type) }
func (p *ParamDecl) Position() Pos  { return p.Pos }

// FieldDecl is a class field.
type FieldDecl struct {
	Name string
	Type *TypeRef
	Pos  Pos
}

func (f *FieldDecl) String() string { return fmt.Sprintf("%s: %s", f.Name, f.Type) }
func (f *FieldDecl) Position() Pos  { return f.Pos }

// EnumDecl declares a closed set of named members.
type EnumDecl struct {
	Name    string
	Members []string
	Pos     Pos
}

func (e *EnumDecl) String() string {
	return fmt.Sprintf("enum %s { %s }", e.Name, strings.Join(e.Members, ", "))
}
func (e *EnumDecl) Position() Pos { return e.Pos }

// DelegateDecl declares a closure/function-pointer type.
type DelegateDecl struct {
	Name       string
	Params     []*ParamDecl
	ReturnType *TypeRef
	Pos        Pos
}

func (d *DelegateDecl) String() string { return fmt.Sprintf("delegate %s", d.Name) }
func (d *DelegateDecl) Position() Pos  { return d.Pos }

// ClassDecl declares a class: fields plus methods.
type ClassDecl struct {
	Name    string
	Fields  []*FieldDecl
	Methods []*FuncDecl
	Pos     Pos
}

func (c *ClassDecl) String() string { return fmt.Sprintf("class %s", c.Name) }
func (c *ClassDecl) Position() Pos  { return c.Pos }

// Visibility of a declaration.
type Visibility int

const (
	Public Visibility = iota
	Private
	Internal
)

// FuncDecl is a free function or a method, carrying the ownership-style
// metadata spec §3 requires: a stable identifier, a declared effect set,
// and optional pre/postconditions.
type FuncDecl struct {
	StableID        string // opaque, source-assigned, never reused
	Name            string
	OwnerClass      string // non-empty for methods
	IsConstructor   bool
	Visibility      Visibility
	Params          []*ParamDecl
	ReturnType      *TypeRef // nil for void
	DeclaredEffects []string // surface effect codes; nil = declared empty ("default")
	Requires        []Expr   // preconditions
	Ensures         []Expr   // postconditions, may reference "result"
	Body            []Stmt
	Pos             Pos
	Span            Span
}

func (f *FuncDecl) String() string {
	name := f.Name
	if f.OwnerClass != "" {
		name = f.OwnerClass + "." + f.Name
	}
	return fmt.Sprintf("fn %s(%d params)", name, len(f.Params))
}
func (f *FuncDecl) Position() Pos { return f.Pos }

// Stmt is the base interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the base interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// ---- Statements ----

// BindStmt is a `let name: Type = value` binding.
type BindStmt struct {
	Name  string
	Type  *TypeRef // optional annotation
	Value Expr
	Pos   Pos
}

func (s *BindStmt) String() string { return fmt.Sprintf("let %s = %s", s.Name, s.Value) }
func (s *BindStmt) Position() Pos  { return s.Pos }
func (s *BindStmt) stmtNode()      {}

// AssignStmt is `target = value`.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Pos    Pos
}

func (s *AssignStmt) String() string { return fmt.Sprintf("%s = %s", s.Target, s.Value) }
func (s *AssignStmt) Position() Pos  { return s.Pos }
func (s *AssignStmt) stmtNode()      {}

// BranchStmt is `if cond { then } else { else }`.
type BranchStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Pos  Pos
}

func (s *BranchStmt) String() string { return fmt.Sprintf("if %s", s.Cond) }
func (s *BranchStmt) Position() Pos  { return s.Pos }
func (s *BranchStmt) stmtNode()      {}

// LoopKind distinguishes counted-for loops from while loops.
type LoopKind int

const (
	CountedFor LoopKind = iota
	While
)

// LoopStmt is a counted-for or while loop, optionally carrying a
// user-supplied invariant attached by an external syntactic marker
// (spec §6 input (d)).
type LoopStmt struct {
	Kind      LoopKind
	Var       string // loop variable name, counted-for only
	Lower     Expr   // counted-for only
	Upper     Expr   // counted-for only
	Step      Expr   // counted-for only, default literal 1
	Cond      Expr   // while only
	Invariant Expr   // optional, user-provided
	Body      []Stmt
	Pos       Pos
}

func (s *LoopStmt) String() string { return "loop" }
func (s *LoopStmt) Position() Pos  { return s.Pos }
func (s *LoopStmt) stmtNode()      {}

// SwitchCase is one arm of a SwitchStmt.
type SwitchCase struct {
	Values []Expr // nil means default arm
	Body   []Stmt
	Pos    Pos
}

// SwitchStmt is a multi-way branch over an expression.
type SwitchStmt struct {
	Subject Expr
	Cases   []*SwitchCase
	Pos     Pos
}

func (s *SwitchStmt) String() string { return fmt.Sprintf("switch %s", s.Subject) }
func (s *SwitchStmt) Position() Pos  { return s.Pos }
func (s *SwitchStmt) stmtNode()      {}

// CallStmt is a call expression used as a statement (result discarded).
type CallStmt struct {
	Call *CallExpr
	Pos  Pos
}

func (s *CallStmt) String() string { return s.Call.String() }
func (s *CallStmt) Position() Pos  { return s.Pos }
func (s *CallStmt) stmtNode()      {}

// ReturnStmt returns an optional value from the enclosing function.
type ReturnStmt struct {
	Value Expr // nil for void return
	Pos   Pos
}

func (s *ReturnStmt) String() string { return "return" }
func (s *ReturnStmt) Position() Pos  { return s.Pos }
func (s *ReturnStmt) stmtNode()      {}

// ThrowStmt raises an exception.
type ThrowStmt struct {
	Value Expr
	Pos   Pos
}

func (s *ThrowStmt) String() string { return "throw" }
func (s *ThrowStmt) Position() Pos  { return s.Pos }
func (s *ThrowStmt) stmtNode()      {}

// CatchClause handles one exception type in a TryCatchStmt.
type CatchClause struct {
	ExceptionType *TypeRef
	BindingName   string
	Body          []Stmt
	Pos           Pos
}

// TryCatchStmt is a try/catch block.
type TryCatchStmt struct {
	Try     []Stmt
	Catches []*CatchClause
	Finally []Stmt
	Pos     Pos
}

func (s *TryCatchStmt) String() string { return "try" }
func (s *TryCatchStmt) Position() Pos  { return s.Pos }
func (s *TryCatchStmt) stmtNode()      {}

// ---- Expressions ----

// LiteralKind enumerates literal value kinds.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	BoolLit
	StringLit
	FloatLit
)

// Literal is a constant value.
type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) Position() Pos  { return l.Pos }
func (l *Literal) exprNode()      {}

// VarRef references a variable, parameter, or field by name.
type VarRef struct {
	Name string
	Pos  Pos
}

func (v *VarRef) String() string { return v.Name }
func (v *VarRef) Position() Pos  { return v.Pos }
func (v *VarRef) exprNode()      {}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Left  Expr
	Op    string // +, -, *, /, %, =, !=, <, <=, >, >=, &&, ||
	Right Expr
	Pos   Pos
}

func (b *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *BinaryExpr) Position() Pos  { return b.Pos }
func (b *BinaryExpr) exprNode()      {}

// UnaryExpr is a unary operator application (-, !).
type UnaryExpr struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (u *UnaryExpr) Position() Pos  { return u.Pos }
func (u *UnaryExpr) exprNode()      {}

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (c *ConditionalExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", c.Cond, c.Then, c.Else)
}
func (c *ConditionalExpr) Position() Pos { return c.Pos }
func (c *ConditionalExpr) exprNode()     {}

// ArrayAccessExpr is `array[index]`.
type ArrayAccessExpr struct {
	Array Expr
	Index Expr
	Pos   Pos
}

func (a *ArrayAccessExpr) String() string { return fmt.Sprintf("%s[%s]", a.Array, a.Index) }
func (a *ArrayAccessExpr) Position() Pos  { return a.Pos }
func (a *ArrayAccessExpr) exprNode()      {}

// CallKind is assigned by the binder (spec §4.3 (4)); at parse time it is
// unresolved.
type CallKind int

const (
	CallKindUnresolved CallKind = iota
	CallKindIntraModule
	CallKindCrossClass
	CallKindForeign
)

// CallExpr is a function or method call. Receiver is nil for a bare
// function call.
type CallExpr struct {
	Receiver Expr // nil for free function calls
	Name     string
	Args     []Expr
	Kind     CallKind // filled in by the binder
	Pos      Pos
}

func (c *CallExpr) String() string {
	if c.Receiver != nil {
		return fmt.Sprintf("%s.%s(...)", c.Receiver, c.Name)
	}
	return fmt.Sprintf("%s(...)", c.Name)
}
func (c *CallExpr) Position() Pos { return c.Pos }
func (c *CallExpr) exprNode()     {}

// QuantifierKind distinguishes universal from existential quantification.
type QuantifierKind int

const (
	Forall QuantifierKind = iota
	Exists
)

// BoundVar is one sorted variable bound by a quantifier.
type BoundVar struct {
	Name string
	Type *TypeRef
}

// QuantifierExpr is a contract-only construct: ∀/∃ over sorted variables.
type QuantifierExpr struct {
	Kind QuantifierKind
	Vars []BoundVar
	Body Expr
	Pos  Pos
}

func (q *QuantifierExpr) String() string {
	sym := "∀"
	if q.Kind == Exists {
		sym = "∃"
	}
	return fmt.Sprintf("%s %v. %s", sym, q.Vars, q.Body)
}
func (q *QuantifierExpr) Position() Pos { return q.Pos }
func (q *QuantifierExpr) exprNode()     {}

// ImpliesExpr is logical implication, `Antecedent => Consequent`.
type ImpliesExpr struct {
	Antecedent Expr
	Consequent Expr
	Pos        Pos
}

func (i *ImpliesExpr) String() string { return fmt.Sprintf("(%s => %s)", i.Antecedent, i.Consequent) }
func (i *ImpliesExpr) Position() Pos  { return i.Pos }
func (i *ImpliesExpr) exprNode()      {}

// ResultRef references the postcondition-only `result` keyword.
type ResultRef struct {
	Pos Pos
}

func (r *ResultRef) String() string { return "result" }
func (r *ResultRef) Position() Pos  { return r.Pos }
func (r *ResultRef) exprNode()      {}
