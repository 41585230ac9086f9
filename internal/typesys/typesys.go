// Package typesys implements Calor's nominal type system (spec §4.3
// duty 2): primitive scalars, class and enum types declared in the
// program, and Option/Result as first-class sum types. There is no
// ad-hoc polymorphism or type-class machinery here — unlike the
// row-polymorphic, dictionary-passing type system this compiler's
// teacher repo implements, Calor programs are fully monomorphic at the
// surface.
package typesys

import "fmt"

// Symbol is a resolved type. Every TypeRef in the bound IR carries one.
type Symbol interface {
	TypeName() string
}

// Primitive is one of the built-in scalar kinds.
type Primitive string

const (
	I32    Primitive = "i32"
	I64    Primitive = "i64"
	F32    Primitive = "f32"
	F64    Primitive = "f64"
	Bool   Primitive = "bool"
	String Primitive = "string"
	Void   Primitive = "void"
)

func (p Primitive) TypeName() string { return string(p) }

// Unknown marks a type that failed to resolve (unresolved foreign type,
// or a prior error) — distinct from Void so downstream checks can
// suppress cascading diagnostics instead of reporting against it.
type Unknown struct{}

func (Unknown) TypeName() string { return "<unknown>" }

// Option is Calor's built-in nullable sum: present(T) | absent.
type Option struct{ Elem Symbol }

func (o Option) TypeName() string { return fmt.Sprintf("Option<%s>", o.Elem.TypeName()) }

// Result is Calor's built-in fallible sum: ok(T) | error(E).
type Result struct{ Ok, Err Symbol }

func (r Result) TypeName() string {
	return fmt.Sprintf("Result<%s, %s>", r.Ok.TypeName(), r.Err.TypeName())
}

// Array is a fixed-element-type sequence, the type of array-literal
// allocations and the operand of ArrayAccessExpr.
type Array struct{ Elem Symbol }

func (a Array) TypeName() string { return fmt.Sprintf("%s[]", a.Elem.TypeName()) }

// Class is a nominal reference type declared by a ClassDecl.
type Class struct {
	Name   string
	Fields map[string]Symbol
}

func (c *Class) TypeName() string { return c.Name }

// Enum is a nominal closed-member type declared by an EnumDecl.
type Enum struct {
	Name    string
	Members []string
}

func (e *Enum) TypeName() string { return e.Name }

// Delegate is a nominal function-pointer type declared by a DelegateDecl.
type Delegate struct {
	Name       string
	Params     []Symbol
	ReturnType Symbol
}

func (d *Delegate) TypeName() string { return d.Name }

// Equals reports whether two symbols denote the same type. Class and
// Enum compare by declaration identity (pointer), everything else
// structurally — two distinct classes named identically never occurs
// because the binder rejects duplicate identifiers (I6/DuplicateIdentifier).
func Equals(a, b Symbol) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av == bv
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case Option:
		bv, ok := b.(Option)
		return ok && Equals(av.Elem, bv.Elem)
	case Result:
		bv, ok := b.(Result)
		return ok && Equals(av.Ok, bv.Ok) && Equals(av.Err, bv.Err)
	case Array:
		bv, ok := b.(Array)
		return ok && Equals(av.Elem, bv.Elem)
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Enum:
		bv, ok := b.(*Enum)
		return ok && av == bv
	case *Delegate:
		bv, ok := b.(*Delegate)
		return ok && av == bv
	default:
		return false
	}
}

// AssignableTo reports whether a value of type from may be used where
// to is expected: identity, or from is Unknown/to is Unknown (error
// recovery), or a nullable `to` accepts a non-Option from by implicit
// wrapping in present(...), mirroring how a C# nullable reference
// accepts a non-null value.
func AssignableTo(from, to Symbol) bool {
	if Equals(from, to) {
		return true
	}
	if _, ok := from.(Unknown); ok {
		return true
	}
	if _, ok := to.(Unknown); ok {
		return true
	}
	if opt, ok := to.(Option); ok {
		if fromOpt, ok := from.(Option); ok {
			return AssignableTo(fromOpt.Elem, opt.Elem)
		}
		return AssignableTo(from, opt.Elem)
	}
	return false
}
