// Package expr defines the exact expression tree shared by every stage of
// the calculation kernel, along with the always-safe local simplifier, the
// deterministic canonicalizer, and coefficient-of-π extraction.
//
// Trees are values: nodes are never mutated after construction and every
// rewrite allocates fresh nodes. No floating point appears anywhere.
package expr

import (
	"fmt"
	"math/big"
	"strings"
)

// Expr is the interface for all expression tree nodes.
type Expr interface {
	Clone() Expr
	NodeCount() int
	Depth() int

	// Key returns a canonical serialization of the subtree. It is the
	// basis of structural equality and of the canonical term order.
	Key() string

	appendKey(sb *strings.Builder)
}

// BinOp identifies a binary operation.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
)

// TrigFn identifies a trigonometric function.
type TrigFn int

const (
	FnSin TrigFn = iota
	FnCos
	FnTan
)

// Name returns the lower-case function name ("sin", "cos", "tan").
func (f TrigFn) Name() string {
	switch f {
	case FnSin:
		return "sin"
	case FnCos:
		return "cos"
	default:
		return "tan"
	}
}

// Rational is an exact arbitrary-precision rational leaf. big.Rat keeps the
// value reduced with a positive denominator, which is exactly the invariant
// the kernel needs.
type Rational struct {
	Val *big.Rat
}

// PiConst is the symbolic constant π. It is never approximated outside the
// decimal evaluator.
type PiConst struct{}

// Indefinite is the absorbing value for mathematically undefined results,
// e.g. tan(π/2). Every arithmetic operation over it yields Indefinite.
type Indefinite struct{}

// Variable is an opaque symbolic atom. It is never assigned a value; its
// presence blocks the decimal reading but not the exact one.
type Variable struct {
	Name string
}

// Sqrt is the exact square root of its child.
type Sqrt struct {
	Child Expr
}

// IntPow raises its base to a fixed integer exponent.
type IntPow struct {
	Base Expr
	Exp  int64
}

// Trig applies sin, cos or tan to its argument.
type Trig struct {
	Fn  TrigFn
	Arg Expr
}

// Binary is a two-operand arithmetic node. Sub and Div are not commutative
// and chains are only flattened by the canonicalizer.
type Binary struct {
	Op          BinOp
	Left, Right Expr
}

/* ------------------------ constructors ------------------------ */

// Rat builds a rational leaf from an int64 pair. d must be nonzero.
func Rat(n, d int64) *Rational {
	return &Rational{Val: big.NewRat(n, d)}
}

// Int builds an integer rational leaf.
func Int(n int64) *Rational {
	return Rat(n, 1)
}

// FromRat wraps an existing big.Rat in a leaf. The caller gives up ownership.
func FromRat(r *big.Rat) *Rational {
	return &Rational{Val: r}
}

// Zero returns a fresh rational zero.
func Zero() *Rational { return Int(0) }

// One returns a fresh rational one.
func One() *Rational { return Int(1) }

// Pi returns the π leaf.
func Pi() *PiConst { return &PiConst{} }

// Indef returns the Indefinite leaf.
func Indef() *Indefinite { return &Indefinite{} }

// Var returns a variable leaf.
func Var(name string) *Variable { return &Variable{Name: name} }

// NewSqrt wraps x in a square root.
func NewSqrt(x Expr) *Sqrt { return &Sqrt{Child: x} }

// NewPow raises base to an integer exponent.
func NewPow(base Expr, exp int64) *IntPow { return &IntPow{Base: base, Exp: exp} }

// NewTrig applies fn to arg.
func NewTrig(fn TrigFn, arg Expr) *Trig { return &Trig{Fn: fn, Arg: arg} }

// Add, Sub, Mul and Div build binary nodes.
func Add(a, b Expr) *Binary { return &Binary{Op: OpAdd, Left: a, Right: b} }
func Sub(a, b Expr) *Binary { return &Binary{Op: OpSub, Left: a, Right: b} }
func Mul(a, b Expr) *Binary { return &Binary{Op: OpMul, Left: a, Right: b} }
func Div(a, b Expr) *Binary { return &Binary{Op: OpDiv, Left: a, Right: b} }

// Neg returns the canonical "0 - x" negation, folding rational leaves.
func Neg(x Expr) Expr {
	if r, ok := x.(*Rational); ok {
		return FromRat(new(big.Rat).Neg(r.Val))
	}
	return Sub(Zero(), x)
}

/* ------------------------ predicates ------------------------ */

// IsZero reports whether e is the rational zero.
func IsZero(e Expr) bool {
	r, ok := e.(*Rational)
	return ok && r.Val.Sign() == 0
}

// IsOne reports whether e is the rational one.
func IsOne(e Expr) bool {
	r, ok := e.(*Rational)
	return ok && r.Val.Cmp(ratOne) == 0
}

// IsInt reports whether e is the integer rational n.
func IsInt(e Expr, n int64) bool {
	r, ok := e.(*Rational)
	return ok && r.Val.IsInt() && r.Val.Num().IsInt64() && r.Val.Num().Int64() == n
}

// IsIndef reports whether e is the Indefinite leaf.
func IsIndef(e Expr) bool {
	_, ok := e.(*Indefinite)
	return ok
}

// IsPi reports whether e is the π leaf.
func IsPi(e Expr) bool {
	_, ok := e.(*PiConst)
	return ok
}

// Equal reports deep structural equality of two trees.
func Equal(a, b Expr) bool {
	return a.Key() == b.Key()
}

var ratOne = big.NewRat(1, 1)

/* ------------------------ canonical keys ------------------------ */

func (r *Rational) Key() string { return keyOf(r) }
func (*PiConst) Key() string    { return "PI" }
func (*Indefinite) Key() string { return "INDEF" }
func (v *Variable) Key() string { return keyOf(v) }
func (s *Sqrt) Key() string     { return keyOf(s) }
func (p *IntPow) Key() string   { return keyOf(p) }
func (t *Trig) Key() string     { return keyOf(t) }
func (b *Binary) Key() string   { return keyOf(b) }

func keyOf(e Expr) string {
	var sb strings.Builder
	e.appendKey(&sb)
	return sb.String()
}

func (r *Rational) appendKey(sb *strings.Builder) {
	sb.WriteByte('R')
	sb.WriteString(r.Val.Num().String())
	sb.WriteByte('/')
	sb.WriteString(r.Val.Denom().String())
}

func (*PiConst) appendKey(sb *strings.Builder)    { sb.WriteString("PI") }
func (*Indefinite) appendKey(sb *strings.Builder) { sb.WriteString("INDEF") }

func (v *Variable) appendKey(sb *strings.Builder) {
	sb.WriteString("VAR(")
	sb.WriteString(v.Name)
	sb.WriteByte(')')
}

func (s *Sqrt) appendKey(sb *strings.Builder) {
	sb.WriteString("SQRT(")
	s.Child.appendKey(sb)
	sb.WriteByte(')')
}

func (p *IntPow) appendKey(sb *strings.Builder) {
	sb.WriteString("POW(")
	p.Base.appendKey(sb)
	fmt.Fprintf(sb, ",%d)", p.Exp)
}

func (t *Trig) appendKey(sb *strings.Builder) {
	switch t.Fn {
	case FnSin:
		sb.WriteString("SIN(")
	case FnCos:
		sb.WriteString("COS(")
	default:
		sb.WriteString("TAN(")
	}
	t.Arg.appendKey(sb)
	sb.WriteByte(')')
}

func (b *Binary) appendKey(sb *strings.Builder) {
	switch b.Op {
	case OpAdd:
		sb.WriteString("ADD(")
	case OpSub:
		sb.WriteString("SUB(")
	case OpMul:
		sb.WriteString("MUL(")
	default:
		sb.WriteString("DIV(")
	}
	b.Left.appendKey(sb)
	sb.WriteByte(',')
	b.Right.appendKey(sb)
	sb.WriteByte(')')
}
