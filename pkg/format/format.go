// Package format renders exact expression trees as display strings: radicals
// with the √ glyph, fractions folded into compact p√n/q shapes, and rational
// multiples of π printed in the conventional kπ/n form.
package format

import (
	"fmt"
	"math/big"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

// Exact renders the canonical value for the exact reading of a result.
// Indefinite values print as the literal word "indéfini", and rational
// multiples of π collapse to the conventional coefficient form before
// falling back to the structural pretty-printer.
func Exact(e expr.Expr) string {
	if expr.IsIndef(e) {
		return "indéfini"
	}
	if coeff, ok := expr.CoeffPiExt(e); ok {
		return piForm(coeff)
	}
	return Pretty(e)
}

// piForm prints coeff·π: 0, ±π, nπ, π/d, -π/d or nπ/d.
func piForm(coeff *big.Rat) string {
	if coeff.Sign() == 0 {
		return "0"
	}
	num := coeff.Num()
	den := coeff.Denom()

	if den.IsInt64() && den.Int64() == 1 {
		if num.IsInt64() {
			switch num.Int64() {
			case 1:
				return "π"
			case -1:
				return "-π"
			}
		}
		return fmt.Sprintf("%sπ", num.String())
	}
	if num.IsInt64() {
		switch num.Int64() {
		case 1:
			return fmt.Sprintf("π/%s", den.String())
		case -1:
			return fmt.Sprintf("-π/%s", den.String())
		}
	}
	return fmt.Sprintf("%sπ/%s", num.String(), den.String())
}

// Pretty renders the tree structurally. Sums and differences are always
// parenthesized so operator precedence never has to be re-derived from the
// string; products of a rational and a radical fold into the compact p√n/q
// shape.
func Pretty(e expr.Expr) string {
	switch n := e.(type) {
	case *expr.Rational:
		return ratString(n.Val)

	case *expr.PiConst:
		return "π"

	case *expr.Indefinite:
		return "indéfini"

	case *expr.Variable:
		return n.Name

	case *expr.Sqrt:
		if r, ok := n.Child.(*expr.Rational); ok && r.Val.IsInt() {
			return "√" + r.Val.Num().String()
		}
		return "√(" + Pretty(n.Child) + ")"

	case *expr.IntPow:
		return fmt.Sprintf("(%s)^%d", Pretty(n.Base), n.Exp)

	case *expr.Trig:
		return fmt.Sprintf("%s(%s)", n.Fn.Name(), Pretty(n.Arg))

	case *expr.Binary:
		return prettyBinary(n)

	default:
		return "?"
	}
}

func prettyBinary(b *expr.Binary) string {
	switch b.Op {
	case expr.OpAdd:
		return "(" + Pretty(b.Left) + " + " + Pretty(b.Right) + ")"

	case expr.OpSub:
		// sums and differences already print parenthesized, so a bare
		// "-" prefix stays unambiguous
		if expr.IsZero(b.Left) {
			return "-" + Pretty(b.Right)
		}
		return "(" + Pretty(b.Left) + " - " + Pretty(b.Right) + ")"

	case expr.OpMul:
		if s, ok := ratTimesSqrt(b); ok {
			return s
		}
		return Pretty(b.Left) + "*" + Pretty(b.Right)

	default:
		return prettyDiv(b)
	}
}

// ratTimesSqrt folds (p/q)·√n, in either operand order, into the compact
// p√n/q rendering.
func ratTimesSqrt(b *expr.Binary) (string, bool) {
	s, ok := ratSqrtParts(b)
	if !ok {
		return "", false
	}
	return coeffSqrtString(s.coeff, s.root), true
}

// coeffSqrtString prints (p/q)·√n as p√n/q, dropping the numeral when the
// numerator is ±1.
func coeffSqrtString(coeff *big.Rat, root *big.Int) string {
	if coeff.Sign() == 0 {
		return "0"
	}
	num := coeff.Num()
	den := coeff.Denom()

	var head string
	if num.IsInt64() && num.Int64() == 1 {
		head = "√" + root.String()
	} else if num.IsInt64() && num.Int64() == -1 {
		head = "-√" + root.String()
	} else {
		head = num.String() + "√" + root.String()
	}

	if den.IsInt64() && den.Int64() == 1 {
		return head
	}
	return head + "/" + den.String()
}

func prettyDiv(b *expr.Binary) string {
	// nonzero integer denominators get the flat a/k rendering with
	// radical folding
	if d, ok := b.Right.(*expr.Rational); ok && d.Val.IsInt() && d.Val.Sign() != 0 {
		k := d.Val.Num()

		if n, ok := intSqrt(b.Left); ok {
			one := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Set(k))
			return coeffSqrtString(one, n)
		}

		if mb, ok := b.Left.(*expr.Binary); ok && mb.Op == expr.OpMul {
			if s, ok := ratSqrtParts(mb); ok {
				folded := new(big.Rat).Quo(s.coeff, new(big.Rat).SetInt(k))
				return coeffSqrtString(folded, s.root)
			}
		}

		return Pretty(b.Left) + "/" + k.String()
	}
	return Pretty(b.Left) + "/(" + Pretty(b.Right) + ")"
}

type ratSqrt struct {
	coeff *big.Rat
	root  *big.Int
}

func ratSqrtParts(b *expr.Binary) (ratSqrt, bool) {
	if r, ok := b.Left.(*expr.Rational); ok {
		if n, ok := intSqrt(b.Right); ok {
			return ratSqrt{coeff: r.Val, root: n}, true
		}
	}
	if r, ok := b.Right.(*expr.Rational); ok {
		if n, ok := intSqrt(b.Left); ok {
			return ratSqrt{coeff: r.Val, root: n}, true
		}
	}
	return ratSqrt{}, false
}

// intSqrt matches √n for an integer-valued rational n.
func intSqrt(e expr.Expr) (*big.Int, bool) {
	s, ok := e.(*expr.Sqrt)
	if !ok {
		return nil, false
	}
	r, ok := s.Child.(*expr.Rational)
	if !ok || !r.Val.IsInt() {
		return nil, false
	}
	return r.Val.Num(), true
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.Num().String() + "/" + r.Denom().String()
}
