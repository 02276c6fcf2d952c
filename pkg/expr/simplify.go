package expr

import "math/big"

// Simplify applies the always-safe local rewrite rules bottom-up and returns
// a new tree. Every rule is value-preserving and never grows the tree:
// rational folding, identity elements, like square roots, exact root and
// power extraction, Indefinite absorption. Division by a rational zero is
// deliberately left symbolic so the decimal evaluator can surface it as a
// runtime error. Variables, π and Indefinite are fixed points.
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case *Rational, *PiConst, *Indefinite, *Variable:
		return e

	case *Binary:
		left := Simplify(n.Left)
		right := Simplify(n.Right)
		switch n.Op {
		case OpAdd:
			return simplifyAdd(left, right)
		case OpSub:
			return simplifySub(left, right)
		case OpMul:
			return simplifyMul(left, right)
		default:
			return simplifyDiv(left, right)
		}

	case *IntPow:
		base := Simplify(n.Base)
		if IsIndef(base) {
			return Indef()
		}
		if n.Exp == 0 {
			return One()
		}
		if r, ok := base.(*Rational); ok {
			if v, ok := ratPow(r.Val, n.Exp); ok {
				return FromRat(v)
			}
			// 0 raised to a negative exponent: keep symbolic, the
			// decimal evaluator reports the division by zero.
		}
		return NewPow(base, n.Exp)

	case *Sqrt:
		x := Simplify(n.Child)
		if IsIndef(x) {
			return Indef()
		}
		if r, ok := x.(*Rational); ok {
			if s, ok := ratSqrtExact(r.Val); ok {
				return FromRat(s)
			}
		}
		return NewSqrt(x)

	case *Trig:
		x := Simplify(n.Arg)
		if IsIndef(x) {
			return Indef()
		}
		return NewTrig(n.Fn, x)

	default:
		return e
	}
}

func simplifyAdd(a, b Expr) Expr {
	if IsIndef(a) || IsIndef(b) {
		return Indef()
	}
	if ra, ok := a.(*Rational); ok {
		if rb, ok := b.(*Rational); ok {
			return FromRat(new(big.Rat).Add(ra.Val, rb.Val))
		}
	}
	if IsZero(a) {
		return b
	}
	if IsZero(b) {
		return a
	}
	return Add(a, b)
}

func simplifySub(a, b Expr) Expr {
	// x - x => 0 (structural equality)
	if Equal(a, b) {
		return Zero()
	}
	if IsIndef(a) || IsIndef(b) {
		return Indef()
	}
	if ra, ok := a.(*Rational); ok {
		if rb, ok := b.(*Rational); ok {
			return FromRat(new(big.Rat).Sub(ra.Val, rb.Val))
		}
	}
	if IsZero(b) {
		return a
	}
	if IsZero(a) {
		// keep 0 - b: the sign-extraction and coeff·π paths rely on it
		return Sub(Zero(), b)
	}
	return Sub(a, b)
}

func simplifyMul(a, b Expr) Expr {
	if IsIndef(a) || IsIndef(b) {
		return Indef()
	}

	if sa, ok := a.(*Sqrt); ok {
		if sb, ok := b.(*Sqrt); ok {
			// √x * √x => x
			if Equal(sa.Child, sb.Child) {
				return Simplify(sa.Child)
			}
			// √u * √v => √(u*v) for non-negative rationals
			if ru, ok := sa.Child.(*Rational); ok {
				if rv, ok := sb.Child.(*Rational); ok {
					if ru.Val.Sign() >= 0 && rv.Val.Sign() >= 0 {
						return Simplify(NewSqrt(FromRat(new(big.Rat).Mul(ru.Val, rv.Val))))
					}
				}
			}
		}
	}

	// (√x / k) * √x => x / k, both operand orders
	if d, sq, ok := divSqrtByRat(a); ok {
		if sb, ok2 := b.(*Sqrt); ok2 && Equal(sq, sb.Child) {
			return Simplify(Div(Simplify(sq), FromRat(d)))
		}
	}
	if d, sq, ok := divSqrtByRat(b); ok {
		if sa, ok2 := a.(*Sqrt); ok2 && Equal(sq, sa.Child) {
			return Simplify(Div(Simplify(sq), FromRat(d)))
		}
	}

	// (√x / k) * (√x / m) => x / (k*m)
	if k, sq1, ok1 := divSqrtByRat(a); ok1 {
		if m, sq2, ok2 := divSqrtByRat(b); ok2 && Equal(sq1, sq2) {
			km := new(big.Rat).Mul(k, m)
			return Simplify(Div(Simplify(sq1), FromRat(km)))
		}
	}

	if ra, ok := a.(*Rational); ok {
		if rb, ok := b.(*Rational); ok {
			return FromRat(new(big.Rat).Mul(ra.Val, rb.Val))
		}
	}
	if IsZero(a) || IsZero(b) {
		return Zero()
	}
	if IsOne(a) {
		return b
	}
	if IsOne(b) {
		return a
	}
	return Mul(a, b)
}

func simplifyDiv(a, b Expr) Expr {
	if IsIndef(a) || IsIndef(b) {
		return Indef()
	}

	// division by the rational zero stays symbolic here
	if IsZero(b) {
		return Div(a, b)
	}

	if sa, ok := a.(*Sqrt); ok {
		if sb, ok := b.(*Sqrt); ok {
			// √x / √x => 1 when x is a nonzero rational
			if Equal(sa.Child, sb.Child) {
				if r, ok := sa.Child.(*Rational); ok && r.Val.Sign() != 0 {
					return One()
				}
			}
			// √u / √v => √(u/v) for positive rationals
			if ru, ok := sa.Child.(*Rational); ok {
				if rv, ok := sb.Child.(*Rational); ok {
					if ru.Val.Sign() > 0 && rv.Val.Sign() > 0 {
						return Simplify(NewSqrt(FromRat(new(big.Rat).Quo(ru.Val, rv.Val))))
					}
				}
			}
		}
	}

	if ra, ok := a.(*Rational); ok {
		if rb, ok := b.(*Rational); ok {
			return FromRat(new(big.Rat).Quo(ra.Val, rb.Val))
		}
		// (p/q) / √n => (p/(q·n)) * √n when n is a positive integer
		if sb, ok := b.(*Sqrt); ok {
			if rn, ok := sb.Child.(*Rational); ok && rn.Val.Sign() > 0 && rn.Val.IsInt() {
				xOverN := new(big.Rat).Quo(ra.Val, rn.Val)
				return Simplify(Mul(FromRat(xOverN), NewSqrt(FromRat(new(big.Rat).Set(rn.Val)))))
			}
		}
	}
	if IsOne(b) {
		return a
	}
	return Div(a, b)
}

// divSqrtByRat matches the shape Div(Sqrt(x), Rat(k)) and returns (k, x).
func divSqrtByRat(e Expr) (*big.Rat, Expr, bool) {
	d, ok := e.(*Binary)
	if !ok || d.Op != OpDiv {
		return nil, nil, false
	}
	sq, ok := d.Left.(*Sqrt)
	if !ok {
		return nil, nil, false
	}
	k, ok := d.Right.(*Rational)
	if !ok {
		return nil, nil, false
	}
	return k.Val, sq.Child, true
}

/* ------------------------ rational helpers ------------------------ */

// maxFoldExp bounds the exponent magnitude the simplifier will evaluate
// exactly. Larger exponents stay symbolic.
const maxFoldExp = 4096

// ratPow computes base^exp by fast exponentiation. Negative exponents go
// through the reciprocal; 0 to a negative power is refused.
func ratPow(base *big.Rat, exp int64) (*big.Rat, bool) {
	if exp == 0 {
		return big.NewRat(1, 1), true
	}
	if exp < 0 {
		if base.Sign() == 0 {
			return nil, false
		}
		pos, ok := ratPow(base, -exp)
		if !ok {
			return nil, false
		}
		return pos.Inv(pos), true
	}
	if exp > maxFoldExp {
		return nil, false
	}

	acc := big.NewRat(1, 1)
	b := new(big.Rat).Set(base)
	e := exp
	for e > 0 {
		if e&1 == 1 {
			acc.Mul(acc, b)
		}
		e >>= 1
		if e > 0 {
			b.Mul(b, b)
		}
	}
	return acc, true
}

// ratSqrtExact returns the exact square root of r when both numerator and
// denominator are perfect squares.
func ratSqrtExact(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	sn, ok := intSqrtExact(r.Num())
	if !ok {
		return nil, false
	}
	sd, ok := intSqrtExact(r.Denom())
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(sn, sd), true
}

func intSqrtExact(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	s := new(big.Int).Sqrt(x)
	if new(big.Int).Mul(s, s).Cmp(x) == 0 {
		return s, true
	}
	return nil, false
}
