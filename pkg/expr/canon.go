package expr

import (
	"math/big"
	"sort"
)

// Canon produces the deterministic normal form: flattened additive and
// multiplicative chains, folded rational coefficients, extracted signs, a
// total order on terms and factors, and square-free extraction under square
// roots. Identical input trees always yield byte-identical output trees.
func Canon(e Expr) Expr {
	switch n := e.(type) {
	case *Rational, *PiConst, *Indefinite, *Variable:
		return e

	case *Sqrt:
		return canonSqrt(Canon(n.Child))

	case *IntPow:
		return canonPow(Canon(n.Base), n.Exp)

	case *Trig:
		return NewTrig(n.Fn, Canon(n.Arg))

	case *Binary:
		left := Canon(n.Left)
		right := Canon(n.Right)
		switch n.Op {
		case OpAdd, OpSub:
			return canonAddSub(&Binary{Op: n.Op, Left: left, Right: right})
		case OpMul:
			return canonMul(Mul(left, right))
		default:
			return canonDiv(left, right)
		}

	default:
		return e
	}
}

/* ------------------------ sign helpers ------------------------ */

// splitSign returns (negative?, absolute value). Both a negative rational
// leaf and the literal 0 − y shape count as negative.
func splitSign(e Expr) (bool, Expr) {
	switch n := e.(type) {
	case *Rational:
		if n.Val.Sign() < 0 {
			return true, FromRat(new(big.Rat).Neg(n.Val))
		}
	case *Binary:
		if n.Op == OpSub && IsZero(n.Left) {
			return true, n.Right
		}
	}
	return false, e
}

/* ------------------------ total order ------------------------ */

func rank(e Expr) int {
	switch n := e.(type) {
	case *Rational:
		return 0
	case *Variable:
		return 1
	case *Sqrt:
		return 2
	case *PiConst:
		return 3
	case *IntPow:
		return 4
	case *Trig:
		return 5
	case *Binary:
		if n.Op == OpMul || n.Op == OpDiv {
			return 6
		}
		return 7
	default: // *Indefinite
		return 255
	}
}

func cmpExpr(a, b Expr) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	ka, kb := a.Key(), b.Key()
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

/* ------------------------ additive chains ------------------------ */

func collectAddSub(e Expr, out *[]Expr) {
	if b, ok := e.(*Binary); ok {
		switch b.Op {
		case OpAdd:
			collectAddSub(b.Left, out)
			collectAddSub(b.Right, out)
			return
		case OpSub:
			collectAddSub(b.Left, out)
			*out = append(*out, Neg(b.Right))
			return
		}
	}
	*out = append(*out, e)
}

func canonAddSub(e Expr) Expr {
	var terms []Expr
	collectAddSub(e, &terms)

	// drop zeros, fold all rational terms into one
	ratSum := new(big.Rat)
	kept := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if r, ok := t.(*Rational); ok {
			ratSum.Add(ratSum, r.Val)
			continue
		}
		if !IsZero(t) {
			kept = append(kept, t)
		}
	}
	if ratSum.Sign() != 0 {
		kept = append(kept, FromRat(ratSum))
	}
	if len(kept) == 0 {
		return Zero()
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return cmpExpr(kept[i], kept[j]) < 0
	})

	// rebuild left to right, using Sub whenever the next term is negative
	acc := kept[0]
	for _, t := range kept[1:] {
		negative, abs := splitSign(t)
		if negative {
			acc = Sub(acc, abs)
		} else {
			acc = Add(acc, abs)
		}
	}
	return acc
}

/* ------------------------ multiplicative chains ------------------------ */

func collectMul(e Expr, out *[]Expr) {
	if b, ok := e.(*Binary); ok && b.Op == OpMul {
		collectMul(b.Left, out)
		collectMul(b.Right, out)
		return
	}
	*out = append(*out, e)
}

func canonMul(e Expr) Expr {
	var factors []Expr
	collectMul(e, &factors)

	for _, f := range factors {
		if IsIndef(f) {
			return Indef()
		}
	}

	// extract the aggregate sign and rational coefficient, short-circuit
	// on zero, drop multiplicative identities
	negative := false
	coeff := big.NewRat(1, 1)
	kept := make([]Expr, 0, len(factors))

	for _, f := range factors {
		if IsZero(f) {
			return Zero()
		}
		negF, absF := splitSign(f)
		if negF {
			negative = !negative
		}
		if r, ok := absF.(*Rational); ok {
			if r.Val.Cmp(ratOne) != 0 {
				coeff.Mul(coeff, r.Val)
			}
			continue
		}
		if !IsOne(absF) {
			kept = append(kept, absF)
		}
	}

	if coeff.Sign() == 0 {
		return Zero()
	}
	if negative {
		coeff.Neg(coeff)
	}

	if coeff.Cmp(ratOne) != 0 || len(kept) == 0 {
		kept = append(kept, FromRat(coeff))
	}
	if len(kept) == 0 {
		return One()
	}
	if len(kept) == 1 {
		return kept[0]
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return cmpExpr(kept[i], kept[j]) < 0
	})

	acc := kept[0]
	for _, f := range kept[1:] {
		acc = Mul(acc, f)
	}
	return acc
}

/* ------------------------ quotients ------------------------ */

func canonDiv(a, b Expr) Expr {
	if IsIndef(a) || IsIndef(b) {
		return Indef()
	}
	if IsOne(b) {
		return a
	}
	if IsZero(a) {
		return Zero()
	}

	// hoist the denominator's sign onto the numerator so a canonical
	// denominator is never a subtraction from zero
	negB, absB := splitSign(b)
	num := a
	if negB {
		num = Neg(num)
	}
	return Div(num, absB)
}

/* ------------------------ powers and roots ------------------------ */

func canonPow(base Expr, exp int64) Expr {
	if IsIndef(base) {
		return Indef()
	}
	if exp == 0 {
		return One()
	}
	return NewPow(base, exp)
}

func canonSqrt(x Expr) Expr {
	if IsIndef(x) {
		return Indef()
	}

	// √(non-negative integer): pull the square part out, √(s²·t) = s·√t
	if r, ok := x.(*Rational); ok {
		if r.Val.Sign() == 0 {
			return Zero()
		}
		if r.Val.Sign() > 0 && r.Val.IsInt() {
			s, t := squareFree(r.Val.Num())
			switch {
			case t.Cmp(intOne) == 0:
				return FromRat(new(big.Rat).SetInt(s))
			case s.Cmp(intOne) != 0:
				return canonMul(Mul(
					FromRat(new(big.Rat).SetInt(s)),
					NewSqrt(FromRat(new(big.Rat).SetInt(t))),
				))
			default:
				return NewSqrt(FromRat(new(big.Rat).SetInt(t)))
			}
		}
	}
	return NewSqrt(x)
}

var intOne = big.NewInt(1)

// squareFree decomposes n >= 0 into n = s²·t with t square-free, by trial
// division over 2 then odd integers. Fast only for the small magnitudes this
// calculator targets.
func squareFree(n *big.Int) (s, t *big.Int) {
	if n.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	if n.Cmp(intOne) == 0 {
		return big.NewInt(1), big.NewInt(1)
	}

	rest := new(big.Int).Set(n)
	s = big.NewInt(1)

	p := big.NewInt(2)
	p2 := new(big.Int)
	rem := new(big.Int)
	for p2.Mul(p, p); p2.Cmp(rest) <= 0; p2.Mul(p, p) {
		for {
			q, r := new(big.Int).QuoRem(rest, p2, rem)
			if r.Sign() != 0 {
				break
			}
			rest.Set(q)
			s.Mul(s, p)
		}
		if p.Cmp(big.NewInt(2)) == 0 {
			p.SetInt64(3)
		} else {
			p.Add(p, big.NewInt(2))
		}
	}
	return s, rest
}
