package trig

import (
	"github.com/wildfunctions/qcalc/pkg/expr"
)

// maxIdentityPasses bounds the rewrite loop. Each pass applies at most one
// layer of identities bottom-up, so a handful of passes is enough for any
// expression the rest of the pipeline can produce.
const maxIdentityPasses = 6

// ApplyIdentities rewrites the tree with a fixed set of always-valid
// trigonometric identities (parity, period and phase shifts, the Pythagorean
// sum, and sin/cos collapsing to tan). Every candidate pass must keep the
// complexity score from growing, so the loop can only walk downhill and
// terminates even when two identities would otherwise trade places forever.
func ApplyIdentities(e expr.Expr) expr.Expr {
	cur := e
	curScore := expr.ScoreOf(cur)

	for pass := 0; pass < maxIdentityPasses; pass++ {
		next := expr.Simplify(rewriteOnce(cur))
		if expr.Equal(next, cur) {
			break
		}
		nextScore := expr.ScoreOf(next)
		if !nextScore.LessEq(curScore) {
			break
		}
		cur, curScore = next, nextScore
	}
	return cur
}

// rewriteOnce rewrites children first, then tries to match the node itself
// against the identity table.
func rewriteOnce(e expr.Expr) expr.Expr {
	switch n := e.(type) {
	case *expr.Trig:
		arg := rewriteOnce(n.Arg)
		return rewriteTrig(n.Fn, arg)

	case *expr.Sqrt:
		return expr.NewSqrt(rewriteOnce(n.Child))

	case *expr.IntPow:
		return expr.NewPow(rewriteOnce(n.Base), n.Exp)

	case *expr.Binary:
		left := rewriteOnce(n.Left)
		right := rewriteOnce(n.Right)
		return rewriteBinary(n.Op, left, right)

	default:
		return e
	}
}

func rewriteTrig(fn expr.TrigFn, arg expr.Expr) expr.Expr {
	switch fn {
	case expr.FnSin:
		return rewriteSin(arg)
	case expr.FnCos:
		return rewriteCos(arg)
	default:
		return rewriteTan(arg)
	}
}

func rewriteSin(arg expr.Expr) expr.Expr {
	// sin(-t) = -sin(t)
	if t, ok := negatedOperand(arg); ok {
		return neg(expr.NewTrig(expr.FnSin, t))
	}

	if b, ok := arg.(*expr.Binary); ok {
		switch b.Op {
		case expr.OpAdd:
			switch {
			case isPi(b.Right):
				return neg(expr.NewTrig(expr.FnSin, b.Left))
			case isPi(b.Left):
				return neg(expr.NewTrig(expr.FnSin, b.Right))
			case isTwoPi(b.Right):
				return expr.NewTrig(expr.FnSin, b.Left)
			case isTwoPi(b.Left):
				return expr.NewTrig(expr.FnSin, b.Right)
			case isHalfPi(b.Right):
				return expr.NewTrig(expr.FnCos, b.Left)
			case isHalfPi(b.Left):
				return expr.NewTrig(expr.FnCos, b.Right)
			}
		case expr.OpSub:
			switch {
			case isPi(b.Right):
				return neg(expr.NewTrig(expr.FnSin, b.Left))
			case isTwoPi(b.Right):
				return expr.NewTrig(expr.FnSin, b.Left)
			case isHalfPi(b.Right):
				return neg(expr.NewTrig(expr.FnCos, b.Left))
			case isPi(b.Left):
				// sin(π - t) = sin(t)
				return expr.NewTrig(expr.FnSin, b.Right)
			}
		}
	}
	return expr.NewTrig(expr.FnSin, arg)
}

func rewriteCos(arg expr.Expr) expr.Expr {
	// cos(-t) = cos(t)
	if t, ok := negatedOperand(arg); ok {
		return expr.NewTrig(expr.FnCos, t)
	}

	if b, ok := arg.(*expr.Binary); ok {
		switch b.Op {
		case expr.OpAdd:
			switch {
			case isPi(b.Right):
				return neg(expr.NewTrig(expr.FnCos, b.Left))
			case isPi(b.Left):
				return neg(expr.NewTrig(expr.FnCos, b.Right))
			case isTwoPi(b.Right):
				return expr.NewTrig(expr.FnCos, b.Left)
			case isTwoPi(b.Left):
				return expr.NewTrig(expr.FnCos, b.Right)
			case isHalfPi(b.Right):
				return neg(expr.NewTrig(expr.FnSin, b.Left))
			case isHalfPi(b.Left):
				return neg(expr.NewTrig(expr.FnSin, b.Right))
			}
		case expr.OpSub:
			switch {
			case isPi(b.Right):
				return neg(expr.NewTrig(expr.FnCos, b.Left))
			case isTwoPi(b.Right):
				return expr.NewTrig(expr.FnCos, b.Left)
			case isHalfPi(b.Right):
				// cos(t - π/2) = sin(t)
				return expr.NewTrig(expr.FnSin, b.Left)
			case isPi(b.Left):
				// cos(π - t) = -cos(t)
				return neg(expr.NewTrig(expr.FnCos, b.Right))
			}
		}
	}
	return expr.NewTrig(expr.FnCos, arg)
}

func rewriteTan(arg expr.Expr) expr.Expr {
	// tan(-t) = -tan(t)
	if t, ok := negatedOperand(arg); ok {
		return neg(expr.NewTrig(expr.FnTan, t))
	}

	if b, ok := arg.(*expr.Binary); ok {
		switch b.Op {
		case expr.OpAdd:
			switch {
			case isPi(b.Right):
				return expr.NewTrig(expr.FnTan, b.Left)
			case isPi(b.Left):
				return expr.NewTrig(expr.FnTan, b.Right)
			case isHalfPi(b.Right), isHalfPi(b.Left):
				return expr.Indef()
			}
		case expr.OpSub:
			switch {
			case isPi(b.Right):
				return expr.NewTrig(expr.FnTan, b.Left)
			case isHalfPi(b.Right):
				return expr.Indef()
			}
		}
	}
	return expr.NewTrig(expr.FnTan, arg)
}

func rewriteBinary(op expr.BinOp, left, right expr.Expr) expr.Expr {
	switch op {
	case expr.OpAdd:
		// sin²(x) + cos²(x) = 1, in either order
		if _, ok := pythagoreanPair(left, right); ok {
			return expr.One()
		}

	case expr.OpDiv:
		// sin(x)/cos(x) = tan(x), only when it is a genuine shrink
		if s, ok := left.(*expr.Trig); ok && s.Fn == expr.FnSin {
			if c, ok := right.(*expr.Trig); ok && c.Fn == expr.FnCos {
				if expr.Equal(s.Arg, c.Arg) {
					quotient := &expr.Binary{Op: op, Left: left, Right: right}
					tan := expr.NewTrig(expr.FnTan, s.Arg)
					if expr.ScoreOf(tan).Less(expr.ScoreOf(quotient)) {
						return tan
					}
				}
			}
		}
	}
	return &expr.Binary{Op: op, Left: left, Right: right}
}

/* ------------------------ pattern matchers ------------------------ */

// negatedOperand matches 0 - t, the canonical shape of a negation.
func negatedOperand(e expr.Expr) (expr.Expr, bool) {
	if b, ok := e.(*expr.Binary); ok && b.Op == expr.OpSub && expr.IsZero(b.Left) {
		return b.Right, true
	}
	return nil, false
}

func isPi(e expr.Expr) bool {
	return expr.IsPi(e)
}

// isTwoPi matches 2·π written as a product in either operand order.
func isTwoPi(e expr.Expr) bool {
	b, ok := e.(*expr.Binary)
	if !ok || b.Op != expr.OpMul {
		return false
	}
	if expr.IsInt(b.Left, 2) && expr.IsPi(b.Right) {
		return true
	}
	return expr.IsInt(b.Right, 2) && expr.IsPi(b.Left)
}

// isHalfPi matches π/2 written as a quotient.
func isHalfPi(e expr.Expr) bool {
	b, ok := e.(*expr.Binary)
	if !ok || b.Op != expr.OpDiv {
		return false
	}
	return expr.IsPi(b.Left) && expr.IsInt(b.Right, 2)
}

// pythagoreanPair matches sin(x)^2 + cos(x)^2 with matching arguments, in
// either operand order.
func pythagoreanPair(a, b expr.Expr) (expr.Expr, bool) {
	if x, ok := squaredTrigArg(a, expr.FnSin); ok {
		if y, ok := squaredTrigArg(b, expr.FnCos); ok && expr.Equal(x, y) {
			return x, true
		}
	}
	if x, ok := squaredTrigArg(a, expr.FnCos); ok {
		if y, ok := squaredTrigArg(b, expr.FnSin); ok && expr.Equal(x, y) {
			return x, true
		}
	}
	return nil, false
}

func squaredTrigArg(e expr.Expr, fn expr.TrigFn) (expr.Expr, bool) {
	p, ok := e.(*expr.IntPow)
	if !ok || p.Exp != 2 {
		return nil, false
	}
	t, ok := p.Base.(*expr.Trig)
	if !ok || t.Fn != fn {
		return nil, false
	}
	return t.Arg, true
}
