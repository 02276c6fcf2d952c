// Package trig resolves special angles to closed-form exact values and
// applies a curated, always-valid set of trigonometric identities under an
// anti-divergence complexity guard.
package trig

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

// Outcome is the result of a successful special-angle lookup: either an
// exact value or Indefinite, plus one human-readable proof line.
type Outcome struct {
	Value      expr.Expr
	Proof      string
	Indefinite bool
}

// Special recognizes the argument of a sin/cos/tan node as a rational
// multiple of π, reduces the coefficient modulo the function's period
// (2 for sin/cos, 1 for tan), and looks the angle up in the fixed table for
// denominators {1, 2, 3, 4, 6}. Angles outside that finite resolution are
// reported as unrecognized, never approximated.
func Special(arg expr.Expr, fn expr.TrigFn) (Outcome, bool) {
	coeff, ok := expr.CoeffPiExt(arg)
	if !ok {
		return Outcome{}, false
	}

	var reduced *big.Rat
	if fn == expr.FnTan {
		reduced = expr.ModRational(coeff, 1)
	} else {
		reduced = expr.ModRational(coeff, 2)
	}

	k, n, ok := smallKN(reduced)
	if !ok {
		return Outcome{}, false
	}

	// tables are keyed over one full turn: k mod 2n
	kMod := euclidMod(k, 2*n)
	angle := formatAngle(kMod, n)

	switch fn {
	case expr.FnSin:
		return sinTable(kMod, n, angle)
	case expr.FnCos:
		return cosTable(kMod, n, angle)
	default:
		return tanTable(kMod, n, angle)
	}
}

/* ------------------------ value constructors ------------------------ */

func sqrtInt(n int64) expr.Expr {
	return expr.NewSqrt(expr.Int(n))
}

func sqrtOver(n, d int64) expr.Expr {
	return expr.Div(sqrtInt(n), expr.Int(d))
}

func neg(e expr.Expr) expr.Expr {
	return expr.Sub(expr.Zero(), e)
}

/* ------------------------ tables ------------------------ */

func sinTable(k, n int64, angle string) (Outcome, bool) {
	value := func(v expr.Expr, txt string) (Outcome, bool) {
		return Outcome{Value: v, Proof: fmt.Sprintf("sin(%s) = %s", angle, txt)}, true
	}

	if k == 0 {
		return value(expr.Zero(), "0")
	}
	switch [2]int64{k, n} {
	case [2]int64{1, 6}, [2]int64{5, 6}:
		return value(expr.Rat(1, 2), "1/2")
	case [2]int64{7, 6}, [2]int64{11, 6}:
		return value(expr.Rat(-1, 2), "-1/2")
	case [2]int64{1, 4}, [2]int64{3, 4}:
		return value(sqrtOver(2, 2), "√2/2")
	case [2]int64{5, 4}, [2]int64{7, 4}:
		return value(neg(sqrtOver(2, 2)), "-√2/2")
	case [2]int64{1, 3}, [2]int64{2, 3}:
		return value(sqrtOver(3, 2), "√3/2")
	case [2]int64{4, 3}, [2]int64{5, 3}:
		return value(neg(sqrtOver(3, 2)), "-√3/2")
	case [2]int64{1, 2}:
		return value(expr.One(), "1")
	case [2]int64{3, 2}:
		return value(expr.Int(-1), "-1")
	case [2]int64{1, 1}, [2]int64{2, 1}:
		return value(expr.Zero(), "0")
	}
	return Outcome{}, false
}

func cosTable(k, n int64, angle string) (Outcome, bool) {
	value := func(v expr.Expr, txt string) (Outcome, bool) {
		return Outcome{Value: v, Proof: fmt.Sprintf("cos(%s) = %s", angle, txt)}, true
	}

	if k == 0 {
		return value(expr.One(), "1")
	}
	switch [2]int64{k, n} {
	case [2]int64{2, 1}:
		return value(expr.One(), "1")
	case [2]int64{1, 1}:
		return value(expr.Int(-1), "-1")
	case [2]int64{1, 6}, [2]int64{11, 6}:
		return value(sqrtOver(3, 2), "√3/2")
	case [2]int64{5, 6}, [2]int64{7, 6}:
		return value(neg(sqrtOver(3, 2)), "-√3/2")
	case [2]int64{1, 4}, [2]int64{7, 4}:
		return value(sqrtOver(2, 2), "√2/2")
	case [2]int64{3, 4}, [2]int64{5, 4}:
		return value(neg(sqrtOver(2, 2)), "-√2/2")
	case [2]int64{1, 3}, [2]int64{5, 3}:
		return value(expr.Rat(1, 2), "1/2")
	case [2]int64{2, 3}, [2]int64{4, 3}:
		return value(expr.Rat(-1, 2), "-1/2")
	case [2]int64{1, 2}, [2]int64{3, 2}:
		return value(expr.Zero(), "0")
	}
	return Outcome{}, false
}

func tanTable(k, n int64, angle string) (Outcome, bool) {
	value := func(v expr.Expr, txt string) (Outcome, bool) {
		return Outcome{Value: v, Proof: fmt.Sprintf("tan(%s) = %s", angle, txt)}, true
	}

	if k == 0 {
		return value(expr.Zero(), "0")
	}
	switch [2]int64{k, n} {
	case [2]int64{1, 1}, [2]int64{2, 1}:
		return value(expr.Zero(), "0")
	case [2]int64{1, 6}, [2]int64{7, 6}:
		return value(sqrtOver(3, 3), "√3/3")
	case [2]int64{5, 6}, [2]int64{11, 6}:
		return value(neg(sqrtOver(3, 3)), "-√3/3")
	case [2]int64{1, 4}, [2]int64{5, 4}:
		return value(expr.One(), "1")
	case [2]int64{3, 4}, [2]int64{7, 4}:
		return value(expr.Int(-1), "-1")
	case [2]int64{1, 3}, [2]int64{4, 3}:
		return value(sqrtInt(3), "√3")
	case [2]int64{2, 3}, [2]int64{5, 3}:
		return value(neg(sqrtInt(3)), "-√3")
	case [2]int64{1, 2}, [2]int64{3, 2}:
		return Outcome{
			Proof:      fmt.Sprintf("tan(%s) = indéfini", angle),
			Indefinite: true,
		}, true
	}
	return Outcome{}, false
}

/* ------------------------ helpers ------------------------ */

func formatAngle(k, n int64) string {
	if k == 0 {
		return "0"
	}
	if n == 1 {
		if k == 1 {
			return "π"
		}
		return fmt.Sprintf("%dπ", k)
	}
	if k == 1 {
		return fmt.Sprintf("π/%d", n)
	}
	return fmt.Sprintf("%dπ/%d", k, n)
}

// smallKN converts a reduced rational to an (k, n) int64 pair, accepting
// only n in {1, 2, 3, 4, 6}.
func smallKN(r *big.Rat) (k, n int64, ok bool) {
	if !r.Num().IsInt64() || !r.Denom().IsInt64() {
		return 0, 0, false
	}
	k = r.Num().Int64()
	n = r.Denom().Int64()
	switch n {
	case 1, 2, 3, 4, 6:
		return k, n, true
	}
	return 0, 0, false
}

func euclidMod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

/* ------------------------ recursive application ------------------------ */

// Resolve applies the special-angle lookup everywhere in the tree, top-down,
// and re-simplifies as it unwinds. It returns the rewritten tree and the
// accumulated proof log, one line per successful match.
func Resolve(e expr.Expr) (expr.Expr, string) {
	var proof strings.Builder
	out := resolve(e, &proof)
	return out, proof.String()
}

func resolve(e expr.Expr, proof *strings.Builder) expr.Expr {
	var out expr.Expr

	switch n := e.(type) {
	case *expr.Trig:
		if res, ok := Special(n.Arg, n.Fn); ok {
			pushProof(proof, res.Proof)
			if res.Indefinite {
				out = expr.Indef()
			} else {
				out = res.Value
			}
		} else {
			out = expr.NewTrig(n.Fn, resolve(n.Arg, proof))
		}

	case *expr.Binary:
		out = &expr.Binary{
			Op:    n.Op,
			Left:  resolve(n.Left, proof),
			Right: resolve(n.Right, proof),
		}

	case *expr.Sqrt:
		out = expr.NewSqrt(resolve(n.Child, proof))

	case *expr.IntPow:
		out = expr.NewPow(resolve(n.Base, proof), n.Exp)

	default:
		return e
	}

	return expr.Simplify(out)
}

func pushProof(proof *strings.Builder, line string) {
	if line == "" {
		return
	}
	if proof.Len() > 0 {
		proof.WriteByte('\n')
	}
	proof.WriteString(line)
}
