// Package decimal produces decimal readings of exact expression trees to a
// requested number of fractional digits. All arithmetic runs on scaled
// big integers (value·10^digits) with truncation toward zero, so the output
// never inherits binary floating-point error.
package decimal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// maxPowExp bounds the exponent magnitude evaluated exactly, the same
// ceiling the symbolic folder applies. Larger powers are refused.
const maxPowExp = 4096

// Evaluate renders e as a decimal string with exactly digits fractional
// digits, truncated toward zero. The tree must already be fully resolved:
// free variables, Indefinite leaves, irrational trig arguments and
// non-rational radicands are reported as errors, never guessed at.
func Evaluate(e expr.Expr, digits int) (string, error) {
	scaled, err := evalScaled(e, digits)
	if err != nil {
		return "", err
	}
	return scaledToDecimal(scaled, digits), nil
}

func evalScaled(e expr.Expr, digits int) (*big.Int, error) {
	scale := pow10(digits)

	switch n := e.(type) {
	case *expr.Rational:
		return ratScaled(n.Val, scale), nil

	case *expr.PiConst:
		return PiScaled(digits), nil

	case *expr.Indefinite:
		return nil, fmt.Errorf("indefinite value has no decimal reading")

	case *expr.Variable:
		return nil, fmt.Errorf("free variable %s has no decimal reading", n.Name)

	case *expr.Sqrt:
		r, ok := n.Child.(*expr.Rational)
		if !ok {
			return nil, fmt.Errorf("square root of a non-rational argument is not yet supported")
		}
		if r.Val.Sign() < 0 {
			return nil, fmt.Errorf("square root of a negative number")
		}
		return sqrtScaled(r.Val, digits), nil

	case *expr.IntPow:
		r, ok := n.Base.(*expr.Rational)
		if !ok {
			return nil, fmt.Errorf("power of a non-rational base is not yet supported")
		}
		v, err := ratPow(r.Val, n.Exp)
		if err != nil {
			return nil, err
		}
		return ratScaled(v, scale), nil

	case *expr.Trig:
		// anything the exact stages could resolve has been resolved by
		// now, so one more simplify either collapses the node or proves
		// it has no finite-table value
		reduced := expr.Simplify(n.Clone())
		if _, still := reduced.(*expr.Trig); still {
			return nil, fmt.Errorf("%s of an unrecognized angle has no exact decimal reading", n.Fn.Name())
		}
		return evalScaled(reduced, digits)

	case *expr.Binary:
		a, err := evalScaled(n.Left, digits)
		if err != nil {
			return nil, err
		}
		b, err := evalScaled(n.Right, digits)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case expr.OpAdd:
			return new(big.Int).Add(a, b), nil
		case expr.OpSub:
			return new(big.Int).Sub(a, b), nil
		case expr.OpMul:
			prod := new(big.Int).Mul(a, b)
			return prod.Quo(prod, scale), nil
		default:
			if b.Sign() == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			num := new(big.Int).Mul(a, scale)
			return num.Quo(num, b), nil
		}

	default:
		return nil, fmt.Errorf("unsupported node in decimal evaluation")
	}
}

// ratScaled truncates r·scale toward zero.
func ratScaled(r *big.Rat, scale *big.Int) *big.Int {
	num := new(big.Int).Mul(r.Num(), scale)
	return num.Quo(num, r.Denom())
}

func ratPow(base *big.Rat, exp int64) (*big.Rat, error) {
	if exp == 0 {
		return big.NewRat(1, 1), nil
	}
	if exp > maxPowExp || exp < -maxPowExp {
		return nil, fmt.Errorf("exponent too large")
	}
	neg := exp < 0
	if neg {
		if base.Sign() == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		exp = -exp
	}
	num := new(big.Int).Exp(base.Num(), big.NewInt(exp), nil)
	den := new(big.Int).Exp(base.Denom(), big.NewInt(exp), nil)
	out := new(big.Rat).SetFrac(num, den)
	if neg {
		out.Inv(out)
	}
	return out, nil
}

// sqrtScaled computes floor(sqrt(n/d)·10^digits) by Newton iteration on the
// integer target n·10^(2·digits), followed by a floor adjustment that pins
// the result to the exact integer square root.
func sqrtScaled(r *big.Rat, digits int) *big.Int {
	if r.Sign() == 0 {
		return new(big.Int)
	}
	d := r.Denom()
	target := new(big.Int).Mul(r.Num(), pow10(2*digits))

	y := pow10(digits)
	for {
		// y' = (y + target/(d·y)) / 2
		dy := new(big.Int).Mul(d, y)
		next := new(big.Int).Quo(target, dy)
		next.Add(next, y)
		next.Rsh(next, 1)

		diff := new(big.Int).Sub(y, next)
		y = next
		if diff.Sign() == 0 || diff.Cmp(bigOne) == 0 {
			break
		}
	}

	// pin to floor: largest y with y²·d ≤ target
	for {
		up := new(big.Int).Add(y, bigOne)
		up.Mul(up, up)
		up.Mul(up, d)
		if up.Cmp(target) > 0 {
			break
		}
		y.Add(y, bigOne)
	}
	for {
		sq := new(big.Int).Mul(y, y)
		sq.Mul(sq, d)
		if sq.Cmp(target) <= 0 {
			break
		}
		y.Sub(y, bigOne)
	}
	return y
}

// scaledToDecimal renders a scaled integer as "-int.frac" with the
// fractional part zero-padded to digits. With digits == 0 the result is a
// plain integer.
func scaledToDecimal(x *big.Int, digits int) string {
	if digits == 0 {
		return x.String()
	}
	scale := pow10(digits)

	sign := ""
	abs := new(big.Int).Abs(x)
	if x.Sign() < 0 {
		sign = "-"
	}

	intPart := new(big.Int)
	fracPart := new(big.Int)
	intPart.QuoRem(abs, scale, fracPart)

	frac := fracPart.String()
	if len(frac) < digits {
		frac = strings.Repeat("0", digits-len(frac)) + frac
	}
	return sign + intPart.String() + "." + frac
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
