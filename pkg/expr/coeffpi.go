package expr

import "math/big"

// Traversal bounds shared by the iterative tree walks. Exceeding either is
// treated conservatively by the caller.
const (
	maxWalkStack = 8192
	maxWalkNodes = 200_000
)

// CoeffPiExt extracts the rational coefficient c from a tree denoting c·π,
// iteratively and under the traversal bounds. It linearly combines
// Add/Sub/Mul/Div subtrees whose leaves are rationals and at most one π per
// product. Any non-linear structure, a π·π factor, or an exceeded bound
// returns false. Both the special-angle resolver and the exact renderer
// lean on it.
func CoeffPiExt(e Expr) (*big.Rat, bool) {
	type frame struct {
		node Expr
		exit bool
	}

	stack := make([]frame, 0, 64)
	res := make([]*big.Rat, 0, 64) // nil means "not a coeff·π"
	stack = append(stack, frame{node: e})

	visited := 0
	for len(stack) > 0 {
		visited++
		if visited > maxWalkNodes || len(stack) > maxWalkStack {
			return nil, false
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.exit {
			stack = append(stack, frame{node: f.node, exit: true})
			if b, ok := f.node.(*Binary); ok {
				stack = append(stack, frame{node: b.Right})
				stack = append(stack, frame{node: b.Left})
			}
			continue
		}

		switch n := f.node.(type) {
		case *PiConst:
			res = append(res, big.NewRat(1, 1))

		case *Binary:
			rb := popRat(&res)
			ra := popRat(&res)

			switch n.Op {
			case OpAdd:
				if ra != nil && rb != nil {
					res = append(res, ra.Add(ra, rb))
				} else {
					res = append(res, nil)
				}

			case OpSub:
				// Sub(0, x) => -coeff(x)
				if IsZero(n.Left) && rb != nil {
					res = append(res, rb.Neg(rb))
					continue
				}
				if ra != nil && rb != nil {
					res = append(res, ra.Sub(ra, rb))
				} else {
					res = append(res, nil)
				}

			case OpMul:
				switch {
				case ra != nil && rb == nil:
					if r, ok := n.Right.(*Rational); ok {
						res = append(res, ra.Mul(ra, r.Val))
					} else if r, ok := n.Left.(*Rational); ok {
						res = append(res, ra.Mul(ra, r.Val))
					} else {
						res = append(res, nil)
					}
				case ra == nil && rb != nil:
					if r, ok := n.Left.(*Rational); ok {
						res = append(res, rb.Mul(rb, r.Val))
					} else if r, ok := n.Right.(*Rational); ok {
						res = append(res, rb.Mul(rb, r.Val))
					} else {
						res = append(res, nil)
					}
				default:
					// coeff·π times coeff·π would be π², out of domain
					res = append(res, nil)
				}

			default: // OpDiv
				if ra != nil && rb == nil {
					if r, ok := n.Right.(*Rational); ok && r.Val.Sign() != 0 {
						res = append(res, ra.Quo(ra, r.Val))
					} else {
						res = append(res, nil)
					}
				} else {
					res = append(res, nil)
				}
			}

		case *Rational:
			// the zero angle is exactly 0·π; any other rational is not
			// a π multiple
			if n.Val.Sign() == 0 {
				res = append(res, new(big.Rat))
			} else {
				res = append(res, nil)
			}

		default:
			// variables, Indefinite, √, powers and trig all refuse to
			// carry a π coefficient
			res = append(res, nil)
		}
	}

	if len(res) != 1 || res[0] == nil {
		return nil, false
	}
	return res[0], true
}

func popRat(res *[]*big.Rat) *big.Rat {
	s := *res
	if len(s) == 0 {
		return nil
	}
	v := s[len(s)-1]
	*res = s[:len(s)-1]
	return v
}

// ModRational reduces coeff modulo an integer period into [0, period).
// For coeff = n/d, coeff mod p = (n mod (p·d)) / d with a Euclidean modulo.
func ModRational(coeff *big.Rat, period int64) *big.Rat {
	if period <= 0 {
		return new(big.Rat).Set(coeff)
	}
	if coeff.Sign() == 0 {
		return new(big.Rat)
	}

	d := coeff.Denom()
	m := new(big.Int).Mul(big.NewInt(period), d)
	r := new(big.Int).Mod(coeff.Num(), m) // Euclidean: 0 <= r < m
	return new(big.Rat).SetFrac(r, new(big.Int).Set(d))
}
