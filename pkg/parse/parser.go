package parse

import (
	"fmt"
	"math/big"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

// Operator precedence: ^ binds tighter than * /, which bind tighter than
// + -. Only ^ is right-associative.
func precedence(t Token) int {
	switch t.Kind {
	case TokPlus, TokMinus:
		return 1
	case TokStar, TokSlash:
		return 2
	case TokCaret:
		return 3
	default:
		return 0
	}
}

func isRightAssociative(t Token) bool {
	return t.Kind == TokCaret
}

// isFunctionIdent reports whether name is one of the four recognized unary
// functions. Anything else stays an opaque variable.
func isFunctionIdent(name string) bool {
	switch name {
	case "sin", "cos", "tan", "sqrt":
		return true
	}
	return false
}

// ToPostfix converts the token sequence to postfix (RPN) order by
// shunting-yard. Functions are kept on the operator stack and popped right
// after their closing parenthesis, so they bind to exactly one parenthesized
// argument. A minus appearing where a value is expected is rewritten as a
// subtraction from literal zero: "-x" becomes "0 x -".
func ToPostfix(tokens []Token) ([]Token, error) {
	var out, ops []Token

	// prevWasValue tracks whether the previous token completed a value,
	// which is what distinguishes binary from unary minus.
	prevWasValue := false

	for _, tok := range tokens {
		switch tok.Kind {
		case TokNum, TokPi:
			out = append(out, tok)
			prevWasValue = true

		case TokIdent:
			if isFunctionIdent(tok.Name) {
				ops = append(ops, tok)
				prevWasValue = false
			} else {
				out = append(out, tok)
				prevWasValue = true
			}

		case TokLParen:
			ops = append(ops, tok)
			prevWasValue = false

		case TokRParen:
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == TokLParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			// a function on top of the stack belongs to this argument
			if len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokIdent && isFunctionIdent(top.Name) {
					ops = ops[:len(ops)-1]
					out = append(out, top)
				}
			}
			prevWasValue = true

		case TokMinus:
			if !prevWasValue {
				// unary: the zero goes straight to the output and the
				// minus is pushed without draining the stack, so the
				// pending operators keep the injected zero next to its
				// operand
				out = append(out, Token{Kind: TokNum, Val: new(big.Rat)})
			} else {
				ops = popWhile(ops, &out, tok)
			}
			ops = append(ops, tok)
			prevWasValue = false

		default: // + * / ^
			ops = popWhile(ops, &out, tok)
			ops = append(ops, tok)
			prevWasValue = false
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == TokLParen {
			return nil, fmt.Errorf("unbalanced parentheses")
		}
		out = append(out, top)
	}

	return out, nil
}

// popWhile drains higher-precedence operators to the output, stopping at an
// open parenthesis or a function identifier (functions stay glued to their
// argument).
func popWhile(ops []Token, out *[]Token, tok Token) []Token {
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.Kind == TokLParen {
			break
		}
		if top.Kind == TokIdent && isFunctionIdent(top.Name) {
			break
		}

		var mustPop bool
		if isRightAssociative(tok) {
			mustPop = precedence(top) > precedence(tok)
		} else {
			mustPop = precedence(top) >= precedence(tok)
		}
		if !mustPop {
			break
		}
		ops = ops[:len(ops)-1]
		*out = append(*out, top)
	}
	return ops
}

// FromPostfix builds the expression tree from a postfix token sequence.
// Binary operators pop two operands (order matters for Sub and Div), the
// four function identifiers pop one, and any other identifier becomes a
// Variable leaf. The ^ operator requires an integer-valued rational right
// operand that fits in an int64; anything else is a syntax error, never a
// silent truncation.
func FromPostfix(rpn []Token) (expr.Expr, error) {
	var st []expr.Expr

	pop := func() (expr.Expr, error) {
		if len(st) == 0 {
			return nil, fmt.Errorf("invalid expression")
		}
		v := st[len(st)-1]
		st = st[:len(st)-1]
		return v, nil
	}

	for _, tok := range rpn {
		switch tok.Kind {
		case TokNum:
			st = append(st, expr.FromRat(tok.Val))

		case TokPi:
			st = append(st, expr.Pi())

		case TokPlus, TokMinus, TokStar, TokSlash:
			b, err := pop()
			if err != nil {
				return nil, err
			}
			a, err := pop()
			if err != nil {
				return nil, err
			}
			switch tok.Kind {
			case TokPlus:
				st = append(st, expr.Add(a, b))
			case TokMinus:
				st = append(st, expr.Sub(a, b))
			case TokStar:
				st = append(st, expr.Mul(a, b))
			default:
				st = append(st, expr.Div(a, b))
			}

		case TokCaret:
			b, err := pop()
			if err != nil {
				return nil, err
			}
			a, err := pop()
			if err != nil {
				return nil, err
			}
			n, err := integerExponent(b)
			if err != nil {
				return nil, err
			}
			st = append(st, expr.NewPow(a, n))

		case TokIdent:
			if isFunctionIdent(tok.Name) {
				x, err := pop()
				if err != nil {
					return nil, fmt.Errorf("function %s missing its argument", tok.Name)
				}
				switch tok.Name {
				case "sqrt":
					st = append(st, expr.NewSqrt(x))
				case "sin":
					st = append(st, expr.NewTrig(expr.FnSin, x))
				case "cos":
					st = append(st, expr.NewTrig(expr.FnCos, x))
				default:
					st = append(st, expr.NewTrig(expr.FnTan, x))
				}
			} else {
				st = append(st, expr.Var(tok.Name))
			}

		default: // parentheses never survive shunting-yard
			return nil, fmt.Errorf("unexpected parenthesis in postfix sequence")
		}
	}

	if len(st) != 1 {
		return nil, fmt.Errorf("invalid expression")
	}
	return st[0], nil
}

// Parse is the convenience composition Tokenize → ToPostfix → FromPostfix.
func Parse(s string) (expr.Expr, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	rpn, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return FromPostfix(rpn)
}

func integerExponent(e expr.Expr) (int64, error) {
	r, ok := e.(*expr.Rational)
	if !ok || !r.Val.IsInt() {
		return 0, fmt.Errorf("exponent must be an integer")
	}
	if !r.Val.Num().IsInt64() {
		return 0, fmt.Errorf("exponent too large")
	}
	return r.Val.Num().Int64(), nil
}
