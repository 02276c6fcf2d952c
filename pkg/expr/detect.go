package expr

// ContainsVariable reports whether any Variable leaf exists in the tree.
// The walk is iterative with hard bounds on visited nodes and stack depth;
// exceeding either bound answers true, which fails safe toward blocking the
// decimal reading instead of risking unbounded work.
func ContainsVariable(e Expr) bool {
	stack := make([]Expr, 0, 64)
	stack = append(stack, e)

	visited := 0
	for len(stack) > 0 {
		visited++
		if visited > maxWalkNodes || len(stack) > maxWalkStack {
			return true
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := cur.(type) {
		case *Variable:
			return true
		case *Rational, *PiConst, *Indefinite:
		case *Sqrt:
			stack = append(stack, n.Child)
		case *IntPow:
			stack = append(stack, n.Base)
		case *Trig:
			stack = append(stack, n.Arg)
		case *Binary:
			stack = append(stack, n.Left, n.Right)
		}
	}
	return false
}
