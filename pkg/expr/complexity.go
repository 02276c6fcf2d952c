package expr

func (*Rational) NodeCount() int   { return 1 }
func (*PiConst) NodeCount() int    { return 1 }
func (*Indefinite) NodeCount() int { return 1 }
func (*Variable) NodeCount() int   { return 1 }
func (s *Sqrt) NodeCount() int     { return 1 + s.Child.NodeCount() }
func (p *IntPow) NodeCount() int   { return 1 + p.Base.NodeCount() }
func (t *Trig) NodeCount() int     { return 1 + t.Arg.NodeCount() }
func (b *Binary) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

func (*Rational) Depth() int   { return 1 }
func (*PiConst) Depth() int    { return 1 }
func (*Indefinite) Depth() int { return 1 }
func (*Variable) Depth() int   { return 1 }
func (s *Sqrt) Depth() int     { return 1 + s.Child.Depth() }
func (p *IntPow) Depth() int   { return 1 + p.Base.Depth() }
func (t *Trig) Depth() int     { return 1 + t.Arg.Depth() }
func (b *Binary) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// Score is the anti-divergence complexity measure used by the identity
// rewriter: node count first, tree depth as tie break.
type Score struct {
	Nodes int
	Depth int
}

// ScoreOf measures e.
func ScoreOf(e Expr) Score {
	return Score{Nodes: e.NodeCount(), Depth: e.Depth()}
}

// Less compares lexicographically.
func (s Score) Less(t Score) bool {
	if s.Nodes != t.Nodes {
		return s.Nodes < t.Nodes
	}
	return s.Depth < t.Depth
}

// LessEq compares lexicographically.
func (s Score) LessEq(t Score) bool {
	return !t.Less(s)
}
