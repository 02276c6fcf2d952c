package expr

import "math/big"

func (r *Rational) Clone() Expr {
	return &Rational{Val: new(big.Rat).Set(r.Val)}
}

func (*PiConst) Clone() Expr {
	return &PiConst{}
}

func (*Indefinite) Clone() Expr {
	return &Indefinite{}
}

func (v *Variable) Clone() Expr {
	return &Variable{Name: v.Name}
}

func (s *Sqrt) Clone() Expr {
	return &Sqrt{Child: s.Child.Clone()}
}

func (p *IntPow) Clone() Expr {
	return &IntPow{Base: p.Base.Clone(), Exp: p.Exp}
}

func (t *Trig) Clone() Expr {
	return &Trig{Fn: t.Fn, Arg: t.Arg.Clone()}
}

func (b *Binary) Clone() Expr {
	return &Binary{Op: b.Op, Left: b.Left.Clone(), Right: b.Right.Clone()}
}
