package expr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_RationalFolding(t *testing.T) {
	e := Simplify(Add(Rat(1, 2), Rat(1, 3)))
	assert.Equal(t, "R5/6", e.Key())

	e = Simplify(Mul(Rat(2, 3), Rat(3, 4)))
	assert.Equal(t, "R1/2", e.Key())

	e = Simplify(Sub(Rat(1, 2), Rat(3, 4)))
	assert.Equal(t, "R-1/4", e.Key())

	e = Simplify(Div(Rat(1, 2), Rat(1, 4)))
	assert.Equal(t, "R2/1", e.Key())
}

func TestSimplify_IdentityElements(t *testing.T) {
	x := Var("x")

	assert.Equal(t, "VAR(x)", Simplify(Add(Zero(), x)).Key())
	assert.Equal(t, "VAR(x)", Simplify(Add(x, Zero())).Key())
	assert.Equal(t, "VAR(x)", Simplify(Mul(One(), x)).Key())
	assert.Equal(t, "VAR(x)", Simplify(Mul(x, One())).Key())
	assert.Equal(t, "VAR(x)", Simplify(Div(x, One())).Key())
	assert.Equal(t, "R0/1", Simplify(Mul(Zero(), x)).Key())
}

func TestSimplify_SubtractionOfEqualTrees(t *testing.T) {
	lhs := Add(Var("x"), Pi())
	rhs := Add(Var("x"), Pi())
	assert.Equal(t, "R0/1", Simplify(Sub(lhs, rhs)).Key())
}

func TestSimplify_KeepsNegationShape(t *testing.T) {
	// 0 - b survives so sign extraction can find it later
	e := Simplify(Sub(Zero(), Pi()))
	assert.Equal(t, "SUB(R0/1,PI)", e.Key())
}

func TestSimplify_IndefiniteAbsorbs(t *testing.T) {
	cases := []Expr{
		Add(Indef(), One()),
		Sub(One(), Indef()),
		Mul(Indef(), Pi()),
		Div(One(), Indef()),
		NewSqrt(Indef()),
		NewPow(Indef(), 3),
		NewTrig(FnSin, Indef()),
	}
	for _, c := range cases {
		assert.Equal(t, "INDEF", Simplify(c).Key())
	}
}

func TestSimplify_SqrtExact(t *testing.T) {
	assert.Equal(t, "R3/1", Simplify(NewSqrt(Int(9))).Key())
	assert.Equal(t, "R3/2", Simplify(NewSqrt(Rat(9, 4))).Key())
	assert.Equal(t, "SQRT(R2/1)", Simplify(NewSqrt(Int(2))).Key())
	assert.Equal(t, "SQRT(R-1/1)", Simplify(NewSqrt(Int(-1))).Key())
}

func TestSimplify_SqrtProducts(t *testing.T) {
	sqrt2 := func() Expr { return NewSqrt(Int(2)) }

	// √2·√2 = 2
	assert.Equal(t, "R2/1", Simplify(Mul(sqrt2(), sqrt2())).Key())

	// √2·√8 = √16 = 4
	assert.Equal(t, "R4/1", Simplify(Mul(sqrt2(), NewSqrt(Int(8)))).Key())

	// √x·√x = x for any shared subtree
	x := Var("x")
	assert.Equal(t, "VAR(x)", Simplify(Mul(NewSqrt(x), NewSqrt(x))).Key())

	// (√2/2)·√2 = 1
	half := Div(sqrt2(), Int(2))
	assert.Equal(t, "R1/1", Simplify(Mul(half, sqrt2())).Key())

	// (√2/2)·(√2/2) = 1/2
	e := Simplify(Mul(Div(sqrt2(), Int(2)), Div(sqrt2(), Int(2))))
	assert.Equal(t, "R1/2", e.Key())
}

func TestSimplify_SqrtQuotients(t *testing.T) {
	// √8/√2 = √4 = 2
	e := Simplify(Div(NewSqrt(Int(8)), NewSqrt(Int(2))))
	assert.Equal(t, "R2/1", e.Key())

	// √2/√2 = 1
	e = Simplify(Div(NewSqrt(Int(2)), NewSqrt(Int(2))))
	assert.Equal(t, "R1/1", e.Key())

	// rationalized denominator: 1/√3 = (1/3)·√3
	e = Simplify(Div(One(), NewSqrt(Int(3))))
	assert.Equal(t, "MUL(R1/3,SQRT(R3/1))", e.Key())
}

func TestSimplify_DivisionByZeroStaysSymbolic(t *testing.T) {
	e := Simplify(Div(One(), Zero()))
	assert.Equal(t, "DIV(R1/1,R0/1)", e.Key())
}

func TestSimplify_IntPow(t *testing.T) {
	assert.Equal(t, "R1024/1", Simplify(NewPow(Int(2), 10)).Key())
	assert.Equal(t, "R1/4", Simplify(NewPow(Int(2), -2)).Key())
	assert.Equal(t, "R1/1", Simplify(NewPow(Var("x"), 0)).Key())
	assert.Equal(t, "POW(VAR(x),3)", Simplify(NewPow(Var("x"), 3)).Key())

	// 0 to a negative power is kept for the decimal stage to report
	assert.Equal(t, "POW(R0/1,-1)", Simplify(NewPow(Zero(), -1)).Key())
}

func TestSimplify_HugeExponentStaysSymbolic(t *testing.T) {
	e := Simplify(NewPow(Int(2), 100000))
	assert.Equal(t, "POW(R2/1,100000)", e.Key())
}

func TestCoeffPiExt_SimpleShapes(t *testing.T) {
	c, ok := CoeffPiExt(Pi())
	require.True(t, ok)
	assert.Equal(t, "1", c.RatString())

	c, ok = CoeffPiExt(Mul(Rat(3, 4), Pi()))
	require.True(t, ok)
	assert.Equal(t, "3/4", c.RatString())

	c, ok = CoeffPiExt(Div(Pi(), Int(2)))
	require.True(t, ok)
	assert.Equal(t, "1/2", c.RatString())

	c, ok = CoeffPiExt(Sub(Zero(), Pi()))
	require.True(t, ok)
	assert.Equal(t, "-1", c.RatString())

	c, ok = CoeffPiExt(Zero())
	require.True(t, ok)
	assert.Equal(t, "0", c.RatString())

	_, ok = CoeffPiExt(Add(Pi(), One()))
	assert.False(t, ok)

	_, ok = CoeffPiExt(Mul(Pi(), Pi()))
	assert.False(t, ok)
}

func TestCoeffPiExt_Sums(t *testing.T) {
	// π/4 + π/2 = 3π/4
	e := Add(Div(Pi(), Int(4)), Div(Pi(), Int(2)))
	c, ok := CoeffPiExt(e)
	require.True(t, ok)
	assert.Equal(t, "3/4", c.RatString())

	// 2π − π/2 = 3π/2
	e = Sub(Mul(Int(2), Pi()), Div(Pi(), Int(2)))
	c, ok = CoeffPiExt(e)
	require.True(t, ok)
	assert.Equal(t, "3/2", c.RatString())

	_, ok = CoeffPiExt(Add(Pi(), Var("x")))
	assert.False(t, ok)
}

func TestModRational(t *testing.T) {
	mod := func(n, d, period int64) string {
		return ModRational(big.NewRat(n, d), period).RatString()
	}

	assert.Equal(t, "1/4", mod(9, 4, 2))
	assert.Equal(t, "7/4", mod(-1, 4, 2))
	assert.Equal(t, "0", mod(4, 1, 2))
	assert.Equal(t, "1/4", mod(5, 4, 1))
}

func TestScoreOrdering(t *testing.T) {
	small := ScoreOf(Pi())
	large := ScoreOf(Add(Pi(), Mul(Int(2), Var("x"))))

	assert.True(t, small.Less(large))
	assert.True(t, small.LessEq(small))
	assert.False(t, large.LessEq(small))
}

func TestContainsVariable(t *testing.T) {
	assert.True(t, ContainsVariable(Add(One(), Mul(Pi(), Var("x")))))
	assert.False(t, ContainsVariable(Add(One(), Mul(Pi(), NewSqrt(Int(2))))))
}

func TestEqualIsStructural(t *testing.T) {
	assert.True(t, Equal(Add(One(), Pi()), Add(One(), Pi())))
	assert.False(t, Equal(Add(One(), Pi()), Add(Pi(), One())))
}
