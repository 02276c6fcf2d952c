package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanon_TermOrder(t *testing.T) {
	// rationals sort before π, names break ties
	e := Canon(Add(Pi(), One()))
	assert.Equal(t, "ADD(R1/1,PI)", e.Key())

	e = Canon(Add(Var("y"), Var("x")))
	assert.Equal(t, "ADD(VAR(x),VAR(y))", e.Key())
}

func TestCanon_CommutedInputsCoincide(t *testing.T) {
	a := Canon(Add(Var("x"), Mul(Int(2), Pi())))
	b := Canon(Add(Mul(Pi(), Int(2)), Var("x")))
	assert.Equal(t, a.Key(), b.Key())
}

func TestCanon_FoldsRationalTerms(t *testing.T) {
	// 1 + x + 2 collapses the literals into one term
	e := Canon(Add(Add(One(), Var("x")), Int(2)))
	assert.Equal(t, "ADD(R3/1,VAR(x))", e.Key())

	// terms cancelling to zero drop out entirely
	e = Canon(Add(Sub(One(), One()), Var("x")))
	assert.Equal(t, "VAR(x)", e.Key())
}

func TestCanon_NegativeTermsRebuildAsSub(t *testing.T) {
	e := Canon(Sub(One(), Var("x")))
	assert.Equal(t, "SUB(R1/1,VAR(x))", e.Key())
}

func TestCanon_CoefficientExtraction(t *testing.T) {
	// π·2 normalizes to 2·π
	e := Canon(Mul(Pi(), Int(2)))
	assert.Equal(t, "MUL(R2/1,PI)", e.Key())

	// signs aggregate across factors: (−2)·(−x)·3 = 6·x
	e = Canon(Mul(Mul(Int(-2), Sub(Zero(), Var("x"))), Int(3)))
	assert.Equal(t, "MUL(R6/1,VAR(x))", e.Key())
}

func TestCanon_ZeroAnnihilatesProduct(t *testing.T) {
	e := Canon(Mul(Var("x"), Zero()))
	assert.Equal(t, "R0/1", e.Key())
}

func TestCanon_DenominatorSignHoisted(t *testing.T) {
	e := Canon(Div(Var("x"), Int(-2)))
	assert.Equal(t, "DIV(SUB(R0/1,VAR(x)),R2/1)", e.Key())
}

func TestCanon_SquareFreeExtraction(t *testing.T) {
	assert.Equal(t, "R3/1", Canon(NewSqrt(Int(9))).Key())
	assert.Equal(t, "MUL(R2/1,SQRT(R2/1))", Canon(NewSqrt(Int(8))).Key())
	assert.Equal(t, "MUL(R2/1,SQRT(R3/1))", Canon(NewSqrt(Int(12))).Key())
	assert.Equal(t, "SQRT(R2/1)", Canon(NewSqrt(Int(2))).Key())
	assert.Equal(t, "R0/1", Canon(NewSqrt(Zero())).Key())
}

func TestCanon_Idempotent(t *testing.T) {
	inputs := []Expr{
		Add(Pi(), Add(Var("x"), Int(3))),
		Mul(Pi(), Mul(Int(2), NewSqrt(Int(8)))),
		Sub(One(), Div(Var("x"), Int(-2))),
		NewTrig(FnSin, Div(Pi(), Int(4))),
	}
	for _, in := range inputs {
		once := Canon(in)
		twice := Canon(once)
		assert.Equal(t, once.Key(), twice.Key())
	}
}

func TestCanon_IndefinitePropagates(t *testing.T) {
	assert.Equal(t, "INDEF", Canon(Mul(Var("x"), Indef())).Key())
	assert.Equal(t, "INDEF", Canon(Div(Indef(), Int(2))).Key())
}
