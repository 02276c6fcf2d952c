package decimal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

func TestEvaluate_Rationals(t *testing.T) {
	out, err := Evaluate(expr.Rat(1, 2), 4)
	require.NoError(t, err)
	assert.Equal(t, "0.5000", out)

	// truncation toward zero, not rounding
	out, err = Evaluate(expr.Rat(2, 3), 4)
	require.NoError(t, err)
	assert.Equal(t, "0.6666", out)

	out, err = Evaluate(expr.Rat(-1, 3), 5)
	require.NoError(t, err)
	assert.Equal(t, "-0.33333", out)
}

func TestEvaluate_ZeroDigits(t *testing.T) {
	out, err := Evaluate(expr.Rat(7, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestEvaluate_Pi(t *testing.T) {
	out, err := Evaluate(expr.Pi(), 20)
	require.NoError(t, err)
	assert.Equal(t, "3.14159265358979323846", out)

	out, err = Evaluate(expr.Pi(), 0)
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestEvaluate_Sqrt(t *testing.T) {
	out, err := Evaluate(expr.NewSqrt(expr.Int(2)), 20)
	require.NoError(t, err)
	assert.Equal(t, "1.41421356237309504880", out)

	out, err = Evaluate(expr.NewSqrt(expr.Rat(1, 4)), 1)
	require.NoError(t, err)
	assert.Equal(t, "0.5", out)

	_, err = Evaluate(expr.NewSqrt(expr.Int(-1)), 4)
	require.Error(t, err)
}

func TestEvaluate_HalfSqrtTwo(t *testing.T) {
	e := expr.Div(expr.NewSqrt(expr.Int(2)), expr.Int(2))
	out, err := Evaluate(e, 20)
	require.NoError(t, err)
	assert.Equal(t, "0.70710678118654752440", out)
}

func TestEvaluate_Arithmetic(t *testing.T) {
	// 1/2 + 1/3 = 5/6
	e := expr.Add(expr.Rat(1, 2), expr.Rat(1, 3))
	out, err := Evaluate(e, 6)
	require.NoError(t, err)
	assert.Equal(t, "0.833333", out)

	// (3/2)^2 = 9/4
	out, err = Evaluate(expr.NewPow(expr.Rat(3, 2), 2), 2)
	require.NoError(t, err)
	assert.Equal(t, "2.25", out)
}

func TestEvaluate_HugeExponentRejected(t *testing.T) {
	// exponents past the fold ceiling must error out immediately instead
	// of grinding through big.Int.Exp
	_, err := Evaluate(expr.NewPow(expr.Int(2), 1<<40), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exponent too large")

	_, err = Evaluate(expr.NewPow(expr.Int(2), -(1 << 40)), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exponent too large")

	// the ceiling itself is still evaluable
	_, err = Evaluate(expr.NewPow(expr.Int(2), 4096), 0)
	require.NoError(t, err)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate(expr.Div(expr.One(), expr.Zero()), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEvaluate_Unevaluable(t *testing.T) {
	_, err := Evaluate(expr.Var("x"), 4)
	require.Error(t, err)

	_, err = Evaluate(expr.Indef(), 4)
	require.Error(t, err)

	_, err = Evaluate(expr.NewTrig(expr.FnSin, expr.One()), 4)
	require.Error(t, err)
}

func TestPiScaled_ConcurrentCallersAgree(t *testing.T) {
	want := PiScaled(50).String()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, PiScaled(50).String())
		}()
	}
	wg.Wait()
}

func TestPiScaled_GuardDigitsHoldUp(t *testing.T) {
	// the 50-digit value must be a prefix-consistent extension of the
	// 10-digit one
	long := PiScaled(50).String()
	short := PiScaled(10).String()
	assert.Equal(t, short, long[:len(short)])
}
