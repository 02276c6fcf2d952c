package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/qcalc/pkg/expr"
)

func mustParse(t *testing.T, input string) expr.Expr {
	t.Helper()
	e, err := Parse(input)
	require.NoError(t, err, "input %q", input)
	return e
}

func TestTokenize_Basics(t *testing.T) {
	tokens, err := Tokenize("1 + 2*3")
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 * 3", FormatTokens(tokens))
}

func TestTokenize_FractionLiteral(t *testing.T) {
	tokens, err := Tokenize("12/34")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "6/17", tokens[0].String())
}

func TestTokenize_SlashWithSpacesIsDivision(t *testing.T) {
	tokens, err := Tokenize("12 / 34")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokSlash, tokens[1].Kind)
}

func TestTokenize_ZeroDenominator(t *testing.T) {
	_, err := Tokenize("3/0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero denominator")
}

func TestTokenize_PiSpellings(t *testing.T) {
	for _, input := range []string{"pi", "PI", "Pi", "π"} {
		tokens, err := Tokenize(input)
		require.NoError(t, err, "input %q", input)
		require.Len(t, tokens, 1)
		assert.Equal(t, TokPi, tokens[0].Kind, "input %q", input)
	}
}

func TestTokenize_SqrtGlyph(t *testing.T) {
	tokens, err := Tokenize("√2")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokIdent, tokens[0].Kind)
	assert.Equal(t, "sqrt", tokens[0].Name)
}

func TestTokenize_IdentifiersLowerCased(t *testing.T) {
	tokens, err := Tokenize("SIN(X)")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "sin", tokens[0].Name)
	assert.Equal(t, "x", tokens[2].Name)
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 # 2")
	require.Error(t, err)
}

func TestParse_Precedence(t *testing.T) {
	e := mustParse(t, "1 + 2 * 3")
	assert.Equal(t, "ADD(R1/1,MUL(R2/1,R3/1))", e.Key())
}

func TestParse_Parentheses(t *testing.T) {
	e := mustParse(t, "(1 + 2) * 3")
	assert.Equal(t, "MUL(ADD(R1/1,R2/1),R3/1)", e.Key())
}

func TestParse_Power(t *testing.T) {
	e := mustParse(t, "2 ^ 10")
	assert.Equal(t, "POW(R2/1,10)", e.Key())

	// ^ groups to the right, so the outer exponent is 3^2 rather than a
	// literal integer and the parse is rejected
	_, err := Parse("2 ^ 3 ^ 2")
	require.Error(t, err)
}

func TestParse_UnaryMinus(t *testing.T) {
	e := mustParse(t, "-x")
	assert.Equal(t, "SUB(R0/1,VAR(x))", e.Key())

	e = mustParse(t, "3 * -2")
	assert.Equal(t, "MUL(R3/1,SUB(R0/1,R2/1))", e.Key())
}

func TestParse_Functions(t *testing.T) {
	e := mustParse(t, "sin(pi/4)")
	assert.Equal(t, "SIN(DIV(PI,R4/1))", e.Key())

	e = mustParse(t, "sqrt(2)")
	assert.Equal(t, "SQRT(R2/1)", e.Key())
}

func TestParse_UnknownIdentIsVariable(t *testing.T) {
	e := mustParse(t, "x + 1/2")
	assert.Equal(t, "ADD(VAR(x),R1/2)", e.Key())
}

func TestParse_UnbalancedParens(t *testing.T) {
	_, err := Parse("(1 + 2")
	require.Error(t, err)

	_, err = Parse("1 + 2)")
	require.Error(t, err)
}

func TestParse_NonIntegerExponent(t *testing.T) {
	_, err := Parse("2 ^ (1/2)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "integer")
}

func TestParse_ExponentOnExpression(t *testing.T) {
	_, err := Parse("2 ^ x")
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}
