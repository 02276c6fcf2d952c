// Package parse turns raw input text into an exact expression tree: a lexer
// producing rational-aware tokens, a shunting-yard conversion to postfix
// order, and a postfix-to-tree builder.
package parse

import (
	"math/big"
	"strings"
)

// TokenKind tags a lexed token.
type TokenKind int

const (
	TokNum TokenKind = iota // arbitrary-precision rational literal
	TokPi
	TokIdent // function name or free variable, lower-cased
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokCaret
	TokLParen
	TokRParen
)

// Token is one lexed unit. Val is set for TokNum, Name for TokIdent.
type Token struct {
	Kind TokenKind
	Val  *big.Rat
	Name string
}

func (t Token) String() string {
	switch t.Kind {
	case TokNum:
		return formatRat(t.Val)
	case TokPi:
		return "π"
	case TokIdent:
		return t.Name
	case TokPlus:
		return "+"
	case TokMinus:
		return "-"
	case TokStar:
		return "*"
	case TokSlash:
		return "/"
	case TokCaret:
		return "^"
	case TokLParen:
		return "("
	default:
		return ")"
	}
}

// FormatTokens renders a token sequence as a space-separated dump for the
// derivation record.
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.Num().String() + "/" + r.Denom().String()
}
