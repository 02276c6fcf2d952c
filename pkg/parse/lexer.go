package parse

import (
	"fmt"
	"math/big"
	"strings"
)

// Tokenize scans an expression string into tokens. Supported syntax:
// integers, literal fractions written without spaces (12/34), the operators
// + - * / ^, parentheses, π (also "pi", case-insensitive), √ (alias for
// sqrt), and ASCII identifiers [A-Za-z_][A-Za-z0-9_]* which are lower-cased
// and kept opaque; the parser decides later whether an identifier names a
// function or a free variable. Whitespace is skipped and never emits a
// token. A zero denominator in a literal fraction is a lexical error.
func Tokenize(s string) ([]Token, error) {
	var out []Token
	chars := []rune(s)
	i := 0

	for i < len(chars) {
		c := chars[i]

		if isSpace(c) {
			i++
			continue
		}

		switch c {
		case '(':
			out = append(out, Token{Kind: TokLParen})
			i++
			continue
		case ')':
			out = append(out, Token{Kind: TokRParen})
			i++
			continue
		case '+':
			out = append(out, Token{Kind: TokPlus})
			i++
			continue
		case '-':
			out = append(out, Token{Kind: TokMinus})
			i++
			continue
		case '*':
			out = append(out, Token{Kind: TokStar})
			i++
			continue
		case '/':
			out = append(out, Token{Kind: TokSlash})
			i++
			continue
		case '^':
			out = append(out, Token{Kind: TokCaret})
			i++
			continue
		case 'π':
			out = append(out, Token{Kind: TokPi})
			i++
			continue
		case '√':
			out = append(out, Token{Kind: TokIdent, Name: "sqrt"})
			i++
			continue
		}

		// identifiers (and the word "pi")
		if isIdentStart(c) {
			start := i
			i++
			for i < len(chars) && isIdentPart(chars[i]) {
				i++
			}
			word := strings.ToLower(string(chars[start:i]))
			if word == "pi" {
				out = append(out, Token{Kind: TokPi})
			} else {
				out = append(out, Token{Kind: TokIdent, Name: word})
			}
			continue
		}

		// integer, or a literal fraction a/b with no intervening spaces
		if isDigit(c) {
			start := i
			for i < len(chars) && isDigit(chars[i]) {
				i++
			}
			num, ok := new(big.Int).SetString(string(chars[start:i]), 10)
			if !ok {
				return nil, fmt.Errorf("invalid number %q", string(chars[start:i]))
			}

			rat := new(big.Rat).SetInt(num)

			if i < len(chars) && chars[i] == '/' {
				// only a fraction if a digit follows immediately,
				// otherwise the slash is the division operator
				if i+1 < len(chars) && isDigit(chars[i+1]) {
					i++
					startD := i
					for i < len(chars) && isDigit(chars[i]) {
						i++
					}
					den, ok := new(big.Int).SetString(string(chars[startD:i]), 10)
					if !ok {
						return nil, fmt.Errorf("invalid denominator %q", string(chars[startD:i]))
					}
					if den.Sign() == 0 {
						return nil, fmt.Errorf("zero denominator in fraction literal")
					}
					rat.SetFrac(num, den)
				}
			}

			out = append(out, Token{Kind: TokNum, Val: rat})
			continue
		}

		return nil, fmt.Errorf("unexpected character %q", string(c))
	}

	return out, nil
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
