// Package kernel wires the evaluation stages into one pipeline: lexing,
// parsing, local simplification, special-angle resolution, identity
// rewriting, canonicalization, exact rendering and the optional decimal
// reading. The same input always takes the same path and produces the same
// pair of readings.
package kernel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/wildfunctions/qcalc/pkg/decimal"
	"github.com/wildfunctions/qcalc/pkg/expr"
	"github.com/wildfunctions/qcalc/pkg/format"
	"github.com/wildfunctions/qcalc/pkg/parse"
	"github.com/wildfunctions/qcalc/pkg/trig"
)

// pipelineNote is the fixed description of the stage order recorded in every
// derivation.
const pipelineNote = "tokens → postfix → tree → simplify → special angles → identities → canonical form"

// Derivation records how a result was obtained, for tracing and debugging.
type Derivation struct {
	Tokens string `json:"tokens"`
	RPN    string `json:"rpn"`
	Before string `json:"before"` // tree as parsed, pretty-printed
	After  string `json:"after"`  // canonical tree, pretty-printed
	Note   string `json:"note"`
	Proof  string `json:"proof,omitempty"` // one line per resolved special angle
}

// Result is the outcome of one evaluation: the exact reading, and a decimal
// reading when the value is fully determined (no free variables, not
// indefinite).
type Result struct {
	Input      string      `json:"input"`
	Exact      string      `json:"exact"`
	Decimal    string      `json:"decimal,omitempty"`
	HasDecimal bool        `json:"has_decimal"`
	Derivation *Derivation `json:"derivation,omitempty"`
}

// Evaluate runs the full pipeline on one input line.
func Evaluate(cfg Config, input string) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	digits := clampDigits(cfg.Digits)

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{}, fmt.Errorf("empty expression")
	}

	tokens, err := parse.Tokenize(trimmed)
	if err != nil {
		return Result{}, fmt.Errorf("lexing %q: %w", trimmed, err)
	}

	rpn, err := parse.ToPostfix(tokens)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %q: %w", trimmed, err)
	}

	tree, err := parse.FromPostfix(rpn)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %q: %w", trimmed, err)
	}
	parsed := tree.Clone()

	tree = expr.Simplify(tree)

	tree, proof := trig.Resolve(tree)
	tree = expr.Simplify(tree)

	tree = trig.ApplyIdentities(tree)
	tree = expr.Simplify(tree)

	tree = expr.Canon(tree)

	exact := format.Exact(tree)
	log.Debug("exact reading ready", "input", trimmed, "exact", exact)

	res := Result{
		Input: trimmed,
		Exact: exact,
		Derivation: &Derivation{
			Tokens: parse.FormatTokens(tokens),
			RPN:    parse.FormatTokens(rpn),
			Before: format.Pretty(parsed),
			After:  format.Pretty(tree),
			Note:   pipelineNote,
			Proof:  proof,
		},
	}

	if expr.IsIndef(tree) || expr.ContainsVariable(tree) {
		log.Debug("decimal reading skipped", "input", trimmed)
		return res, nil
	}

	// only Indefinite results and free variables legitimately withhold
	// the decimal reading; anything else the decimal stage refuses is a
	// failure of the whole call
	dec, err := decimal.Evaluate(tree, digits)
	if err != nil {
		return Result{}, fmt.Errorf("evaluating %q: %w", trimmed, err)
	}

	res.Decimal = dec
	res.HasDecimal = true
	return res, nil
}
