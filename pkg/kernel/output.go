package kernel

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteText writes a result in human-readable format. With trace enabled the
// derivation record follows the readings.
func WriteText(w io.Writer, r Result, trace bool) {
	fmt.Fprintf(w, "exact:   %s\n", r.Exact)
	if r.HasDecimal {
		fmt.Fprintf(w, "decimal: %s\n", r.Decimal)
	}
	if trace && r.Derivation != nil {
		WriteDerivation(w, *r.Derivation)
	}
}

// WriteDerivation writes the derivation record in human-readable format.
func WriteDerivation(w io.Writer, d Derivation) {
	fmt.Fprintln(w, "--- derivation ---")
	fmt.Fprintf(w, "tokens: %s\n", d.Tokens)
	fmt.Fprintf(w, "rpn:    %s\n", d.RPN)
	fmt.Fprintf(w, "before: %s\n", d.Before)
	fmt.Fprintf(w, "after:  %s\n", d.After)
	fmt.Fprintf(w, "note:   %s\n", d.Note)
	if d.Proof != "" {
		fmt.Fprintf(w, "proof:\n%s\n", indent(d.Proof, "  "))
	}
}

// WriteJSON writes a result as indented JSON. Without trace the derivation
// record is omitted from the document.
func WriteJSON(w io.Writer, r Result, trace bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if !trace {
		r.Derivation = nil
	}
	return enc.Encode(r)
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
