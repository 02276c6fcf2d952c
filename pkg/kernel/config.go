package kernel

import (
	"log/slog"
)

// Digit bounds for the decimal reading. Requests outside the range are
// clamped, never rejected.
const (
	MinDigits = 0
	MaxDigits = 200
)

// Config holds all parameters for one evaluation.
type Config struct {
	Digits int    // fractional digits in the decimal reading
	Format string // "text" or "json"
	Trace  bool   // include the derivation record in the output
	Logger *slog.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Digits: 12,
		Format: "text",
		Trace:  false,
		Logger: slog.Default(),
	}
}

// clampDigits pins a requested digit count into [MinDigits, MaxDigits].
func clampDigits(n int) int {
	if n < MinDigits {
		return MinDigits
	}
	if n > MaxDigits {
		return MaxDigits
	}
	return n
}
