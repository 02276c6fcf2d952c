package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/qcalc/pkg/kernel"
)

func main() {
	cfg := kernel.DefaultConfig()
	verbose := false

	root := &cobra.Command{
		Use:   "qcalc [expression]",
		Short: "Exact expression calculator",
		Long: "qcalc evaluates arithmetic expressions exactly: rationals, π, square\n" +
			"roots and sin/cos/tan of special angles, with an optional decimal\n" +
			"reading to a chosen number of digits.\n\n" +
			"With an argument, the expression is evaluated and the process exits.\n" +
			"Without one, expressions are read line by line from stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger = newLogger(verbose)

			if len(args) == 1 {
				return evalOne(cfg, args[0], cmd.OutOrStdout())
			}
			return evalLines(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.Flags().IntVar(&cfg.Digits, "digits", cfg.Digits, "fractional digits in the decimal reading")
	root.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	root.Flags().BoolVar(&cfg.Trace, "trace", cfg.Trace, "include the derivation record")
	root.Flags().BoolVar(&verbose, "verbose", verbose, "debug logging to stderr")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func evalOne(cfg kernel.Config, input string, out io.Writer) error {
	res, err := kernel.Evaluate(cfg, input)
	if err != nil {
		return err
	}
	return writeResult(cfg, out, res)
}

// evalLines runs the interactive loop: one expression per line, blank lines
// skipped, errors reported without stopping the session.
func evalLines(cfg kernel.Config, in io.Reader, out, errOut io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		res, err := kernel.Evaluate(cfg, line)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		if err := writeResult(cfg, out, res); err != nil {
			return err
		}
	}
	return sc.Err()
}

func writeResult(cfg kernel.Config, out io.Writer, res kernel.Result) error {
	switch cfg.Format {
	case "json":
		return kernel.WriteJSON(out, res, cfg.Trace)
	default:
		kernel.WriteText(out, res, cfg.Trace)
		return nil
	}
}
