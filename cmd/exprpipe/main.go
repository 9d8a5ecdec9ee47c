// Command exprpipe is a thin, non-interactive driver exercising
// analyze.Analyze (SPEC_FULL.md §5). It exists only to give the cobra
// dependency a genuine caller of the stable external interface; console
// formatting, file output, graph rendering and a REPL are explicitly
// out of scope (spec.md §1) and live outside this module.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Andrew1407/expression-parser/analyze"
	"github.com/Andrew1407/expression-parser/calibration"
)

func main() {
	var layers int
	var profilePath string

	root := &cobra.Command{
		Use:           "exprpipe <expression>",
		Short:         "Analyze a scalar arithmetic expression on a pipelined conveyor model",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if layers < 1 {
				return fmt.Errorf("--layers must be positive, got %d", layers)
			}

			opts := []analyze.Option{analyze.WithLayers(layers)}
			if profilePath != "" {
				profile, err := loadProfile(profilePath)
				if err != nil {
					return err
				}
				opts = append(opts, analyze.WithProfile(profile))
			}
			result := analyze.Analyze(args[0], opts...)

			if len(result.Diagnostics) > 0 {
				for _, d := range result.Diagnostics {
					fmt.Fprintln(cmd.ErrOrStderr(), d.String())
				}
				return fmt.Errorf("lexical errors found, refusing to parse")
			}
			if result.ParseError != nil {
				if result.Suggestion != "" {
					return fmt.Errorf("%s (did you mean %q?)", result.ParseError.Error(), result.Suggestion)
				}
				return result.ParseError
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tokens: %d\n", len(result.Tokens))
			fmt.Fprintf(cmd.OutOrStdout(), "tree: %+v\n", result.Tree)
			for _, v := range result.Variants {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %+v\n", v.Kind, v.Simulation)
			}
			return nil
		},
	}
	root.Flags().IntVar(&layers, "layers", 4, "number of parallel pipeline layers")
	root.Flags().StringVar(&profilePath, "profile", "", "path to a JSON tact-cost calibration profile (default: calibration.Default)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadProfile reads and schema-validates a calibration.Profile document from
// path. This is the production entry point for the "configurable tact
// table" spec.md §4.5 asks for: a profile is schema-validated wherever it's
// loaded, not only in calibration's own tests.
func loadProfile(path string) (calibration.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calibration.Profile{}, fmt.Errorf("reading calibration profile %q: %w", path, err)
	}
	profile, err := calibration.Validate(data)
	if err != nil {
		return calibration.Profile{}, fmt.Errorf("validating calibration profile %q: %w", path, err)
	}
	return profile, nil
}
