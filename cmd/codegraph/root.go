// Package main is the CLI front door: a small cobra command that drives
// codegraph.Pipeline.Analyze over a directory and renders the result with
// one of examplesink/formatters. It exists so the core library has a
// runnable entry point and an end-to-end smoke test.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via build-time ldflags, mirroring cmd/root.go.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "codegraph",
	Short: "Build a typed, cross-referenced code graph for Kotlin/Java/TypeScript/JavaScript.",
	Long: `codegraph parses a Kotlin/Java/TypeScript/JavaScript source tree into a
typed, cross-referenced graph of packages, types, functions, and properties,
and their DECLARES/EXTENDS/IMPLEMENTS/CALLS/USES edges.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
