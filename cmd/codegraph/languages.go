package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crosslang/codegraph/codegraph"
	"github.com/crosslang/codegraph/internal/langspec"
)

var languagesCmd = newLanguagesCommand()

// newLanguagesCommand lists the registered parsers and their maturity,
// adapted from cmd/languages/languages_cmd.go's tabwriter-and-legend shape.
func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List all supported languages and file extensions",
		RunE:  runLanguages,
	}
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	pipeline := codegraph.New(".", codegraph.DefaultOptions())

	fmt.Fprintln(cmd.OutOrStdout())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, lang := range pipeline.Registry().Languages() {
		spec, _ := langspec.For(lang.Name())
		fmt.Fprintf(w, "%s %s\t%s\n", spec.Maturity.Symbol(), lang.Name(), strings.Join(lang.Extensions(), ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "----------------------------------------------------")
	var legend []string
	for _, level := range langspec.MaturityLevels() {
		legend = append(legend, fmt.Sprintf("%s %s", level.Symbol(), level.DisplayName()))
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(legend, "  "))
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
