package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crosslang/codegraph/codegraph"
	"github.com/crosslang/codegraph/examplesink"
	"github.com/crosslang/codegraph/examplesink/formatters"
)

type graphOptions struct {
	outputFormat string
	label        string
	output       string
	excludeDirs  []string
}

var graphCmd = newGraphCommand()

// newGraphCommand builds the `graph` subcommand, adapted from
// cmd/show/show_cmd.go's flag layout (--format/--repo/--label) down to the
// handful of knobs codegraph.Options and examplesink/formatters expose.
func newGraphCommand() *cobra.Command {
	opts := &graphOptions{outputFormat: formatters.OutputFormatDOT.String()}

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Analyze a source tree and print its code graph",
		Long:  `Parse a Kotlin/Java/TypeScript/JavaScript source tree at path (default: current directory) and print its code graph in the chosen format.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runGraph(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (dot, mermaid, json)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Optional title embedded in the rendered graph")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude-dir", nil, "Additional directory names to exclude (comma-separated)")

	return cmd
}

func runGraph(cmd *cobra.Command, root string, opts *graphOptions) error {
	format, ok := formatters.ParseOutputFormat(opts.outputFormat)
	if !ok {
		return fmt.Errorf("unknown format %q (want dot, mermaid, or json)", opts.outputFormat)
	}

	options := codegraph.DefaultOptions()
	options.ExcludedDirectories = opts.excludeDirs

	pipeline := codegraph.New(root, options)
	result, err := pipeline.AnalyzeDir(context.Background(), root)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", root, err)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}

	sink := examplesink.New()
	if err := sink.Write(result); err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	output, err := formatters.New(format).Format(sink, formatters.RenderOptions{Label: opts.label})
	if err != nil {
		return fmt.Errorf("format graph: %w", err)
	}

	if opts.output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
		return err
	}
	return os.WriteFile(opts.output, []byte(output+"\n"), 0o644)
}
