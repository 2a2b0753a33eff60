// Package formatters renders an examplesink.Sink's graph as text, adapted
// from cmd/graph/formatters' Formatter/OutputFormat split. Node coloring
// there keyed off file extension and git stats; here it keys off
// NodeKind/EdgeKind since the sink graph has no file-level concept.
package formatters

import "github.com/crosslang/codegraph/examplesink"

// RenderOptions carries optional formatting knobs, mirroring
// cmd/graph/formatters.FormatOptions without the file-stats field this
// graph has no use for.
type RenderOptions struct {
	// Label is an optional title for the rendered graph.
	Label string
}

// Formatter renders a Sink's graph to a textual representation.
type Formatter interface {
	Format(s *examplesink.Sink, opts RenderOptions) (string, error)
}

// OutputFormat is the closed set of formats cmd/codegraph's `graph`
// subcommand accepts for --format.
type OutputFormat int

const (
	OutputFormatDOT OutputFormat = iota
	OutputFormatMermaid
	OutputFormatJSON
)

func (f OutputFormat) String() string {
	switch f {
	case OutputFormatDOT:
		return "dot"
	case OutputFormatMermaid:
		return "mermaid"
	case OutputFormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch s {
	case "dot":
		return OutputFormatDOT, true
	case "mermaid":
		return OutputFormatMermaid, true
	case "json":
		return OutputFormatJSON, true
	default:
		return OutputFormatDOT, false
	}
}

// New returns the Formatter for format.
func New(format OutputFormat) Formatter {
	switch format {
	case OutputFormatMermaid:
		return mermaidFormatter{}
	case OutputFormatJSON:
		return jsonFormatter{}
	default:
		return dotFormatter{}
	}
}
