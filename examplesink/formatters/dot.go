package formatters

import (
	"fmt"
	"strings"

	"github.com/crosslang/codegraph/examplesink"
)

type dotFormatter struct{}

// Format renders the sink's graph as Graphviz DOT, adapted from
// cmd/graph/formatters/dot's extension-based coloring: here fill color
// keys off NodeKind and edge style keys off EdgeKind instead.
func (dotFormatter) Format(s *examplesink.Sink, opts RenderOptions) (string, error) {
	nodes, err := s.Vertices()
	if err != nil {
		return "", err
	}
	edges, err := s.Edges()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("digraph codegraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, n := range nodes {
		sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=%s];\n", n.FQN, n.Name, nodeColor(n.Kind)))
	}
	if len(nodes) > 0 && len(edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range edges {
		attrs := edgeAttrs(e.Kind)
		sb.WriteString(fmt.Sprintf("  %q -> %q [%s];\n", e.From, e.To, attrs))
	}

	sb.WriteString("}")
	return sb.String(), nil
}

func nodeColor(kind examplesink.NodeKind) string {
	switch kind {
	case examplesink.NodeKindPackage:
		return "lightyellow"
	case examplesink.NodeKindType:
		return "lightblue"
	case examplesink.NodeKindProperty:
		return "lavender"
	default:
		return "white"
	}
}

func edgeAttrs(kind examplesink.EdgeKind) string {
	switch kind {
	case examplesink.EdgeKindExtends:
		return `label="extends", color=blue, penwidth=2`
	case examplesink.EdgeKindImplements:
		return `label="implements", color=blue, style=dashed`
	case examplesink.EdgeKindCalls:
		return `label="calls", color=black`
	case examplesink.EdgeKindUses:
		return `label="uses", color=gray, style=dotted`
	default:
		return `color=gray40`
	}
}
