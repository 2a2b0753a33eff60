package formatters

import (
	"fmt"
	"strings"

	"github.com/crosslang/codegraph/examplesink"
)

type mermaidFormatter struct{}

// Format renders the sink's graph as a Mermaid.js flowchart, adapted from
// cmd/graph/formatters/mermaid's node-ID sanitization (Mermaid IDs can't
// contain dots or slashes, so FQNs are mapped to n0, n1, ...).
func (mermaidFormatter) Format(s *examplesink.Sink, opts RenderOptions) (string, error) {
	nodes, err := s.Vertices()
	if err != nil {
		return "", err
	}
	edges, err := s.Edges()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}
	sb.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(nodes))
	for i, n := range nodes {
		ids[n.FQN] = fmt.Sprintf("n%d", i)
	}

	for _, n := range nodes {
		label := strings.ReplaceAll(n.Name, "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[n.FQN], label))
	}

	if len(edges) > 0 {
		sb.WriteString("\n")
		for _, e := range edges {
			from, ok := ids[e.From]
			if !ok {
				continue
			}
			to, ok := ids[e.To]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, strings.ToLower(string(e.Kind)), to))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
