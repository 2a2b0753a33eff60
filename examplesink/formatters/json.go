package formatters

import (
	"encoding/json"

	"github.com/crosslang/codegraph/examplesink"
)

type jsonFormatter struct{}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	FQN      string `json:"fqn"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	FilePath string `json:"filePath,omitempty"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// Format renders the sink's graph as indented JSON, mirroring
// cmd/graph/formatters/formatter_json.go's plain MarshalIndent approach.
func (jsonFormatter) Format(s *examplesink.Sink, opts RenderOptions) (string, error) {
	nodes, err := s.Vertices()
	if err != nil {
		return "", err
	}
	edges, err := s.Edges()
	if err != nil {
		return "", err
	}

	g := jsonGraph{
		Nodes: make([]jsonNode, len(nodes)),
		Edges: make([]jsonEdge, len(edges)),
	}
	for i, n := range nodes {
		g.Nodes[i] = jsonNode{FQN: n.FQN, Name: n.Name, Kind: string(n.Kind), FilePath: n.FilePath}
	}
	for i, e := range edges {
		g.Edges[i] = jsonEdge{From: e.From, To: e.To, Kind: string(e.Kind)}
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
