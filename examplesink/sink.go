// Package examplesink is a sample implementation of the sink contract the
// analysis result is handed to — the real graph database writer lives
// outside this module. It exists so the core library has something
// concrete to write an AnalysisResult into, and so the CLI and watch mode
// in cmd/codegraph have a graph to render.
//
// The graph is a directed github.com/dominikbraun/graph value whose
// vertices are packages, types, functions, and properties, and whose edges
// carry a DECLARES/EXTENDS/IMPLEMENTS/CALLS/USES kind attribute.
package examplesink

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/crosslang/codegraph/codegraph"
	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
	"github.com/crosslang/codegraph/internal/symboltable"
)

// NodeKind discriminates what a graph node represents.
type NodeKind string

const (
	NodeKindPackage  NodeKind = "package"
	NodeKindType     NodeKind = "type"
	NodeKindFunction NodeKind = "function"
	NodeKindProperty NodeKind = "property"
)

// Node is one vertex of the sink graph.
type Node struct {
	FQN      string
	Name     string
	Kind     NodeKind
	FilePath string
}

// EdgeKind is the closed set of edge labels the sink records.
type EdgeKind string

const (
	EdgeKindDeclares   EdgeKind = "DECLARES"
	EdgeKindExtends    EdgeKind = "EXTENDS"
	EdgeKindImplements EdgeKind = "IMPLEMENTS"
	EdgeKindCalls      EdgeKind = "CALLS"
	EdgeKindUses       EdgeKind = "USES"
)

const edgeKindAttr = "kind"

// Sink is an in-memory implementation of the external sink interface,
// built once from an AnalysisResult and read many times by a formatter.
type Sink struct {
	graph graph.Graph[string, Node]

	// funcFQNSeen mirrors internal/symboltable's "~N" disambiguation so
	// DECLARES edges land on the same overload-suffixed FQN the table
	// assigned, as long as declareFile visits files/classes/functions in
	// the same order Build did (it does: both walk result.Parsed /
	// the parser's own file list top to bottom, class before nested
	// class, property before function).
	funcFQNSeen map[string]int
}

func nodeHash(n Node) string { return n.FQN }

// New returns an empty Sink ready for Write.
func New() *Sink {
	return &Sink{
		graph:       graph.New(nodeHash, graph.Directed()),
		funcFQNSeen: make(map[string]int),
	}
}

// Graph exposes the underlying dominikbraun/graph value for a formatter
// that wants direct access (adjacency maps, traversal helpers).
func (s *Sink) Graph() graph.Graph[string, Node] { return s.graph }

// Write implements the sink.write(files, symbols, calls) contract: every
// symbol in result.Table becomes a node; DECLARES/EXTENDS/IMPLEMENTS edges
// are derived by re-walking the parsed class trees (the table alone
// doesn't retain containment or supertype edges); CALLS edges come
// directly from every file's ResolvedCalls.
func (s *Sink) Write(result *codegraph.AnalysisResult) error {
	for _, sym := range result.Table.ByFQN {
		s.addNode(symbolNode(sym))
	}
	for _, rf := range result.Parsed {
		s.declareFile(rf.File)
	}
	for _, rf := range result.Parsed {
		for _, call := range rf.ResolvedCalls {
			s.addEdge(call.FromFQN, call.ToFQN, EdgeKindCalls)
		}
	}
	return nil
}

func symbolNode(sym ir.Symbol) Node {
	base := sym.Base()
	n := Node{FQN: base.FQN, Name: base.Name, FilePath: base.FilePath}
	switch sym.Kind() {
	case ir.SymbolKindClass:
		n.Kind = NodeKindType
	case ir.SymbolKindFunction:
		n.Kind = NodeKindFunction
	case ir.SymbolKindProperty:
		n.Kind = NodeKindProperty
	default:
		n.Kind = NodeKindPackage
	}
	return n
}

func (s *Sink) addNode(n Node) {
	if err := s.graph.AddVertex(n); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		_ = err // best-effort: any other AddVertex error is ignored and the node is skipped
	}
}

func (s *Sink) addEdge(from, to string, kind EdgeKind) {
	if from == "" || to == "" || from == to {
		return
	}
	err := s.graph.AddEdge(from, to, graph.EdgeAttribute(edgeKindAttr, string(kind)))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) && !errors.Is(err, graph.ErrVertexNotFound) {
		_ = err
	}
}

// declareFile walks file's classes/functions/properties, re-deriving the
// same FQN scheme internal/symboltable.Build used, and records DECLARES,
// EXTENDS, and IMPLEMENTS edges.
func (s *Sink) declareFile(file *ir.ParsedFile) {
	spec, ok := langspec.For(file.Language)
	if !ok {
		return
	}
	root, sep := symboltable.ModuleRoot(file, spec)
	for i := range file.Classes {
		s.declareClass(&file.Classes[i], root, sep, root)
	}
	for i := range file.TopLevelFunctions {
		fqn := s.disambiguateFunc(symboltable.Join(root, file.TopLevelFunctions[i].Name, sep))
		s.addEdge(root, fqn, EdgeKindDeclares)
	}
	for i := range file.TopLevelProperties {
		s.addEdge(root, symboltable.Join(root, file.TopLevelProperties[i].Name, sep), EdgeKindDeclares)
	}
}

func (s *Sink) declareClass(class *ir.ParsedClass, parentFQN string, sep byte, containerFQN string) {
	fqn := symboltable.Join(parentFQN, class.Name, sep)
	if containerFQN != "" {
		s.addEdge(containerFQN, fqn, EdgeKindDeclares)
	}

	if class.HasSuperClass {
		s.addEdge(fqn, resolveLocalType(class.SuperClass), EdgeKindExtends)
	}
	for _, iface := range class.Interfaces {
		s.addEdge(fqn, resolveLocalType(iface), EdgeKindImplements)
	}

	for i := range class.Properties {
		propFQN := symboltable.Join(fqn, class.Properties[i].Name, '.')
		s.addEdge(fqn, propFQN, EdgeKindDeclares)
		if class.Properties[i].HasType {
			s.addEdge(propFQN, resolveLocalType(class.Properties[i].Type), EdgeKindUses)
		}
	}
	for i := range class.Functions {
		fnFQN := s.disambiguateFunc(symboltable.Join(fqn, class.Functions[i].Name, '.'))
		s.addEdge(fqn, fnFQN, EdgeKindDeclares)
	}
	for i := range class.NestedClasses {
		s.declareClass(&class.NestedClasses[i], fqn, '.', fqn)
	}
	if class.CompanionObject != nil {
		s.declareClass(class.CompanionObject, fqn, '.', fqn)
	}
}

// disambiguateFunc reproduces internal/symboltable's "~N" suffixing for a
// function FQN computed independently here, so it lines up with the FQN
// that function's node was actually inserted under.
func (s *Sink) disambiguateFunc(fqn string) string {
	n := s.funcFQNSeen[fqn]
	s.funcFQNSeen[fqn] = n + 1
	if n == 0 {
		return fqn
	}
	return fqn + "~" + strconv.Itoa(n)
}

// resolveLocalType normalizes a raw supertype/interface/property-type text
// into the bare type name the sink uses as an edge target. Since the sink
// builds its graph after the resolver has already run, it deliberately
// does not re-implement the resolver's import-aware lookup; EXTENDS/IMPLEMENTS/USES
// edges to a type outside the graph simply point at a node Write never
// created, which AddEdge reports as ErrVertexNotFound and addEdge drops.
func resolveLocalType(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.TrimSuffix(t, "?")
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	return t
}

// Vertices returns every node in topological order (graph.TopologicalSort);
// when the graph has a cycle it falls back to sorting the nodes by FQN.
func (s *Sink) Vertices() ([]Node, error) {
	order, err := graph.TopologicalSort(s.graph)
	if err == nil {
		nodes := make([]Node, 0, len(order))
		for _, fqn := range order {
			n, err := s.graph.Vertex(fqn)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return nodes, nil
	}
	adjacency, err := s.graph.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	fqns := make([]string, 0, len(adjacency))
	for fqn := range adjacency {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)
	nodes := make([]Node, 0, len(fqns))
	for _, fqn := range fqns {
		n, err := s.graph.Vertex(fqn)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Edges returns every edge as (fromFQN, toFQN, kind), sorted for
// deterministic formatter output.
func (s *Sink) Edges() ([]Edge, error) {
	raw, err := s.graph.Edges()
	if err != nil {
		return nil, err
	}
	edges := make([]Edge, 0, len(raw))
	for _, e := range raw {
		kind := EdgeKind(e.Properties.Attributes[edgeKindAttr])
		edges = append(edges, Edge{From: e.Source, To: e.Target, Kind: kind})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})
	return edges, nil
}

// Edge is one formatter-facing graph edge.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}
