// Package astutil provides language-agnostic tree-sitter node helpers:
// child lookup, pre-order traversal, 1-based location extraction, and full
// type-text reconstruction. No function here knows about any one language's
// grammar; callers pass node-type strings.
package astutil

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/crosslang/codegraph/internal/ir"
)

// FindChildByType returns the first named child of n whose type is t, or nil.
func FindChildByType(n *sitter.Node, t string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == t {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns every named child of n whose type is t, in
// source order.
func FindChildrenByType(n *sitter.Node, t string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == t {
			out = append(out, child)
		}
	}
	return out
}

// FindDescendantByType returns the first node of type t anywhere in n's
// subtree (n included), pre-order.
func FindDescendantByType(n *sitter.Node, t string) *sitter.Node {
	var found *sitter.Node
	TraverseNode(n, func(node *sitter.Node) bool {
		if found != nil {
			return false
		}
		if node.Type() == t {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindDescendantsByType returns every node of type t in n's subtree
// (n included), pre-order, depth-first.
func FindDescendantsByType(n *sitter.Node, t string) []*sitter.Node {
	var out []*sitter.Node
	TraverseNode(n, func(node *sitter.Node) bool {
		if node.Type() == t {
			out = append(out, node)
		}
		return true
	})
	return out
}

// TraverseNode walks n and every descendant, pre-order, depth-first, calling
// cb on each. If cb returns false the walk does not descend into that node's
// children (siblings are still visited). A nil n is a no-op.
func TraverseNode(n *sitter.Node, cb func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !cb(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		TraverseNode(n.NamedChild(i), cb)
	}
}

// NodeLocation extracts a SourceLocation from n with 1-based rows/columns
// and FilePath left empty (the parser driver back-fills it).
func NodeLocation(n *sitter.Node) ir.SourceLocation {
	start := n.StartPoint()
	end := n.EndPoint()
	return ir.SourceLocation{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}

// ExtractFullTypeName reconstructs the full textual form of a type node,
// generics and array dimensions included, by taking its exact source slice
// and collapsing internal whitespace/newlines to single spaces. For a
// TypeScript type_annotation the leading ":" is not included.
func ExtractFullTypeName(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	if n.Type() == "type_annotation" && n.NamedChildCount() > 0 {
		n = n.NamedChild(0)
	}
	text := n.Content(source)
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}

// Content returns n's exact source text, or "" for a nil node.
func Content(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(source)
}

// HasChildOfType reports whether n has a direct or transitive child of type t.
func HasChildOfType(n *sitter.Node, t string) bool {
	if n == nil {
		return false
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == t || HasChildOfType(child, t) {
			return true
		}
	}
	return false
}

// ChildTypes returns the grammar type of every direct named child, in order
// — useful for detecting modifier keywords emitted as anonymous-looking
// sibling nodes in a "modifiers" container.
func ChildTypes(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	types := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil {
			types = append(types, child.Type())
		}
	}
	return types
}
