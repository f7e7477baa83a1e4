package dot

import (
	"fmt"
	"strings"
)

// Shape is the Graphviz shape attribute of a node.
type Shape string

// Node shapes used by the generator.
const (
	// ShapeBox is used for course, note, grade and credit nodes.
	ShapeBox Shape = "box"
	// ShapeGate is the small ellipse used for boolean AND/OR gate nodes.
	ShapeGate Shape = "ellipse"
)

// Node is a single node declaration. ID is the DOT declaration identifier
// (unique within one generated graph); Label is the human-readable text
// shown when rendering.
type Node struct {
	ID    string
	Label string
	Shape Shape
}

// Edge is a directed edge declaration pointing from a prerequisite to the
// course (or gate) that depends on it. ID is synthesized from the endpoint
// identifiers and exists only to disambiguate otherwise identical edges
// during deduplication.
type Edge struct {
	ID   string
	From string
	To   string
}

// newEdge builds an edge between two node identifiers. It cannot fail.
func newEdge(from, to string) Edge {
	return Edge{ID: from + "_to_" + to, From: from, To: to}
}

// Statement is one graph declaration: either a node or an edge.
// Exactly one of Node and Edge is set.
type Statement struct {
	Node *Node
	Edge *Edge
}

func nodeStmt(n *Node) Statement { return Statement{Node: n} }

func edgeStmt(e Edge) Statement { return Statement{Edge: &e} }

// String renders the statement as one DOT line (without indentation).
func (s Statement) String() string {
	switch {
	case s.Node != nil:
		return fmt.Sprintf("%q [%s];", s.Node.ID, strings.Join(s.Node.attrs(), ", "))
	case s.Edge != nil:
		return fmt.Sprintf("%q -> %q;", s.Edge.From, s.Edge.To)
	default:
		return ""
	}
}

func (n *Node) attrs() []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label)}
	if n.Shape == ShapeGate {
		attrs = append(attrs, "shape=ellipse", "width=0.4", "height=0.25", "fixedsize=true", "fontsize=9")
	}
	return attrs
}

// Dedupe removes structurally identical statements, keeping the first
// occurrence of each and preserving order otherwise. Identical statements
// arise when two dependents share a prerequisite subtree: both walks emit
// the same node declaration and, through different gates, possibly the same
// edge. Running Dedupe twice yields the same list as running it once.
func Dedupe(stmts []Statement) []Statement {
	seen := make(map[string]bool, len(stmts))
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		key := s.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// key returns the identity of a statement for deduplication: the statement
// kind plus every identifier and attribute that renders into the output.
func (s Statement) key() string {
	if s.Edge != nil {
		return "edge:" + s.Edge.ID
	}
	return "node:" + s.String()
}
